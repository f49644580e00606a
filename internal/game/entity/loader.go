package entity

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// WeaponDef defines the static properties of a weapon loaded from YAML.
// Instances stamped from a def start at full condition.
type WeaponDef struct {
	ID          string     `yaml:"id"`
	Name        string     `yaml:"name"`
	Kind        WeaponKind `yaml:"kind"`
	Damage      int        `yaml:"damage"`
	Weight      int        `yaml:"weight"`
	Length      int        `yaml:"length"`
	DamageType  string     `yaml:"damage_type"`
	Enchantment int        `yaml:"enchantment"`
	MagicType   string     `yaml:"magic_type"`
	Shield      bool       `yaml:"shield"`
}

var weaponKinds = map[WeaponKind]bool{
	KindDagger:     true,
	KindSword:      true,
	KindHeavySword: true,
	KindMace:       true,
	KindFlail:      true,
	KindAxe:        true,
	KindPoleArm:    true,
}

// Validate checks that the WeaponDef satisfies its invariants.
// Precondition: d is non-nil.
// Postcondition: returns nil iff all fields are valid.
func (d *WeaponDef) Validate() error {
	var errs []error
	if d.ID == "" {
		errs = append(errs, errors.New("ID must not be empty"))
	}
	if d.Name == "" {
		errs = append(errs, errors.New("Name must not be empty"))
	}
	if !d.Shield && !weaponKinds[d.Kind] {
		errs = append(errs, fmt.Errorf("unknown weapon kind %q", d.Kind))
	}
	if d.Damage < 0 {
		errs = append(errs, errors.New("Damage must be non-negative"))
	}
	if d.Weight < 0 {
		errs = append(errs, errors.New("Weight must be non-negative"))
	}
	if d.Length < 0 {
		errs = append(errs, errors.New("Length must be non-negative"))
	}
	if !d.Shield && d.DamageType == "" {
		errs = append(errs, errors.New("DamageType must not be empty"))
	}
	if d.Enchantment > 0 && d.MagicType == "" {
		errs = append(errs, errors.New("enchanted weapons need a MagicType"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("weapon validation failed: %v", errs)
	}
	return nil
}

// Instantiate stamps a fresh Weapon instance from the def.
//
// Postcondition: the instance is at full condition.
func (d *WeaponDef) Instantiate() *Weapon {
	return &Weapon{
		ID:          d.ID,
		Name:        d.Name,
		Kind:        d.Kind,
		Damage:      d.Damage,
		Weight:      d.Weight,
		Length:      d.Length,
		DamageType:  d.DamageType,
		Condition:   100,
		Enchantment: d.Enchantment,
		MagicType:   d.MagicType,
		IsShield:    d.Shield,
	}
}

// ArmourDef defines the static properties of an armour piece loaded from YAML.
type ArmourDef struct {
	ID          string             `yaml:"id"`
	Name        string             `yaml:"name"`
	Weight      int                `yaml:"weight"`
	Enchantment int                `yaml:"enchantment"`
	AC          map[string]int     `yaml:"ac"`
	Coverage    map[string]float64 `yaml:"coverage"`
}

// Validate checks that the ArmourDef satisfies its invariants.
// Precondition: d is non-nil.
// Postcondition: returns nil iff all fields are valid.
func (d *ArmourDef) Validate() error {
	var errs []error
	if d.ID == "" {
		errs = append(errs, errors.New("ID must not be empty"))
	}
	if d.Name == "" {
		errs = append(errs, errors.New("Name must not be empty"))
	}
	if len(d.AC) == 0 {
		errs = append(errs, errors.New("AC must rate at least one damage type"))
	}
	for dt, ac := range d.AC {
		if ac < 0 {
			errs = append(errs, fmt.Errorf("AC for %q must be non-negative", dt))
		}
	}
	if len(d.Coverage) == 0 {
		errs = append(errs, errors.New("Coverage must include at least one zone"))
	}
	for zone, c := range d.Coverage {
		if c < 0 || c > 1 {
			errs = append(errs, fmt.Errorf("coverage for %q must be in [0, 1]", zone))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("armour validation failed: %v", errs)
	}
	return nil
}

// Instantiate stamps a fresh Armour instance from the def.
//
// Postcondition: the instance is at full condition.
func (d *ArmourDef) Instantiate() *Armour {
	ac := make(map[string]int, len(d.AC))
	for k, v := range d.AC {
		ac[k] = v
	}
	cover := make(map[string]float64, len(d.Coverage))
	for k, v := range d.Coverage {
		cover[k] = v
	}
	return &Armour{
		ID:          d.ID,
		Name:        d.Name,
		AC:          ac,
		Coverage:    cover,
		Weight:      d.Weight,
		Condition:   100,
		Enchantment: d.Enchantment,
	}
}

// LoadWeapons reads all *.yaml files from dir, parses each as a WeaponDef,
// validates it, and returns the collected slice.
// Precondition: dir is a readable directory path.
// Postcondition: returns all valid WeaponDefs or the first encountered error.
func LoadWeapons(dir string) ([]*WeaponDef, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("LoadWeapons: cannot read directory %q: %w", dir, err)
	}

	var defs []*WeaponDef
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".yaml" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("LoadWeapons: cannot read file %q: %w", path, err)
		}
		var d WeaponDef
		if err := yaml.Unmarshal(data, &d); err != nil {
			return nil, fmt.Errorf("LoadWeapons: cannot parse file %q: %w", path, err)
		}
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("LoadWeapons: invalid weapon in %q: %w", path, err)
		}
		defs = append(defs, &d)
	}
	return defs, nil
}

// LoadArmour reads all *.yaml files from dir, parses each as an ArmourDef,
// validates it, and returns the collected slice.
// Precondition: dir is a readable directory path.
// Postcondition: returns all valid ArmourDefs or the first encountered error.
func LoadArmour(dir string) ([]*ArmourDef, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("LoadArmour: cannot read directory %q: %w", dir, err)
	}

	var defs []*ArmourDef
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".yaml" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("LoadArmour: cannot read file %q: %w", path, err)
		}
		var d ArmourDef
		if err := yaml.Unmarshal(data, &d); err != nil {
			return nil, fmt.Errorf("LoadArmour: cannot parse file %q: %w", path, err)
		}
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("LoadArmour: invalid armour in %q: %w", path, err)
		}
		defs = append(defs, &d)
	}
	return defs, nil
}
