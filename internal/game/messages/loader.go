package messages

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ListDef is one message list loaded from YAML. Loading a def whose key
// already exists replaces the built-in list for that key.
type ListDef struct {
	Key   string `yaml:"key"`
	Tiers []Tier `yaml:"tiers"`
}

// Validate checks that the ListDef satisfies its invariants.
// Precondition: d is non-nil.
// Postcondition: returns nil iff all fields are valid.
func (d *ListDef) Validate() error {
	var errs []error
	if d.Key == "" {
		errs = append(errs, errors.New("Key must not be empty"))
	}
	if len(d.Tiers) == 0 {
		errs = append(errs, errors.New("Tiers must not be empty"))
	}
	prev := -1
	for i, tier := range d.Tiers {
		if tier.Threshold <= prev {
			errs = append(errs, fmt.Errorf("tier %d: thresholds must be strictly ascending", i))
		}
		prev = tier.Threshold
		if tier.Set.Attacker == "" || tier.Set.Victim == "" || tier.Set.Observer == "" {
			errs = append(errs, fmt.Errorf("tier %d: all three templates are required", i))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("message list validation failed: %v", errs)
	}
	return nil
}

// LoadDir reads all *.yaml files from dir, parses each as a ListDef,
// validates it, and merges it into the table, replacing any built-in list
// with the same key.
// Precondition: dir is a readable directory path.
// Postcondition: the table is unchanged when an error is returned.
func (t *Table) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("LoadDir: cannot read directory %q: %w", dir, err)
	}

	loaded := make(map[string][]Tier)
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".yaml" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("LoadDir: cannot read file %q: %w", path, err)
		}
		var d ListDef
		if err := yaml.Unmarshal(data, &d); err != nil {
			return fmt.Errorf("LoadDir: cannot parse file %q: %w", path, err)
		}
		if err := d.Validate(); err != nil {
			return fmt.Errorf("LoadDir: invalid message list in %q: %w", path, err)
		}
		loaded[d.Key] = d.Tiers
	}
	for key, tiers := range loaded {
		t.byKey[key] = tiers
	}
	return nil
}
