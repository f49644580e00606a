// Package messages renders combat narration. Message sets are keyed by damage
// type, optionally specialized per weapon kind ("sharp-sword"), and tiered by
// damage dealt. Templates carry $N (attacker), $I (victim), and $z (zone)
// placeholders.
package messages

import (
	"strings"
)

// Set is one tier's templates for the three base audiences. The engine derives
// the defender and intercept audiences from these plus its own phrasing.
type Set struct {
	Attacker string `yaml:"attacker"`
	Victim   string `yaml:"victim"`
	Observer string `yaml:"observer"`
}

// Render substitutes the placeholders in every template of the set.
func (s Set) Render(attacker, victim, zone string) Set {
	return Set{
		Attacker: Render(s.Attacker, attacker, victim, zone),
		Victim:   Render(s.Victim, attacker, victim, zone),
		Observer: Render(s.Observer, attacker, victim, zone),
	}
}

// Render substitutes $N, $I, and $z in a single template.
func Render(template, attacker, victim, zone string) string {
	r := strings.NewReplacer("$N", attacker, "$I", victim, "$z", zone)
	return r.Replace(template)
}

// Tier pairs a damage ceiling with its message set. A lookup picks the first
// tier whose threshold the damage does not exceed; the last tier catches
// everything above.
type Tier struct {
	Threshold int `yaml:"threshold"`
	Set       Set `yaml:",inline"`
}

// Table holds every message list, keyed by damage type or
// "damagetype-weaponkind".
type Table struct {
	byKey map[string][]Tier
}

// NewTable returns a table preloaded with the built-in message lists.
func NewTable() *Table {
	t := &Table{byKey: make(map[string][]Tier)}
	for key, tiers := range defaultTables {
		t.byKey[key] = tiers
	}
	return t
}

// Keys returns the table's keys, for diagnostics.
func (t *Table) Keys() []string {
	keys := make([]string, 0, len(t.byKey))
	for k := range t.byKey {
		keys = append(keys, k)
	}
	return keys
}

// Select picks the message set for a hit. The weapon-kind specialization is
// preferred when present, then the bare damage type, then the blunt fallback.
//
// Postcondition: always returns a usable set.
func (t *Table) Select(damageType string, kind string, damage int) Set {
	tiers, ok := t.byKey[damageType+"-"+kind]
	if !ok || kind == "" {
		tiers, ok = t.byKey[damageType]
	}
	if !ok {
		tiers = t.byKey["blunt"]
	}
	for _, tier := range tiers {
		if damage <= tier.Threshold {
			return tier.Set
		}
	}
	return tiers[len(tiers)-1].Set
}

// AbsorptionClause describes how much of a blow the victim's armour soaked.
// Returns the empty string when absorption was too small to narrate.
func AbsorptionClause(absorbed, total int) string {
	if total <= 0 || absorbed*3 <= total {
		return ""
	}
	switch {
	case absorbed >= total:
		return "all of"
	case absorbed*3 > total*2:
		return "most of"
	default:
		return "some of"
	}
}
