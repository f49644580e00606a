// Package skills resolves skill ratings for combatants. The combat engine
// only consumes the Oracle interface; game servers back it with whatever
// skill progression system they run.
package skills

// Skill names consumed by the combat engine.
const (
	Melee   = "fighting.combat.melee"
	Unarmed = "fighting.combat.unarmed"
	Dodge   = "fighting.defense.dodge"
	Parry   = "fighting.defense.parry"
	Tactics = "fighting.tactics"
)

// DefaultRating is returned for any skill an oracle has no record of.
const DefaultRating = 10

// Oracle answers skill queries for entities.
type Oracle interface {
	// Rating returns the entity's bonus for the named skill.
	//
	// Postcondition: result >= 0.
	Rating(entityID, skill string) int
}

// MapOracle is an in-memory Oracle keyed by entity ID then skill name.
// Entities or skills absent from the map rate DefaultRating.
type MapOracle map[string]map[string]int

// Rating implements Oracle.
func (m MapOracle) Rating(entityID, skill string) int {
	if byName, ok := m[entityID]; ok {
		if r, ok := byName[skill]; ok {
			if r < 0 {
				return 0
			}
			return r
		}
	}
	return DefaultRating
}
