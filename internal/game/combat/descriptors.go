package combat

import (
	"github.com/ethereal-veil/mud/internal/game/dice"
	"github.com/ethereal-veil/mud/internal/game/entity"
	"github.com/ethereal-veil/mud/internal/game/skills"
)

// unarmedDamage values for bare-limb strikes.
const (
	handsDamage = 10
	feetDamage  = 12
)

// weaponVerbs maps a weapon kind to its attack verb. The verb feeds logging
// and the message-table key.
var weaponVerbs = map[entity.WeaponKind]string{
	entity.KindDagger:     "stab",
	entity.KindSword:      "slash",
	entity.KindHeavySword: "cleave",
	entity.KindMace:       "bash",
	entity.KindFlail:      "lash",
	entity.KindAxe:        "chop",
	entity.KindPoleArm:    "thrust",
}

// attackOptions derives the candidate attack forms for the chosen weapon.
// A nil weapon yields the unarmed options (hands and feet).
//
// Postcondition: at least one descriptor is returned.
func attackOptions(w *entity.Weapon, baseChance int) []Descriptor {
	if w == nil {
		return []Descriptor{
			{Verb: "punch", Skill: skills.Unarmed, BaseDamage: handsDamage, DamageType: "blunt", BaseChance: baseChance, Limb: "hands"},
			{Verb: "kick", Skill: skills.Unarmed, BaseDamage: feetDamage, DamageType: "blunt", BaseChance: baseChance, Limb: "feet"},
		}
	}
	verb, ok := weaponVerbs[w.Kind]
	if !ok {
		verb = "strike"
	}
	return []Descriptor{{
		Verb:       verb,
		Skill:      skills.Melee,
		BaseDamage: w.EffectiveDamage(),
		DamageType: w.EffectiveDamageType(),
		BaseChance: baseChance,
	}}
}

// pickDescriptor selects one attack form at random.
func pickDescriptor(src dice.Source, options []Descriptor) Descriptor {
	if len(options) == 1 {
		return options[0]
	}
	return options[dice.Pick(src, len(options))]
}
