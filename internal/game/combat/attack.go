package combat

import (
	"github.com/ethereal-veil/mud/internal/game/entity"
	"github.com/ethereal-veil/mud/internal/game/tactics"
)

// Outcome is which side won the opposed check.
type Outcome int

const (
	// OutcomeNone means the round produced no check (no-op).
	OutcomeNone Outcome = iota
	OutcomeOffensiveWin
	OutcomeDefensiveWin
)

// Degree classifies how decisively the check was won or lost.
type Degree int

const (
	DegreeNormal Degree = iota
	DegreeMarginal
	DegreeExceptional
	DegreeCritical
)

// String renders the degree for logs.
func (d Degree) String() string {
	switch d {
	case DegreeMarginal:
		return "marginal"
	case DegreeExceptional:
		return "exceptional"
	case DegreeCritical:
		return "critical"
	default:
		return "normal"
	}
}

// wearDivisor scales equipment wear per unit of absorbed damage. Decisive
// blows wear gear less than grinding marginal exchanges.
func (d Degree) wearDivisor() int {
	switch d {
	case DegreeMarginal:
		return 1
	case DegreeNormal:
		return 2
	case DegreeExceptional:
		return 3
	default:
		return 4
	}
}

// Descriptor is the chosen attack form: verb, governing skill, base damage,
// damage type, and base chance. Limb is set for unarmed strikes.
type Descriptor struct {
	Verb       string
	Skill      string
	BaseDamage int
	DamageType string
	BaseChance int
	Limb       string
}

// Attack is the transient state of one resolution step. It is constructed at
// the start of a ResolveRound call, mutated through the pipeline phases, and
// discarded at the end. Never shared across steps or goroutines.
type Attack struct {
	Attacker  *entity.Entity
	Opponent  *entity.Entity
	Defender  *entity.Entity
	PersonHit *entity.Entity

	AttackerTactics tactics.Tactics
	DefenderTactics tactics.Tactics

	Weapon     *entity.Weapon
	Descriptor Descriptor

	DefenseAction string
	DefenseSkill  string
	DefenseWeapon *entity.Weapon
	UnarmedParry  bool

	AttackModifier  int
	DefenseModifier int
	AttackCost      int
	DefenseCost     int

	Distance   int
	TargetZone string

	Outcome Outcome
	Degree  Degree

	// RawDamage is the pre-armour damage after skill scaling and the degree
	// multiplier; Damage is what reaches the resolution after specials.
	RawDamage int
	Damage    int
	Absorbed  int
	StoppedBy *entity.Armour

	// Repeat guards the redirection retry: once a beaten protector hands
	// the check to the true opponent, no further redirection may occur.
	Repeat bool
}

// defense action values.
const (
	defenseNone  = "none"
	defenseParry = "parry"
	defenseDodge = "dodge"
)
