// Package entity models the combatants of the game world: their vitals,
// limbs, held weapons, worn armour, and tactics. Entities are plain data;
// all cross-entity coordination happens in the combat engine, which
// serializes access per world.
package entity

import (
	"strings"

	"github.com/google/uuid"

	"github.com/ethereal-veil/mud/internal/game/tactics"
)

// Kind distinguishes player-controlled entities from NPCs. Death handling
// and surrender arbitration differ between the two.
type Kind string

const (
	KindPlayer Kind = "player"
	KindNPC    Kind = "npc"
)

// DefaultLimbs is the humanoid limb layout entities start with.
var DefaultLimbs = []string{"left hand", "right hand"}

// DefaultZones is the humanoid target-zone list, ordered top to bottom. The
// upper/lower focus split and the height-ratio zone bias both depend on this
// ordering.
var DefaultZones = []string{"head", "neck", "chest", "arms", "hands", "abdomen", "legs", "feet"}

// Entity is a combat-capable actor.
type Entity struct {
	ID   string
	Name string
	Kind Kind

	HP    int
	MaxHP int
	// GP is guard points, the stamina pool spent on defense and drained by
	// failed intercepts.
	GP    int
	MaxGP int

	Str    int
	Dex    int
	Height int
	Burden int

	// Limbs and Holding are parallel: Holding[i] is the weapon gripped by
	// Limbs[i], nil for a free limb. A two-handed grip stores the same
	// *Weapon in both slots.
	Limbs   []string
	Holding []*Weapon

	// Worn maps body zone to the armour piece covering it.
	Worn map[string]*Armour

	// TargetZones are the zones an attacker can strike on this entity,
	// ordered top to bottom.
	TargetZones []string

	Tactics tactics.Tactics

	// Protectors intercept attacks aimed at this entity. Defenders do the
	// same but may also parry on its behalf. Both hold entity IDs.
	Protectors []string
	Defenders  []string

	LocationID string
	// RespawnID is where a player is moved after death.
	RespawnID string

	PassedOut    bool
	Dead         bool
	CastingSpell bool
	Connected    bool
	CannotAttack bool
	CannotDefend bool
	Visible      bool

	// Attrs is a side channel for transient numeric state set by outside
	// systems (blessings, curses, scripted effects).
	Attrs map[string]int
}

// AttrDarkvision marks magically assisted sight. Any positive value lets the
// bearer ignore ambient light entirely.
const AttrDarkvision = "darkvision"

// New returns a living entity with default limbs, zones, and tactics.
func New(name string, kind Kind) *Entity {
	limbs := make([]string, len(DefaultLimbs))
	copy(limbs, DefaultLimbs)
	zones := make([]string, len(DefaultZones))
	copy(zones, DefaultZones)
	return &Entity{
		ID:          uuid.NewString(),
		Name:        name,
		Kind:        kind,
		HP:          100,
		MaxHP:       100,
		GP:          100,
		MaxGP:       100,
		Str:         10,
		Dex:         10,
		Height:      170,
		Limbs:       limbs,
		Holding:     make([]*Weapon, len(limbs)),
		Worn:        make(map[string]*Armour),
		TargetZones: zones,
		Tactics:     tactics.Default(),
		Connected:   true,
		Visible:     true,
		Attrs:       make(map[string]int),
	}
}

// Incapacitated reports whether the entity can take no combat actions at all.
func (e *Entity) Incapacitated() bool {
	return e.Dead || e.PassedOut
}

// Attackable reports whether the entity is a legal target right now. An
// unconscious or dying body cannot be engaged; whoever dropped it already
// settled the fight.
func (e *Entity) Attackable() bool {
	return !e.Dead && !e.PassedOut && e.HP >= 0 && e.Connected
}

// Darkvision reports whether a blessing or scripted effect lets the entity
// see normally regardless of ambient light.
func (e *Entity) Darkvision() bool {
	return e.Attrs[AttrDarkvision] > 0
}

// CanAttack reports whether the entity may initiate attacks this round.
func (e *Entity) CanAttack() bool {
	return !e.Incapacitated() && !e.CannotAttack
}

// CanDefend reports whether the entity may respond to attacks this round.
func (e *Entity) CanDefend() bool {
	return !e.Incapacitated() && !e.CannotDefend
}

// TakeDamage subtracts n from HP and reports whether the entity dropped to
// zero or below. The caller owns death handling.
//
// Precondition: n >= 0.
func (e *Entity) TakeDamage(n int) bool {
	e.HP -= n
	return e.HP <= 0
}

// Wield grips weapon with the named limb. Passing both hand limbs the same
// weapon models a two-handed grip.
//
// Postcondition: returns false and leaves the grip unchanged when the limb
// does not exist or already holds something.
func (e *Entity) Wield(limb string, w *Weapon) bool {
	for i, l := range e.Limbs {
		if l == limb {
			if e.Holding[i] != nil {
				return false
			}
			e.Holding[i] = w
			return true
		}
	}
	return false
}

// Unwield releases every grip on w.
func (e *Entity) Unwield(w *Weapon) {
	for i, held := range e.Holding {
		if held == w {
			e.Holding[i] = nil
		}
	}
}

// Wear puts the armour piece on every zone it covers.
func (e *Entity) Wear(a *Armour) {
	for zone := range a.Coverage {
		e.Worn[zone] = a
	}
}

// HeldWeapons returns the distinct weapons currently gripped, shields
// included.
func (e *Entity) HeldWeapons() []*Weapon {
	var out []*Weapon
	for _, w := range e.Holding {
		if w == nil {
			continue
		}
		dup := false
		for _, seen := range out {
			if seen == w {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, w)
		}
	}
	return out
}

// WeaponsForHand returns the distinct non-shield weapons gripped by the limbs
// the hand preference selects. HandBoth selects every limb.
func (e *Entity) WeaponsForHand(h tactics.Hand) []*Weapon {
	var out []*Weapon
	for i, w := range e.Holding {
		if w == nil || w.IsShield {
			continue
		}
		if !limbMatchesHand(e.Limbs[i], h) {
			continue
		}
		dup := false
		for _, seen := range out {
			if seen == w {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, w)
		}
	}
	return out
}

// HeldShield returns the first shield-class weapon gripped, or nil.
func (e *Entity) HeldShield() *Weapon {
	for _, w := range e.Holding {
		if w != nil && w.IsShield {
			return w
		}
	}
	return nil
}

// LimbsHolding counts how many limbs grip w. A two-handed grip counts twice.
func (e *Entity) LimbsHolding(w *Weapon) int {
	n := 0
	for _, held := range e.Holding {
		if held == w {
			n++
		}
	}
	return n
}

// FreeLimbs counts limbs gripping nothing.
func (e *Entity) FreeLimbs() int {
	n := 0
	for _, w := range e.Holding {
		if w == nil {
			n++
		}
	}
	return n
}

// OffHand reports whether the limb gripping w is the entity's off hand.
// Only single-limb grips of a left-side limb qualify.
func (e *Entity) OffHand(w *Weapon) bool {
	if w == nil || e.LimbsHolding(w) != 1 {
		return false
	}
	for i, held := range e.Holding {
		if held == w {
			return strings.HasPrefix(e.Limbs[i], "left")
		}
	}
	return false
}

// DualWielding reports whether two different non-shield weapons are gripped.
func (e *Entity) DualWielding() bool {
	var first *Weapon
	for _, w := range e.Holding {
		if w == nil || w.IsShield {
			continue
		}
		if first == nil {
			first = w
			continue
		}
		if w != first {
			return true
		}
	}
	return false
}

// ArmourAt returns the piece covering zone, or nil.
func (e *Entity) ArmourAt(zone string) *Armour {
	return e.Worn[zone]
}

// IsProtector reports whether id is registered as a protector of e.
func (e *Entity) IsProtector(id string) bool {
	for _, p := range e.Protectors {
		if p == id {
			return true
		}
	}
	return false
}

// IsDefender reports whether id is registered as a defender of e.
func (e *Entity) IsDefender(id string) bool {
	for _, d := range e.Defenders {
		if d == id {
			return true
		}
	}
	return false
}

// RemoveGuardian strips id from both the protector and defender lists.
// Safe to call when id is on neither list.
func (e *Entity) RemoveGuardian(id string) {
	e.Protectors = removeID(e.Protectors, id)
	e.Defenders = removeID(e.Defenders, id)
}

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func limbMatchesHand(limb string, h tactics.Hand) bool {
	switch h {
	case tactics.HandLeft:
		return strings.HasPrefix(limb, "left")
	case tactics.HandRight:
		return strings.HasPrefix(limb, "right")
	default:
		return true
	}
}
