package entity

// WeaponKind identifies the handling class of a melee weapon. The kind keys
// the combat message tables for unarmed-style strikes and descriptors.
type WeaponKind string

const (
	KindDagger     WeaponKind = "dagger"
	KindSword      WeaponKind = "sword"
	KindHeavySword WeaponKind = "heavy_sword"
	KindMace       WeaponKind = "mace"
	KindFlail      WeaponKind = "flail"
	KindAxe        WeaponKind = "axe"
	KindPoleArm    WeaponKind = "pole_arm"
)

// Weapon is a wieldable item instance. Condition degrades with use and scales
// the damage the weapon actually deals.
//
// Invariant: Condition stays in [0, 100].
type Weapon struct {
	ID          string
	Name        string
	Kind        WeaponKind
	Damage      int
	Weight      int
	Length      int
	DamageType  string
	Condition   int
	Enchantment int
	// Blessing is a temporary divine damage bonus applied by outside systems.
	Blessing  int
	MagicType string
	IsShield  bool
}

// EffectiveDamage is the damage rating after enchantment, blessing, and wear.
//
// Postcondition: result >= 0.
func (w *Weapon) EffectiveDamage() int {
	d := (w.Damage + w.Enchantment + w.Blessing) * w.Condition / 100
	if d < 0 {
		return 0
	}
	return d
}

// EffectiveDamageType is the damage type the weapon currently deals. Enchanted
// weapons strike with their magic subtype instead of their physical type.
func (w *Weapon) EffectiveDamageType() string {
	if w.Enchantment > 0 && w.MagicType != "" {
		return w.MagicType
	}
	return w.DamageType
}

var damageCategories = []string{
	"extremely low",
	"very low",
	"rather low",
	"low",
	"fair",
	"moderate",
	"high",
	"very high",
	"extremely high",
}

// Category buckets the weapon's effective damage into a coarse descriptive
// ladder for appraisal output. One rung per 25 points of damage.
func (w *Weapon) Category() string {
	d := w.EffectiveDamage()
	if d <= 0 {
		return damageCategories[0]
	}
	idx := (d - 1) / 25
	if idx >= len(damageCategories) {
		idx = len(damageCategories) - 1
	}
	return damageCategories[idx]
}

// Degrade reduces the weapon's condition by amount, clamping at zero.
//
// Postcondition: Condition is monotonically non-increasing across calls.
func (w *Weapon) Degrade(amount int) {
	if amount <= 0 {
		return
	}
	w.Condition -= amount
	if w.Condition < 0 {
		w.Condition = 0
	}
}

// Broken reports whether the weapon has been worn down completely.
func (w *Weapon) Broken() bool {
	return w.Condition <= 0
}
