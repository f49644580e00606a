package entity

// Armour is a worn item instance. Protection depends on the incoming damage
// type, the piece's coverage of the struck zone, and its remaining condition.
//
// Invariant: Condition stays in [0, 100].
type Armour struct {
	ID   string
	Name string
	// AC maps damage type to the base armour class against that type.
	AC map[string]int
	// Coverage maps body zone to the fraction of that zone the piece covers,
	// in [0, 1]. Zones absent from the map are not covered at all.
	Coverage    map[string]float64
	Weight      int
	Condition   int
	Enchantment int
}

// EffectiveAC is the absorption the piece provides against damageType at zone,
// after enchantment, wear, and coverage scaling.
//
// Postcondition: result >= 0; result == 0 when the zone is uncovered or the
// piece has no rating against the damage type.
func (a *Armour) EffectiveAC(damageType, zone string) int {
	base, ok := a.AC[damageType]
	if !ok {
		return 0
	}
	cover, ok := a.Coverage[zone]
	if !ok || cover <= 0 {
		return 0
	}
	ac := float64(base+a.Enchantment) * float64(a.Condition) / 100.0 * cover
	if ac < 0 {
		return 0
	}
	return int(ac)
}

// Degrade reduces the armour's condition by amount, clamping at zero.
//
// Postcondition: Condition is monotonically non-increasing across calls.
func (a *Armour) Degrade(amount int) {
	if amount <= 0 {
		return
	}
	a.Condition -= amount
	if a.Condition < 0 {
		a.Condition = 0
	}
}

// Broken reports whether the armour has been worn down completely.
func (a *Armour) Broken() bool {
	return a.Condition <= 0
}
