package combat

import (
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/ethereal-veil/mud/internal/game/tactics"
)

// attackModifier totals the situational terms for the attacker's side of the
// opposed check. Each term is computed separately so the debug log can show
// the full breakdown.
func (e *Engine) attackModifier(att *Attack) {
	var wep, hld, lght, hlth, brdn, dist, tact, targ, oth, num int
	attacker := att.Attacker
	dex := attacker.Dex

	if att.Weapon != nil {
		limbs := attacker.LimbsHolding(att.Weapon)

		// Everything else in hand drags the swing. Shields are strapped
		// on and count at a fifth of their weight.
		other := 0
		for _, w := range attacker.HeldWeapons() {
			if w == att.Weapon {
				continue
			}
			if w.IsShield {
				other += w.Weight / 5
			} else {
				other += w.Weight
			}
		}
		switch {
		case att.AttackerTactics.Response == tactics.ResponseBoth:
			other = other * 3 / 2
		case att.AttackerTactics.Response == tactics.ResponseDodge && other < dex:
			other /= 2
		}

		wep = att.Weapon.Weight + other/2
		wep /= limbs + 1
		wep -= attacker.Str
		if wep > 0 {
			wep = -int(math.Pow(float64(wep), 1.4))
		}

		if dex < 14 && len(attacker.Holding) > 0 && attacker.Holding[0] != att.Weapon {
			hld = dex - 14
		}
	} else {
		wep = dex*2 - attacker.Burden
	}

	if !attacker.Darkvision() {
		lght = lightPenalty(e.world.LightLevel(attacker.LocationID))
	}

	hlth = -(50 - attacker.HP*50/attacker.MaxHP)
	switch gp := attacker.GP; {
	case gp < -50:
		hlth += -25
	case gp < 0:
		hlth += gp / 2
	}

	brdn = -(attacker.Burden / 3)

	if e.cfg.UseDistance {
		if att.Weapon == nil {
			dist = -3 * absInt(e.cfg.Reach-att.Distance)
		} else {
			dist = -3 * absInt(e.cfg.Reach+att.Weapon.Length-att.Distance)
		}
	}

	tact = att.AttackerTactics.Attitude.AttackBias()

	switch focus := att.AttackerTactics.FocusZone; focus {
	case tactics.FocusUpperBody, tactics.FocusLowerBody:
		targ -= 25
	case tactics.FocusNone, "":
	default:
		zones := att.Opponent.TargetZones
		if len(zones) > 0 {
			matches := 0
			for _, z := range zones {
				if z == att.TargetZone {
					matches++
				}
			}
			targ -= (len(zones) - matches) * 25 / len(zones)
		}
	}

	// Piling onto a crowded melee gets harder for each fighter already in
	// the scrum ahead of you.
	if idx := e.meleeIndex(attacker.ID, attacker.LocationID); idx > 1 {
		num = -25 * idx
	}

	if att.AttackerTactics.Attack == tactics.HandBoth {
		oth += 5
	}

	att.AttackModifier += wep + hld + lght + hlth + brdn + dist + tact + targ + oth + num
	e.logger.Debug("attack modifier",
		zap.String("attacker", attacker.ID),
		zap.Int("wep", wep), zap.Int("hld", hld), zap.Int("lght", lght),
		zap.Int("hlth", hlth), zap.Int("brdn", brdn), zap.Int("dist", dist),
		zap.Int("tact", tact), zap.Int("targ", targ), zap.Int("oth", oth),
		zap.Int("num", num))
}

// defenseModifier totals the situational terms for the defending side.
func (e *Engine) defenseModifier(att *Attack) {
	var wep, wght, dist, brdn, hnd, lght, hlth, tact, prot, oth int
	defender := att.Defender
	dex := defender.Dex

	switch {
	case att.DefenseAction == defenseParry && att.DefenseWeapon != nil:
		limbs := defender.LimbsHolding(att.DefenseWeapon)
		if att.DefenseWeapon.IsShield {
			wep = att.DefenseWeapon.Weight / 5
		} else {
			wep = att.DefenseWeapon.Weight * 2
		}
		wep /= limbs + 2
		if wep > defender.Str {
			wep = -int(math.Pow(float64(wep-defender.Str), 1.3))
		}

		if att.Weapon != nil {
			wght = 2 * (att.DefenseWeapon.Weight - att.Weapon.Weight)
		} else {
			wght = att.DefenseWeapon.Weight / 2
		}
		if wght > 5 {
			wght = 5
		}

		if e.cfg.UseDistance {
			dist = -absInt(e.cfg.Reach + att.DefenseWeapon.Length - att.Distance)
		}

		brdn = -(defender.Burden / 3)

		if len(defender.Holding) > 0 {
			if dex < 14 && defender.Holding[0] != att.DefenseWeapon {
				hnd = dex - 14
			}
			if dex < 16 && len(defender.HeldWeapons()) == 1 {
				hnd += dex - 16
			}
		}
	case att.DefenseAction == defenseDodge:
		brdn = -(defender.Burden / 3)
		if dex < defender.Burden/2 {
			brdn -= dex - defender.Burden/2
		}
		if att.Weapon != nil {
			wght = att.Weapon.Weight / 10
		}
	}

	switch {
	case !att.Attacker.Visible:
		lght = -100
	case !defender.Darkvision():
		lght = lightPenalty(e.world.LightLevel(defender.LocationID))
	}

	hlth = -(25 - defender.HP*25/defender.MaxHP)
	switch gp := defender.GP; {
	case gp < -50:
		hlth += -25
	case gp < 0:
		hlth += gp / 2
	}

	tact = att.DefenderTactics.Attitude.DefenseBias()

	// Stepping in front of someone else's fight is awkward, more so when
	// the blow is headed for a third party.
	if att.Defender != att.Opponent {
		if att.Defender != att.PersonHit {
			if att.DefenseWeapon != nil && att.DefenseWeapon.IsShield {
				prot -= 15
			}
			prot -= 15
		}
		prot -= 15
	}

	if att.DefenderTactics.Response == tactics.ResponseBoth {
		oth += 5
	}
	if defender.CastingSpell {
		oth -= 25
	}

	att.DefenseModifier += wep + wght + dist + brdn + hnd + lght + hlth + tact + prot + oth
	e.logger.Debug("defense modifier",
		zap.String("defender", defender.ID),
		zap.Int("wep", wep), zap.Int("wght", wght), zap.Int("dist", dist),
		zap.Int("brdn", brdn), zap.Int("hnd", hnd), zap.Int("lght", lght),
		zap.Int("hlth", hlth), zap.Int("tact", tact), zap.Int("prot", prot),
		zap.Int("oth", oth))
}

// meleeIndex positions the attacker among all active fighters at its
// location, in a stable order.
func (e *Engine) meleeIndex(attackerID, locationID string) int {
	ids := e.reg.ActiveAttackers()
	sort.Strings(ids)
	idx := 0
	for _, id := range ids {
		ent := e.world.Entity(id)
		if ent == nil || ent.LocationID != locationID {
			continue
		}
		if id == attackerID {
			return idx
		}
		idx++
	}
	return -1
}

// lightPenalty maps the ambient light band to a check penalty. Both extremes
// hurt equally.
func lightPenalty(level int) int {
	switch level {
	case -2, 2:
		return -50
	case -1, 1:
		return -25
	default:
		return 0
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
