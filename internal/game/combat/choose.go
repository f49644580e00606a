package combat

import (
	"math"

	"github.com/ethereal-veil/mud/internal/game/dice"
	"github.com/ethereal-veil/mud/internal/game/entity"
	"github.com/ethereal-veil/mud/internal/game/skills"
	"github.com/ethereal-veil/mud/internal/game/tactics"
)

// chooseOpponent fills att.Opponent from the attacker's active candidates.
// Concentration is sticky; otherwise attitude drives the pick: insane takes
// anyone, aggressive attitudes pick the weakest, cautious ones the toughest.
// When only one candidate remains it becomes the concentration target.
//
// Postcondition: returns false iff no attackable candidate exists.
func (e *Engine) chooseOpponent(att *Attack) bool {
	var candidates []*entity.Entity
	for _, id := range e.reg.ActiveAttackers() {
		if id == att.Attacker.ID {
			continue
		}
		ent := e.world.Entity(id)
		if ent == nil || ent.LocationID != att.Attacker.LocationID || !ent.Attackable() {
			continue
		}
		candidates = append(candidates, ent)
	}
	if len(candidates) == 0 {
		return false
	}

	if conc, ok := e.reg.Concentration(att.Attacker.ID); ok {
		for _, c := range candidates {
			if c.ID == conc {
				att.Opponent = c
				break
			}
		}
	}
	if att.Opponent == nil {
		switch att.AttackerTactics.Attitude {
		case tactics.AttitudeInsane:
			att.Opponent = candidates[dice.Pick(e.src, len(candidates))]
		case tactics.AttitudeDefensive, tactics.AttitudeWimp:
			att.Opponent = maxByHP(candidates)
		default:
			att.Opponent = minByHP(candidates)
		}
	}

	if e.cfg.UseDistance {
		att.Distance = e.reg.Distance(att.Attacker.ID, att.Opponent.ID)
	}
	if len(candidates) == 1 {
		e.reg.SetConcentration(att.Attacker.ID, att.Opponent.ID)
	}
	return true
}

func minByHP(ents []*entity.Entity) *entity.Entity {
	best := ents[0]
	for _, e := range ents[1:] {
		if e.HP < best.HP {
			best = e
		}
	}
	return best
}

func maxByHP(ents []*entity.Entity) *entity.Entity {
	best := ents[0]
	for _, e := range ents[1:] {
		if e.HP > best.HP {
			best = e
		}
	}
	return best
}

// chooseDefender resolves redirection. Eligible protectors each auto-engage
// the attacker and one becomes the person hit; eligible defenders (who must
// be parry-capable) likewise, one becoming the entity that rolls the defense.
// Both default to the opponent.
func (e *Engine) chooseDefender(att *Attack) {
	protectors := e.eligibleGuardians(att, att.Opponent.Protectors, false)
	if len(protectors) > 0 {
		for _, p := range protectors {
			e.reg.EngageAttacker(p, att.Attacker, e.pk)
		}
		att.PersonHit = protectors[dice.Pick(e.src, len(protectors))]
	}

	defenders := e.eligibleGuardians(att, att.Opponent.Defenders, true)
	if len(defenders) > 0 {
		for _, d := range defenders {
			e.reg.EngageAttacker(d, att.Attacker, e.pk)
		}
		att.Defender = defenders[dice.Pick(e.src, len(defenders))]
	}

	if att.PersonHit == nil {
		att.PersonHit = att.Opponent
	}
	if att.Defender == nil {
		att.Defender = att.Opponent
	}
	att.DefenderTactics = att.Defender.Tactics
}

// eligibleGuardians filters a guardian ID list down to entities that are
// present, able to intervene, and legal targets for the attacker.
func (e *Engine) eligibleGuardians(att *Attack, ids []string, needParry bool) []*entity.Entity {
	threshold := e.cfg.AttackCost * 4
	var out []*entity.Entity
	for _, id := range ids {
		g := e.world.Entity(id)
		if g == nil || g.LocationID != att.Attacker.LocationID {
			continue
		}
		if !g.Attackable() || g.CastingSpell || g.GP < 1 {
			continue
		}
		if e.reg.Deficit(g.ID) >= threshold {
			continue
		}
		if needParry && !g.Tactics.Response.CanParry() {
			continue
		}
		if !e.pk(g.ID, att.Attacker.ID) {
			continue
		}
		out = append(out, g)
	}
	return out
}

// chooseAttack picks the weapon, attack form, target zone, and action cost.
//
// Postcondition: returns false when the attacker cannot act this tick
// (incapacitated, over deficit, or no valid attack form).
func (e *Engine) chooseAttack(att *Attack) bool {
	if !canAttack(att.Attacker) {
		return false
	}
	if e.reg.Deficit(att.Attacker.ID) > att.AttackerTactics.Attitude.OffensiveThreshold() {
		return false
	}

	att.Weapon = e.pickAttackWeapon(att)

	baseChance := 75 + att.Attacker.Str + att.Attacker.Dex
	if att.Weapon != nil {
		baseChance -= att.Weapon.Weight / 2
	}
	if baseChance < 25 {
		baseChance = 25
	}

	att.Descriptor = pickDescriptor(e.src, attackOptions(att.Weapon, baseChance))
	if att.Descriptor.Limb == "hands" && att.Attacker.FreeLimbs() == 0 {
		return false
	}
	if att.Descriptor.Skill == "" {
		att.Descriptor.Skill = skills.Melee
	}

	att.TargetZone = e.chooseTargetZone(att)
	att.AttackCost = e.attackCost(att)
	return true
}

// pickAttackWeapon selects among the tactics-preferred hand's weapons. With
// distance tracking on, the weapon whose reach best matches the current
// distance wins; otherwise a random one. Nil means unarmed.
func (e *Engine) pickAttackWeapon(att *Attack) *entity.Weapon {
	weapons := att.Attacker.WeaponsForHand(att.AttackerTactics.Attack)
	switch len(weapons) {
	case 0:
		return nil
	case 1:
		return weapons[0]
	}
	if e.cfg.UseDistance {
		best := weapons[0]
		bestGap := reachGap(e.cfg.Reach, best.Length, att.Distance)
		for _, w := range weapons[1:] {
			if gap := reachGap(e.cfg.Reach, w.Length, att.Distance); gap < bestGap {
				best, bestGap = w, gap
			}
		}
		return best
	}
	return weapons[dice.Pick(e.src, len(weapons))]
}

func reachGap(reach, length, distance int) int {
	gap := reach + length - distance
	if gap < 0 {
		return -gap
	}
	return gap
}

// chooseTargetZone honors an explicit focus zone; otherwise the relative
// height between the combatants biases the pick. A much taller attacker
// skews toward low zone indexes (the head end of the list), a much shorter
// one toward high indexes.
func (e *Engine) chooseTargetZone(att *Attack) string {
	zones := att.Opponent.TargetZones
	if len(zones) == 0 {
		zones = entity.DefaultZones
	}

	switch focus := att.AttackerTactics.FocusZone; focus {
	case tactics.FocusUpperBody:
		// Round the split up so a one-zone target still yields a pick.
		upper := zones[:(len(zones)+1)/2]
		return upper[dice.Pick(e.src, len(upper))]
	case tactics.FocusLowerBody:
		lower := zones[len(zones)/2:]
		return lower[dice.Pick(e.src, len(lower))]
	case tactics.FocusNone, "":
	default:
		return focus
	}

	oppHeight := att.Opponent.Height
	if oppHeight <= 0 {
		oppHeight = 1
	}
	ratio := float64(att.Attacker.Height) / float64(oppHeight)
	switch att.Descriptor.Limb {
	case "hands":
		ratio *= 2
	case "feet":
		ratio /= 2
	}

	switch {
	case ratio > 1.5:
		return zones[dice.Between(e.src, 0, dice.Between(e.src, 0, len(zones)-1))]
	case ratio < 0.75:
		idx := dice.Between(e.src, 0, len(zones)+9)
		if idx > len(zones)-1 {
			idx = len(zones) - 1
		}
		return zones[idx]
	default:
		return zones[dice.Pick(e.src, len(zones))]
	}
}

// attackCost computes the action deficit this attack will add: base cost
// plus a weapon-weight term split across gripping limbs, less a dual-wield
// rebate and a skill discount, clamped to [base/5, base*2].
func (e *Engine) attackCost(att *Attack) int {
	base := e.cfg.AttackCost
	cost := base
	if att.Weapon != nil {
		limbs := att.Attacker.LimbsHolding(att.Weapon)
		cost += int(math.Sqrt(float64(att.Weapon.Weight))*3) / (limbs + 1)
	}
	if att.Attacker.DualWielding() {
		cost -= base / 4
	}
	cost -= (e.oracle.Rating(att.Attacker.ID, att.Descriptor.Skill) +
		e.oracle.Rating(att.Attacker.ID, skills.Tactics)) / 50
	return clampInt(cost, base/5, base*2)
}

// chooseDefense mirrors chooseAttack for the defender. Over-deficit
// defenders and redirected dodge-only defenders do not defend at all.
func (e *Engine) chooseDefense(att *Attack) {
	att.DefenseAction = defenseNone
	att.DefenseSkill = skills.Dodge
	att.DefenseWeapon = nil
	att.UnarmedParry = false

	if !canDefend(att.Defender) {
		return
	}
	if e.reg.Deficit(att.Defender.ID) > att.DefenderTactics.Attitude.DefensiveThreshold() {
		return
	}

	response := att.DefenderTactics.Response
	if att.Defender != att.Opponent {
		// A redirected defender intervenes blade-first or not at all.
		if response == tactics.ResponseDodge {
			return
		}
		response = tactics.ResponseParry
	} else if response == tactics.ResponseNeutral || response == "" {
		if dice.Pick(e.src, 2) == 0 {
			response = tactics.ResponseParry
		} else {
			response = tactics.ResponseDodge
		}
	} else if response == tactics.ResponseBoth {
		if dice.Pick(e.src, 2) == 0 {
			response = tactics.ResponseParry
		} else {
			response = tactics.ResponseDodge
		}
	}

	if response == tactics.ResponseParry {
		e.chooseParry(att)
		return
	}
	att.DefenseAction = defenseDodge
	att.DefenseSkill = skills.Dodge
	att.DefenseCost = e.defenseCost(att)
}

// chooseParry picks the parry instrument: the preferred hand's weapon, any
// held weapon, or bare limbs when ParryUnarmed allows. Failing all three the
// defense stays "none".
func (e *Engine) chooseParry(att *Attack) {
	weapons := att.Defender.WeaponsForHand(att.DefenderTactics.Parry)
	if shield := att.Defender.HeldShield(); shield != nil {
		weapons = append(weapons, shield)
	}

	switch {
	case len(weapons) > 0:
		att.DefenseAction = defenseParry
		att.DefenseSkill = skills.Parry
		att.DefenseWeapon = weapons[dice.Pick(e.src, len(weapons))]
	case att.DefenderTactics.ParryUnarmed:
		att.DefenseAction = defenseParry
		att.DefenseSkill = skills.Unarmed
		att.UnarmedParry = true
	default:
		return
	}
	att.DefenseCost = e.defenseCost(att)
}

// defenseCost computes the deficit a defense adds: base cost less a skill
// discount, plus an instrument term (shields are cheap per unit weight,
// weapons heavier, dodging scales with burden), clamped like attack cost.
func (e *Engine) defenseCost(att *Attack) int {
	base := e.cfg.DefenseCost
	cost := base
	cost -= (e.oracle.Rating(att.Defender.ID, att.DefenseSkill) +
		e.oracle.Rating(att.Defender.ID, skills.Tactics)) / 50

	switch {
	case att.DefenseWeapon != nil:
		if att.DefenseWeapon.IsShield {
			cost += int(math.Sqrt(float64(att.DefenseWeapon.Weight) / 4))
		} else {
			limbs := att.Defender.LimbsHolding(att.DefenseWeapon)
			cost += int(math.Sqrt(float64(att.DefenseWeapon.Weight)*2)) / (limbs + 1)
		}
		if att.Defender.DualWielding() {
			cost -= base / 4
		}
	case att.DefenseAction == defenseDodge:
		cost += int(math.Sqrt(float64(att.Defender.Burden)))
	}
	return clampInt(cost, base/5, base*2)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
