package combat

import (
	"math"

	"go.uber.org/zap"

	"github.com/ethereal-veil/mud/internal/game/dice"
	"github.com/ethereal-veil/mud/internal/game/specials"
)

// ResolveRound runs one full resolution step for the attacker: selection,
// opposed check, damage, armour, narration, wear, and costs. Called by the
// scheduler once per tick per active fighter and by the attack command for
// the opening blow.
func (e *Engine) ResolveRound(attackerID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.resolveRound(attackerID)
}

func (e *Engine) resolveRound(attackerID string) {
	attacker := e.world.Entity(attackerID)
	if attacker == nil {
		if opp, ok := e.reg.Fighting(attackerID); ok {
			e.reg.Disengage(attackerID, opp)
		}
		return
	}

	att := &Attack{
		Attacker:        attacker,
		AttackerTactics: attacker.Tactics,
	}

	if !e.chooseOpponent(att) {
		// The target slipped away. Keep the grudge alive for a while.
		if _, ok := e.reg.Fighting(attackerID); ok && !e.reg.IsHunting(attackerID) {
			e.reg.StartHunting(attackerID)
		}
		return
	}
	if e.fire(attacker.ID, specials.EventOpponentSelection, att, nil) == specials.ResultAbort {
		return
	}

	e.chooseDefender(att)
	if e.fire(att.Opponent.ID, specials.EventDefenderSelection, att, nil) == specials.ResultAbort {
		return
	}

	if !e.chooseAttack(att) {
		return
	}
	if e.fire(attacker.ID, specials.EventAttackSelection, att, nil) == specials.ResultAbort {
		return
	}

	// The opposed check, rerun at most once when a beaten intercepter hands
	// the exchange back to the true opponent.
	for {
		e.chooseDefense(att)
		if e.fire(att.Defender.ID, specials.EventDefenseSelection, att, nil) == specials.ResultAbort {
			return
		}

		att.AttackModifier = 0
		att.DefenseModifier = 0
		e.attackModifier(att)
		if e.fire(attacker.ID, specials.EventAttackModifier, att, &att.AttackModifier) == specials.ResultAbort {
			return
		}
		if att.DefenseAction == defenseNone {
			att.DefenseModifier -= 1000
		} else {
			e.defenseModifier(att)
			if e.fire(att.Defender.ID, specials.EventDefenseModifier, att, &att.DefenseModifier) == specials.ResultAbort {
				return
			}
		}

		e.opposedRoll(att)

		if att.Outcome == OutcomeOffensiveWin && att.Defender != att.Opponent && !att.Repeat {
			// The intercepter failed: it pays for the attempt and the
			// opponent must answer the blow personally.
			e.reg.AddDeficit(att.Defender.ID, att.DefenseCost)
			att.Defender.GP -= att.DefenderTactics.Attitude.InterceptStamina()
			att.Defender = att.Opponent
			att.DefenderTactics = att.Opponent.Tactics
			att.Repeat = true
			continue
		}
		break
	}

	e.calcDamage(att)
	if att.Damage > 0 {
		if e.fire(attacker.ID, specials.EventWeaponDamage, att, nil) == specials.ResultAbort {
			return
		}
	}

	e.armourProtection(att)

	e.emitMessages(att)

	var fallen bool
	applied := att.Damage - att.Absorbed
	if applied > 0 {
		fallen = att.PersonHit.TakeDamage(applied)
		if err := e.world.Save(att.PersonHit); err != nil {
			e.logger.Error("saving damaged entity", zap.String("entity", att.PersonHit.ID), zap.Error(err))
		}
	}

	e.applyWear(att, fallen)

	if e.fire(attacker.ID, specials.EventAfterAttack, att, nil) == specials.ResultAbort {
		return
	}

	if fallen {
		e.handleDeath(att.PersonHit, att.Attacker)
	}

	e.reg.AddDeficit(att.Attacker.ID, att.AttackCost)
	if att.Defender != att.PersonHit || !fallen {
		e.reg.AddDeficit(att.Defender.ID, att.DefenseCost)
	}

	if e.cfg.UseDistance {
		e.reg.CloseDistance(att.Attacker.ID, att.Opponent.ID)
	}
}

// fire runs the subject's specials for one event, wiring the adjustable value
// for the events that have one.
func (e *Engine) fire(subjectID string, event specials.Event, att *Attack, modifier *int) specials.Result {
	if e.specials == nil {
		return specials.ResultContinue
	}
	ctx := &specials.Context{
		Event:      event,
		AttackerID: att.Attacker.ID,
		Zone:       att.TargetZone,
	}
	if att.Opponent != nil {
		ctx.OpponentID = att.Opponent.ID
	}
	if att.Defender != nil {
		ctx.DefenderID = att.Defender.ID
	}
	if att.PersonHit != nil {
		ctx.PersonHitID = att.PersonHit.ID
	}
	switch event {
	case specials.EventAttackModifier, specials.EventDefenseModifier:
		ctx.Modifier = modifier
	case specials.EventWeaponDamage, specials.EventAfterAttack:
		ctx.Damage = &att.Damage
	case specials.EventArmourProtection:
		ctx.Absorbed = &att.Absorbed
	}
	return e.specials.Fire(subjectID, ctx)
}

// opposedRoll compresses the combined modifier, rolls the opposed check, and
// grades the result.
//
// Postcondition: att.Outcome is OffensiveWin or DefensiveWin and att.Degree
// is set.
func (e *Engine) opposedRoll(att *Attack) {
	mod := att.AttackModifier - att.DefenseModifier + e.cfg.BalanceMod
	knee := e.cfg.CompressionKnee
	if mod > knee {
		mod = int(math.Sqrt(float64(mod * knee)))
	} else if mod < -knee {
		mod = -int(math.Sqrt(float64(-mod * knee)))
	}

	atkSkill := e.oracle.Rating(att.Attacker.ID, att.Descriptor.Skill)
	defSkill := e.oracle.Rating(att.Defender.ID, att.DefenseSkill)
	chance := 50 + (atkSkill - defSkill) + mod
	chance = clampInt(chance, 5, 95)

	roll := dice.Percent(e.src)
	if roll < chance {
		att.Outcome = OutcomeOffensiveWin
		att.Degree = e.degreeFor(float64(roll) / float64(chance))
	} else {
		att.Outcome = OutcomeDefensiveWin
		att.Degree = e.degreeFor(1 - float64(roll-chance)/float64(100-chance))
	}

	e.logger.Debug("opposed check",
		zap.String("attacker", att.Attacker.ID),
		zap.String("defender", att.Defender.ID),
		zap.Int("chance", chance),
		zap.Int("roll", roll),
		zap.Int("modifier", mod),
		zap.String("degree", att.Degree.String()),
		zap.Bool("offensive_win", att.Outcome == OutcomeOffensiveWin))
}

// degreeFor buckets the winner's margin. frac is how close the roll came to
// the winning extreme: near zero is a decisive win, near one a scrape.
func (e *Engine) degreeFor(frac float64) Degree {
	switch {
	case frac < e.cfg.CritFraction:
		return DegreeCritical
	case frac < e.cfg.ExceptionalFraction:
		return DegreeExceptional
	case frac < e.cfg.NormalFraction:
		return DegreeNormal
	default:
		return DegreeMarginal
	}
}

// calcDamage computes the pre-armour damage. Weapon blows scale with the
// wielder's skill, capped at triple the weapon's effective damage. The win
// degree then multiplies the result; a defensive win zeroes it and rebates or
// inflates the defense cost instead.
func (e *Engine) calcDamage(att *Attack) {
	damage := att.Descriptor.BaseDamage
	if att.Weapon != nil {
		scaled := int(math.Sqrt(float64(damage * e.oracle.Rating(att.Attacker.ID, att.Descriptor.Skill))))
		if scaled < 3*damage {
			damage = scaled
		} else {
			damage = 3 * att.Descriptor.BaseDamage
		}
	}
	att.RawDamage = damage

	if att.Outcome == OutcomeOffensiveWin {
		switch att.Degree {
		case DegreeCritical:
			damage *= 2
		case DegreeExceptional:
			damage = damage * 3 / 2
		case DegreeMarginal:
			damage /= 2
		}
		att.Damage = damage
		return
	}

	switch att.Degree {
	case DegreeCritical:
		att.DefenseCost = 0
	case DegreeExceptional:
		att.DefenseCost /= 2
	case DegreeMarginal:
		att.DefenseCost *= 2
	}
	att.Damage = 0
}

// armourProtection subtracts what the struck zone's armour soaks.
//
// Postcondition: 0 <= att.Absorbed <= att.Damage.
func (e *Engine) armourProtection(att *Attack) {
	if att.Damage <= 0 || att.Outcome != OutcomeOffensiveWin {
		return
	}
	piece := att.PersonHit.ArmourAt(att.TargetZone)
	if piece == nil {
		return
	}
	absorbed := piece.EffectiveAC(att.Descriptor.DamageType, att.TargetZone)
	if absorbed > att.Damage {
		absorbed = att.Damage
	}
	att.Absorbed = absorbed
	att.StoppedBy = piece
	e.fire(att.PersonHit.ID, specials.EventArmourProtection, att, nil)
	if att.Absorbed < 0 {
		att.Absorbed = 0
	}
	if att.Absorbed > att.Damage {
		att.Absorbed = att.Damage
	}
}

// applyWear degrades the equipment involved in the exchange. Decisive blows
// wear gear less than grinding marginal ones. A dead loser's side is left
// alone.
func (e *Engine) applyWear(att *Attack, fallen bool) {
	div := att.Degree.wearDivisor()

	if att.Outcome == OutcomeOffensiveWin {
		wear := att.Absorbed / div
		if wear > 0 {
			if att.Weapon == nil {
				// Bare knuckles against armour hurt the attacker a little.
				chip := wear / 10
				if chip > 0 && att.Attacker.HP > chip {
					att.Attacker.HP -= chip
				}
			} else {
				att.Weapon.Degrade(1 + e.src.Intn(maxInt(1, wear/10)))
			}
		}
		if !fallen && att.StoppedBy != nil && att.Absorbed > 0 {
			att.StoppedBy.Degrade(1 + e.src.Intn(maxInt(1, att.Absorbed/5)))
		}
		return
	}

	if att.DefenseAction != defenseParry || att.RawDamage <= 0 {
		return
	}
	wear := att.RawDamage / div
	if wear <= 0 {
		return
	}
	if att.DefenseWeapon != nil {
		att.DefenseWeapon.Degrade(1 + e.src.Intn(maxInt(1, wear/10)))
	} else if att.UnarmedParry {
		chip := wear / 10
		if chip > 0 && att.Defender.HP > chip {
			att.Defender.HP -= chip
		}
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
