package combat

import (
	"fmt"

	"github.com/ethereal-veil/mud/internal/game/messages"
)

// emitMessages narrates the exchange to its five audiences: attacker, the
// entity struck, the room, and (when redirection split them off) the defender
// and the intercepter. A miss uses the lowest tier of the same list.
func (e *Engine) emitMessages(att *Attack) {
	kind := messageKind(att)
	damageType := att.Descriptor.DamageType

	damage := 0
	if att.Outcome == OutcomeOffensiveWin {
		damage = att.Damage
	}
	set := e.msgs.Select(damageType, kind, damage)

	var attackerLine, victimLine, observerLine string
	if att.Outcome == OutcomeOffensiveWin && att.PersonHit != att.Opponent {
		// The blow landed on the one who stepped in front of it.
		attackerLine = fmt.Sprintf("You almost hit %s but %s protects them!",
			att.Opponent.Name, att.PersonHit.Name)
		victimLine = fmt.Sprintf("%s almost hits you but %s protects you!",
			att.Attacker.Name, att.PersonHit.Name)
		observerLine = fmt.Sprintf("%s almost hits %s but %s protects them!",
			att.Attacker.Name, att.Opponent.Name, att.PersonHit.Name)
	} else {
		rendered := set.Render(att.Attacker.Name, att.PersonHit.Name, att.TargetZone)
		attackerLine = rendered.Attacker
		victimLine = rendered.Victim
		observerLine = rendered.Observer
	}

	if clause := e.absorptionClause(att); clause != "" {
		attackerLine += clause
		victimLine += clause
		observerLine += clause
	}

	e.sink.Send(att.Attacker.ID, attackerLine)
	e.sink.Send(att.Opponent.ID, victimLine)
	e.sink.SendRoom(att.Attacker.LocationID, observerLine, []string{
		att.Attacker.ID, att.Opponent.ID, att.Defender.ID, att.PersonHit.ID,
	})
	if att.Defender != att.Opponent {
		e.sink.Send(att.Defender.ID, observerLine)
	}
	if att.PersonHit != att.Opponent {
		if att.Outcome == OutcomeOffensiveWin {
			e.sink.Send(att.PersonHit.ID, fmt.Sprintf(
				"You leap in and protect %s from %s!", att.Opponent.Name, att.Attacker.Name))
		} else {
			e.sink.Send(att.PersonHit.ID, observerLine)
		}
	}
}

// absorptionClause renders the armour clause appended to every audience's
// line when the soak was worth mentioning.
func (e *Engine) absorptionClause(att *Attack) string {
	if att.Outcome != OutcomeOffensiveWin || att.StoppedBy == nil {
		return ""
	}
	portion := messages.AbsorptionClause(att.Absorbed, att.Damage)
	if portion == "" {
		return ""
	}
	return fmt.Sprintf(" but %s absorbs %s the blow", att.StoppedBy.Name, portion)
}

// messageKind picks the message-list specialization: weapon kind for armed
// blows, the striking limb for unarmed ones.
func messageKind(att *Attack) string {
	if att.Weapon != nil {
		return string(att.Weapon.Kind)
	}
	return att.Descriptor.Limb
}
