package combat

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/ethereal-veil/mud/internal/game/entity"
	"github.com/ethereal-veil/mud/internal/game/tactics"
)

// Flee breaks off the entity's current fight and bolts for a random exit.
// The disengagement holds even when no exit can be found.
//
// Postcondition: on true, the entity has no registered opponent.
func (e *Engine) Flee(entityID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	ent := e.world.Entity(entityID)
	if ent == nil {
		return false
	}
	opp, ok := e.reg.Fighting(entityID)
	if !ok {
		e.sink.Send(entityID, "You are not fighting anyone.")
		return false
	}

	e.reg.Disengage(entityID, opp)
	e.sink.Send(entityID, "You flee from combat!")
	if opponent := e.world.Entity(opp); opponent != nil {
		e.sink.Send(opp, fmt.Sprintf("%s flees from combat!", ent.Name))
		e.reg.StartHunting(opp)
	}
	if err := e.world.MoveRandom(ent); err != nil {
		e.sink.Send(entityID, "You find nowhere to run!")
		e.logger.Debug("flee found no exit", zap.String("entity", entityID), zap.Error(err))
	}
	return true
}

// Surrender offers the entity's surrender. With an empty targetID the offer
// goes to the current opponent; otherwise to the named entity, which must be
// engaged with the victim on either side. The receiver's mercy setting
// decides: always accepts on the spot, never refuses, and ask defers to the
// receiver (NPCs asked for mercy grant it).
func (e *Engine) Surrender(entityID, targetID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	victim := e.world.Entity(entityID)
	if victim == nil {
		return false
	}

	var attacker *entity.Entity
	if targetID == "" {
		oppID, ok := e.reg.Fighting(entityID)
		if !ok {
			e.sink.Send(entityID, "You are not fighting anyone.")
			return false
		}
		attacker = e.world.Entity(oppID)
		if attacker == nil {
			e.reg.Disengage(entityID, oppID)
			return false
		}
	} else {
		attacker = e.world.Entity(targetID)
		if attacker == nil {
			return false
		}
		if !e.reg.IsActivelyFighting(targetID, entityID) &&
			!e.reg.IsActivelyFighting(entityID, targetID) {
			e.sink.Send(entityID, fmt.Sprintf("%s is not fighting you.", attacker.Name))
			return false
		}
	}

	e.reg.recordSurrenderOffer(victim.ID, attacker.ID)
	e.sink.Send(victim.ID, fmt.Sprintf("You surrender to %s.", attacker.Name))

	switch attacker.Tactics.Mercy {
	case tactics.MercyAlways:
		e.acceptSurrender(victim, attacker)
	case tactics.MercyNever:
		e.refuseSurrender(victim, attacker)
	default:
		if attacker.Kind == entity.KindPlayer {
			e.reg.recordSurrenderPending(attacker.ID, victim.ID)
			e.sink.Send(attacker.ID, fmt.Sprintf(
				"%s has surrendered to you. Use 'accept %s' or 'reject %s'.",
				victim.Name, victim.Name, victim.Name))
		} else {
			e.acceptSurrender(victim, attacker)
		}
	}
	return true
}

// AcceptSurrender resolves a pending offer in the victim's favor.
//
// Postcondition: on true, the pair is fully disengaged.
func (e *Engine) AcceptSurrender(attackerID, victimID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	attacker := e.world.Entity(attackerID)
	victim := e.world.Entity(victimID)
	if attacker == nil || victim == nil {
		return false
	}
	if !e.reg.hasSurrenderPending(attackerID, victimID) {
		e.sink.Send(attackerID, fmt.Sprintf("%s has not surrendered to you.", victim.Name))
		return false
	}
	e.acceptSurrender(victim, attacker)
	return true
}

// RejectSurrender resolves a pending offer against the victim; the fight
// continues.
func (e *Engine) RejectSurrender(attackerID, victimID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	attacker := e.world.Entity(attackerID)
	victim := e.world.Entity(victimID)
	if attacker == nil || victim == nil {
		return false
	}
	if !e.reg.hasSurrenderPending(attackerID, victimID) {
		e.sink.Send(attackerID, fmt.Sprintf("%s has not surrendered to you.", victim.Name))
		return false
	}
	e.refuseSurrender(victim, attacker)
	return true
}

func (e *Engine) acceptSurrender(victim, attacker *entity.Entity) {
	e.reg.clearSurrenderOffer(victim.ID, attacker.ID)
	e.sink.Send(victim.ID, fmt.Sprintf("%s accepts your surrender.", attacker.Name))
	e.sink.Send(attacker.ID, fmt.Sprintf("You accept %s's surrender.", victim.Name))
	e.reg.Disengage(victim.ID, attacker.ID)
}

func (e *Engine) refuseSurrender(victim, attacker *entity.Entity) {
	e.reg.clearSurrenderOffer(victim.ID, attacker.ID)
	e.sink.Send(victim.ID, fmt.Sprintf("%s refuses your surrender.", attacker.Name))
	e.sink.Send(attacker.ID, fmt.Sprintf("You refuse %s's surrender.", victim.Name))
}
