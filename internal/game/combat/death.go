package combat

import (
	"go.uber.org/zap"

	"github.com/ethereal-veil/mud/internal/game/entity"
)

// handleDeath finalizes a kill. Players wake at the respawn room with a
// fraction of their health; NPCs leave the world. Either way the pair is
// disengaged exactly once.
func (e *Engine) handleDeath(fallen, killer *entity.Entity) {
	e.sink.Send(fallen.ID, "You have been defeated!")
	e.logger.Info("combatant defeated",
		zap.String("fallen", fallen.ID),
		zap.String("killer", killer.ID),
		zap.String("kind", string(fallen.Kind)))

	if fallen.Kind == entity.KindPlayer {
		fallen.HP = int(e.cfg.RespawnHPFraction * float64(fallen.MaxHP))
		if fallen.HP < 1 {
			fallen.HP = 1
		}
		if fallen.RespawnID != "" {
			fallen.LocationID = fallen.RespawnID
		} else {
			fallen.LocationID = e.cfg.RespawnLocation
		}
		if err := e.world.Save(fallen); err != nil {
			e.logger.Error("saving respawned player", zap.String("entity", fallen.ID), zap.Error(err))
		}
		e.sink.Send(fallen.ID, "You awaken in the Ethereal Veil...")
	} else {
		fallen.Dead = true
		e.world.Remove(fallen.ID)
	}

	e.reg.Disengage(fallen.ID, killer.ID)
}
