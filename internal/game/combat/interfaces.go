// Package combat implements the per-round combat resolution engine: opponent
// and defender selection, attack and defense choice, opposed skill checks
// with audited modifiers, damage against armour, equipment wear, and outcome
// narration. All state transitions for one world are serialized behind the
// engine's step lock.
package combat

import (
	"github.com/ethereal-veil/mud/internal/game/entity"
)

// World is the engine's view of the game world outside combat.
type World interface {
	// Entity resolves an ID to a live entity, nil when unknown.
	Entity(id string) *entity.Entity
	// LocationContents lists the IDs of every entity at the location.
	LocationContents(locationID string) []string
	// LightLevel reports the ambient light band at the location, in
	// [-2, 2]. Zero is normal; the extremes are pitch dark and blinding.
	LightLevel(locationID string) int
	// MoveRandom relocates the entity to a random adjacent location.
	MoveRandom(e *entity.Entity) error
	// Remove permanently deletes an entity from the world (NPC death).
	Remove(id string)
	// Save persists combat-relevant entity state.
	Save(e *entity.Entity) error
}

// Sink delivers narration. Implementations must not block; the engine calls
// these inside its critical section.
type Sink interface {
	Send(entityID, text string)
	SendRoom(locationID, text string, exclude []string)
}

// PKPolicy decides whether attacker may legally engage target. The default
// policy is permissive.
type PKPolicy func(attackerID, targetID string) bool

// AllowAllPK is the default PKPolicy.
func AllowAllPK(string, string) bool { return true }
