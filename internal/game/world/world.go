// Package world provides an in-memory game world: locations with exits and
// light levels, the entities in them, and persistence of entity snapshots.
package world

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/ethereal-veil/mud/internal/game/dice"
	"github.com/ethereal-veil/mud/internal/game/entity"
)

// Location is a room entities can occupy.
type Location struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	// Light is the ambient light band in [-2, 2]. Zero is normal daylight.
	Light int `yaml:"light"`
	// Exits lists the IDs of adjacent locations.
	Exits []string `yaml:"exits"`
}

// Store persists entity snapshots. A nil Store keeps the world purely
// in-memory.
type Store interface {
	Upsert(ctx context.Context, e *entity.Entity) error
	Delete(ctx context.Context, id string) error
}

// World tracks locations and the entities in them.
type World struct {
	mu        sync.RWMutex
	locations map[string]*Location
	entities  map[string]*entity.Entity
	store     Store
	src       dice.Source
	logger    *zap.Logger
}

// New creates an empty World.
//
// Precondition: src and logger must be non-nil; store may be nil.
func New(store Store, src dice.Source, logger *zap.Logger) *World {
	return &World{
		locations: make(map[string]*Location),
		entities:  make(map[string]*entity.Entity),
		store:     store,
		src:       src,
		logger:    logger,
	}
}

// AddLocation registers a location, replacing any previous one with the
// same ID.
func (w *World) AddLocation(loc *Location) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.locations[loc.ID] = loc
}

// Location returns a registered location, nil when unknown.
func (w *World) Location(id string) *Location {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.locations[id]
}

// Spawn places an entity into the world at its current LocationID.
//
// Precondition: e.ID must be unique within the world.
func (w *World) Spawn(e *entity.Entity) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, exists := w.entities[e.ID]; exists {
		return fmt.Errorf("entity %s already in world", e.ID)
	}
	w.entities[e.ID] = e
	return nil
}

// Entity resolves an ID to a live entity, nil when unknown.
func (w *World) Entity(id string) *entity.Entity {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.entities[id]
}

// LocationContents lists the IDs of every entity at the location.
func (w *World) LocationContents(locationID string) []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	var ids []string
	for id, e := range w.entities {
		if e.LocationID == locationID {
			ids = append(ids, id)
		}
	}
	return ids
}

// LightLevel reports the ambient light band at a location. Unknown locations
// count as normally lit.
func (w *World) LightLevel(locationID string) int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if loc, ok := w.locations[locationID]; ok {
		return loc.Light
	}
	return 0
}

// Move relocates an entity to the given location.
//
// Precondition: the destination must be a registered location.
func (w *World) Move(e *entity.Entity, locationID string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.locations[locationID]; !ok {
		return fmt.Errorf("unknown location %q", locationID)
	}
	e.LocationID = locationID
	return nil
}

// MoveRandom relocates the entity through a random exit of its current
// location.
//
// Postcondition: returns an error when the location has no exits; the entity
// does not move in that case.
func (w *World) MoveRandom(e *entity.Entity) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	loc, ok := w.locations[e.LocationID]
	if !ok || len(loc.Exits) == 0 {
		return fmt.Errorf("no exit from %q", e.LocationID)
	}
	e.LocationID = loc.Exits[dice.Pick(w.src, len(loc.Exits))]
	return nil
}

// Remove permanently deletes an entity from the world and, when a store is
// configured, from persistence.
func (w *World) Remove(id string) {
	w.mu.Lock()
	delete(w.entities, id)
	w.mu.Unlock()

	if w.store == nil {
		return
	}
	if err := w.store.Delete(context.Background(), id); err != nil {
		w.logger.Warn("removing stored entity", zap.String("entity", id), zap.Error(err))
	}
}

// Save persists the entity's combat snapshot. A world without a store
// accepts saves silently.
func (w *World) Save(e *entity.Entity) error {
	if w.store == nil {
		return nil
	}
	if err := w.store.Upsert(context.Background(), e); err != nil {
		return fmt.Errorf("saving entity %s: %w", e.ID, err)
	}
	return nil
}
