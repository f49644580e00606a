package combat

import (
	"sync"
	"time"

	"github.com/ethereal-veil/mud/internal/config"
	"github.com/ethereal-veil/mud/internal/game/entity"
)

// Registry is the single source of truth for who is fighting whom, who is
// hunting a fled target, pending surrender offers, pairwise distances, action
// deficits, and concentration targets.
//
// Every read-modify-write is serialized by the registry's own mutex; callers
// that need multi-step atomicity (the resolution engine) additionally hold
// the engine step lock.
type Registry struct {
	mu  sync.Mutex
	cfg config.CombatConfig

	// combatants maps each entity to the opponent it intends to act
	// against. Asymmetric entries are valid.
	combatants map[string]string
	// hunting records when an entity lost sight of its target.
	hunting map[string]time.Time
	// surrenderTo[victim] lists attackers the victim has offered
	// surrender to; surrenderFrom[attacker] lists victims awaiting the
	// attacker's accept/reject.
	surrenderTo   map[string][]string
	surrenderFrom map[string][]string

	distances     map[pairKey]int
	deficits      map[string]int
	concentration map[string]string

	now func() time.Time
}

// pairKey identifies an unordered entity pair.
type pairKey struct{ lo, hi string }

func newPairKey(a, b string) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{lo: a, hi: b}
}

// NewRegistry returns an empty registry using cfg's deficit and distance
// bounds.
func NewRegistry(cfg config.CombatConfig) *Registry {
	return &Registry{
		cfg:           cfg,
		combatants:    make(map[string]string),
		hunting:       make(map[string]time.Time),
		surrenderTo:   make(map[string][]string),
		surrenderFrom: make(map[string][]string),
		distances:     make(map[pairKey]int),
		deficits:      make(map[string]int),
		concentration: make(map[string]string),
		now:           time.Now,
	}
}

// EngageAttacker records attacker's intent to fight opponent.
//
// Fails without mutation when opponent is the attacker itself, not
// attackable, or blocked by pk. On a new engagement the pairwise distance
// resets and the attacker receives an initiative deficit of one third of the
// deficit range. Always records combatants[attacker] = opponent on success.
//
// Postcondition: on true, IsActivelyFighting(attacker.ID, opponent.ID).
func (r *Registry) EngageAttacker(attacker, opponent *entity.Entity, pk PKPolicy) bool {
	if opponent == nil || attacker.ID == opponent.ID || !opponent.Attackable() {
		return false
	}
	if pk != nil && !pk(attacker.ID, opponent.ID) {
		return false
	}

	// An entity fighting someone cannot simultaneously be that someone's
	// passive guard.
	attacker.RemoveGuardian(opponent.ID)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.combatants[attacker.ID] != opponent.ID {
		if r.cfg.UseDistance {
			r.distances[newPairKey(attacker.ID, opponent.ID)] = r.cfg.InitialDistance
		}
		r.deficits[attacker.ID] = (r.cfg.MaxDeficit - r.cfg.MinDeficit) / 3
	}
	r.combatants[attacker.ID] = opponent.ID
	// Being attacked drags the opponent into the fight unless it is already
	// busy with someone.
	if _, ok := r.combatants[opponent.ID]; !ok {
		r.combatants[opponent.ID] = attacker.ID
	}
	return true
}

// Disengage removes both directions of the pair from combat and hunting, and
// prunes surrender records referencing either party. Idempotent.
func (r *Registry) Disengage(a, b string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.combatants[a] == b {
		delete(r.combatants, a)
	}
	if r.combatants[b] == a {
		delete(r.combatants, b)
	}
	delete(r.hunting, a)
	delete(r.hunting, b)
	r.surrenderTo[a] = removeID(r.surrenderTo[a], b)
	r.surrenderTo[b] = removeID(r.surrenderTo[b], a)
	r.surrenderFrom[a] = removeID(r.surrenderFrom[a], b)
	r.surrenderFrom[b] = removeID(r.surrenderFrom[b], a)
	if r.concentration[a] == b {
		delete(r.concentration, a)
	}
	if r.concentration[b] == a {
		delete(r.concentration, b)
	}
	delete(r.distances, newPairKey(a, b))
}

// IsActivelyFighting reports whether a's registered opponent is b.
func (r *Registry) IsActivelyFighting(a, b string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.combatants[a] == b
}

// Fighting returns a's registered opponent, if any.
func (r *Registry) Fighting(a string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	opp, ok := r.combatants[a]
	return opp, ok
}

// ActiveAttackers returns every entity with a registered opponent.
func (r *Registry) ActiveAttackers() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]string, 0, len(r.combatants))
	for id := range r.combatants {
		ids = append(ids, id)
	}
	return ids
}

// AttackersOf returns every entity currently registered against target.
func (r *Registry) AttackersOf(target string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []string
	for id, opp := range r.combatants {
		if opp == target {
			ids = append(ids, id)
		}
	}
	return ids
}

// Deficit returns the entity's current action deficit.
func (r *Registry) Deficit(id string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.deficits[id]
}

// AddDeficit adjusts the entity's action deficit by delta, clamped to the
// configured bounds.
//
// Postcondition: MinDeficit <= Deficit(id) <= MaxDeficit.
func (r *Registry) AddDeficit(id string, delta int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d := r.deficits[id] + delta
	if d > r.cfg.MaxDeficit {
		d = r.cfg.MaxDeficit
	}
	if d < r.cfg.MinDeficit {
		d = r.cfg.MinDeficit
	}
	r.deficits[id] = d
}

// DecayDeficits moves every tracked deficit toward the configured minimum by
// amount. Called once per scheduler tick.
func (r *Registry) DecayDeficits(amount int) {
	if amount <= 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, d := range r.deficits {
		d -= amount
		if d < r.cfg.MinDeficit {
			d = r.cfg.MinDeficit
		}
		r.deficits[id] = d
	}
}

// Distance returns the current pairwise distance, or the configured initial
// distance for an untracked pair.
func (r *Registry) Distance(a, b string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if d, ok := r.distances[newPairKey(a, b)]; ok {
		return d
	}
	return r.cfg.InitialDistance
}

// CloseDistance decays the pairwise distance by one step, clamped at zero.
func (r *Registry) CloseDistance(a, b string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := newPairKey(a, b)
	d, ok := r.distances[key]
	if !ok {
		d = r.cfg.InitialDistance
	}
	if d > 0 {
		d--
	}
	r.distances[key] = d
}

// Concentration returns the entity's sticky target, if any.
func (r *Registry) Concentration(id string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.concentration[id]
	return c, ok
}

// SetConcentration pins the entity's target selection.
func (r *Registry) SetConcentration(id, target string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.concentration[id] = target
}

// StartHunting marks the entity as hunting a target it lost contact with.
func (r *Registry) StartHunting(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hunting[id] = r.now()
}

// IsHunting reports whether the entity has an unexpired hunt record.
func (r *Registry) IsHunting(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.hunting[id]
	return ok
}

// PruneHunting drops hunt records older than maxAge. Called per tick.
func (r *Registry) PruneHunting(maxAge time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cutoff := r.now().Add(-maxAge)
	for id, started := range r.hunting {
		if started.Before(cutoff) {
			delete(r.hunting, id)
		}
	}
}

// recordSurrenderOffer appends attacker to the victim's offer list.
func (r *Registry) recordSurrenderOffer(victim, attacker string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !containsID(r.surrenderTo[victim], attacker) {
		r.surrenderTo[victim] = append(r.surrenderTo[victim], attacker)
	}
}

// recordSurrenderPending marks the attacker as owing an accept/reject for
// the victim's offer.
func (r *Registry) recordSurrenderPending(attacker, victim string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !containsID(r.surrenderFrom[attacker], victim) {
		r.surrenderFrom[attacker] = append(r.surrenderFrom[attacker], victim)
	}
}

// clearSurrenderOffer removes the victim's offer toward attacker and the
// attacker's pending record.
func (r *Registry) clearSurrenderOffer(victim, attacker string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.surrenderTo[victim] = removeID(r.surrenderTo[victim], attacker)
	r.surrenderFrom[attacker] = removeID(r.surrenderFrom[attacker], victim)
}

// hasSurrenderPending reports whether the attacker owes an answer to victim.
func (r *Registry) hasSurrenderPending(attacker, victim string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return containsID(r.surrenderFrom[attacker], victim)
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
