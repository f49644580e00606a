// Package specials implements attachable combat hooks. A special subscribes
// to one or more resolution events and can adjust numbers, short-circuit the
// round, or remove itself once spent.
package specials

import (
	"sync"
)

// Event is a bitmask of resolution pipeline points a special can subscribe to.
type Event uint16

const (
	EventOpponentSelection Event = 1 << iota
	EventDefenderSelection
	EventAttackSelection
	EventDefenseSelection
	EventAttackModifier
	EventDefenseModifier
	EventWeaponDamage
	EventArmourProtection
	EventAfterAttack
)

// Result is a hook's verdict on how resolution should proceed.
type Result int

const (
	// ResultContinue lets the remaining hooks and the pipeline run normally.
	ResultContinue Result = iota
	// ResultDone stops further hooks for this event but lets the pipeline run.
	ResultDone
	// ResultAbort cancels the attack being resolved.
	ResultAbort
	// ResultRemove detaches the special after this invocation.
	ResultRemove
)

// Type classifies when a special is considered for firing.
type Type string

const (
	TypeOffensive  Type = "offensive"
	TypeDefensive  Type = "defensive"
	TypeContinuous Type = "continuous"
)

// Context carries the mutable state of the resolution step a hook fires on.
// Pointer fields are nil when the event has no such value to adjust.
type Context struct {
	Event       Event
	AttackerID  string
	OpponentID  string
	DefenderID  string
	PersonHitID string
	Zone        string

	// Damage is adjustable on EventWeaponDamage and EventAfterAttack.
	Damage *int
	// Modifier is adjustable on EventAttackModifier and EventDefenseModifier.
	Modifier *int
	// Absorbed is adjustable on EventArmourProtection.
	Absorbed *int
}

// Hook is the special's behavior. Hooks run on the engine's resolution
// goroutine and must not block.
type Hook func(ctx *Context) Result

// Special is one attachable combat effect.
type Special struct {
	ID     string
	Type   Type
	Events Event
	Hook   Hook
}

// Registry tracks which specials are attached to which entity.
//
// Safe for concurrent use.
type Registry struct {
	mu        sync.Mutex
	bySubject map[string][]*Special
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{bySubject: make(map[string][]*Special)}
}

// Attach registers s on the subject. Attaching the same special ID twice
// replaces the earlier attachment.
//
// Precondition: s, s.Hook non-nil, s.ID non-empty.
func (r *Registry) Attach(subjectID string, s *Special) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := r.bySubject[subjectID]
	for i, existing := range list {
		if existing.ID == s.ID {
			list[i] = s
			return
		}
	}
	r.bySubject[subjectID] = append(list, s)
}

// Detach removes the named special from the subject. No-op when absent.
func (r *Registry) Detach(subjectID, specialID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := r.bySubject[subjectID]
	out := list[:0]
	for _, s := range list {
		if s.ID != specialID {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		delete(r.bySubject, subjectID)
		return
	}
	r.bySubject[subjectID] = out
}

// Attached returns the IDs of the subject's specials, for diagnostics.
func (r *Registry) Attached(subjectID string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := r.bySubject[subjectID]
	ids := make([]string, len(list))
	for i, s := range list {
		ids[i] = s.ID
	}
	return ids
}

// Fire runs the subject's hooks subscribed to ctx.Event, in attachment order.
// ResultRemove detaches the special and counts as ResultContinue for the
// pipeline. ResultDone stops further hooks. ResultAbort stops immediately and
// is returned to the caller.
//
// Postcondition: the returned value is ResultContinue, ResultDone, or
// ResultAbort, never ResultRemove.
func (r *Registry) Fire(subjectID string, ctx *Context) Result {
	r.mu.Lock()
	list := make([]*Special, len(r.bySubject[subjectID]))
	copy(list, r.bySubject[subjectID])
	r.mu.Unlock()

	outcome := ResultContinue
	for _, s := range list {
		if s.Events&ctx.Event == 0 {
			continue
		}
		switch s.Hook(ctx) {
		case ResultRemove:
			r.Detach(subjectID, s.ID)
		case ResultDone:
			return ResultDone
		case ResultAbort:
			return ResultAbort
		}
	}
	return outcome
}
