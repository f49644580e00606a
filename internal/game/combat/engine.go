package combat

import (
	"sync"

	"go.uber.org/zap"

	"github.com/ethereal-veil/mud/internal/config"
	"github.com/ethereal-veil/mud/internal/game/dice"
	"github.com/ethereal-veil/mud/internal/game/entity"
	"github.com/ethereal-veil/mud/internal/game/messages"
	"github.com/ethereal-veil/mud/internal/game/skills"
	"github.com/ethereal-veil/mud/internal/game/specials"
)

// Engine resolves combat rounds for one world. All resolution steps and
// combat-affecting interrupts (flee, surrender, death) share the step lock,
// so no two steps for the same world ever interleave.
type Engine struct {
	mu sync.Mutex

	cfg      config.CombatConfig
	reg      *Registry
	world    World
	oracle   skills.Oracle
	sink     Sink
	msgs     *messages.Table
	specials *specials.Registry
	src      dice.Source
	pk       PKPolicy
	logger   *zap.Logger
}

// Option adjusts optional engine collaborators.
type Option func(*Engine)

// WithRandSource replaces the randomness source. Tests inject deterministic
// sources here.
func WithRandSource(src dice.Source) Option {
	return func(e *Engine) { e.src = src }
}

// WithMessages replaces the narration table.
func WithMessages(t *messages.Table) Option {
	return func(e *Engine) { e.msgs = t }
}

// WithSpecials attaches a specials registry whose hooks fire during
// resolution.
func WithSpecials(r *specials.Registry) Option {
	return func(e *Engine) { e.specials = r }
}

// WithPKPolicy replaces the permissive default player-killing policy.
func WithPKPolicy(pk PKPolicy) Option {
	return func(e *Engine) { e.pk = pk }
}

// NewEngine creates an engine for one world.
//
// Precondition: reg, world, oracle, sink, and logger must be non-nil.
func NewEngine(cfg config.CombatConfig, reg *Registry, world World, oracle skills.Oracle, sink Sink, logger *zap.Logger, opts ...Option) *Engine {
	e := &Engine{
		cfg:      cfg,
		reg:      reg,
		world:    world,
		oracle:   oracle,
		sink:     sink,
		msgs:     messages.NewTable(),
		specials: specials.NewRegistry(),
		src:      dice.NewCryptoSource(),
		pk:       AllowAllPK,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Registry exposes the engine's combat registry for command handlers and the
// scheduler.
func (e *Engine) Registry() *Registry { return e.reg }

// Specials exposes the engine's specials registry.
func (e *Engine) Specials() *specials.Registry { return e.specials }

// Engage registers attacker against opponent under the step lock.
//
// Postcondition: on true, the scheduler will resolve rounds for the attacker.
func (e *Engine) Engage(attackerID, opponentID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	attacker := e.world.Entity(attackerID)
	opponent := e.world.Entity(opponentID)
	if attacker == nil || opponent == nil {
		return false
	}
	return e.reg.EngageAttacker(attacker, opponent, e.pk)
}

// canAttack mirrors the attacker-eligibility gate: incapacitated, casting,
// disconnected, or flagged entities may not initiate attacks.
func canAttack(ent *entity.Entity) bool {
	return ent.CanAttack() && !ent.CastingSpell && ent.Connected && ent.HP >= 0
}

// canDefend mirrors canAttack for the defensive side.
func canDefend(ent *entity.Entity) bool {
	return ent.CanDefend() && !ent.CastingSpell && ent.Connected && ent.HP >= 0
}
