package combat

import (
	"time"

	"go.uber.org/zap"
)

// Scheduler drives the engine's round clock. Each tick it decays action
// deficits, prunes stale hunts, and resolves one round for every fighter
// still actively engaged.
//
// Implements the server lifecycle's Service interface.
type Scheduler struct {
	engine *Engine
	logger *zap.Logger
	stop   chan struct{}
	done   chan struct{}
}

// NewScheduler creates a scheduler for the engine.
//
// Precondition: engine and logger must be non-nil.
func NewScheduler(engine *Engine, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		engine: engine,
		logger: logger,
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// Start runs the tick loop. Blocks until Stop is called.
func (s *Scheduler) Start() error {
	defer close(s.done)
	ticker := time.NewTicker(s.engine.cfg.TickInterval)
	defer ticker.Stop()

	s.logger.Info("combat scheduler started",
		zap.Duration("tick_interval", s.engine.cfg.TickInterval))
	for {
		select {
		case <-s.stop:
			return nil
		case <-ticker.C:
			s.Tick()
		}
	}
}

// Stop terminates the tick loop and waits for the in-flight tick to finish.
func (s *Scheduler) Stop() {
	close(s.stop)
	<-s.done
	s.logger.Info("combat scheduler stopped")
}

// Tick advances combat one round. Exposed so tests and the command layer can
// step time without the ticker.
func (s *Scheduler) Tick() {
	e := s.engine
	e.reg.DecayDeficits(e.cfg.DeficitDecay)
	e.reg.PruneHunting(e.cfg.HuntingTime)

	for _, id := range e.reg.ActiveAttackers() {
		// Earlier resolutions this tick may have ended the fight.
		opp, ok := e.reg.Fighting(id)
		if !ok || !e.reg.IsActivelyFighting(id, opp) {
			continue
		}
		e.ResolveRound(id)
	}
}
