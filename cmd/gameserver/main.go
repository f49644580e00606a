// Package main is the Ethereal Veil game server: it wires configuration,
// persistence, content, scripting, and the combat engine together and runs
// them under lifecycle management.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/ethereal-veil/mud/internal/config"
	"github.com/ethereal-veil/mud/internal/game/combat"
	"github.com/ethereal-veil/mud/internal/game/command"
	"github.com/ethereal-veil/mud/internal/game/dice"
	"github.com/ethereal-veil/mud/internal/game/entity"
	"github.com/ethereal-veil/mud/internal/game/messages"
	"github.com/ethereal-veil/mud/internal/game/session"
	"github.com/ethereal-veil/mud/internal/game/skills"
	"github.com/ethereal-veil/mud/internal/game/specials"
	"github.com/ethereal-veil/mud/internal/game/world"
	"github.com/ethereal-veil/mud/internal/observability"
	"github.com/ethereal-veil/mud/internal/scripting"
	"github.com/ethereal-veil/mud/internal/server"
	"github.com/ethereal-veil/mud/internal/storage/postgres"
)

// luaInstLimit caps instruction counts per special-script VM.
const luaInstLimit = 5_000_000

func main() {
	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	console := flag.Bool("console", false, "attach an interactive console player on stdin")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("building logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("connecting to database", zap.Error(err))
	}
	defer pool.Close()
	repo := postgres.NewEntityRepository(pool.DB())

	src := dice.NewCryptoSource()
	w := world.New(repo, src, logger)
	w.AddLocation(&world.Location{ID: cfg.Combat.RespawnLocation, Name: "The Ethereal Veil"})

	validateContent(cfg.Content, logger)

	msgs := messages.NewTable()
	if cfg.Content.MessagesDir != "" {
		if err := msgs.LoadDir(cfg.Content.MessagesDir); err != nil {
			logger.Fatal("loading message tables", zap.Error(err))
		}
	}

	sessions := session.NewManager(w, logger)

	scripts := scripting.NewManager(src, logger)
	defer scripts.Close()
	if cfg.Content.SpecialsDir != "" {
		if err := scripts.LoadGlobal(cfg.Content.SpecialsDir, luaInstLimit); err != nil {
			logger.Fatal("loading special scripts", zap.Error(err))
		}
	}

	engine := combat.NewEngine(
		cfg.Combat,
		combat.NewRegistry(cfg.Combat),
		w,
		skills.MapOracle{},
		sessions,
		observability.CombatLogger(logger, "prime"),
		combat.WithRandSource(src),
		combat.WithMessages(msgs),
		combat.WithSpecials(specials.NewRegistry()),
	)

	bindScriptCallbacks(scripts, w, sessions)

	life := server.NewLifecycle(logger)
	life.Add("combat-scheduler", combat.NewScheduler(engine, logger))
	if *console {
		life.Add("console", newConsoleService(cfg, engine, w, sessions, logger))
	}

	if err := life.Run(ctx); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

// validateContent parses every weapon and armour definition on disk and
// aborts on the first malformed file. Spawning reloads definitions on
// demand; this pass only makes content errors surface at startup rather
// than mid-fight.
func validateContent(cfg config.ContentConfig, logger *zap.Logger) {
	if cfg.WeaponsDir != "" {
		defs, err := entity.LoadWeapons(cfg.WeaponsDir)
		if err != nil {
			logger.Fatal("loading weapon definitions", zap.Error(err))
		}
		logger.Info("weapon definitions loaded", zap.Int("count", len(defs)))
	}
	if cfg.ArmourDir != "" {
		defs, err := entity.LoadArmour(cfg.ArmourDir)
		if err != nil {
			logger.Fatal("loading armour definitions", zap.Error(err))
		}
		logger.Info("armour definitions loaded", zap.Int("count", len(defs)))
	}
}

// bindScriptCallbacks gives Lua specials a window into the live world.
func bindScriptCallbacks(scripts *scripting.Manager, w *world.World, sessions *session.Manager) {
	scripts.GetCombatant = func(uid string) *scripting.CombatantInfo {
		e := w.Entity(uid)
		if e == nil {
			return nil
		}
		return &scripting.CombatantInfo{
			UID:      e.ID,
			Name:     e.Name,
			HP:       e.HP,
			MaxHP:    e.MaxHP,
			GP:       e.GP,
			MaxGP:    e.MaxGP,
			Attitude: string(e.Tactics.Attitude),
			Location: e.LocationID,
		}
	}
	scripts.ApplyDamage = func(uid string, hp int) error {
		e := w.Entity(uid)
		if e == nil {
			return fmt.Errorf("unknown entity %q", uid)
		}
		e.TakeDamage(hp)
		return nil
	}
	scripts.DrainStamina = func(uid string, gp int) error {
		e := w.Entity(uid)
		if e == nil {
			return fmt.Errorf("unknown entity %q", uid)
		}
		e.GP -= gp
		return nil
	}
	scripts.Notify = sessions.Send
	scripts.Broadcast = func(roomID, msg string) {
		sessions.SendRoom(roomID, msg, nil)
	}
}

// consoleService attaches a local player on stdin for development play.
type consoleService struct {
	env    *command.Env
	world  *world.World
	sess   *session.Manager
	cfg    config.Config
	logger *zap.Logger
	stop   chan struct{}
}

func newConsoleService(cfg config.Config, engine *combat.Engine, w *world.World, sessions *session.Manager, logger *zap.Logger) *consoleService {
	return &consoleService{
		env:    &command.Env{Engine: engine, World: w, Sink: sessions, Logger: logger},
		world:  w,
		sess:   sessions,
		cfg:    cfg,
		logger: logger,
		stop:   make(chan struct{}),
	}
}

// Start spawns a console player, echoes its output to stdout, and dispatches
// stdin lines as commands. It blocks until EOF or Stop.
func (c *consoleService) Start() error {
	player := entity.New("Wanderer", entity.KindPlayer)
	player.LocationID = c.cfg.Combat.RespawnLocation
	player.RespawnID = c.cfg.Combat.RespawnLocation
	if err := c.world.Spawn(player); err != nil {
		return err
	}
	sess, err := c.sess.Attach(player.ID, player.Name)
	if err != nil {
		return err
	}
	go func() {
		for line := range sess.Entity.Lines() {
			fmt.Println(line)
		}
	}()

	reg := command.DefaultRegistry()
	lines := make(chan string)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	for {
		select {
		case line, ok := <-lines:
			if !ok {
				<-c.stop
				return nil
			}
			reg.Dispatch(c.env, player.ID, line)
		case <-c.stop:
			return nil
		}
	}
}

// Stop terminates the console loop.
func (c *consoleService) Stop() {
	close(c.stop)
}
