package command

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ethereal-veil/mud/internal/game/combat"
	"github.com/ethereal-veil/mud/internal/game/entity"
)

// Categories for organizing commands.
const (
	CategoryCombat = "combat"
	CategorySystem = "system"
)

// Env carries the collaborators every handler needs.
type Env struct {
	Engine *combat.Engine
	World  combat.World
	Sink   combat.Sink
	Logger *zap.Logger
}

// Handler executes one command for the actor.
type Handler func(env *Env, actorID string, parsed ParseResult)

// Command defines a player-invocable command.
type Command struct {
	// Name is the canonical command name.
	Name string
	// Aliases are alternate names for this command.
	Aliases []string
	// Help is the short help text displayed to players.
	Help string
	// Category groups the command.
	Category string
	// Handler executes the command.
	Handler Handler
}

// BuiltinCommands returns all built-in combat commands.
func BuiltinCommands() []Command {
	return []Command{
		{Name: "attack", Aliases: []string{"att", "kill"}, Help: "Attack a target (attack <name>)", Category: CategoryCombat, Handler: handleAttack},
		{Name: "flee", Aliases: []string{"run"}, Help: "Break off combat and run", Category: CategoryCombat, Handler: handleFlee},
		{Name: "surrender", Aliases: []string{"yield"}, Help: "Offer your surrender (surrender [<name>])", Category: CategoryCombat, Handler: handleSurrender},
		{Name: "accept", Aliases: nil, Help: "Accept a surrender (accept <name>)", Category: CategoryCombat, Handler: handleAccept},
		{Name: "reject", Aliases: nil, Help: "Reject a surrender (reject <name>)", Category: CategoryCombat, Handler: handleReject},
		{Name: "tactics", Aliases: []string{"tac"}, Help: "Show or change combat tactics (tactics [<setting> <value>])", Category: CategoryCombat, Handler: handleTactics},
		{Name: "judge", Aliases: nil, Help: "Judge a held weapon (judge <name>)", Category: CategoryCombat, Handler: handleJudge},
		{Name: "help", Aliases: []string{"?"}, Help: "Show available commands", Category: CategorySystem, Handler: handleHelp},
	}
}

// findInRoom resolves a name to an entity sharing the actor's location.
// Matching is case-insensitive on name prefixes.
func findInRoom(env *Env, actor *entity.Entity, name string) *entity.Entity {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return nil
	}
	for _, id := range env.World.LocationContents(actor.LocationID) {
		if id == actor.ID {
			continue
		}
		ent := env.World.Entity(id)
		if ent == nil {
			continue
		}
		if strings.HasPrefix(strings.ToLower(ent.Name), name) {
			return ent
		}
	}
	return nil
}

func actorEntity(env *Env, actorID string) *entity.Entity {
	return env.World.Entity(actorID)
}

func handleAttack(env *Env, actorID string, parsed ParseResult) {
	actor := actorEntity(env, actorID)
	if actor == nil {
		return
	}
	if parsed.RawArgs == "" {
		env.Sink.Send(actorID, "Attack whom?")
		return
	}
	target := findInRoom(env, actor, parsed.RawArgs)
	if target == nil {
		env.Sink.Send(actorID, fmt.Sprintf("You see no %q here.", parsed.RawArgs))
		return
	}
	if !env.Engine.Engage(actorID, target.ID) {
		env.Sink.Send(actorID, fmt.Sprintf("You cannot attack %s.", target.Name))
		return
	}
	env.Sink.Send(actorID, fmt.Sprintf("You attack %s!", target.Name))
	env.Sink.Send(target.ID, fmt.Sprintf("%s attacks you!", actor.Name))
	env.Logger.Info("combat started",
		zap.String("attacker", actorID),
		zap.String("target", target.ID))
}

func handleFlee(env *Env, actorID string, parsed ParseResult) {
	env.Engine.Flee(actorID)
}

func handleSurrender(env *Env, actorID string, parsed ParseResult) {
	if parsed.RawArgs == "" {
		env.Engine.Surrender(actorID, "")
		return
	}
	actor := actorEntity(env, actorID)
	if actor == nil {
		return
	}
	target := findInRoom(env, actor, parsed.RawArgs)
	if target == nil {
		env.Sink.Send(actorID, fmt.Sprintf("You see no %q here.", parsed.RawArgs))
		return
	}
	env.Engine.Surrender(actorID, target.ID)
}

func handleAccept(env *Env, actorID string, parsed ParseResult) {
	resolveSurrenderVerb(env, actorID, parsed, env.Engine.AcceptSurrender, "Accept whose surrender?")
}

func handleReject(env *Env, actorID string, parsed ParseResult) {
	resolveSurrenderVerb(env, actorID, parsed, env.Engine.RejectSurrender, "Reject whose surrender?")
}

func resolveSurrenderVerb(env *Env, actorID string, parsed ParseResult, verb func(attackerID, victimID string) bool, prompt string) {
	actor := actorEntity(env, actorID)
	if actor == nil {
		return
	}
	if parsed.RawArgs == "" {
		env.Sink.Send(actorID, prompt)
		return
	}
	victim := findInRoom(env, actor, parsed.RawArgs)
	if victim == nil {
		env.Sink.Send(actorID, fmt.Sprintf("You see no %q here.", parsed.RawArgs))
		return
	}
	verb(actorID, victim.ID)
}

func handleTactics(env *Env, actorID string, parsed ParseResult) {
	actor := actorEntity(env, actorID)
	if actor == nil {
		return
	}
	switch len(parsed.Args) {
	case 0:
		env.Sink.Send(actorID, actor.Tactics.Describe())
	case 2:
		if err := actor.Tactics.Apply(parsed.Args[0], parsed.Args[1]); err != nil {
			env.Sink.Send(actorID, err.Error())
			return
		}
		if err := env.World.Save(actor); err != nil {
			env.Logger.Error("saving tactics", zap.String("entity", actorID), zap.Error(err))
		}
		env.Sink.Send(actorID, fmt.Sprintf("Tactics %s set to %s.", parsed.Args[0], parsed.Args[1]))
	default:
		env.Sink.Send(actorID, "Usage: tactics [<setting> <value>]")
	}
}

func handleJudge(env *Env, actorID string, parsed ParseResult) {
	actor := actorEntity(env, actorID)
	if actor == nil {
		return
	}
	name := strings.ToLower(strings.TrimSpace(parsed.RawArgs))
	if name == "" {
		env.Sink.Send(actorID, "Judge which weapon?")
		return
	}
	for _, w := range actor.HeldWeapons() {
		if strings.HasPrefix(strings.ToLower(w.Name), name) {
			env.Sink.Send(actorID, fmt.Sprintf(
				"You judge the damage %s can inflict to be %s.", w.Name, w.Category()))
			return
		}
	}
	env.Sink.Send(actorID, fmt.Sprintf("You are not holding %q.", parsed.RawArgs))
}

func handleHelp(env *Env, actorID string, parsed ParseResult) {
	var b strings.Builder
	b.WriteString("Available commands:\n")
	for _, cmd := range BuiltinCommands() {
		fmt.Fprintf(&b, "  %-10s %s\n", cmd.Name, cmd.Help)
	}
	env.Sink.Send(actorID, strings.TrimRight(b.String(), "\n"))
}
