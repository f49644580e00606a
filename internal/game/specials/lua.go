package specials

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/ethereal-veil/mud/internal/scripting"
)

// EventName renders a single event flag for script dispatch and logs.
func EventName(e Event) string {
	switch e {
	case EventOpponentSelection:
		return "opponent_selection"
	case EventDefenderSelection:
		return "defender_selection"
	case EventAttackSelection:
		return "attack_selection"
	case EventDefenseSelection:
		return "defense_selection"
	case EventAttackModifier:
		return "attack_modifier"
	case EventDefenseModifier:
		return "defense_modifier"
	case EventWeaponDamage:
		return "weapon_damage"
	case EventArmourProtection:
		return "armour_protection"
	case EventAfterAttack:
		return "after_attack"
	default:
		return "unknown"
	}
}

// LuaHook adapts a Lua function into a Hook. The function is called as
//
//	fn(event, attacker, opponent, defender, person_hit, zone, value)
//
// where value is the event's adjustable number (damage, modifier, or
// absorption) or nil. A numeric return replaces that value; a string return
// of "done", "abort", or "remove" is the hook's verdict; nil continues.
//
// Precondition: mgr non-nil; the named set is loaded.
func LuaHook(mgr *scripting.Manager, setID, fn string) Hook {
	return func(ctx *Context) Result {
		value := lua.LValue(lua.LNil)
		target := ctx.adjustable()
		if target != nil {
			value = lua.LNumber(*target)
		}

		ret, err := mgr.CallHook(setID, fn,
			lua.LString(EventName(ctx.Event)),
			lua.LString(ctx.AttackerID),
			lua.LString(ctx.OpponentID),
			lua.LString(ctx.DefenderID),
			lua.LString(ctx.PersonHitID),
			lua.LString(ctx.Zone),
			value,
		)
		if err != nil {
			return ResultContinue
		}

		switch v := ret.(type) {
		case lua.LNumber:
			if target != nil {
				*target = int(v)
			}
			return ResultContinue
		case lua.LString:
			switch string(v) {
			case "done":
				return ResultDone
			case "abort":
				return ResultAbort
			case "remove":
				return ResultRemove
			}
		}
		return ResultContinue
	}
}

// adjustable returns the pointer a hook may rewrite for this event, or nil.
func (c *Context) adjustable() *int {
	switch c.Event {
	case EventWeaponDamage, EventAfterAttack:
		return c.Damage
	case EventAttackModifier, EventDefenseModifier:
		return c.Modifier
	case EventArmourProtection:
		return c.Absorbed
	default:
		return nil
	}
}
