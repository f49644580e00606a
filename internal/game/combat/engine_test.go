package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"pgregory.net/rapid"

	"github.com/ethereal-veil/mud/internal/config"
	"github.com/ethereal-veil/mud/internal/game/entity"
	"github.com/ethereal-veil/mud/internal/game/skills"
	"github.com/ethereal-veil/mud/internal/game/tactics"
)

// seqSrc cycles through a fixed value list, reduced modulo the requested
// bound so every draw stays legal.
type seqSrc struct {
	vals []int
	i    int
}

func (s *seqSrc) Intn(n int) int {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v % n
}

type fakeWorld struct {
	entities map[string]*entity.Entity
	light    map[string]int
	removed  []string
	saves    int
	moveErr  error
}

func newFakeWorld(ents ...*entity.Entity) *fakeWorld {
	w := &fakeWorld{
		entities: make(map[string]*entity.Entity),
		light:    make(map[string]int),
	}
	for _, e := range ents {
		w.entities[e.ID] = e
	}
	return w
}

func (w *fakeWorld) Entity(id string) *entity.Entity { return w.entities[id] }

func (w *fakeWorld) LocationContents(locationID string) []string {
	var ids []string
	for id, e := range w.entities {
		if e.LocationID == locationID {
			ids = append(ids, id)
		}
	}
	return ids
}

func (w *fakeWorld) LightLevel(locationID string) int { return w.light[locationID] }

func (w *fakeWorld) MoveRandom(e *entity.Entity) error {
	if w.moveErr != nil {
		return w.moveErr
	}
	e.LocationID = "elsewhere"
	return nil
}

func (w *fakeWorld) Remove(id string) {
	delete(w.entities, id)
	w.removed = append(w.removed, id)
}

func (w *fakeWorld) Save(e *entity.Entity) error {
	w.saves++
	return nil
}

type recordingSink struct {
	direct map[string][]string
	room   []string
}

func newRecordingSink() *recordingSink {
	return &recordingSink{direct: make(map[string][]string)}
}

func (s *recordingSink) Send(entityID, text string) {
	s.direct[entityID] = append(s.direct[entityID], text)
}

func (s *recordingSink) SendRoom(locationID, text string, exclude []string) {
	s.room = append(s.room, text)
}

func testConfig() config.CombatConfig {
	cfg := config.DefaultCombat()
	cfg.UseDistance = false
	return cfg
}

func newFighter(name, location string) *entity.Entity {
	e := entity.New(name, entity.KindPlayer)
	e.LocationID = location
	return e
}

func newTestEngine(cfg config.CombatConfig, world *fakeWorld, sink *recordingSink, src *seqSrc, oracle skills.Oracle) *Engine {
	if oracle == nil {
		oracle = skills.MapOracle{}
	}
	return NewEngine(cfg, NewRegistry(cfg), world, oracle, sink, zap.NewNop(),
		WithRandSource(src))
}

func TestEngageRegistersBothSides(t *testing.T) {
	a := newFighter("Alice", "arena")
	b := newFighter("Bram", "arena")
	world := newFakeWorld(a, b)
	e := newTestEngine(testConfig(), world, newRecordingSink(), &seqSrc{vals: []int{0}}, nil)

	require.True(t, e.Engage(a.ID, b.ID))
	assert.True(t, e.Registry().IsActivelyFighting(a.ID, b.ID))
	assert.True(t, e.Registry().IsActivelyFighting(b.ID, a.ID))
}

func TestEngageRejectsSelfAndDead(t *testing.T) {
	a := newFighter("Alice", "arena")
	b := newFighter("Bram", "arena")
	b.Dead = true
	world := newFakeWorld(a, b)
	e := newTestEngine(testConfig(), world, newRecordingSink(), &seqSrc{vals: []int{0}}, nil)

	assert.False(t, e.Engage(a.ID, a.ID))
	assert.False(t, e.Engage(a.ID, b.ID))
	assert.False(t, e.Registry().IsActivelyFighting(a.ID, b.ID))
}

func TestEngageRejectsPassedOutOpponent(t *testing.T) {
	a := newFighter("Alice", "arena")
	b := newFighter("Bram", "arena")
	b.PassedOut = true
	world := newFakeWorld(a, b)
	e := newTestEngine(testConfig(), world, newRecordingSink(), &seqSrc{vals: []int{0}}, nil)

	assert.False(t, e.Engage(a.ID, b.ID))
	assert.False(t, e.Registry().IsActivelyFighting(a.ID, b.ID))

	// A dying body is no more engageable than an unconscious one.
	b.PassedOut = false
	b.HP = -1
	assert.False(t, e.Engage(a.ID, b.ID))
}

func TestFocusZoneSingleZoneTarget(t *testing.T) {
	a := newFighter("Alice", "arena")
	a.Tactics.FocusZone = tactics.FocusUpperBody
	b := newFighter("Bram", "arena")
	b.TargetZones = []string{"core"}
	b.Tactics.Response = tactics.ResponseDodge
	world := newFakeWorld(a, b)
	src := &seqSrc{vals: []int{1}}
	e := newTestEngine(testConfig(), world, newRecordingSink(), src, nil)

	att := &Attack{Attacker: a, Opponent: b, AttackerTactics: a.Tactics}
	assert.Equal(t, "core", e.chooseTargetZone(att))

	a.Tactics.FocusZone = tactics.FocusLowerBody
	att.AttackerTactics = a.Tactics
	assert.Equal(t, "core", e.chooseTargetZone(att))

	// A full round against the one-zone defender must run to completion.
	a.Tactics.FocusZone = tactics.FocusUpperBody
	require.True(t, e.Engage(a.ID, b.ID))
	e.Registry().DecayDeficits(300)
	e.ResolveRound(a.ID)
	assert.Less(t, b.HP, 100)
}

func TestDarkvisionNegatesLightPenalty(t *testing.T) {
	a := newFighter("Alice", "cave")
	b := newFighter("Bram", "cave")
	world := newFakeWorld(a, b)
	world.light["cave"] = -2
	e := newTestEngine(testConfig(), world, newRecordingSink(), &seqSrc{vals: []int{0}}, nil)

	attackMod := func() int {
		att := &Attack{Attacker: a, Opponent: b, Defender: b, PersonHit: b,
			AttackerTactics: a.Tactics, DefenderTactics: b.Tactics}
		e.attackModifier(att)
		return att.AttackModifier
	}
	dim := attackMod()
	a.Attrs[entity.AttrDarkvision] = 1
	assert.Equal(t, dim+50, attackMod())

	defenseMod := func() int {
		att := &Attack{Attacker: a, Opponent: b, Defender: b, PersonHit: b,
			AttackerTactics: a.Tactics, DefenderTactics: b.Tactics,
			DefenseAction: defenseDodge}
		e.defenseModifier(att)
		return att.DefenseModifier
	}
	dimDef := defenseMod()
	b.Attrs[entity.AttrDarkvision] = 1
	assert.Equal(t, dimDef+50, defenseMod())
}

func TestResolveRoundBasicHit(t *testing.T) {
	a := newFighter("Alice", "arena")
	b := newFighter("Bram", "arena")
	b.Tactics.Response = tactics.ResponseDodge
	world := newFakeWorld(a, b)
	sink := newRecordingSink()
	// Draws: attack form (kick), target zone, and an opposed roll of 1.
	src := &seqSrc{vals: []int{1}}
	e := newTestEngine(testConfig(), world, sink, src, nil)

	require.True(t, e.Engage(a.ID, b.ID))
	e.Registry().DecayDeficits(300)

	e.ResolveRound(a.ID)

	// Unarmed kick, base 12, critical win doubles it. No armour in the way.
	assert.Equal(t, 76, b.HP)
	assert.Equal(t, 100, a.HP)
	assert.NotEmpty(t, sink.direct[a.ID])
	assert.NotEmpty(t, sink.direct[b.ID])
	assert.NotEmpty(t, sink.room)

	// Attack cost 10, dodge cost 8, both from the decayed floor.
	assert.Equal(t, e.cfg.MinDeficit+10, e.Registry().Deficit(a.ID))
	assert.Equal(t, 8, e.Registry().Deficit(b.ID))
}

func TestResolveRoundMissDealsNoDamage(t *testing.T) {
	a := newFighter("Alice", "arena")
	b := newFighter("Bram", "arena")
	b.Tactics.Response = tactics.ResponseDodge
	world := newFakeWorld(a, b)
	sink := newRecordingSink()
	// A roll of 99 loses to any clamped chance.
	src := &seqSrc{vals: []int{1, 1, 99}}
	e := newTestEngine(testConfig(), world, sink, src, nil)

	require.True(t, e.Engage(a.ID, b.ID))
	e.Registry().DecayDeficits(300)

	e.ResolveRound(a.ID)

	assert.Equal(t, 100, b.HP)
	assert.NotEmpty(t, sink.direct[a.ID])
}

func TestOpposedRollChanceClampedHigh(t *testing.T) {
	a := newFighter("Alice", "arena")
	b := newFighter("Bram", "arena")
	oracle := skills.MapOracle{
		a.ID: {skills.Unarmed: 1000},
		b.ID: {skills.Dodge: 0},
	}
	world := newFakeWorld(a, b)
	// Roll 95 beats even a monstrous skill gap: chance caps at 95.
	src := &seqSrc{vals: []int{95}}
	e := newTestEngine(testConfig(), world, newRecordingSink(), src, oracle)

	att := &Attack{
		Attacker:     a,
		Opponent:     b,
		Defender:     b,
		PersonHit:    b,
		Descriptor:   Descriptor{Skill: skills.Unarmed},
		DefenseSkill: skills.Dodge,
	}
	e.opposedRoll(att)
	assert.Equal(t, OutcomeDefensiveWin, att.Outcome)
}

func TestOpposedRollChanceClampedLow(t *testing.T) {
	a := newFighter("Alice", "arena")
	b := newFighter("Bram", "arena")
	oracle := skills.MapOracle{
		a.ID: {skills.Unarmed: 0},
		b.ID: {skills.Dodge: 1000},
	}
	world := newFakeWorld(a, b)
	// Roll 4 lands under the 5-point floor no matter the gap.
	src := &seqSrc{vals: []int{4}}
	e := newTestEngine(testConfig(), world, newRecordingSink(), src, oracle)

	att := &Attack{
		Attacker:     a,
		Opponent:     b,
		Defender:     b,
		PersonHit:    b,
		Descriptor:   Descriptor{Skill: skills.Unarmed},
		DefenseSkill: skills.Dodge,
	}
	e.opposedRoll(att)
	assert.Equal(t, OutcomeOffensiveWin, att.Outcome)
}

func TestArmourAbsorption(t *testing.T) {
	a := newFighter("Alice", "arena")
	b := newFighter("Bram", "arena")
	mail := &entity.Armour{
		ID:        "mail",
		Name:      "a chain shirt",
		AC:        map[string]int{"sharp": 15},
		Coverage:  map[string]float64{"chest": 1},
		Condition: 100,
	}
	b.Wear(mail)
	world := newFakeWorld(a, b)
	e := newTestEngine(testConfig(), world, newRecordingSink(), &seqSrc{vals: []int{0}}, nil)

	att := &Attack{
		Attacker:   a,
		Opponent:   b,
		Defender:   b,
		PersonHit:  b,
		Descriptor: Descriptor{DamageType: "sharp"},
		TargetZone: "chest",
		Outcome:    OutcomeOffensiveWin,
		Damage:     40,
	}
	e.armourProtection(att)

	assert.Equal(t, 15, att.Absorbed)
	assert.Same(t, mail, att.StoppedBy)
	// 15 of 40 is over a third: the clause names the piece.
	assert.Equal(t, " but a chain shirt absorbs some of the blow", e.absorptionClause(att))
}

func TestArmourAbsorptionSilentWhenMinor(t *testing.T) {
	a := newFighter("Alice", "arena")
	b := newFighter("Bram", "arena")
	world := newFakeWorld(a, b)
	e := newTestEngine(testConfig(), world, newRecordingSink(), &seqSrc{vals: []int{0}}, nil)

	att := &Attack{
		Attacker:  a,
		Opponent:  b,
		Defender:  b,
		PersonHit: b,
		Outcome:   OutcomeOffensiveWin,
		Damage:    40,
		Absorbed:  13,
		StoppedBy: &entity.Armour{Name: "a cap"},
	}
	// 13*3 = 39 does not clear the 40-damage third threshold.
	assert.Empty(t, e.absorptionClause(att))
}

func TestArmourAbsorptionBounds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		damage := rapid.IntRange(1, 500).Draw(t, "damage")
		ac := rapid.IntRange(0, 500).Draw(t, "ac")

		a := newFighter("Alice", "arena")
		b := newFighter("Bram", "arena")
		b.Wear(&entity.Armour{
			Name:      "plate",
			AC:        map[string]int{"blunt": ac},
			Coverage:  map[string]float64{"chest": 1},
			Condition: 100,
		})
		world := newFakeWorld(a, b)
		e := newTestEngine(testConfig(), world, newRecordingSink(), &seqSrc{vals: []int{0}}, nil)

		att := &Attack{
			Attacker:   a,
			Opponent:   b,
			Defender:   b,
			PersonHit:  b,
			Descriptor: Descriptor{DamageType: "blunt"},
			TargetZone: "chest",
			Outcome:    OutcomeOffensiveWin,
			Damage:     damage,
		}
		e.armourProtection(att)
		if att.Absorbed < 0 || att.Absorbed > att.Damage {
			t.Fatalf("absorbed %d out of bounds for damage %d", att.Absorbed, att.Damage)
		}
	})
}

func TestRedirectionRetryChargesIntercepter(t *testing.T) {
	a := newFighter("Alice", "arena")
	b := newFighter("Bram", "arena")
	p := newFighter("Petra", "arena")
	b.Tactics.Response = tactics.ResponseDodge
	p.Tactics.Response = tactics.ResponseParry
	require.True(t, p.Wield("right hand", &entity.Weapon{
		ID: "sword", Name: "a sword", Kind: entity.KindSword,
		Damage: 20, Weight: 4, Length: 3, DamageType: "sharp", Condition: 100,
	}))
	b.Defenders = []string{p.ID}

	world := newFakeWorld(a, b, p)
	sink := newRecordingSink()
	// Constant low draws force offensive wins on both rolls.
	src := &seqSrc{vals: []int{1}}
	e := newTestEngine(testConfig(), world, sink, src, nil)

	require.True(t, e.Engage(a.ID, b.ID))
	e.Registry().DecayDeficits(300)

	e.ResolveRound(a.ID)

	// Petra stepped in, lost the first check, paid stamina for it, and the
	// retried check landed on Bram. Petra takes no damage.
	assert.Equal(t, 98, p.GP)
	assert.Less(t, b.HP, 100)
	assert.Equal(t, 100, p.HP)
	// The failed intercept also auto-engaged Petra against Alice.
	assert.True(t, e.Registry().IsActivelyFighting(p.ID, a.ID))
}

func TestProtectorTakesTheBlow(t *testing.T) {
	a := newFighter("Alice", "arena")
	b := newFighter("Bram", "arena")
	p := newFighter("Petra", "arena")
	b.Tactics.Response = tactics.ResponseDodge
	p.Tactics.Response = tactics.ResponseDodge
	b.Protectors = []string{p.ID}

	world := newFakeWorld(a, b, p)
	sink := newRecordingSink()
	src := &seqSrc{vals: []int{1}}
	e := newTestEngine(testConfig(), world, sink, src, nil)

	require.True(t, e.Engage(a.ID, b.ID))
	e.Registry().DecayDeficits(300)

	e.ResolveRound(a.ID)

	// The blow lands on the protector, not the original target.
	assert.Less(t, p.HP, 100)
	assert.Equal(t, 100, b.HP)
	assert.NotEmpty(t, sink.direct[p.ID])
}

func TestDeathRemovesNPCAndDisengages(t *testing.T) {
	a := newFighter("Alice", "arena")
	n := entity.New("a goblin", entity.KindNPC)
	n.LocationID = "arena"
	n.HP = 1
	n.Tactics.Response = tactics.ResponseDodge
	world := newFakeWorld(a, n)
	sink := newRecordingSink()
	src := &seqSrc{vals: []int{1}}
	e := newTestEngine(testConfig(), world, sink, src, nil)

	require.True(t, e.Engage(a.ID, n.ID))
	e.Registry().DecayDeficits(300)

	e.ResolveRound(a.ID)

	assert.Contains(t, world.removed, n.ID)
	assert.False(t, e.Registry().IsActivelyFighting(a.ID, n.ID))
	assert.False(t, e.Registry().IsActivelyFighting(n.ID, a.ID))
}

func TestDeathRespawnsPlayer(t *testing.T) {
	cfg := testConfig()
	cfg.RespawnHPFraction = 0.5
	a := newFighter("Alice", "arena")
	b := newFighter("Bram", "arena")
	b.HP = 1
	b.Tactics.Response = tactics.ResponseDodge
	world := newFakeWorld(a, b)
	sink := newRecordingSink()
	src := &seqSrc{vals: []int{1}}
	e := newTestEngine(cfg, world, sink, src, nil)

	require.True(t, e.Engage(a.ID, b.ID))
	e.Registry().DecayDeficits(300)

	e.ResolveRound(a.ID)

	assert.Equal(t, 50, b.HP)
	assert.Equal(t, cfg.RespawnLocation, b.LocationID)
	assert.Contains(t, sink.direct[b.ID], "You have been defeated!")
	assert.False(t, e.Registry().IsActivelyFighting(a.ID, b.ID))
}

func TestFleeCancelsPendingRound(t *testing.T) {
	a := newFighter("Alice", "arena")
	b := newFighter("Bram", "arena")
	world := newFakeWorld(a, b)
	sink := newRecordingSink()
	e := newTestEngine(testConfig(), world, sink, &seqSrc{vals: []int{1}}, nil)

	require.True(t, e.Engage(a.ID, b.ID))
	require.True(t, e.Flee(a.ID))

	assert.False(t, e.Registry().IsActivelyFighting(a.ID, b.ID))
	assert.False(t, e.Registry().IsActivelyFighting(b.ID, a.ID))
	assert.Contains(t, sink.direct[a.ID], "You flee from combat!")
	assert.Equal(t, "elsewhere", a.LocationID)
	assert.True(t, e.Registry().IsHunting(b.ID))

	// The scheduler tick must not resolve anything for the fled pair.
	NewScheduler(e, zap.NewNop()).Tick()
	assert.Equal(t, 100, a.HP)
	assert.Equal(t, 100, b.HP)
}

func TestSurrenderMercyNeverKeepsFighting(t *testing.T) {
	a := newFighter("Alice", "arena")
	b := newFighter("Bram", "arena")
	b.Tactics.Mercy = tactics.MercyNever
	world := newFakeWorld(a, b)
	sink := newRecordingSink()
	e := newTestEngine(testConfig(), world, sink, &seqSrc{vals: []int{1}}, nil)

	require.True(t, e.Engage(b.ID, a.ID))
	require.True(t, e.Surrender(a.ID, ""))

	assert.True(t, e.Registry().IsActivelyFighting(a.ID, b.ID))
	assert.Contains(t, sink.direct[a.ID], "Bram refuses your surrender.")
}

func TestSurrenderMercyAlwaysDisengages(t *testing.T) {
	a := newFighter("Alice", "arena")
	b := newFighter("Bram", "arena")
	b.Tactics.Mercy = tactics.MercyAlways
	world := newFakeWorld(a, b)
	sink := newRecordingSink()
	e := newTestEngine(testConfig(), world, sink, &seqSrc{vals: []int{1}}, nil)

	require.True(t, e.Engage(b.ID, a.ID))
	require.True(t, e.Surrender(a.ID, ""))

	assert.False(t, e.Registry().IsActivelyFighting(a.ID, b.ID))
	assert.False(t, e.Registry().IsActivelyFighting(b.ID, a.ID))
	assert.Contains(t, sink.direct[a.ID], "Bram accepts your surrender.")
}

func TestSurrenderMercyAskDefersToPlayer(t *testing.T) {
	a := newFighter("Alice", "arena")
	b := newFighter("Bram", "arena")
	world := newFakeWorld(a, b)
	sink := newRecordingSink()
	e := newTestEngine(testConfig(), world, sink, &seqSrc{vals: []int{1}}, nil)

	require.True(t, e.Engage(b.ID, a.ID))
	require.True(t, e.Surrender(a.ID, ""))

	// Still fighting until Bram decides.
	assert.True(t, e.Registry().IsActivelyFighting(b.ID, a.ID))
	require.NotEmpty(t, sink.direct[b.ID])

	require.True(t, e.AcceptSurrender(b.ID, a.ID))
	assert.False(t, e.Registry().IsActivelyFighting(b.ID, a.ID))
}

func TestRejectSurrenderKeepsFighting(t *testing.T) {
	a := newFighter("Alice", "arena")
	b := newFighter("Bram", "arena")
	world := newFakeWorld(a, b)
	sink := newRecordingSink()
	e := newTestEngine(testConfig(), world, sink, &seqSrc{vals: []int{1}}, nil)

	require.True(t, e.Engage(b.ID, a.ID))
	require.True(t, e.Surrender(a.ID, ""))
	require.True(t, e.RejectSurrender(b.ID, a.ID))

	assert.True(t, e.Registry().IsActivelyFighting(b.ID, a.ID))
	// The offer is spent: accepting afterwards fails.
	assert.False(t, e.AcceptSurrender(b.ID, a.ID))
}

func TestSurrenderToNPCAutoAccepted(t *testing.T) {
	a := newFighter("Alice", "arena")
	n := entity.New("a guard", entity.KindNPC)
	n.LocationID = "arena"
	world := newFakeWorld(a, n)
	sink := newRecordingSink()
	e := newTestEngine(testConfig(), world, sink, &seqSrc{vals: []int{1}}, nil)

	require.True(t, e.Engage(n.ID, a.ID))
	require.True(t, e.Surrender(a.ID, ""))

	assert.False(t, e.Registry().IsActivelyFighting(n.ID, a.ID))
}

func TestSurrenderToNamedAttacker(t *testing.T) {
	a := newFighter("Alice", "arena")
	b := newFighter("Bram", "arena")
	c := newFighter("Cora", "arena")
	b.Tactics.Mercy = tactics.MercyNever
	c.Tactics.Mercy = tactics.MercyAlways
	world := newFakeWorld(a, b, c)
	sink := newRecordingSink()
	e := newTestEngine(testConfig(), world, sink, &seqSrc{vals: []int{1}}, nil)

	require.True(t, e.Engage(b.ID, a.ID))
	require.True(t, e.Engage(c.ID, a.ID))

	// The offer goes to Cora, not to Alice's registered opponent Bram.
	require.True(t, e.Surrender(a.ID, c.ID))
	assert.Contains(t, sink.direct[a.ID], "Cora accepts your surrender.")
	assert.False(t, e.Registry().IsActivelyFighting(c.ID, a.ID))
	assert.True(t, e.Registry().IsActivelyFighting(b.ID, a.ID))
}

func TestSurrenderToBystanderRefused(t *testing.T) {
	a := newFighter("Alice", "arena")
	b := newFighter("Bram", "arena")
	c := newFighter("Cora", "arena")
	world := newFakeWorld(a, b, c)
	sink := newRecordingSink()
	e := newTestEngine(testConfig(), world, sink, &seqSrc{vals: []int{1}}, nil)

	require.True(t, e.Engage(b.ID, a.ID))

	assert.False(t, e.Surrender(a.ID, c.ID))
	assert.Contains(t, sink.direct[a.ID], "Cora is not fighting you.")
	assert.True(t, e.Registry().IsActivelyFighting(b.ID, a.ID))
}

func TestLethalRoundsOnOneTickKillOnce(t *testing.T) {
	a := newFighter("Alice", "arena")
	c := newFighter("Cora", "arena")
	n := entity.New("a goblin", entity.KindNPC)
	n.LocationID = "arena"
	n.HP = 5
	a.Tactics.Response = tactics.ResponseDodge
	c.Tactics.Response = tactics.ResponseDodge
	n.Tactics.Response = tactics.ResponseDodge
	world := newFakeWorld(a, c, n)
	sink := newRecordingSink()
	src := &seqSrc{vals: []int{1}}
	e := newTestEngine(testConfig(), world, sink, src, nil)

	require.True(t, e.Engage(a.ID, n.ID))
	require.True(t, e.Engage(c.ID, n.ID))
	e.Registry().DecayDeficits(300)

	// Both attackers land lethal blows on the same tick. Whichever resolves
	// second must find the goblin already gone rather than kill it again.
	NewScheduler(e, zap.NewNop()).Tick()

	assert.True(t, n.Dead)
	assert.Equal(t, []string{n.ID}, world.removed)
	defeats := 0
	for _, line := range sink.direct[n.ID] {
		if line == "You have been defeated!" {
			defeats++
		}
	}
	assert.Equal(t, 1, defeats)
}

func TestSchedulerTickResolvesActiveFights(t *testing.T) {
	a := newFighter("Alice", "arena")
	b := newFighter("Bram", "arena")
	a.Tactics.Response = tactics.ResponseDodge
	b.Tactics.Response = tactics.ResponseDodge
	world := newFakeWorld(a, b)
	src := &seqSrc{vals: []int{1}}
	e := newTestEngine(testConfig(), world, newRecordingSink(), src, nil)

	require.True(t, e.Engage(a.ID, b.ID))
	e.Registry().DecayDeficits(300)

	NewScheduler(e, zap.NewNop()).Tick()

	// Both sides act on a tick; somebody got hurt.
	assert.True(t, a.HP < 100 || b.HP < 100)
}

func TestDamageNonNegative(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		base := rapid.IntRange(0, 100).Draw(t, "base")
		skill := rapid.IntRange(0, 500).Draw(t, "skill")
		outcome := rapid.SampledFrom([]Outcome{OutcomeOffensiveWin, OutcomeDefensiveWin}).Draw(t, "outcome")
		degree := rapid.SampledFrom([]Degree{DegreeMarginal, DegreeNormal, DegreeExceptional, DegreeCritical}).Draw(t, "degree")

		a := newFighter("Alice", "arena")
		b := newFighter("Bram", "arena")
		world := newFakeWorld(a, b)
		oracle := skills.MapOracle{a.ID: {skills.Melee: skill}}
		e := newTestEngine(testConfig(), world, newRecordingSink(), &seqSrc{vals: []int{0}}, oracle)

		att := &Attack{
			Attacker:   a,
			Opponent:   b,
			Defender:   b,
			PersonHit:  b,
			Weapon:     &entity.Weapon{Damage: base, Condition: 100, Weight: 4},
			Descriptor: Descriptor{Skill: skills.Melee, BaseDamage: base, DamageType: "sharp"},
			Outcome:    outcome,
			Degree:     degree,
		}
		e.calcDamage(att)
		if att.Damage < 0 {
			t.Fatalf("damage went negative: %d", att.Damage)
		}
		if outcome == OutcomeDefensiveWin && att.Damage != 0 {
			t.Fatalf("defensive win must zero damage, got %d", att.Damage)
		}
	})
}
