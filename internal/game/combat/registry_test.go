package combat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/ethereal-veil/mud/internal/config"
	"github.com/ethereal-veil/mud/internal/game/entity"
)

func TestRegistryEngageSetsInitiativeDeficit(t *testing.T) {
	cfg := config.DefaultCombat()
	r := NewRegistry(cfg)
	a := entity.New("Alice", entity.KindPlayer)
	b := entity.New("Bram", entity.KindPlayer)

	require.True(t, r.EngageAttacker(a, b, AllowAllPK))
	assert.Equal(t, (cfg.MaxDeficit-cfg.MinDeficit)/3, r.Deficit(a.ID))
	assert.Equal(t, cfg.InitialDistance, r.Distance(a.ID, b.ID))

	// Re-engaging the same opponent does not reset anything.
	r.AddDeficit(a.ID, -50)
	before := r.Deficit(a.ID)
	require.True(t, r.EngageAttacker(a, b, AllowAllPK))
	assert.Equal(t, before, r.Deficit(a.ID))
}

func TestRegistryEngageStripsGuardian(t *testing.T) {
	r := NewRegistry(config.DefaultCombat())
	a := entity.New("Alice", entity.KindPlayer)
	b := entity.New("Bram", entity.KindPlayer)
	a.Protectors = []string{b.ID}
	a.Defenders = []string{b.ID}

	require.True(t, r.EngageAttacker(a, b, AllowAllPK))
	assert.False(t, a.IsProtector(b.ID))
	assert.False(t, a.IsDefender(b.ID))
}

func TestRegistryEngageBlockedByPolicy(t *testing.T) {
	r := NewRegistry(config.DefaultCombat())
	a := entity.New("Alice", entity.KindPlayer)
	b := entity.New("Bram", entity.KindPlayer)
	deny := func(string, string) bool { return false }

	assert.False(t, r.EngageAttacker(a, b, deny))
	assert.False(t, r.IsActivelyFighting(a.ID, b.ID))
}

func TestRegistryDisengageIdempotent(t *testing.T) {
	r := NewRegistry(config.DefaultCombat())
	a := entity.New("Alice", entity.KindPlayer)
	b := entity.New("Bram", entity.KindPlayer)
	require.True(t, r.EngageAttacker(a, b, AllowAllPK))
	r.SetConcentration(a.ID, b.ID)
	r.StartHunting(a.ID)
	r.recordSurrenderOffer(a.ID, b.ID)
	r.recordSurrenderPending(b.ID, a.ID)

	r.Disengage(a.ID, b.ID)
	r.Disengage(a.ID, b.ID)

	assert.False(t, r.IsActivelyFighting(a.ID, b.ID))
	assert.False(t, r.IsActivelyFighting(b.ID, a.ID))
	assert.False(t, r.IsHunting(a.ID))
	assert.False(t, r.hasSurrenderPending(b.ID, a.ID))
	_, ok := r.Concentration(a.ID)
	assert.False(t, ok)
}

func TestRegistryDeficitClamped(t *testing.T) {
	cfg := config.DefaultCombat()
	r := NewRegistry(cfg)

	r.AddDeficit("x", 100000)
	assert.Equal(t, cfg.MaxDeficit, r.Deficit("x"))
	r.AddDeficit("x", -100000)
	assert.Equal(t, cfg.MinDeficit, r.Deficit("x"))
}

func TestRegistryDeficitDecay(t *testing.T) {
	cfg := config.DefaultCombat()
	r := NewRegistry(cfg)
	r.AddDeficit("x", 30)

	r.DecayDeficits(cfg.DeficitDecay)
	assert.Equal(t, 30-cfg.DeficitDecay, r.Deficit("x"))

	r.DecayDeficits(1000)
	assert.Equal(t, cfg.MinDeficit, r.Deficit("x"))
}

func TestRegistryDeficitBoundsProperty(t *testing.T) {
	cfg := config.DefaultCombat()
	rapid.Check(t, func(t *rapid.T) {
		r := NewRegistry(cfg)
		n := rapid.IntRange(1, 50).Draw(t, "steps")
		for i := 0; i < n; i++ {
			r.AddDeficit("x", rapid.IntRange(-300, 300).Draw(t, "delta"))
			d := r.Deficit("x")
			if d < cfg.MinDeficit || d > cfg.MaxDeficit {
				t.Fatalf("deficit %d escaped [%d, %d]", d, cfg.MinDeficit, cfg.MaxDeficit)
			}
		}
	})
}

func TestRegistryDistanceCloses(t *testing.T) {
	cfg := config.DefaultCombat()
	r := NewRegistry(cfg)

	assert.Equal(t, cfg.InitialDistance, r.Distance("a", "b"))
	for i := 0; i < cfg.InitialDistance+3; i++ {
		r.CloseDistance("a", "b")
	}
	assert.Equal(t, 0, r.Distance("a", "b"))
	// Unordered pair: both directions read the same value.
	assert.Equal(t, 0, r.Distance("b", "a"))
}

func TestRegistryHuntingExpires(t *testing.T) {
	r := NewRegistry(config.DefaultCombat())
	now := time.Now()
	r.now = func() time.Time { return now }

	r.StartHunting("x")
	assert.True(t, r.IsHunting("x"))

	now = now.Add(2 * time.Minute)
	r.PruneHunting(5 * time.Minute)
	assert.True(t, r.IsHunting("x"))

	now = now.Add(10 * time.Minute)
	r.PruneHunting(5 * time.Minute)
	assert.False(t, r.IsHunting("x"))
}

func TestRegistryAttackersOf(t *testing.T) {
	r := NewRegistry(config.DefaultCombat())
	a := entity.New("Alice", entity.KindPlayer)
	b := entity.New("Bram", entity.KindPlayer)
	c := entity.New("Cora", entity.KindPlayer)

	require.True(t, r.EngageAttacker(a, c, AllowAllPK))
	require.True(t, r.EngageAttacker(b, c, AllowAllPK))

	attackers := r.AttackersOf(c.ID)
	assert.ElementsMatch(t, []string{a.ID, b.ID}, attackers)
}
