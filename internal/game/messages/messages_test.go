package messages_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/ethereal-veil/mud/internal/game/messages"
)

func TestSelect_WeaponKindSpecialization(t *testing.T) {
	tbl := messages.NewTable()
	set := tbl.Select("sharp", "sword", 50)
	assert.Contains(t, set.Attacker, "sword")
}

func TestSelect_FallsBackToDamageType(t *testing.T) {
	tbl := messages.NewTable()
	// No "sharp-flail" list exists; the bare sharp list serves.
	set := tbl.Select("sharp", "flail", 50)
	assert.Contains(t, set.Attacker, "$I")
	assert.NotContains(t, set.Attacker, "flail")
}

func TestSelect_UnknownTypeFallsBackToBlunt(t *testing.T) {
	tbl := messages.NewTable()
	set := tbl.Select("sonic", "", 10)
	assert.NotEmpty(t, set.Attacker)
	assert.NotEmpty(t, set.Victim)
	assert.NotEmpty(t, set.Observer)
}

func TestSelect_TierBoundaries(t *testing.T) {
	tbl := messages.NewTable()

	miss := tbl.Select("blunt", "", 0)
	assert.Contains(t, miss.Attacker, "clumsily")

	low := tbl.Select("blunt", "", 20)
	assert.Contains(t, low.Attacker, "tap")

	mid := tbl.Select("blunt", "", 21)
	assert.Contains(t, mid.Attacker, "hit")

	top := tbl.Select("blunt", "", 99999)
	assert.Contains(t, top.Attacker, "pulp")
}

func TestSelect_UnarmedKinds(t *testing.T) {
	tbl := messages.NewTable()
	fists := tbl.Select("blunt", "hands", 50)
	assert.Contains(t, fists.Attacker, "punch")
	kick := tbl.Select("blunt", "feet", 50)
	assert.Contains(t, kick.Attacker, "kick")
}

// TestSelect_NeverEmpty: any type/kind/damage combination yields templates.
func TestSelect_NeverEmpty(t *testing.T) {
	tbl := messages.NewTable()
	rapid.Check(t, func(rt *rapid.T) {
		dt := rapid.SampledFrom([]string{"blunt", "sharp", "piercing", "magic-fire", "acid", ""}).Draw(rt, "type")
		kind := rapid.SampledFrom([]string{"", "sword", "dagger", "hands", "unknown"}).Draw(rt, "kind")
		dmg := rapid.IntRange(0, 10000).Draw(rt, "damage")

		set := tbl.Select(dt, kind, dmg)
		require.NotEmpty(rt, set.Attacker)
		require.NotEmpty(rt, set.Victim)
		require.NotEmpty(rt, set.Observer)
	})
}

func TestRender(t *testing.T) {
	out := messages.Render("$N hits $I's $z.", "Korrath", "Theron", "chest")
	assert.Equal(t, "Korrath hits Theron's chest.", out)
}

func TestSet_Render(t *testing.T) {
	set := messages.Set{
		Attacker: "You hit $I's $z.",
		Victim:   "$N hits your $z.",
		Observer: "$N hits $I's $z.",
	}
	got := set.Render("Korrath", "Theron", "head")
	assert.Equal(t, "You hit Theron's head.", got.Attacker)
	assert.Equal(t, "Korrath hits your head.", got.Victim)
	assert.Equal(t, "Korrath hits Theron's head.", got.Observer)
}

func TestAbsorptionClause(t *testing.T) {
	assert.Equal(t, "", messages.AbsorptionClause(0, 100))
	assert.Equal(t, "", messages.AbsorptionClause(33, 100), "a third or less is not narrated")
	assert.Equal(t, "some of", messages.AbsorptionClause(34, 100))
	assert.Equal(t, "some of", messages.AbsorptionClause(60, 100))
	assert.Equal(t, "most of", messages.AbsorptionClause(67, 100))
	assert.Equal(t, "all of", messages.AbsorptionClause(100, 100))
	assert.Equal(t, "", messages.AbsorptionClause(10, 0), "no damage, no clause")
}

func TestLoadDir_OverridesBuiltin(t *testing.T) {
	dir := t.TempDir()
	body := `
key: sharp-sword
tiers:
  - threshold: 0
    attacker: You whiff with your blade at $I.
    victim: $N whiffs a blade past you.
    observer: $N whiffs a blade past $I.
  - threshold: 5000
    attacker: You carve $I's $z.
    victim: $N carves your $z.
    observer: $N carves $I's $z.
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "swords.yaml"), []byte(body), 0o644))

	tbl := messages.NewTable()
	require.NoError(t, tbl.LoadDir(dir))

	assert.Contains(t, tbl.Select("sharp", "sword", 0).Attacker, "whiff")
	assert.Contains(t, tbl.Select("sharp", "sword", 300).Attacker, "carve")
	// Other lists are untouched.
	assert.Contains(t, tbl.Select("blunt", "", 0).Attacker, "clumsily")
}

func TestLoadDir_RejectsInvalid(t *testing.T) {
	tcs := []struct {
		name string
		body string
	}{
		{"missing key", "tiers:\n  - threshold: 0\n    attacker: a\n    victim: b\n    observer: c\n"},
		{"no tiers", "key: x\n"},
		{"descending thresholds", "key: x\ntiers:\n  - threshold: 10\n    attacker: a\n    victim: b\n    observer: c\n  - threshold: 5\n    attacker: a\n    victim: b\n    observer: c\n"},
		{"missing template", "key: x\ntiers:\n  - threshold: 0\n    attacker: a\n    victim: b\n"},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte(tc.body), 0o644))
			tbl := messages.NewTable()
			assert.Error(t, tbl.LoadDir(dir))
		})
	}
}
