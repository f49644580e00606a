package entity_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ethereal-veil/mud/internal/game/entity"
)

func writeYAML(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func TestLoadWeapons(t *testing.T) {
	dir := t.TempDir()
	writeYAML(t, dir, "sword.yaml", `
id: iron-sword
name: iron sword
kind: sword
damage: 60
weight: 30
length: 3
damage_type: sharp
`)
	writeYAML(t, dir, "notes.txt", "ignored")

	defs, err := entity.LoadWeapons(dir)
	require.NoError(t, err)
	require.Len(t, defs, 1)
	assert.Equal(t, "iron-sword", defs[0].ID)
	assert.Equal(t, entity.KindSword, defs[0].Kind)

	w := defs[0].Instantiate()
	assert.Equal(t, 100, w.Condition)
	assert.Equal(t, 60, w.EffectiveDamage())
}

func TestLoadWeapons_RejectsInvalid(t *testing.T) {
	tcs := []struct {
		name string
		body string
	}{
		{"missing id", "name: x\nkind: sword\ndamage: 1\ndamage_type: sharp\n"},
		{"unknown kind", "id: x\nname: x\nkind: halberd\ndamage: 1\ndamage_type: sharp\n"},
		{"negative damage", "id: x\nname: x\nkind: sword\ndamage: -1\ndamage_type: sharp\n"},
		{"enchanted without magic type", "id: x\nname: x\nkind: sword\ndamage: 1\ndamage_type: sharp\nenchantment: 5\n"},
		{"malformed yaml", "id: [unclosed\n"},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			writeYAML(t, dir, "bad.yaml", tc.body)
			_, err := entity.LoadWeapons(dir)
			assert.Error(t, err)
		})
	}
}

func TestLoadWeapons_ShieldNeedsNoKind(t *testing.T) {
	dir := t.TempDir()
	writeYAML(t, dir, "buckler.yaml", `
id: buckler
name: wooden buckler
weight: 10
shield: true
`)
	defs, err := entity.LoadWeapons(dir)
	require.NoError(t, err)
	require.Len(t, defs, 1)
	assert.True(t, defs[0].Instantiate().IsShield)
}

func TestLoadWeapons_MissingDir(t *testing.T) {
	_, err := entity.LoadWeapons(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestLoadArmour(t *testing.T) {
	dir := t.TempDir()
	writeYAML(t, dir, "mail.yaml", `
id: chain-mail
name: chain mail
weight: 40
ac:
  sharp: 40
  blunt: 20
coverage:
  chest: 1.0
  abdomen: 0.8
`)
	defs, err := entity.LoadArmour(dir)
	require.NoError(t, err)
	require.Len(t, defs, 1)

	a := defs[0].Instantiate()
	assert.Equal(t, 100, a.Condition)
	assert.Equal(t, 40, a.EffectiveAC("sharp", "chest"))
}

func TestLoadArmour_RejectsInvalid(t *testing.T) {
	tcs := []struct {
		name string
		body string
	}{
		{"no ac", "id: x\nname: x\ncoverage:\n  chest: 1.0\n"},
		{"no coverage", "id: x\nname: x\nac:\n  sharp: 10\n"},
		{"coverage out of range", "id: x\nname: x\nac:\n  sharp: 10\ncoverage:\n  chest: 1.5\n"},
		{"negative ac", "id: x\nname: x\nac:\n  sharp: -1\ncoverage:\n  chest: 1.0\n"},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			writeYAML(t, dir, "bad.yaml", tc.body)
			_, err := entity.LoadArmour(dir)
			assert.Error(t, err)
		})
	}
}

func TestArmourDef_InstantiateCopiesMaps(t *testing.T) {
	def := &entity.ArmourDef{
		ID:       "x",
		Name:     "x",
		AC:       map[string]int{"sharp": 10},
		Coverage: map[string]float64{"chest": 1},
	}
	a := def.Instantiate()
	a.AC["sharp"] = 99
	assert.Equal(t, 10, def.AC["sharp"], "instances must not alias the def")
}
