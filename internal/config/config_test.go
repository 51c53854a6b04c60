package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/yankeeswap/internal/swap"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "yankeeswap.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func intPtr(v int) *int { return &v }

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	game, err := cfg.Game()
	require.NoError(t, err)
	assert.Equal(t, swap.DefaultConfig(), game)
	assert.Equal(t, DefaultIterations, cfg.Simulation.Games())
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
simulation {
  players               = 6
  iterations            = 500
  max_steals            = 2
  player_one_goes_again = true
  shuffle_order         = false
  seed                  = 42
  workers               = 3
  strategies            = ["always-open", "steal_above_mean"]
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	s := cfg.Simulation
	assert.Equal(t, 500, s.Games())
	assert.Equal(t, int64(42), s.Seed)
	assert.Equal(t, 3, s.Workers)

	game, err := cfg.Game()
	require.NoError(t, err)
	assert.Equal(t, swap.Config{
		Players:             6,
		MaxSteals:           2,
		LetPlayerOneGoAgain: true,
		ShuffleOrder:        false,
		Strategies:          []swap.Strategy{swap.AlwaysOpen, swap.StealAboveMean},
	}, game)
}

func TestLoadAppliesDefaults(t *testing.T) {
	t.Run("partial block", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, "simulation {\n  players = 4\n}\n"))
		require.NoError(t, err)

		s := cfg.Simulation
		assert.Equal(t, 4, *s.Players)
		assert.Equal(t, DefaultIterations, *s.Iterations)
		assert.Equal(t, swap.DefaultMaxSteals, *s.MaxSteals)
		require.NotNil(t, s.ShuffleOrder)
		assert.True(t, *s.ShuffleOrder)
		assert.Len(t, s.Strategies, len(swap.AllStrategies()))
	})

	t.Run("empty file", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, ""))
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})
}

func TestLoadErrors(t *testing.T) {
	t.Run("syntax", func(t *testing.T) {
		path := writeConfig(t, "simulation {\n  players = \n")
		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), path)
	})

	t.Run("unknown attribute", func(t *testing.T) {
		_, err := Load(writeConfig(t, "simulation {\n  tables = 3\n}\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to decode")
	})

	t.Run("wrong type", func(t *testing.T) {
		_, err := Load(writeConfig(t, "simulation {\n  players = \"many\"\n}\n"))
		require.Error(t, err)
	})
}

func TestLoadRejectsExplicitZero(t *testing.T) {
	tests := []struct {
		name  string
		block string
	}{
		{"players", "players = 0"},
		{"max steals", "max_steals = 0"},
		{"iterations", "iterations = 0"},
		{"negative max steals", "max_steals = -2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, "simulation {\n  "+tt.block+"\n}\n"))
			require.NoError(t, err, "zero values decode fine")
			assert.ErrorIs(t, cfg.Validate(), swap.ErrInvalidConfiguration)
		})
	}

	t.Run("kept as written", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, "simulation {\n  max_steals = 0\n}\n"))
		require.NoError(t, err)
		require.NotNil(t, cfg.Simulation.MaxSteals)
		assert.Zero(t, *cfg.Simulation.MaxSteals)
	})
}

func TestApply(t *testing.T) {
	cfg, err := Load(writeConfig(t, "simulation {\n  players = 4\n  seed = 9\n}\n"))
	require.NoError(t, err)

	players, again := 12, true
	cfg.Apply(Overrides{
		Players:            &players,
		PlayerOneGoesAgain: &again,
		Strategies:         []string{"always-steal"},
	})

	s := cfg.Simulation
	assert.Equal(t, 12, *s.Players, "command line wins over file")
	assert.Equal(t, int64(9), s.Seed, "file wins over default")
	assert.Equal(t, swap.DefaultMaxSteals, *s.MaxSteals, "default when neither sets it")
	assert.True(t, s.PlayerOneGoesAgain)
	assert.Equal(t, []string{"always-steal"}, s.Strategies)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Simulation)
	}{
		{"no iterations", func(s *Simulation) { s.Iterations = intPtr(-1) }},
		{"negative workers", func(s *Simulation) { s.Workers = -2 }},
		{"negative players", func(s *Simulation) { s.Players = intPtr(-1) }},
		{"no iterations set", func(s *Simulation) { s.Iterations = nil }},
		{"unknown strategy", func(s *Simulation) { s.Strategies = []string{"always-cry"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg.Simulation)
			assert.ErrorIs(t, cfg.Validate(), swap.ErrInvalidConfiguration)
		})
	}

	assert.NoError(t, Default().Validate())
	assert.Error(t, (&Config{}).Validate())
}
