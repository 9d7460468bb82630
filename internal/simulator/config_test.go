package simulator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/dominoes/internal/tile"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "simulation.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, 1000, config.Simulation.Matches)
	assert.Equal(t, tile.HandSize, config.Simulation.HandSize)
	assert.Len(t, config.Players, 2)
	assert.NoError(t, config.Validate())
}

func TestLoadConfigMissingFile(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)

	assert.Equal(t, DefaultConfig(), config)
}

func TestLoadConfig(t *testing.T) {
	path := writeConfigFile(t, `
simulation {
  matches   = 250
  seed      = 42
  parallel  = 2
  hand_size = 5
}

player "North" {}
player "East" {}
player "South" {}
player "West" {}
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 250, config.Simulation.Matches)
	assert.Equal(t, int64(42), config.Simulation.Seed)
	assert.Equal(t, 2, config.Simulation.Parallel)
	assert.Equal(t, 5, config.Simulation.HandSize)

	require.Len(t, config.Players, 4)
	names := make([]string, len(config.Players))
	for i, player := range config.Players {
		names[i] = player.Name
	}
	assert.Equal(t, []string{"North", "East", "South", "West"}, names)

	assert.NoError(t, config.Validate())
}

func TestLoadConfigFillsDefaults(t *testing.T) {
	path := writeConfigFile(t, `
simulation {
  seed = 7
}

player "Alice" {}
player "Bob" {}
player "Carol" {}
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 1000, config.Simulation.Matches)
	assert.Equal(t, tile.HandSize, config.Simulation.HandSize)
	assert.Equal(t, int64(7), config.Simulation.Seed)
	assert.Len(t, config.Players, 3)
}

func TestLoadConfigDefaultPlayers(t *testing.T) {
	path := writeConfigFile(t, `
simulation {
  matches = 10
}
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, DefaultConfig().Players, config.Players)
}

func TestLoadConfigRejectsBadSyntax(t *testing.T) {
	path := writeConfigFile(t, `simulation {`)

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse")
}

func TestLoadConfigRequiresSimulationBlock(t *testing.T) {
	path := writeConfigFile(t, `
player "Alice" {}
player "Bob" {}
`)

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "simulation")
}

func TestConfigValidate(t *testing.T) {
	twoSeats := []PlayerConfig{{Name: "Alice"}, {Name: "Bob"}}

	tests := []struct {
		name    string
		config  Config
		wantErr string
	}{
		{
			name: "valid",
			config: Config{
				Simulation: SimulationSettings{Matches: 10, HandSize: 7},
				Players:    twoSeats,
			},
		},
		{
			name: "zero matches",
			config: Config{
				Simulation: SimulationSettings{HandSize: 7},
				Players:    twoSeats,
			},
			wantErr: "matches must be positive",
		},
		{
			name: "negative parallel",
			config: Config{
				Simulation: SimulationSettings{Matches: 10, Parallel: -1, HandSize: 7},
				Players:    twoSeats,
			},
			wantErr: "parallel cannot be negative",
		},
		{
			name: "zero hand size",
			config: Config{
				Simulation: SimulationSettings{Matches: 10},
				Players:    twoSeats,
			},
			wantErr: "hand_size must be positive",
		},
		{
			name: "one player",
			config: Config{
				Simulation: SimulationSettings{Matches: 10, HandSize: 7},
				Players:    []PlayerConfig{{Name: "Alice"}},
			},
			wantErr: "at least two players",
		},
		{
			name: "unnamed player",
			config: Config{
				Simulation: SimulationSettings{Matches: 10, HandSize: 7},
				Players:    []PlayerConfig{{Name: "Alice"}, {Name: ""}},
			},
			wantErr: "player 1 has no name",
		},
		{
			name: "duplicate names",
			config: Config{
				Simulation: SimulationSettings{Matches: 10, HandSize: 7},
				Players:    []PlayerConfig{{Name: "Alice"}, {Name: "Alice"}},
			},
			wantErr: `duplicate player name "Alice"`,
		},
		{
			name: "deal outruns the set",
			config: Config{
				Simulation: SimulationSettings{Matches: 10, HandSize: 7},
				Players: []PlayerConfig{
					{Name: "a"}, {Name: "b"}, {Name: "c"}, {Name: "d"}, {Name: "e"},
				},
			},
			wantErr: "the set has 28",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
