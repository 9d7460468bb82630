package simulator

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/dominoes/internal/tile"
)

// Config is the complete simulation configuration, loadable from HCL:
//
//	simulation {
//	  matches   = 5000
//	  seed      = 42
//	  parallel  = 4
//	  hand_size = 7
//	}
//
//	player "Alice" {}
//	player "Bob" {}
type Config struct {
	Simulation SimulationSettings `hcl:"simulation,block"`
	Players    []PlayerConfig     `hcl:"player,block"`
}

// SimulationSettings contains batch-level knobs. Zero values mean "use the
// default": a zero seed picks a time-based one, zero parallel uses one
// worker per CPU.
type SimulationSettings struct {
	Matches  int   `hcl:"matches,optional"`
	Seed     int64 `hcl:"seed,optional"`
	Parallel int   `hcl:"parallel,optional"`
	HandSize int   `hcl:"hand_size,optional"`
}

// PlayerConfig names one seat at the table.
type PlayerConfig struct {
	Name string `hcl:"name,label"`
}

// DefaultConfig returns the default simulation configuration
func DefaultConfig() *Config {
	return &Config{
		Simulation: SimulationSettings{
			Matches:  1000,
			Seed:     0,
			Parallel: 0,
			HandSize: tile.HandSize,
		},
		Players: []PlayerConfig{
			{Name: "Alice"},
			{Name: "Bob"},
		},
	}
}

// LoadConfig loads simulation configuration from an HCL file
func LoadConfig(filename string) (*Config, error) {
	// Check if file exists
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	// Apply defaults for missing values
	if config.Simulation.Matches == 0 {
		config.Simulation.Matches = 1000
	}
	if config.Simulation.HandSize == 0 {
		config.Simulation.HandSize = tile.HandSize
	}
	if len(config.Players) == 0 {
		config.Players = DefaultConfig().Players
	}

	return &config, nil
}

// Validate validates the simulation configuration
func (c *Config) Validate() error {
	if c.Simulation.Matches < 1 {
		return fmt.Errorf("matches must be positive, got %d", c.Simulation.Matches)
	}
	if c.Simulation.Parallel < 0 {
		return fmt.Errorf("parallel cannot be negative, got %d", c.Simulation.Parallel)
	}
	if c.Simulation.HandSize < 1 {
		return fmt.Errorf("hand_size must be positive, got %d", c.Simulation.HandSize)
	}

	if len(c.Players) < 2 {
		return fmt.Errorf("at least two players must be configured, got %d", len(c.Players))
	}

	seen := make(map[string]bool, len(c.Players))
	for i, player := range c.Players {
		if player.Name == "" {
			return fmt.Errorf("player %d has no name", i)
		}
		if seen[player.Name] {
			return fmt.Errorf("duplicate player name %q", player.Name)
		}
		seen[player.Name] = true
	}

	if need := c.Simulation.HandSize * len(c.Players); need > tile.SetSize {
		return fmt.Errorf("%d players at %d tiles each need %d tiles, the set has %d",
			len(c.Players), c.Simulation.HandSize, need, tile.SetSize)
	}

	return nil
}
