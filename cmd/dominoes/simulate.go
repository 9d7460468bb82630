package main

import (
	"os"

	"github.com/charmbracelet/log"

	"github.com/lox/dominoes/cmd/dominoes/shared"
	"github.com/lox/dominoes/internal/simulator"
)

// SimulateCmd plays automatic matches in bulk. Flags override values from
// the config file.
type SimulateCmd struct {
	Config   string   `kong:"help='HCL simulation config file',type='path'"`
	Matches  int      `kong:"help='Number of matches to play'"`
	Seed     *int64   `kong:"help='Deterministic RNG seed (optional)'"`
	Parallel int      `kong:"help='Worker count (default one per CPU)'"`
	HandSize int      `kong:"help='Tiles dealt to each player'"`
	Players  []string `kong:"help='Player names (comma-separated)'"`
	Debug    bool     `kong:"help='Enable debug logging'"`
}

func (c *SimulateCmd) Run() error {
	var logger *log.Logger
	if c.Debug {
		logger = log.NewWithOptions(os.Stderr, log.Options{Level: log.DebugLevel})
	} else {
		logger = log.NewWithOptions(os.Stderr, log.Options{Level: log.WarnLevel})
	}

	config, err := simulator.LoadConfig(c.Config)
	if err != nil {
		return err
	}

	if c.Matches > 0 {
		config.Simulation.Matches = c.Matches
	}
	if c.Seed != nil {
		config.Simulation.Seed = *c.Seed
	}
	if c.Parallel > 0 {
		config.Simulation.Parallel = c.Parallel
	}
	if c.HandSize > 0 {
		config.Simulation.HandSize = c.HandSize
	}
	if len(c.Players) > 0 {
		config.Players = nil
		for _, name := range c.Players {
			config.Players = append(config.Players, simulator.PlayerConfig{Name: name})
		}
	}

	if err := config.Validate(); err != nil {
		return err
	}

	ctx := shared.SetupSignalHandlerWithLogger(logger)

	results, err := simulator.New(*config, logger).Run(ctx)
	if err != nil {
		return err
	}

	simulator.WriteSummary(os.Stdout, results)
	return nil
}
