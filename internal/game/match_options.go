package game

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/dominoes/internal/matchid"
	"github.com/lox/dominoes/internal/tile"
)

type matchConfig struct {
	id       string
	handSize int
	seed     int64
	logger   *log.Logger
	events   EventBus
}

// Option customizes match construction.
type Option func(*matchConfig)

func defaultMatchConfig() matchConfig {
	return matchConfig{
		id:       matchid.Generate(),
		handSize: tile.HandSize,
		seed:     time.Now().UnixNano(),
		logger:   log.New(io.Discard),
		events:   NewEventBus(),
	}
}

// WithHandSize sets how many tiles each player is dealt (default 7).
func WithHandSize(n int) Option {
	return func(c *matchConfig) {
		c.handSize = n
	}
}

// WithSeed fixes the match RNG seed. The same seats and seed replay the
// same match, shuffle and automatic moves included.
func WithSeed(seed int64) Option {
	return func(c *matchConfig) {
		c.seed = seed
	}
}

// WithLogger attaches a structured logger. The default logger is silent.
func WithLogger(logger *log.Logger) Option {
	return func(c *matchConfig) {
		c.logger = logger
	}
}

// WithEventBus replaces the match's event bus, letting callers share one
// subscriber set across matches.
func WithEventBus(bus EventBus) Option {
	return func(c *matchConfig) {
		c.events = bus
	}
}

// WithID overrides the generated match ID. The simulator labels batch
// matches by index.
func WithID(id string) Option {
	return func(c *matchConfig) {
		c.id = id
	}
}
