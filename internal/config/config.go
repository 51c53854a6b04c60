// Package config loads simulation settings from an HCL file.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/yankeeswap/internal/swap"
)

const DefaultIterations = 10000

// Config represents the complete configuration file
type Config struct {
	Simulation *Simulation `hcl:"simulation,block"`
}

// Simulation contains the settings for a run of games. Pointer fields are
// nil when the file leaves them out; an explicit zero fails validation.
type Simulation struct {
	Players            *int     `hcl:"players,optional"`
	Iterations         *int     `hcl:"iterations,optional"`
	MaxSteals          *int     `hcl:"max_steals,optional"`
	PlayerOneGoesAgain bool     `hcl:"player_one_goes_again,optional"`
	ShuffleOrder       *bool    `hcl:"shuffle_order,optional"`
	Seed               int64    `hcl:"seed,optional"` // 0 picks a seed from the clock
	Workers            int      `hcl:"workers,optional"`
	Strategies         []string `hcl:"strategies,optional"`
}

// Overrides carries values given on the command line. Nil fields leave
// the file's value in place.
type Overrides struct {
	Players            *int
	Iterations         *int
	MaxSteals          *int
	PlayerOneGoesAgain *bool
	Seed               *int64
	Workers            *int
	Strategies         []string
}

// Default returns the classic simulation: ten players, three steals per
// gift and ten thousand games.
func Default() *Config {
	players, iterations, maxSteals := swap.DefaultPlayers, DefaultIterations, swap.DefaultMaxSteals
	shuffle := true
	return &Config{
		Simulation: &Simulation{
			Players:      &players,
			Iterations:   &iterations,
			MaxSteals:    &maxSteals,
			ShuffleOrder: &shuffle,
			Strategies:   strategyNames(swap.AllStrategies()),
		},
	}
}

// Load loads configuration from an HCL file. A missing file yields the defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse %s: %s", filename, diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode %s: %s", filename, diags.Error())
	}

	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	defaults := Default().Simulation
	if c.Simulation == nil {
		c.Simulation = defaults
		return
	}

	s := c.Simulation
	if s.Players == nil {
		s.Players = defaults.Players
	}
	if s.Iterations == nil {
		s.Iterations = defaults.Iterations
	}
	if s.MaxSteals == nil {
		s.MaxSteals = defaults.MaxSteals
	}
	if s.ShuffleOrder == nil {
		s.ShuffleOrder = defaults.ShuffleOrder
	}
	if len(s.Strategies) == 0 {
		s.Strategies = defaults.Strategies
	}
}

// Apply layers command line values over the loaded settings
func (c *Config) Apply(o Overrides) {
	c.applyDefaults()
	s := c.Simulation

	if o.Players != nil {
		s.Players = o.Players
	}
	if o.Iterations != nil {
		s.Iterations = o.Iterations
	}
	if o.MaxSteals != nil {
		s.MaxSteals = o.MaxSteals
	}
	if o.PlayerOneGoesAgain != nil {
		s.PlayerOneGoesAgain = *o.PlayerOneGoesAgain
	}
	if o.Seed != nil {
		s.Seed = *o.Seed
	}
	if o.Workers != nil {
		s.Workers = *o.Workers
	}
	if len(o.Strategies) > 0 {
		s.Strategies = o.Strategies
	}
}

// Validate validates the simulation configuration
func (c *Config) Validate() error {
	if c.Simulation == nil {
		return fmt.Errorf("%w: missing simulation block", swap.ErrInvalidConfiguration)
	}

	var errs []error
	if n := intValue(c.Simulation.Iterations); n <= 0 {
		errs = append(errs, fmt.Errorf("iterations must be positive, got %d", n))
	}
	if c.Simulation.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative, got %d", c.Simulation.Workers))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", swap.ErrInvalidConfiguration, errors.Join(errs...))
	}

	game, err := c.Game()
	if err != nil {
		return err
	}
	return game.Validate()
}

// Game converts the settings into the per-game configuration
func (c *Config) Game() (swap.Config, error) {
	s := c.Simulation
	if s == nil {
		return swap.Config{}, fmt.Errorf("%w: missing simulation block", swap.ErrInvalidConfiguration)
	}

	strategies := make([]swap.Strategy, 0, len(s.Strategies))
	for _, name := range s.Strategies {
		st, err := swap.ParseStrategy(name)
		if err != nil {
			return swap.Config{}, err
		}
		strategies = append(strategies, st)
	}

	return swap.Config{
		Players:             intValue(s.Players),
		MaxSteals:           intValue(s.MaxSteals),
		LetPlayerOneGoAgain: s.PlayerOneGoesAgain,
		ShuffleOrder:        s.ShuffleOrder == nil || *s.ShuffleOrder,
		Strategies:          strategies,
	}, nil
}

// Games returns the number of games to simulate
func (s *Simulation) Games() int {
	return intValue(s.Iterations)
}

func intValue(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

func strategyNames(strategies []swap.Strategy) []string {
	names := make([]string, len(strategies))
	for i, s := range strategies {
		names[i] = s.String()
	}
	return names
}
