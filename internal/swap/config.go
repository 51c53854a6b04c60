package swap

import (
	"errors"
	"fmt"
)

const (
	DefaultPlayers   = 10
	DefaultMaxSteals = 3
)

// Config describes one game. Strategies is the pool each player's strategy
// is drawn from, uniformly at random.
type Config struct {
	Players             int
	MaxSteals           int
	LetPlayerOneGoAgain bool
	ShuffleOrder        bool
	Strategies          []Strategy
}

// DefaultConfig returns the configuration of the classic simulation
func DefaultConfig() Config {
	return Config{
		Players:      DefaultPlayers,
		MaxSteals:    DefaultMaxSteals,
		ShuffleOrder: true,
		Strategies:   AllStrategies(),
	}
}

// Validate fails fast on a configuration that cannot produce a game
func (c Config) Validate() error {
	var errs []error
	if c.Players <= 0 {
		errs = append(errs, fmt.Errorf("players must be positive, got %d", c.Players))
	}
	if c.MaxSteals <= 0 {
		errs = append(errs, fmt.Errorf("max steals must be positive, got %d", c.MaxSteals))
	}
	if len(c.Strategies) == 0 {
		errs = append(errs, errors.New("at least one strategy is required"))
	}
	for _, s := range c.Strategies {
		if !s.Valid() {
			errs = append(errs, fmt.Errorf("unknown strategy %d", uint8(s)))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfiguration, errors.Join(errs...))
	}
	return nil
}
