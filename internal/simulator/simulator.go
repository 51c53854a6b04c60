package simulator

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/yankeeswap/internal/gameid"
	"github.com/lox/yankeeswap/internal/randutil"
	"github.com/lox/yankeeswap/internal/statistics"
	"github.com/lox/yankeeswap/internal/swap"
	"github.com/lox/yankeeswap/internal/trace"
)

// ProgressFunc is told how many games have finished. It is called from
// worker goroutines and must be safe for concurrent use.
type ProgressFunc func(done, total int)

// Config holds configuration for running simulations
type Config struct {
	Games   int
	Workers int // 0 means runtime.NumCPU()
	Seed    int64
	Game    swap.Config
	Trace   bool
	Logger  *log.Logger
	Clock   quartz.Clock

	Progress ProgressFunc

	// Events, if set, returns an extra sink for game n. It is called once
	// per game and the sink only sees that game's events.
	Events func(n int) swap.EventSink
}

// Result is everything a finished run produced
type Result struct {
	Stats    *statistics.Statistics
	Outcomes []swap.Outcome // in game order
	Seed     int64
	Workers  int
	Elapsed  time.Duration
}

// GamesPerSecond reports throughput, or 0 if no time elapsed
func (r *Result) GamesPerSecond() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(len(r.Outcomes)) / r.Elapsed.Seconds()
}

// Simulator runs many independent Yankee Swap games
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Logger == nil {
		config.Logger = log.Default()
	}
	if config.Clock == nil {
		config.Clock = quartz.NewReal()
	}
	return &Simulator{config: config}
}

func (s *Simulator) validate() error {
	var errs []error
	if s.config.Games <= 0 {
		errs = append(errs, fmt.Errorf("games must be positive, got %d", s.config.Games))
	}
	if s.config.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative, got %d", s.config.Workers))
	}
	if err := s.config.Game.Validate(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", swap.ErrInvalidConfiguration, errors.Join(errs...))
	}
	return nil
}

func (s *Simulator) workers() int {
	workers := s.config.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}
	return min(workers, s.config.Games)
}

// Run plays every game and aggregates the outcomes. Game n always uses the
// seed derived from (Seed, n), so the result does not depend on Workers.
func (s *Simulator) Run(ctx context.Context) (*Result, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}

	logger := s.config.Logger.WithPrefix("simulator")
	workers := s.workers()
	total := s.config.Games
	start := s.config.Clock.Now()

	logger.Debug("starting", "games", total, "workers", workers, "seed", s.config.Seed,
		"players", s.config.Game.Players, "max_steals", s.config.Game.MaxSteals)

	outcomes := make([]swap.Outcome, total)
	var done atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	for w := range workers {
		g.Go(func() error {
			// Each worker owns every workers-th slot, so no two goroutines
			// write the same element.
			for n := w; n < total; n += workers {
				if err := ctx.Err(); err != nil {
					return err
				}
				out, err := s.PlayGame(n)
				if err != nil {
					return err
				}
				outcomes[n] = out

				finished := int(done.Add(1))
				if s.config.Progress != nil {
					s.config.Progress(finished, total)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := statistics.New(s.config.Game.Players)
	for _, out := range outcomes {
		stats.Add(out)
	}
	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	result := &Result{
		Stats:    stats,
		Outcomes: outcomes,
		Seed:     s.config.Seed,
		Workers:  workers,
		Elapsed:  s.config.Clock.Now().Sub(start),
	}
	logger.Info("simulation complete", "games", total, "elapsed", result.Elapsed.Round(time.Millisecond),
		"games_per_sec", fmt.Sprintf("%.0f", result.GamesPerSecond()))
	return result, nil
}

// PlayGame plays game n of the run in isolation. Panics raised by the game
// engine are returned as errors carrying the game's seed.
func (s *Simulator) PlayGame(n int) (out swap.Outcome, err error) {
	seed := randutil.Derive(s.config.Seed, n)
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok && errors.Is(e, swap.ErrInvariantViolation) {
				err = fmt.Errorf("game %d (seed %d): %w", n, seed, e)
				return
			}
			err = fmt.Errorf("game %d (seed %d): %w: %v", n, seed, swap.ErrInvariantViolation, r)
		}
	}()

	rng := randutil.New(seed)
	id := gameid.NewGenerator(rng, s.config.Clock).Generate()

	var narrator, extra swap.EventSink
	if s.config.Trace {
		narrator = trace.New(s.config.Logger, id, trace.WithTurns(true))
	}
	if s.config.Events != nil {
		extra = s.config.Events(n)
	}

	opts := []swap.RoundOption{swap.WithGameID(id)}
	if sink := swap.MultiSink(narrator, extra); sink != nil {
		opts = append(opts, swap.WithEventSink(sink))
	}

	round, err := swap.NewGame(rng, s.config.Game, opts...)
	if err != nil {
		return swap.Outcome{}, err
	}
	if err := round.Play(); err != nil {
		return swap.Outcome{}, fmt.Errorf("game %d (seed %d): %w", n, seed, err)
	}
	return round.Outcome(), nil
}

// RunSimulation is a convenience function for running a simulation with basic parameters
func RunSimulation(ctx context.Context, games int, game swap.Config, seed int64, logger *log.Logger) (*Result, error) {
	return New(Config{
		Games:  games,
		Seed:   seed,
		Game:   game,
		Logger: logger,
	}).Run(ctx)
}
