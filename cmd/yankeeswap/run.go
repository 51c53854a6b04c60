package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/alecthomas/kong"
	"github.com/coder/quartz"
	"github.com/mattn/go-isatty"

	"github.com/lox/yankeeswap/internal/config"
	"github.com/lox/yankeeswap/internal/report"
	"github.com/lox/yankeeswap/internal/simulator"
)

// CLI runs a batch of simulated games. Positional arguments and flags
// override the configuration file, which overrides the built-in defaults.
type CLI struct {
	Version kong.VersionFlag `help:"Show version"`

	Players    *int   `arg:"" optional:"" help:"Number of players (default 10)"`
	Iterations *int   `arg:"" optional:"" help:"Number of games to simulate (default 10000)"`
	MaxSteals  *int   `arg:"" optional:"" name:"max-steals" help:"Steals before a gift is locked (default 3)"`
	GoAgain    string `arg:"" optional:"" name:"go-again" help:"Let player one take another turn once every gift is open (true/false)"`

	Config     string   `short:"c" type:"path" default:"yankeeswap.hcl" help:"HCL configuration file (defaults apply if missing)"`
	Seed       *int64   `help:"RNG seed for reproducible runs (0 picks one from the clock)"`
	Workers    *int     `short:"w" help:"Games to play in parallel (0 = one per CPU)"`
	Strategies []string `short:"s" help:"Restrict the strategy pool, e.g. always-steal,steal-above-mean"`
	Trace      bool     `help:"Log every open and steal"`
	Verbose    bool     `short:"v" help:"Verbose logging"`
	Plain      bool     `help:"Disable colour output"`
	NoProgress bool     `help:"Hide the progress bar"`
	Output     string   `short:"o" type:"path" help:"Write a JSON summary to this file"`
}

func (c *CLI) overrides() (config.Overrides, error) {
	o := config.Overrides{
		Players:    c.Players,
		Iterations: c.Iterations,
		MaxSteals:  c.MaxSteals,
		Seed:       c.Seed,
		Workers:    c.Workers,
		Strategies: c.Strategies,
	}
	if c.GoAgain != "" {
		again, err := strconv.ParseBool(c.GoAgain)
		if err != nil {
			return o, fmt.Errorf("invalid go-again value %q: expected true or false", c.GoAgain)
		}
		o.PlayerOneGoesAgain = &again
	}
	return o, nil
}

// settings resolves the configuration file and command line into a run
func (c *CLI) settings() (*config.Config, error) {
	overrides, err := c.overrides()
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(c.Config)
	if err != nil {
		return nil, err
	}
	cfg.Apply(overrides)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *CLI) Run() error {
	logger := setupLogger(c.Verbose || c.Trace, c.Plain)

	cfg, err := c.settings()
	if err != nil {
		return err
	}
	game, err := cfg.Game()
	if err != nil {
		return err
	}

	clock := quartz.NewReal()

	seed := cfg.Simulation.Seed
	if seed == 0 {
		seed = seedFromClock(clock)
		logger.Debug("Using random seed", "seed", seed)
	} else {
		logger.Debug("Using deterministic seed", "seed", seed)
	}

	ctx := setupSignalHandler(logger)

	simCfg := simulator.Config{
		Games:   cfg.Simulation.Games(),
		Workers: cfg.Simulation.Workers,
		Seed:    seed,
		Game:    game,
		Trace:   c.Trace,
		Logger:  logger,
		Clock:   clock,
	}

	var bar *report.Progress
	if !c.NoProgress && !c.Trace && isatty.IsTerminal(os.Stderr.Fd()) {
		bar = report.NewProgress(os.Stderr, clock, c.Plain)
		simCfg.Progress = bar.Update
	}

	res, err := simulator.New(simCfg).Run(ctx)
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	summary := report.NewSummary(res, game)
	if err := report.New(os.Stdout, c.Plain).Print(summary); err != nil {
		return err
	}

	if c.Output != "" {
		if err := report.WriteJSON(c.Output, summary); err != nil {
			return err
		}
		logger.Info("Wrote summary", "path", c.Output)
	}
	return nil
}

func seedFromClock(clock quartz.Clock) int64 {
	return clock.Now().UnixNano()
}
