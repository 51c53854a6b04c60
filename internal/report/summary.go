package report

import (
	"strconv"

	"github.com/lox/yankeeswap/internal/fileutil"
	"github.com/lox/yankeeswap/internal/simulator"
	"github.com/lox/yankeeswap/internal/swap"
)

// Row is one line of a results table
type Row struct {
	Name     string  `json:"name"`
	Count    int     `json:"count"`
	Mean     float64 `json:"mean"`
	StdError float64 `json:"std_error"`
	CILow    float64 `json:"ci95_low"`
	CIHigh   float64 `json:"ci95_high"`
}

// Summary is the machine readable result of a run
type Summary struct {
	Games              int      `json:"games"`
	Players            int      `json:"players"`
	MaxSteals          int      `json:"max_steals"`
	PlayerOneGoesAgain bool     `json:"player_one_goes_again"`
	ShuffleOrder       bool     `json:"shuffle_order"`
	StrategyPool       []string `json:"strategy_pool"`
	Seed               int64    `json:"seed"`
	Workers            int      `json:"workers"`
	ElapsedMS          int64    `json:"elapsed_ms"`
	GamesPerSecond     float64  `json:"games_per_sec"`
	MeanValue          float64  `json:"mean_value"`
	TotalSteals        int      `json:"total_steals"`
	BestPosition       string   `json:"best_position,omitempty"`
	BestStrategy       string   `json:"best_strategy,omitempty"`
	Positions          []Row    `json:"positions"`
	Strategies         []Row    `json:"strategies"`
}

// NewSummary condenses a finished run
func NewSummary(res *simulator.Result, game swap.Config) Summary {
	stats := res.Stats
	names := make([]string, len(game.Strategies))
	for i, s := range game.Strategies {
		names[i] = s.String()
	}

	s := Summary{
		Games:              stats.Games,
		Players:            game.Players,
		MaxSteals:          game.MaxSteals,
		PlayerOneGoesAgain: game.LetPlayerOneGoAgain,
		ShuffleOrder:       game.ShuffleOrder,
		StrategyPool:       names,
		Seed:               res.Seed,
		Workers:            res.Workers,
		ElapsedMS:          res.Elapsed.Milliseconds(),
		GamesPerSecond:     res.GamesPerSecond(),
		MeanValue:          stats.Overall.Mean(),
		TotalSteals:        stats.Steals,
		Positions:          PositionRows(stats),
		Strategies:         StrategyRows(stats),
	}
	if pos, _, ok := stats.BestPosition(); ok {
		s.BestPosition = strconv.Itoa(pos)
	}
	if st, _, ok := stats.BestStrategy(); ok {
		s.BestStrategy = st.String()
	}
	return s
}

// WriteJSON writes the summary to filename atomically
func WriteJSON(filename string, s Summary) error {
	return fileutil.WriteJSONAtomic(filename, s)
}
