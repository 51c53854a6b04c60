package statistics

import (
	"fmt"
	"math"

	"github.com/lox/yankeeswap/internal/swap"
)

// Bucket accumulates gift values for one position or strategy
type Bucket struct {
	Count int
	Sum   float64
	SumSq float64 // Sum of squares for variance calculation
}

// Add incorporates one gift value
func (b *Bucket) Add(v float64) {
	b.Count++
	b.Sum += v
	b.SumSq += v * v
}

// Merge folds another bucket into b
func (b *Bucket) Merge(o Bucket) {
	b.Count += o.Count
	b.Sum += o.Sum
	b.SumSq += o.SumSq
}

// Mean returns the arithmetic mean gift value
func (b Bucket) Mean() float64 {
	if b.Count == 0 {
		return 0
	}
	return b.Sum / float64(b.Count)
}

// Variance returns the sample variance
func (b Bucket) Variance() float64 {
	if b.Count < 2 {
		return 0
	}
	mean := b.Mean()
	v := (b.SumSq - float64(b.Count)*mean*mean) / float64(b.Count-1)
	if v < 0 {
		// rounding on near-constant samples
		return 0
	}
	return v
}

// StdDev returns the sample standard deviation
func (b Bucket) StdDev() float64 {
	return math.Sqrt(b.Variance())
}

// StdError returns the standard error of the mean
func (b Bucket) StdError() float64 {
	if b.Count == 0 {
		return 0
	}
	return b.StdDev() / math.Sqrt(float64(b.Count))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (b Bucket) ConfidenceInterval95() (float64, float64) {
	mean := b.Mean()
	margin := 1.96 * b.StdError()
	return mean - margin, mean + margin
}

// Statistics aggregates finished games by turn position and by strategy.
// It is not safe for concurrent use. The simulator adds outcomes in game
// order once every worker has finished, so the float sums do not depend on
// the worker count. Merge combines statistics gathered by separate runs.
type Statistics struct {
	Games      int
	Positions  []Bucket // index 0 is position 1
	Strategies []Bucket // indexed by swap.Strategy
	Overall    Bucket
	Steals     int // steals recorded on the final gifts
}

// New returns empty statistics sized for the given player count
func New(players int) *Statistics {
	return &Statistics{
		Positions:  make([]Bucket, players),
		Strategies: make([]Bucket, len(swap.AllStrategies())),
	}
}

// Add incorporates a finished game
func (s *Statistics) Add(o swap.Outcome) {
	if s.Strategies == nil {
		s.Strategies = make([]Bucket, len(swap.AllStrategies()))
	}
	s.Games++
	for _, r := range o.Results {
		for len(s.Positions) < r.Position {
			s.Positions = append(s.Positions, Bucket{})
		}
		s.Positions[r.Position-1].Add(r.GiftValue)
		if r.Strategy.Valid() {
			s.Strategies[r.Strategy].Add(r.GiftValue)
		}
		s.Overall.Add(r.GiftValue)
		s.Steals += r.GiftSteals
	}
}

// Merge folds statistics gathered elsewhere into s
func (s *Statistics) Merge(o *Statistics) {
	if s.Strategies == nil {
		s.Strategies = make([]Bucket, len(swap.AllStrategies()))
	}
	s.Games += o.Games
	for len(s.Positions) < len(o.Positions) {
		s.Positions = append(s.Positions, Bucket{})
	}
	for i, b := range o.Positions {
		s.Positions[i].Merge(b)
	}
	for i, b := range o.Strategies {
		s.Strategies[i].Merge(b)
	}
	s.Overall.Merge(o.Overall)
	s.Steals += o.Steals
}

// PositionMean returns the mean gift value at a 1-based turn position
func (s *Statistics) PositionMean(position int) float64 {
	if position < 1 || position > len(s.Positions) {
		return 0
	}
	return s.Positions[position-1].Mean()
}

// StrategyMean returns the mean gift value of players using st
func (s *Statistics) StrategyMean(st swap.Strategy) float64 {
	if !st.Valid() || int(st) >= len(s.Strategies) {
		return 0
	}
	return s.Strategies[st].Mean()
}

// BestPosition returns the position with the highest mean. ok is false
// before any game was added.
func (s *Statistics) BestPosition() (position int, mean float64, ok bool) {
	for i, b := range s.Positions {
		if b.Count == 0 {
			continue
		}
		if !ok || b.Mean() > mean {
			position, mean, ok = i+1, b.Mean(), true
		}
	}
	return position, mean, ok
}

// BestStrategy returns the strategy with the highest mean among those that
// were used at least once.
func (s *Statistics) BestStrategy() (st swap.Strategy, mean float64, ok bool) {
	for i, b := range s.Strategies {
		if b.Count == 0 {
			continue
		}
		if !ok || b.Mean() > mean {
			st, mean, ok = swap.Strategy(i), b.Mean(), true
		}
	}
	return st, mean, ok
}

// Validate checks that every bucket family accounts for the same players
func (s *Statistics) Validate() error {
	if s.Games <= 0 {
		return fmt.Errorf("invalid games count: %d", s.Games)
	}

	positions := 0
	for _, b := range s.Positions {
		positions += b.Count
	}
	if positions != s.Overall.Count {
		return fmt.Errorf("position total (%d) does not match overall total (%d)", positions, s.Overall.Count)
	}

	strategies := 0
	for _, b := range s.Strategies {
		strategies += b.Count
	}
	if strategies != s.Overall.Count {
		return fmt.Errorf("strategy total (%d) does not match overall total (%d)", strategies, s.Overall.Count)
	}

	if s.Overall.Count%s.Games != 0 {
		return fmt.Errorf("%d results cannot be split evenly over %d games", s.Overall.Count, s.Games)
	}
	return nil
}
