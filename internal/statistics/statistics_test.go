package statistics

import (
	"math"
	"testing"

	"github.com/lox/yankeeswap/internal/swap"
)

func outcome(results ...swap.Result) swap.Outcome {
	return swap.Outcome{Results: results}
}

func TestBucket_Empty(t *testing.T) {
	var b Bucket

	if b.Mean() != 0 {
		t.Errorf("Expected mean of 0 for empty bucket, got %f", b.Mean())
	}
	if b.Variance() != 0 {
		t.Errorf("Expected variance of 0 for empty bucket, got %f", b.Variance())
	}
	if b.StdDev() != 0 {
		t.Errorf("Expected stddev of 0 for empty bucket, got %f", b.StdDev())
	}
	if b.StdError() != 0 {
		t.Errorf("Expected stderr of 0 for empty bucket, got %f", b.StdError())
	}
}

func TestBucket_Moments(t *testing.T) {
	var b Bucket
	for _, v := range []float64{0.1, 0.2, 0.3, 0.4} {
		b.Add(v)
	}

	if math.Abs(b.Mean()-0.25) > 1e-12 {
		t.Errorf("Expected mean of 0.25, got %f", b.Mean())
	}
	// sample variance of 0.1..0.4 = 0.0166...
	if math.Abs(b.Variance()-0.05/3) > 1e-12 {
		t.Errorf("Expected variance of %f, got %f", 0.05/3, b.Variance())
	}

	low, high := b.ConfidenceInterval95()
	if low >= b.Mean() || high <= b.Mean() {
		t.Errorf("Expected CI around the mean, got [%f, %f]", low, high)
	}
	if math.Abs((high-low)/2-1.96*b.StdError()) > 1e-12 {
		t.Errorf("Expected CI half width of 1.96 SE, got %f", (high-low)/2)
	}
}

func TestBucket_ConstantValues(t *testing.T) {
	var b Bucket
	for range 1000 {
		b.Add(0.1)
	}
	if b.Variance() != 0 {
		t.Errorf("Expected zero variance for constant values, got %g", b.Variance())
	}
}

func TestStatistics_Add(t *testing.T) {
	s := New(3)
	s.Add(outcome(
		swap.Result{PlayerID: 2, Position: 1, Strategy: swap.AlwaysOpen, GiftValue: 0.2, GiftSteals: 0},
		swap.Result{PlayerID: 3, Position: 2, Strategy: swap.AlwaysSteal, GiftValue: 0.9, GiftSteals: 1},
		swap.Result{PlayerID: 1, Position: 3, Strategy: swap.AlwaysSteal, GiftValue: 0.5, GiftSteals: 2},
	))
	s.Add(outcome(
		swap.Result{PlayerID: 1, Position: 1, Strategy: swap.StealAboveMean, GiftValue: 0.4},
		swap.Result{PlayerID: 2, Position: 2, Strategy: swap.AlwaysOpen, GiftValue: 0.3},
		swap.Result{PlayerID: 3, Position: 3, Strategy: swap.AlwaysSteal, GiftValue: 0.8, GiftSteals: 1},
	))

	if s.Games != 2 {
		t.Errorf("Expected 2 games, got %d", s.Games)
	}
	if math.Abs(s.PositionMean(1)-0.3) > 1e-12 {
		t.Errorf("Expected position 1 mean of 0.3, got %f", s.PositionMean(1))
	}
	if math.Abs(s.PositionMean(3)-0.65) > 1e-12 {
		t.Errorf("Expected position 3 mean of 0.65, got %f", s.PositionMean(3))
	}
	if got := s.Strategies[swap.AlwaysSteal].Count; got != 3 {
		t.Errorf("Expected 3 always-steal results, got %d", got)
	}
	if math.Abs(s.StrategyMean(swap.AlwaysSteal)-(0.9+0.5+0.8)/3) > 1e-12 {
		t.Errorf("Unexpected always-steal mean %f", s.StrategyMean(swap.AlwaysSteal))
	}
	if s.StrategyMean(swap.StealOnCoinFlip) != 0 {
		t.Errorf("Expected unused strategy mean of 0, got %f", s.StrategyMean(swap.StealOnCoinFlip))
	}
	if s.Steals != 4 {
		t.Errorf("Expected 4 steals, got %d", s.Steals)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("Expected valid statistics, got %v", err)
	}

	pos, mean, ok := s.BestPosition()
	if !ok || pos != 3 || math.Abs(mean-0.65) > 1e-12 {
		t.Errorf("Expected best position 3 at 0.65, got %d at %f (ok=%v)", pos, mean, ok)
	}
	st, _, ok := s.BestStrategy()
	if !ok || st != swap.AlwaysSteal {
		t.Errorf("Expected best strategy always-steal, got %v (ok=%v)", st, ok)
	}
}

func TestStatistics_OutOfRange(t *testing.T) {
	s := New(2)
	if s.PositionMean(0) != 0 || s.PositionMean(3) != 0 {
		t.Error("Expected 0 for out of range positions")
	}
	if s.StrategyMean(swap.Strategy(99)) != 0 {
		t.Error("Expected 0 for unknown strategy")
	}
	if _, _, ok := s.BestPosition(); ok {
		t.Error("Expected no best position before any game")
	}
	if _, _, ok := s.BestStrategy(); ok {
		t.Error("Expected no best strategy before any game")
	}
}

func TestStatistics_GrowsPositions(t *testing.T) {
	var s Statistics
	s.Add(outcome(swap.Result{Position: 4, Strategy: swap.AlwaysOpen, GiftValue: 0.7}))
	if len(s.Positions) != 4 {
		t.Fatalf("Expected 4 positions, got %d", len(s.Positions))
	}
	if s.PositionMean(4) != 0.7 {
		t.Errorf("Expected position 4 mean of 0.7, got %f", s.PositionMean(4))
	}
}

func TestStatistics_Merge(t *testing.T) {
	a, b, all := New(2), New(2), New(2)
	games := []swap.Outcome{
		outcome(swap.Result{Position: 1, Strategy: swap.AlwaysOpen, GiftValue: 0.1}, swap.Result{Position: 2, Strategy: swap.AlwaysSteal, GiftValue: 0.6}),
		outcome(swap.Result{Position: 1, Strategy: swap.StealNearlyDeadGift, GiftValue: 0.9}, swap.Result{Position: 2, Strategy: swap.AlwaysSteal, GiftValue: 0.2}),
		outcome(swap.Result{Position: 1, Strategy: swap.AlwaysOpen, GiftValue: 0.5}, swap.Result{Position: 2, Strategy: swap.StealOnCoinFlip, GiftValue: 0.3}),
	}
	for i, g := range games {
		all.Add(g)
		if i%2 == 0 {
			a.Add(g)
		} else {
			b.Add(g)
		}
	}

	a.Merge(b)
	if a.Games != all.Games {
		t.Errorf("Expected %d games after merge, got %d", all.Games, a.Games)
	}
	for pos := 1; pos <= 2; pos++ {
		if math.Abs(a.PositionMean(pos)-all.PositionMean(pos)) > 1e-12 {
			t.Errorf("Position %d: merged mean %f != direct mean %f", pos, a.PositionMean(pos), all.PositionMean(pos))
		}
	}
	for _, st := range swap.AllStrategies() {
		if a.Strategies[st] != all.Strategies[st] {
			t.Errorf("Strategy %v: merged %+v != direct %+v", st, a.Strategies[st], all.Strategies[st])
		}
	}
	if err := a.Validate(); err != nil {
		t.Errorf("Expected valid merged statistics, got %v", err)
	}
}

func TestStatistics_Validate(t *testing.T) {
	s := New(2)
	if err := s.Validate(); err == nil {
		t.Error("Expected error for zero games")
	}

	s.Add(outcome(swap.Result{Position: 1, Strategy: swap.AlwaysOpen, GiftValue: 0.5}, swap.Result{Position: 2, Strategy: swap.AlwaysOpen, GiftValue: 0.5}))
	s.Positions[0].Count++
	if err := s.Validate(); err == nil {
		t.Error("Expected error for inconsistent position totals")
	}
}
