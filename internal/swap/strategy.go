package swap

import (
	"fmt"
	"strings"
)

// Strategy is one of the fixed decision rules a player follows.
type Strategy uint8

const (
	// AlwaysOpen opens a gift while any remain, then steals at random.
	AlwaysOpen Strategy = iota
	// AlwaysSteal takes the most valuable eligible gift, opening only when
	// nothing can be stolen.
	AlwaysSteal
	// StealOnCoinFlip behaves like AlwaysSteal on heads and opens on tails.
	StealOnCoinFlip
	// StealAboveMean steals only when the best eligible gift beats the mean
	// value of all opened gifts.
	StealAboveMean
	// StealNearlyDeadGift prefers a gift one steal away from being locked.
	StealNearlyDeadGift

	numStrategies
)

var strategyNames = [numStrategies]string{
	AlwaysOpen:          "always-open",
	AlwaysSteal:         "always-steal",
	StealOnCoinFlip:     "steal-on-coin-flip",
	StealAboveMean:      "steal-above-mean",
	StealNearlyDeadGift: "steal-nearly-dead-gift",
}

// AllStrategies returns every strategy in declaration order
func AllStrategies() []Strategy {
	out := make([]Strategy, numStrategies)
	for i := range out {
		out[i] = Strategy(i)
	}
	return out
}

func (s Strategy) String() string {
	if s.Valid() {
		return strategyNames[s]
	}
	return fmt.Sprintf("strategy(%d)", uint8(s))
}

// Valid reports whether s is one of the declared strategies
func (s Strategy) Valid() bool {
	return s < numStrategies
}

// ParseStrategy maps a strategy name back to its value. Names are matched
// case-insensitively and underscores are accepted in place of dashes.
func ParseStrategy(name string) (Strategy, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
	for i, n := range strategyNames {
		if n == normalized {
			return Strategy(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown strategy %q", ErrInvalidConfiguration, name)
}

func (s Strategy) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: unknown strategy %d", ErrInvalidConfiguration, uint8(s))
	}
	return []byte(s.String()), nil
}

func (s *Strategy) UnmarshalText(text []byte) error {
	parsed, err := ParseStrategy(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Apply runs the strategy's decision for p against the round.
func (s Strategy) Apply(r *Round, p *Player) {
	r.invocations++
	switch s {
	case AlwaysOpen:
		alwaysOpen(r, p)
	case AlwaysSteal:
		alwaysSteal(r, p)
	case StealOnCoinFlip:
		stealOnCoinFlip(r, p)
	case StealAboveMean:
		stealAboveMean(r, p)
	case StealNearlyDeadGift:
		stealNearlyDeadGift(r, p)
	default:
		panic(fmt.Errorf("%w: player %d has unknown strategy %d", ErrInvariantViolation, p.ID, uint8(s)))
	}
}

func alwaysOpen(r *Round, p *Player) {
	if p.HasGift() {
		return
	}
	if len(r.pool) > 0 {
		r.Open(p)
		return
	}

	candidates := r.EligibleCandidates(p)
	if len(candidates) == 0 {
		return
	}
	r.stealAndRespond(p, candidates[r.rng.IntN(len(candidates))])
}

func alwaysSteal(r *Round, p *Player) {
	if victim := r.bestEligible(p, nil); victim != nil {
		r.stealAndRespond(p, victim)
		return
	}
	r.Open(p)
}

func stealOnCoinFlip(r *Round, p *Player) {
	if r.rng.IntN(2) == 0 {
		alwaysSteal(r, p)
		return
	}
	r.Open(p)
}

func stealAboveMean(r *Round, p *Player) {
	mean := r.heldMean()
	if best := r.bestEligible(p, nil); best != nil && best.Gift.Value > mean {
		alwaysSteal(r, p)
		return
	}
	r.Open(p)
}

// stealNearlyDeadGift falls back to alwaysSteal, not to opening, when no
// nearly locked gift beats the mean.
func stealNearlyDeadGift(r *Round, p *Player) {
	mean := r.heldMean()
	nearlyDead := func(g *Gift) bool { return g.Steals == r.maxSteals-1 }
	if target := r.bestEligible(p, nearlyDead); target != nil && target.Gift.Value > mean {
		r.stealAndRespond(p, target)
		return
	}
	alwaysSteal(r, p)
}
