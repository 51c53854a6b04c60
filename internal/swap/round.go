package swap

import (
	"fmt"
	"math/rand/v2"
	"slices"
)

// State is the phase of a round
type State uint8

const (
	AwaitingTurn State = iota
	TurnInProgress
	GameComplete
)

func (s State) String() string {
	switch s {
	case AwaitingTurn:
		return "awaiting-turn"
	case TurnInProgress:
		return "turn-in-progress"
	case GameComplete:
		return "game-complete"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

// RoundOption configures a Round during creation.
type RoundOption func(*Round)

// WithEventSink delivers every open, steal and turn event to sink.
func WithEventSink(sink EventSink) RoundOption {
	return func(r *Round) { r.sink = sink }
}

// WithPlayerOneGoAgain gives the first player one extra turn once every
// gift has been opened.
func WithPlayerOneGoAgain(enabled bool) RoundOption {
	return func(r *Round) { r.goAgain = enabled }
}

// WithGameID tags the round's outcome.
func WithGameID(id string) RoundOption {
	return func(r *Round) { r.gameID = id }
}

// Round runs one game. Players are kept in turn order; the first player
// always opens on their regular turn.
type Round struct {
	players   []*Player
	gifts     []*Gift
	pool      []*Gift
	maxSteals int
	goAgain   bool
	gameID    string
	rng       *rand.Rand
	sink      EventSink

	// gifts that changed hands during the current top-level turn
	stolen map[*Gift]struct{}

	state       State
	turn        int
	invocations int
}

// NewRound creates a round over players (in turn order) and an unopened
// gift pool. The RNG is required and must not be shared with another
// round that runs concurrently.
func NewRound(rng *rand.Rand, players []*Player, gifts []*Gift, maxSteals int, opts ...RoundOption) *Round {
	if rng == nil {
		panic("rng is required for round creation")
	}
	if len(players) != len(gifts) {
		panic(fmt.Sprintf("need one gift per player: %d players, %d gifts", len(players), len(gifts)))
	}
	if maxSteals <= 0 {
		panic("maxSteals must be positive")
	}

	r := &Round{
		players:   players,
		gifts:     gifts,
		pool:      slices.Clone(gifts),
		maxSteals: maxSteals,
		rng:       rng,
		stolen:    make(map[*Gift]struct{}, len(gifts)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Play runs top-level turns until every gift is open, then the optional
// extra turn for the first player. The returned error is only ever an
// ErrInvariantViolation.
func (r *Round) Play() error {
	if r.state == GameComplete {
		return fmt.Errorf("%w: round already played", ErrInvariantViolation)
	}

	for len(r.pool) > 0 {
		before := len(r.pool)
		for i, p := range r.players {
			r.playTurn(i, p, false)
		}
		if len(r.pool) == before {
			return fmt.Errorf("%w: a full pass opened no gifts, %d remain", ErrInvariantViolation, len(r.pool))
		}
	}

	if r.goAgain && len(r.players) > 0 {
		r.playTurn(0, r.players[0], true)
	}

	r.state = GameComplete
	return r.verify()
}

func (r *Round) playTurn(i int, p *Player, bonus bool) {
	r.state = TurnInProgress
	r.turn = i
	clear(r.stolen)
	r.emit(Event{Kind: EventTurn, Actor: p.ID, Bonus: bonus})

	if i == 0 && !bonus && !p.HasGift() {
		r.Open(p)
	} else {
		p.Strategy.Apply(r, p)
	}

	r.state = AwaitingTurn
}

// Open hands p a random unopened gift. It does nothing once the pool is empty.
func (r *Round) Open(p *Player) {
	if len(r.pool) == 0 {
		return
	}

	idx := r.rng.IntN(len(r.pool))
	gift := r.pool[idx]
	r.pool = slices.Delete(r.pool, idx, idx+1)
	p.Gift = gift

	r.emit(Event{Kind: EventOpened, Actor: p.ID, Gift: gift.ID, Value: gift.Value})
}

// Steal swaps the thief's and victim's gifts unconditionally. Callers must
// check Eligible first.
func (r *Round) Steal(thief, victim *Player) {
	taken := victim.Gift
	if taken == nil {
		panic(fmt.Errorf("%w: player %d stole from player %d who holds nothing", ErrInvariantViolation, thief.ID, victim.ID))
	}

	victim.Gift = thief.Gift
	thief.Gift = taken
	taken.Steals++
	r.stolen[taken] = struct{}{}

	r.emit(Event{Kind: EventStolen, Actor: thief.ID, Other: victim.ID, Gift: taken.ID, Value: taken.Value})
}

// stealAndRespond steals and then gives the victim their immediate turn.
func (r *Round) stealAndRespond(thief, victim *Player) {
	r.Steal(thief, victim)
	victim.Strategy.Apply(r, victim)
}

// Eligible reports whether current may steal candidate's gift right now.
func (r *Round) Eligible(candidate, current *Player) bool {
	return candidate.Gift != nil &&
		candidate.Gift.Steals < r.maxSteals &&
		candidate.ID != current.ID &&
		!r.StolenThisTurn(candidate.Gift)
}

// EligibleCandidates returns, in turn order, every player current may steal from.
func (r *Round) EligibleCandidates(current *Player) []*Player {
	var out []*Player
	for _, p := range r.players {
		if r.Eligible(p, current) {
			out = append(out, p)
		}
	}
	return out
}

// bestEligible scans in turn order for the eligible holder of the most
// valuable gift. Only a strictly higher value replaces the current best, so
// ties go to the earliest player. accept further restricts candidates.
func (r *Round) bestEligible(current *Player, accept func(*Gift) bool) *Player {
	var best *Player
	highest := 0.0
	for _, p := range r.players {
		if !r.Eligible(p, current) {
			continue
		}
		if accept != nil && !accept(p.Gift) {
			continue
		}
		if p.Gift.Value > highest {
			highest = p.Gift.Value
			best = p
		}
	}
	return best
}

// heldMean is the mean value over every player holding a gift, eligible or not.
func (r *Round) heldMean() float64 {
	sum, n := 0.0, 0
	for _, p := range r.players {
		if p.Gift != nil {
			sum += p.Gift.Value
			n++
		}
	}
	if n == 0 {
		panic(fmt.Errorf("%w: mean requested before any gift was opened", ErrInvariantViolation))
	}
	return sum / float64(n)
}

// StolenThisTurn reports whether g already changed hands in the current
// top-level turn.
func (r *Round) StolenThisTurn(g *Gift) bool {
	_, ok := r.stolen[g]
	return ok
}

func (r *Round) emit(e Event) {
	if r.sink != nil {
		r.sink.OnEvent(e)
	}
}

// verify checks the end-of-game invariants: one gift per player, every gift
// held exactly once, no gift beyond the steal limit.
func (r *Round) verify() error {
	holders := make(map[*Gift]int, len(r.gifts))
	for _, p := range r.players {
		if p.Gift == nil {
			return fmt.Errorf("%w: player %d finished without a gift", ErrInvariantViolation, p.ID)
		}
		if prev, dup := holders[p.Gift]; dup {
			return fmt.Errorf("%w: gift %d held by players %d and %d", ErrInvariantViolation, p.Gift.ID, prev, p.ID)
		}
		holders[p.Gift] = p.ID
	}
	for _, g := range r.gifts {
		if _, ok := holders[g]; !ok {
			return fmt.Errorf("%w: gift %d was never assigned", ErrInvariantViolation, g.ID)
		}
		if g.Steals > r.maxSteals {
			return fmt.Errorf("%w: gift %d stolen %d times, limit %d", ErrInvariantViolation, g.ID, g.Steals, r.maxSteals)
		}
	}
	return nil
}

// Players returns the players in turn order
func (r *Round) Players() []*Player { return r.players }

// Gifts returns every gift in pool order, opened or not
func (r *Round) Gifts() []*Gift { return r.gifts }

// Pool returns the gifts still wrapped
func (r *Round) Pool() []*Gift { return r.pool }

func (r *Round) MaxSteals() int { return r.maxSteals }

func (r *Round) State() State { return r.state }

// Turn is the turn-order index of the player whose top-level turn is
// current, or was most recently played.
func (r *Round) Turn() int { return r.turn }

// Invocations counts how many times any strategy was applied, including
// re-turns after a steal.
func (r *Round) Invocations() int { return r.invocations }

func (r *Round) GameID() string { return r.gameID }
