// Package swap implements the Yankee Swap (white elephant) gift exchange.
//
// The main type is Round, which runs a single game: players take turns in a
// fixed order and either open a wrapped gift or steal an opened one from
// another player, subject to a per-gift steal limit. A player who is stolen
// from immediately takes another turn, so a single top-level turn can
// cascade into a chain of steals. Within one chain a gift can change hands
// at most once.
//
// # Basic Usage
//
// Create and play a game from a configuration:
//
//	rng := randutil.New(42)
//	r, err := swap.NewGame(rng, swap.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	if err := r.Play(); err != nil {
//	    return err
//	}
//	outcome := r.Outcome()
//
// # Deterministic Testing
//
// NewRound accepts pre-built players and gifts, which makes it possible to
// fix gift values, strategies and turn order:
//
//	gifts := []*swap.Gift{swap.NewGift(1, 0.9), swap.NewGift(2, 0.5)}
//	players := []*swap.Player{
//	    swap.NewPlayer(1, swap.AlwaysOpen),
//	    swap.NewPlayer(2, swap.AlwaysSteal),
//	}
//	r := swap.NewRound(rng, players, gifts, 1, swap.WithEventSink(&rec))
//
// # Strategies
//
// Strategy is a closed set of five decision rules dispatched through
// Strategy.Apply. Every rule leaves the acting player holding a gift when
// one is available, either directly or through the chain it triggers.
package swap
