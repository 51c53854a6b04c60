package swap

import "math/rand/v2"

// NewGame builds a fresh round from cfg: gifts with values drawn uniformly
// from [0,1), players with randomly assigned strategies, and (when enabled)
// a shuffled turn order. All randomness comes from rng.
func NewGame(rng *rand.Rand, cfg Config, opts ...RoundOption) (*Round, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	gifts := make([]*Gift, cfg.Players)
	for i := range gifts {
		gifts[i] = NewGift(i+1, rng.Float64())
	}

	players := make([]*Player, cfg.Players)
	for i := range players {
		players[i] = NewPlayer(i+1, cfg.Strategies[rng.IntN(len(cfg.Strategies))])
	}

	if cfg.ShuffleOrder {
		rng.Shuffle(len(players), func(i, j int) {
			players[i], players[j] = players[j], players[i]
		})
	}

	opts = append([]RoundOption{WithPlayerOneGoAgain(cfg.LetPlayerOneGoAgain)}, opts...)
	return NewRound(rng, players, gifts, cfg.MaxSteals, opts...), nil
}
