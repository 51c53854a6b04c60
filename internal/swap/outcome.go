package swap

// Result is one player's final standing
type Result struct {
	PlayerID   int      `json:"player_id"`
	Position   int      `json:"position"` // 1-based turn order
	Strategy   Strategy `json:"strategy"`
	GiftID     int      `json:"gift_id"`
	GiftValue  float64  `json:"gift_value"`
	GiftSteals int      `json:"gift_steals"`
}

// Outcome is the record of a finished game, ordered by turn position
type Outcome struct {
	GameID  string   `json:"game_id,omitempty"`
	Results []Result `json:"results"`
}

// Outcome snapshots every player's current holding. Players without a gift
// report a zero gift ID and value; after a successful Play there are none.
func (r *Round) Outcome() Outcome {
	results := make([]Result, len(r.players))
	for i, p := range r.players {
		res := Result{
			PlayerID: p.ID,
			Position: i + 1,
			Strategy: p.Strategy,
		}
		if p.Gift != nil {
			res.GiftID = p.Gift.ID
			res.GiftValue = p.Gift.Value
			res.GiftSteals = p.Gift.Steals
		}
		results[i] = res
	}
	return Outcome{GameID: r.gameID, Results: results}
}
