package swap

// Player is a participant. ID is stable for the whole game and does not
// change when the turn order is shuffled.
type Player struct {
	ID       int
	Strategy Strategy
	Gift     *Gift
}

// NewPlayer creates a player holding no gift.
func NewPlayer(id int, strategy Strategy) *Player {
	return &Player{ID: id, Strategy: strategy}
}

// HasGift returns true once the player holds a gift
func (p *Player) HasGift() bool {
	return p.Gift != nil
}
