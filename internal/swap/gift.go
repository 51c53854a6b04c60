package swap

import "fmt"

// Gift is a wrapped present. Value is fixed at creation; Steals counts how
// many times the gift has changed hands through a steal.
type Gift struct {
	ID     int
	Value  float64
	Steals int
}

// NewGift creates an unopened gift with the given identity and value.
func NewGift(id int, value float64) *Gift {
	return &Gift{ID: id, Value: value}
}

// Locked reports whether the gift can no longer be stolen.
func (g *Gift) Locked(maxSteals int) bool {
	return g.Steals >= maxSteals
}

func (g *Gift) String() string {
	return fmt.Sprintf("gift %d (%.4f, %d steals)", g.ID, g.Value, g.Steals)
}
