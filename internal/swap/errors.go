package swap

import "errors"

var (
	// ErrInvalidConfiguration is returned before any game starts when the
	// configuration cannot produce a playable game.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrInvariantViolation marks a broken structural invariant. It always
	// indicates a programming bug, never a recoverable game condition.
	ErrInvariantViolation = errors.New("invariant violation")
)
