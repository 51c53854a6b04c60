// Package trace narrates game events through a structured logger.
package trace

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/lox/yankeeswap/internal/swap"
)

// Logger is a swap.EventSink that writes one log line per event
type Logger struct {
	logger *log.Logger
	level  log.Level
	turns  bool
}

// Option configures a Logger
type Option func(*Logger)

// WithLevel sets the level events are logged at (default debug)
func WithLevel(level log.Level) Option {
	return func(l *Logger) { l.level = level }
}

// WithTurns also logs the start of every top-level turn
func WithTurns(enabled bool) Option {
	return func(l *Logger) { l.turns = enabled }
}

// New returns a narrator for one game. gameID is attached to every line
// so interleaved output from parallel games can be told apart.
func New(logger *log.Logger, gameID string, opts ...Option) *Logger {
	l := &Logger{
		logger: logger.WithPrefix("game").With("id", gameID),
		level:  log.DebugLevel,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Logger) OnEvent(e swap.Event) {
	switch e.Kind {
	case swap.EventTurn:
		if !l.turns {
			return
		}
		l.logger.Log(l.level, e.String())
	case swap.EventOpened:
		l.logger.Log(l.level, fmt.Sprintf("Player %d OPENED gift %d", e.Actor, e.Gift), "value", e.Value)
	case swap.EventStolen:
		l.logger.Log(l.level, fmt.Sprintf("Player %d STOLE gift %d", e.Actor, e.Gift), "from", e.Other, "value", e.Value)
	default:
		l.logger.Warn("unknown event", "kind", e.Kind)
	}
}
