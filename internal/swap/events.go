package swap

import "fmt"

// EventKind identifies what happened during a game
type EventKind string

const (
	EventTurn   EventKind = "turn"
	EventOpened EventKind = "opened"
	EventStolen EventKind = "stolen"
)

// String returns the string representation of the event kind
func (k EventKind) String() string {
	return string(k)
}

// Event is a single step of a game. Other is the victim's ID for steals and
// zero otherwise. Gift and Value are zero for turn events.
type Event struct {
	Kind  EventKind
	Actor int
	Other int
	Gift  int
	Value float64
	Bonus bool // set on the first player's extra turn
}

func (e Event) String() string {
	switch e.Kind {
	case EventTurn:
		if e.Bonus {
			return fmt.Sprintf("Player %d goes again", e.Actor)
		}
		return fmt.Sprintf("Player %d's turn", e.Actor)
	case EventOpened:
		return fmt.Sprintf("Player %d OPENED gift %d with value %v", e.Actor, e.Gift, e.Value)
	case EventStolen:
		return fmt.Sprintf("Player %d STOLE gift %d from %d with value %v", e.Actor, e.Gift, e.Other, e.Value)
	default:
		return fmt.Sprintf("unknown event %q", string(e.Kind))
	}
}

// EventSink receives events in the order they happen. Implementations are
// called synchronously from the game loop.
type EventSink interface {
	OnEvent(Event)
}

// EventSinkFunc adapts a function to EventSink
type EventSinkFunc func(Event)

func (f EventSinkFunc) OnEvent(e Event) { f(e) }

// Recorder is an EventSink that keeps every event. It is not safe for
// concurrent use; give each game its own Recorder.
type Recorder struct {
	Events []Event
}

func (r *Recorder) OnEvent(e Event) {
	r.Events = append(r.Events, e)
}

// Count returns how many recorded events have the given kind
func (r *Recorder) Count(kind EventKind) int {
	n := 0
	for _, e := range r.Events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// Filter returns the recorded events of the given kind
func (r *Recorder) Filter(kind EventKind) []Event {
	var out []Event
	for _, e := range r.Events {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

type multiSink []EventSink

func (m multiSink) OnEvent(e Event) {
	for _, s := range m {
		s.OnEvent(e)
	}
}

// MultiSink fans events out to every non-nil sink
func MultiSink(sinks ...EventSink) EventSink {
	var out multiSink
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	switch len(out) {
	case 0:
		return nil
	case 1:
		return out[0]
	}
	return out
}
