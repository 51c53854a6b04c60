package swap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMultiSink(t *testing.T) {
	t.Run("no sinks", func(t *testing.T) {
		assert.Nil(t, MultiSink())
		assert.Nil(t, MultiSink(nil, nil))
	})

	t.Run("single sink is returned as is", func(t *testing.T) {
		rec := &Recorder{}
		assert.Same(t, rec, MultiSink(nil, rec))
	})

	t.Run("fans out in order", func(t *testing.T) {
		var order []string
		first := EventSinkFunc(func(Event) { order = append(order, "first") })
		rec := &Recorder{}
		sink := MultiSink(first, nil, rec)

		e := Event{Kind: EventOpened, Actor: 2, Gift: 1, Value: 0.3}
		sink.OnEvent(e)

		assert.Equal(t, []string{"first"}, order)
		assert.Equal(t, []Event{e}, rec.Events)
	})

	t.Run("used as a round sink", func(t *testing.T) {
		var opened int
		rec := &Recorder{}
		counter := EventSinkFunc(func(e Event) {
			if e.Kind == EventOpened {
				opened++
			}
		})
		r, _, _ := newTestRound(t, 3, []float64{0.2, 0.6, 0.4},
			[]Strategy{AlwaysOpen, AlwaysSteal, StealOnCoinFlip}, 2, WithEventSink(MultiSink(counter, rec)))
		assert.NoError(t, r.Play())
		assert.Equal(t, 3, opened)
		assert.Equal(t, 3, rec.Count(EventOpened))
	})
}
