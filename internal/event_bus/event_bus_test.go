package event_bus

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBus_Publish(t *testing.T) {
	t.Run("delivers typed payloads in subscription order", func(t *testing.T) {
		bus := NewEventBus()
		var received []string
		SubscribeTyped(bus, SessionEnded, func(e EventT[SessionEndedEvent]) error {
			received = append(received, "first:"+e.Data.SessionId)
			return nil
		})
		SubscribeTyped(bus, SessionEnded, func(e EventT[SessionEndedEvent]) error {
			received = append(received, "second:"+e.Data.SessionId)
			return nil
		})

		err := bus.Publish(NewEvent(context.Background(), SessionEnded, SessionEndedEvent{SessionId: "abc"}))

		require.NoError(t, err)
		assert.Equal(t, []string{"first:abc", "second:abc"}, received)
	})

	t.Run("skips handlers expecting another payload type", func(t *testing.T) {
		bus := NewEventBus()
		called := false
		SubscribeTyped(bus, SessionEnded, func(e EventT[SessionStartedEvent]) error {
			called = true
			return nil
		})

		err := bus.Publish(NewEvent(context.Background(), SessionEnded, SessionEndedEvent{}))

		require.NoError(t, err)
		assert.False(t, called)
	})

	t.Run("collects handler errors and panics", func(t *testing.T) {
		bus := NewEventBus()
		bus.Subscribe(TimesheetSubmitted, func(e Event) error { return errors.New("boom") })
		bus.Subscribe(TimesheetSubmitted, func(e Event) error { panic("bad handler") })
		delivered := false
		bus.Subscribe(TimesheetSubmitted, func(e Event) error {
			delivered = true
			return nil
		})

		err := bus.Publish(NewEvent(context.Background(), TimesheetSubmitted, nil))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "2 handler(s) failed")
		assert.True(t, delivered)
	})

	t.Run("unsubscribe removes the handler", func(t *testing.T) {
		bus := NewEventBus()
		count := 0
		unsubscribe := bus.Subscribe(SessionStarted, func(e Event) error {
			count++
			return nil
		})

		bus.Notify(context.Background(), SessionStarted, nil)
		unsubscribe()
		bus.Notify(context.Background(), SessionStarted, nil)

		assert.Equal(t, 1, count)
	})

	t.Run("refuses to publish with a cancelled context", func(t *testing.T) {
		bus := NewEventBus()
		bus.Subscribe(SessionStarted, func(e Event) error {
			t.Fatal("handler must not run")
			return nil
		})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := bus.Publish(NewEvent(ctx, SessionStarted, nil))

		require.ErrorIs(t, err, context.Canceled)
	})
}
