package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestPublishContinuesPastFailingHandler(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	d := NewInMemoryDispatcher(zap.New(core))

	var calls []string
	d.Subscribe(EventQuoteSubmitted, func(context.Context, Event) error {
		calls = append(calls, "email")
		return errors.New("smtp unreachable")
	})
	d.Subscribe(EventQuoteSubmitted, func(context.Context, Event) error {
		calls = append(calls, "webhook")
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventQuoteSubmitted, QuoteID: "q-1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"email", "webhook"}, calls)

	entries := logs.FilterMessage("event handler failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "q-1", entries[0].ContextMap()["quote_id"])
	assert.Equal(t, string(EventQuoteSubmitted), entries[0].ContextMap()["event_type"])
}

func TestPublishWithoutSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher(nil)
	assert.NoError(t, d.Publish(context.Background(), Event{Type: EventQuoteStatusChanged}))
}

func TestSubscribePreservesOrderPerType(t *testing.T) {
	d := NewInMemoryDispatcher(nil)

	var calls []int
	for i := 0; i < 3; i++ {
		i := i
		d.Subscribe(EventQuoteStatusChanged, func(context.Context, Event) error {
			calls = append(calls, i)
			return nil
		})
	}
	d.Subscribe(EventQuoteSubmitted, func(context.Context, Event) error {
		t.Fatal("handler for a different event type should not run")
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventQuoteStatusChanged}))
	assert.Equal(t, []int{0, 1, 2}, calls)
}
