package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcherRunsAllHandlersInOrder(t *testing.T) {
	d := NewInMemoryDispatcher()
	var calls []string

	d.Subscribe(EventRequestFailed, func(_ context.Context, e Event) error {
		calls = append(calls, "first:"+e.Resource)
		return errors.New("boom")
	})
	d.Subscribe(EventRequestFailed, func(_ context.Context, e Event) error {
		calls = append(calls, "second:"+e.Resource)
		return nil
	})
	d.Subscribe(EventEntityLoaded, func(context.Context, Event) error {
		calls = append(calls, "loaded")
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventRequestFailed, Resource: "departments"})
	require.EqualError(t, err, "boom")
	assert.Equal(t, []string{"first:departments", "second:departments"}, calls)
}

func TestDispatcherWithoutListeners(t *testing.T) {
	d := NewInMemoryDispatcher()
	assert.NoError(t, d.Publish(context.Background(), Event{Type: EventEntityDeleted}))
}

func TestDispatcherJoinsHandlerErrors(t *testing.T) {
	d := NewInMemoryDispatcher()
	first, second := errors.New("first"), errors.New("second")
	d.Subscribe(EventEntityCreated, func(context.Context, Event) error { return first })
	d.Subscribe(EventEntityCreated, func(context.Context, Event) error { return second })

	err := d.Publish(context.Background(), Event{Type: EventEntityCreated})
	assert.ErrorIs(t, err, first)
	assert.ErrorIs(t, err, second)
}
