package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishReachesSubscriber(t *testing.T) {
	hub := NewHub()
	ch, cleanup := hub.Subscribe("emp-1")
	defer cleanup()

	hub.Publish("emp-1", Event{EmployeeID: "emp-1", Event: "timer_started"})

	select {
	case ev := <-ch:
		assert.Equal(t, "timer_started", ev.Event)
	default:
		t.Fatal("expected buffered event")
	}
}

func TestHub_PublishToOtherEmployeeNotDelivered(t *testing.T) {
	hub := NewHub()
	ch, cleanup := hub.Subscribe("emp-1")
	defer cleanup()

	hub.Publish("emp-2", Event{EmployeeID: "emp-2", Event: "timer_stopped"})

	select {
	case ev := <-ch:
		t.Fatalf("unexpected event delivered: %v", ev)
	default:
	}
}

func TestHub_CleanupRemovesSubscriber(t *testing.T) {
	hub := NewHub()
	_, cleanup := hub.Subscribe("emp-1")
	require.Equal(t, 1, hub.SubscriberCount("emp-1"))

	cleanup()
	assert.Equal(t, 0, hub.SubscriberCount("emp-1"))

	// Publishing after cleanup must not panic.
	hub.Publish("emp-1", Event{EmployeeID: "emp-1", Event: "checked_in"})
}

func TestHub_FullChannelDoesNotBlockPublish(t *testing.T) {
	hub := NewHub()
	ch, cleanup := hub.Subscribe("emp-1")
	defer cleanup()

	for i := 0; i < 20; i++ {
		hub.Publish("emp-1", Event{EmployeeID: "emp-1", Event: "checked_out"})
	}

	// Channel buffer is 10; the rest are dropped, not blocked on.
	assert.Equal(t, 10, len(ch))
}
