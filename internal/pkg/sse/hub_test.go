package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishReachesTopicSubscribers(t *testing.T) {
	hub := NewHub()

	admins, cleanupAdmins := hub.Subscribe(TopicAdmins)
	defer cleanupAdmins()
	other, cleanupOther := hub.Subscribe("other")
	defer cleanupOther()

	hub.Publish(TopicAdmins, Event{Event: "high_value_policy", Data: map[string]string{"policy_number": "P-1"}})

	select {
	case ev := <-admins:
		assert.Equal(t, TopicAdmins, ev.Topic)
		assert.Equal(t, "high_value_policy", ev.Event)
		assert.False(t, ev.At.IsZero())
	default:
		t.Fatal("admin subscriber did not receive event")
	}

	select {
	case ev := <-other:
		t.Fatalf("unexpected event on other topic: %+v", ev)
	default:
	}
}

func TestHub_CleanupRemovesSubscriber(t *testing.T) {
	hub := NewHub()

	ch, cleanup := hub.Subscribe(TopicAdmins)
	require.Equal(t, 1, hub.SubscriberCount(TopicAdmins))

	cleanup()
	cleanup() // idempotent

	assert.Equal(t, 0, hub.SubscriberCount(TopicAdmins))
	_, open := <-ch
	assert.False(t, open)
}

func TestHub_FullBufferDoesNotBlock(t *testing.T) {
	hub := NewHub()
	_, cleanup := hub.Subscribe(TopicAdmins)
	defer cleanup()

	for i := 0; i < hub.bufferSize*3; i++ {
		hub.Publish(TopicAdmins, Event{Event: "ping"})
	}
}
