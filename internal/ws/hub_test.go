package ws_test

import (
	"testing"
	"time"

	"github.com/emgbraker/greencompanions/internal/models"
	"github.com/emgbraker/greencompanions/internal/ws"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishReachesPairSubscriber(t *testing.T) {
	hub := ws.NewHub()
	sub := hub.Subscribe(2, 1) // user 2 listening for messages from 1
	defer sub.Close()

	m := &models.Message{ID: 7, SenderID: 1, ReceiverID: 2, Content: "hoi"}
	hub.PublishMessage(m)

	select {
	case ev := <-sub.C:
		assert.Equal(t, ws.EventMessage, ev.Type)
		require.NotNil(t, ev.Message)
		assert.Equal(t, uint(7), ev.Message.ID)
	case <-time.After(time.Second):
		t.Fatal("no event delivered")
	}
}

func TestPublishIsPairScoped(t *testing.T) {
	hub := ws.NewHub()
	other := hub.Subscribe(2, 3) // same receiver, different sender
	reversed := hub.Subscribe(1, 2)
	defer other.Close()
	defer reversed.Close()

	hub.PublishMessage(&models.Message{ID: 1, SenderID: 1, ReceiverID: 2})

	select {
	case <-other.C:
		t.Fatal("event leaked to a different sender pair")
	case <-reversed.C:
		t.Fatal("event leaked to the reversed pair")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestCloseStopsDeliveryAndIsIdempotent(t *testing.T) {
	hub := ws.NewHub()
	sub := hub.Subscribe(2, 1)
	assert.Equal(t, 1, hub.SubscriberCount(2, 1))

	sub.Close()
	sub.Close() // second close must be a no-op
	assert.Zero(t, hub.SubscriberCount(2, 1))

	// Channel is closed; publishing afterwards must not panic or deliver.
	hub.PublishMessage(&models.Message{ID: 1, SenderID: 1, ReceiverID: 2})
	_, open := <-sub.C
	assert.False(t, open)
}

func TestMultipleSubscribersSamePair(t *testing.T) {
	hub := ws.NewHub()
	s1 := hub.Subscribe(2, 1)
	s2 := hub.Subscribe(2, 1)
	defer s1.Close()
	defer s2.Close()

	hub.PublishMessage(&models.Message{ID: 5, SenderID: 1, ReceiverID: 2})

	for _, s := range []*ws.Subscription{s1, s2} {
		select {
		case ev := <-s.C:
			assert.Equal(t, uint(5), ev.Message.ID)
		case <-time.After(time.Second):
			t.Fatal("subscriber missed the event")
		}
	}
}

func TestSlowSubscriberDoesNotBlockPublish(t *testing.T) {
	hub := ws.NewHub()
	sub := hub.Subscribe(2, 1)
	defer sub.Close()

	// Overfill the buffer; publish must stay non-blocking throughout.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 1000; i++ {
			hub.PublishMessage(&models.Message{ID: uint(i + 1), SenderID: 1, ReceiverID: 2})
		}
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on a full subscriber queue")
	}
}
