package ws

import (
	"sync"

	"github.com/emgbraker/greencompanions/internal/models"
)

// Event is what a chat subscriber receives. Message events carry the full
// persisted row so the client can merge without a refetch.
type Event struct {
	Type    string          `json:"type"` // "message"
	Message *models.Message `json:"message,omitempty"`
}

const EventMessage = "message"

// subscriptionBuffer bounds the per-subscriber queue. A subscriber that
// falls this far behind misses events and must reconcile through a history
// fetch on reconnect; delivery is at-least-once only for live sessions.
const subscriptionBuffer = 256

type pairKey struct {
	receiverID uint
	senderID   uint
}

// Subscription is one registered listener for messages sender→receiver.
// Events arrive on C until Close, after which C is closed and nothing more
// is delivered.
type Subscription struct {
	hub    *Hub
	key    pairKey
	C      chan Event
	closed bool
}

// Close tears the subscription down. Idempotent; after it returns no further
// event is delivered to C.
func (s *Subscription) Close() {
	s.hub.unsubscribe(s)
}

// Hub routes newly persisted messages to active chat subscribers, keyed by
// the (receiver, sender) conversation pair on the receiver's side.
type Hub struct {
	mu   sync.RWMutex
	subs map[pairKey]map[*Subscription]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[pairKey]map[*Subscription]struct{})}
}

// Subscribe registers a listener for messages sender→receiver.
func (h *Hub) Subscribe(receiverID, senderID uint) *Subscription {
	s := &Subscription{
		hub: h,
		key: pairKey{receiverID: receiverID, senderID: senderID},
		C:   make(chan Event, subscriptionBuffer),
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs[s.key] == nil {
		h.subs[s.key] = make(map[*Subscription]struct{})
	}
	h.subs[s.key][s] = struct{}{}
	return s
}

func (h *Hub) unsubscribe(s *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	if m := h.subs[s.key]; m != nil {
		delete(m, s)
		if len(m) == 0 {
			delete(h.subs, s.key)
		}
	}
	// Publish holds the read lock while sending, so closing under the write
	// lock cannot race a send on C.
	close(s.C)
}

// PublishMessage delivers a committed message to every subscriber of its
// (receiver, sender) pair. Non-blocking: a full subscriber queue drops the
// event rather than stalling the sender's request.
func (h *Hub) PublishMessage(m *models.Message) {
	key := pairKey{receiverID: m.ReceiverID, senderID: m.SenderID}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for s := range h.subs[key] {
		select {
		case s.C <- Event{Type: EventMessage, Message: m}:
		default:
		}
	}
}

// SubscriberCount reports active subscriptions for a pair; used by tests and
// the ops endpoint.
func (h *Hub) SubscriberCount(receiverID, senderID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[pairKey{receiverID: receiverID, senderID: senderID}])
}
