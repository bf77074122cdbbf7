package chat

import (
	"sync"

	"github.com/emgbraker/greencompanions/internal/models"
	"github.com/emgbraker/greencompanions/internal/ws"
)

// State of a chat session. A freshly opened session is loading until the
// history fetch lands; live events received in the meantime are merged into
// the transcript and never lost.
type State string

const (
	StateLoading State = "loading_history"
	StateReady   State = "ready"
	StateClosed  State = "closed"
)

// Store is the slice of the message layer a session needs.
type Store interface {
	History(a, b uint) ([]models.Message, error)
	MarkRead(receiverID, senderID uint) (int64, error)
}

// Session owns the server side of one open chat between userID and peerID:
// it subscribes to live messages from the peer, loads history, marks the
// peer's messages read on open, and exposes the merged transcript.
type Session struct {
	UserID uint
	PeerID uint

	store Store
	sub   *ws.Subscription

	mu         sync.Mutex
	state      State
	transcript *Transcript

	closeOnce sync.Once
}

// Open starts a session. The subscription is registered before the history
// query runs so nothing sent in between can be missed; MarkRead runs
// concurrently with the fetch. Returns with state ready, or an error if
// history could not be loaded.
func Open(store Store, hub *ws.Hub, userID, peerID uint) (*Session, error) {
	s := &Session{
		UserID:     userID,
		PeerID:     peerID,
		store:      store,
		sub:        hub.Subscribe(userID, peerID),
		state:      StateLoading,
		transcript: NewTranscript(),
	}

	var (
		wg      sync.WaitGroup
		history []models.Message
		histErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		history, histErr = store.History(userID, peerID)
	}()
	go func() {
		defer wg.Done()
		// Read-state failures do not block the session; the next open
		// retries. History loading is the gate.
		store.MarkRead(userID, peerID)
	}()
	wg.Wait()

	if histErr != nil {
		s.Close()
		return nil, histErr
	}

	s.mu.Lock()
	s.transcript.AddAll(history)
	s.state = StateReady
	s.mu.Unlock()
	return s, nil
}

// Events yields live messages from the peer. The channel closes when the
// session does.
func (s *Session) Events() <-chan ws.Event { return s.sub.C }

// Absorb merges a live event into the transcript and reports whether it was
// new. Peer messages received while the session is open are read on sight.
func (s *Session) Absorb(ev ws.Event) bool {
	if ev.Type != ws.EventMessage || ev.Message == nil {
		return false
	}
	s.mu.Lock()
	added := s.transcript.Add(*ev.Message)
	s.mu.Unlock()
	if added && ev.Message.SenderID == s.PeerID {
		s.store.MarkRead(s.UserID, s.PeerID)
	}
	return added
}

// Record merges a message this user just sent.
func (s *Session) Record(m models.Message) {
	s.mu.Lock()
	s.transcript.Add(m)
	s.mu.Unlock()
}

// Snapshot returns a copy of the transcript and the current state.
func (s *Session) Snapshot() ([]models.Message, State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Message, len(s.transcript.Messages()))
	copy(out, s.transcript.Messages())
	return out, s.state
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Close tears down the subscription. Idempotent.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.state = StateClosed
		s.mu.Unlock()
		s.sub.Close()
	})
}
