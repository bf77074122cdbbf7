package chat_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/emgbraker/greencompanions/internal/chat"
	"github.com/emgbraker/greencompanions/internal/models"
	"github.com/emgbraker/greencompanions/internal/ws"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	mu        sync.Mutex
	history   []models.Message
	histErr   error
	markCalls [][2]uint
}

func (f *fakeStore) History(a, b uint) ([]models.Message, error) {
	return f.history, f.histErr
}

func (f *fakeStore) MarkRead(receiverID, senderID uint) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.markCalls = append(f.markCalls, [2]uint{receiverID, senderID})
	return int64(len(f.history)), nil
}

func (f *fakeStore) marks() [][2]uint {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([][2]uint, len(f.markCalls))
	copy(out, f.markCalls)
	return out
}

func TestOpenLoadsHistoryAndMarksRead(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store := &fakeStore{history: []models.Message{
		{ID: 1, SenderID: 2, ReceiverID: 1, Content: "hoi", CreatedAt: at},
		{ID: 2, SenderID: 1, ReceiverID: 2, Content: "hey", CreatedAt: at.Add(time.Minute)},
	}}
	hub := ws.NewHub()

	s, err := chat.Open(store, hub, 1, 2)
	require.NoError(t, err)
	defer s.Close()

	msgs, state := s.Snapshot()
	assert.Equal(t, chat.StateReady, state)
	require.Len(t, msgs, 2)
	assert.Equal(t, uint(1), msgs[0].ID)

	marks := store.marks()
	require.Len(t, marks, 1)
	assert.Equal(t, [2]uint{1, 2}, marks[0])
}

func TestOpenHistoryFailureTearsDown(t *testing.T) {
	store := &fakeStore{histErr: errors.New("db gone")}
	hub := ws.NewHub()

	_, err := chat.Open(store, hub, 1, 2)
	require.Error(t, err)
	// The subscription registered before the fetch must not linger.
	assert.Zero(t, hub.SubscriberCount(1, 2))
}

func TestLiveEventDuringOpenIsNotLost(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	live := models.Message{ID: 5, SenderID: 2, ReceiverID: 1, Content: "live", CreatedAt: at.Add(time.Hour)}
	store := &fakeStore{history: []models.Message{
		{ID: 1, SenderID: 2, ReceiverID: 1, Content: "old", CreatedAt: at},
	}}
	hub := ws.NewHub()

	s, err := chat.Open(store, hub, 1, 2)
	require.NoError(t, err)
	defer s.Close()

	// A message published after open arrives on the session channel and
	// merges exactly once even if the history refetch already contained it.
	hub.PublishMessage(&live)
	select {
	case ev := <-s.Events():
		assert.True(t, s.Absorb(ev))
		assert.False(t, s.Absorb(ev))
	case <-time.After(time.Second):
		t.Fatal("live event not delivered")
	}

	msgs, _ := s.Snapshot()
	require.Len(t, msgs, 2)
	assert.Equal(t, uint(5), msgs[1].ID)

	// Peer messages absorbed while open are marked read immediately.
	assert.GreaterOrEqual(t, len(store.marks()), 2)
}

func TestRecordMergesOwnMessage(t *testing.T) {
	store := &fakeStore{}
	hub := ws.NewHub()
	s, err := chat.Open(store, hub, 1, 2)
	require.NoError(t, err)
	defer s.Close()

	s.Record(models.Message{ID: 3, SenderID: 1, ReceiverID: 2, Content: "van mij"})
	msgs, _ := s.Snapshot()
	require.Len(t, msgs, 1)
	assert.Equal(t, "van mij", msgs[0].Content)
}

func TestCloseIsIdempotentAndClosesEvents(t *testing.T) {
	store := &fakeStore{}
	hub := ws.NewHub()
	s, err := chat.Open(store, hub, 1, 2)
	require.NoError(t, err)

	s.Close()
	s.Close()
	assert.Equal(t, chat.StateClosed, s.State())

	_, open := <-s.Events()
	assert.False(t, open)
	assert.Zero(t, hub.SubscriberCount(1, 2))
}
