package repository_test

import (
	"testing"
	"time"

	"github.com/emgbraker/greencompanions/internal/models"
	"github.com/emgbraker/greencompanions/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sendMsg(t *testing.T, repo *repository.MessageRepository, from, to uint, content string) *models.Message {
	t.Helper()
	m := &models.Message{SenderID: from, ReceiverID: to, Content: content}
	require.NoError(t, repo.Create(m))
	return m
}

func TestMarkReadOnlyTouchesOneDirection(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewMessageRepository(db)
	a := seedMember(t, db, "a@test.nl", "Anna")
	b := seedMember(t, db, "b@test.nl", "Bram")
	c := seedMember(t, db, "c@test.nl", "Cas")

	sendMsg(t, repo, b, a, "hoi")
	sendMsg(t, repo, b, a, "ben je er?")
	sendMsg(t, repo, a, b, "ja!")
	sendMsg(t, repo, c, a, "hallo van Cas")

	// a opens the chat with b: only b→a flips.
	n, err := repo.MarkRead(a, b)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	unreadFromB, err := repo.CountUnread(a, b)
	require.NoError(t, err)
	assert.Equal(t, int64(0), unreadFromB)

	// a→b stays unread for b, and c→a stays unread for a.
	unreadForB, err := repo.CountUnread(b, a)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unreadForB)
	unreadFromC, err := repo.CountUnread(a, c)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unreadFromC)
}

func TestMarkReadIdempotent(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewMessageRepository(db)
	a := seedMember(t, db, "a@test.nl", "Anna")
	b := seedMember(t, db, "b@test.nl", "Bram")

	sendMsg(t, repo, b, a, "hoi")

	n, err := repo.MarkRead(a, b)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	// Second pass finds nothing to do and is not an error.
	n, err = repo.MarkRead(a, b)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestHistoryOrderingWithEqualTimestamps(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewMessageRepository(db)
	a := seedMember(t, db, "a@test.nl", "Anna")
	b := seedMember(t, db, "b@test.nl", "Bram")

	// Force identical created_at values so only the id tie-break orders them.
	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, content := range []string{"eerste", "tweede", "derde"} {
		from, to := a, b
		if i%2 == 1 {
			from, to = b, a
		}
		m := &models.Message{SenderID: from, ReceiverID: to, Content: content, CreatedAt: ts}
		require.NoError(t, db.Create(m).Error)
	}

	history, err := repo.History(a, b)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "eerste", history[0].Content)
	assert.Equal(t, "tweede", history[1].Content)
	assert.Equal(t, "derde", history[2].Content)
}

func TestHistoryCoversBothDirectionsOnly(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewMessageRepository(db)
	a := seedMember(t, db, "a@test.nl", "Anna")
	b := seedMember(t, db, "b@test.nl", "Bram")
	c := seedMember(t, db, "c@test.nl", "Cas")

	sendMsg(t, repo, a, b, "naar b")
	sendMsg(t, repo, b, a, "naar a")
	sendMsg(t, repo, a, c, "naar c")

	history, err := repo.History(a, b)
	require.NoError(t, err)
	require.Len(t, history, 2)
	for _, m := range history {
		assert.NotEqual(t, c, m.SenderID)
		assert.NotEqual(t, c, m.ReceiverID)
	}
}

func TestCountUnreadTotal(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewMessageRepository(db)
	a := seedMember(t, db, "a@test.nl", "Anna")
	b := seedMember(t, db, "b@test.nl", "Bram")
	c := seedMember(t, db, "c@test.nl", "Cas")

	sendMsg(t, repo, b, a, "1")
	sendMsg(t, repo, c, a, "2")
	sendMsg(t, repo, c, a, "3")
	sendMsg(t, repo, a, b, "outgoing does not count")

	total, err := repo.CountUnreadTotal(a)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	_, err = repo.MarkRead(a, c)
	require.NoError(t, err)
	total, err = repo.CountUnreadTotal(a)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}
