package service_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/emgbraker/greencompanions/internal/models"
	"github.com/emgbraker/greencompanions/internal/repository"
	"github.com/emgbraker/greencompanions/internal/service"
	"github.com/emgbraker/greencompanions/internal/ws"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Match{},
		&models.Message{},
		&models.Membership{},
		&models.Notification{},
	); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func seedMember(t *testing.T, db *gorm.DB, email, firstName string) uint {
	t.Helper()
	u := models.User{Email: email, Role: "USER"}
	require.NoError(t, db.Create(&u).Error)
	birth := time.Date(1985, 6, 15, 0, 0, 0, 0, time.UTC)
	require.NoError(t, db.Create(&models.Profile{
		UserID: u.ID, FirstName: firstName, LastName: "Tester", BirthDate: &birth,
	}).Error)
	return u.ID
}

type testEnv struct {
	db      *gorm.DB
	hub     *ws.Hub
	chatSvc *service.ChatService
	match   *service.MatchService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := setupTestDB(t)
	hub := ws.NewHub()
	notifSvc := service.NewNotificationService(repository.NewNotificationRepository(db))
	matchSvc := service.NewMatchService(repository.NewMatchRepository(db), repository.NewProfileRepository(db), notifSvc)
	chatSvc := service.NewChatService(
		repository.NewMessageRepository(db),
		repository.NewConversationRepository(db),
		matchSvc,
		hub,
		nil, // cache methods tolerate nil; tests run DB-only
	)
	return &testEnv{db: db, hub: hub, chatSvc: chatSvc, match: matchSvc}
}

func (e *testEnv) mutualMatch(t *testing.T, a, b uint) {
	t.Helper()
	_, err := e.match.Like(a, b)
	require.NoError(t, err)
	res, err := e.match.Like(b, a)
	require.NoError(t, err)
	require.True(t, res.Mutual)
}

func TestSendRequiresMutualMatch(t *testing.T) {
	env := newTestEnv(t)
	a := seedMember(t, env.db, "a@test.nl", "Anna")
	b := seedMember(t, env.db, "b@test.nl", "Bram")
	ctx := context.Background()

	_, err := env.chatSvc.Send(ctx, a, b, "hoi")
	assert.ErrorIs(t, err, service.ErrNotMutualMatch)

	// One-directional like is still not enough.
	_, err = env.match.Like(a, b)
	require.NoError(t, err)
	_, err = env.chatSvc.Send(ctx, a, b, "hoi")
	assert.ErrorIs(t, err, service.ErrNotMutualMatch)

	_, err = env.match.Like(b, a)
	require.NoError(t, err)
	m, err := env.chatSvc.Send(ctx, a, b, "hoi")
	require.NoError(t, err)
	assert.Equal(t, "hoi", m.Content)
}

func TestSendContentValidation(t *testing.T) {
	env := newTestEnv(t)
	a := seedMember(t, env.db, "a@test.nl", "Anna")
	b := seedMember(t, env.db, "b@test.nl", "Bram")
	env.mutualMatch(t, a, b)
	ctx := context.Background()

	_, err := env.chatSvc.Send(ctx, a, b, "")
	assert.ErrorIs(t, err, service.ErrEmptyMessage)

	_, err = env.chatSvc.Send(ctx, a, b, "   \n\t  ")
	assert.ErrorIs(t, err, service.ErrEmptyMessage)

	// Exactly at the cap passes, one over fails. Runes, not bytes.
	atCap := strings.Repeat("é", 1000)
	m, err := env.chatSvc.Send(ctx, a, b, atCap)
	require.NoError(t, err)
	assert.Equal(t, atCap, m.Content)

	_, err = env.chatSvc.Send(ctx, a, b, strings.Repeat("é", 1001))
	assert.ErrorIs(t, err, service.ErrMessageTooLong)

	// Content is trimmed before the length check and before storage.
	m, err = env.chatSvc.Send(ctx, a, b, "  omlijnd  ")
	require.NoError(t, err)
	assert.Equal(t, "omlijnd", m.Content)
}

func TestSendFansOutToSubscriber(t *testing.T) {
	env := newTestEnv(t)
	a := seedMember(t, env.db, "a@test.nl", "Anna")
	b := seedMember(t, env.db, "b@test.nl", "Bram")
	env.mutualMatch(t, a, b)

	sub := env.hub.Subscribe(b, a)
	defer sub.Close()

	m, err := env.chatSvc.Send(context.Background(), a, b, "realtime")
	require.NoError(t, err)

	select {
	case ev := <-sub.C:
		assert.Equal(t, m.ID, ev.Message.ID)
		assert.Equal(t, "realtime", ev.Message.Content)
	case <-time.After(time.Second):
		t.Fatal("message not fanned out")
	}
}

func TestLikeOutcomes(t *testing.T) {
	env := newTestEnv(t)
	a := seedMember(t, env.db, "a@test.nl", "Anna")
	b := seedMember(t, env.db, "b@test.nl", "Bram")

	_, err := env.match.Like(a, a)
	assert.ErrorIs(t, err, service.ErrSelfLike)

	res, err := env.match.Like(a, b)
	require.NoError(t, err)
	assert.Equal(t, service.LikeCreated, res.Outcome)
	assert.False(t, res.Mutual)

	// The repeat is an outcome, not an error.
	res, err = env.match.Like(a, b)
	require.NoError(t, err)
	assert.Equal(t, service.LikeAlreadyExists, res.Outcome)
	assert.Nil(t, res.Match)

	res, err = env.match.Like(b, a)
	require.NoError(t, err)
	assert.Equal(t, service.LikeCreated, res.Outcome)
	assert.True(t, res.Mutual)

	// Both parties got a match notification.
	var count int64
	require.NoError(t, env.db.Model(&models.Notification{}).Where("type = ?", "match").Count(&count).Error)
	assert.Equal(t, int64(2), count)

	_, err = env.match.Like(a, 9999)
	assert.ErrorIs(t, err, service.ErrProfileNotFound)
}

func TestLikeBlockedProfiles(t *testing.T) {
	env := newTestEnv(t)
	profileRepo := repository.NewProfileRepository(env.db)
	a := seedMember(t, env.db, "a@test.nl", "Anna")
	b := seedMember(t, env.db, "b@test.nl", "Bram")

	require.NoError(t, profileRepo.Block(b, "spam"))
	_, err := env.match.Like(a, b)
	assert.ErrorIs(t, err, service.ErrProfileBlocked)

	// Blocked members cannot like either.
	require.NoError(t, profileRepo.Unblock(b))
	require.NoError(t, profileRepo.Block(a, "spam"))
	_, err = env.match.Like(a, b)
	assert.ErrorIs(t, err, service.ErrProfileBlocked)
}

func TestMarkReadAndUnreadBadge(t *testing.T) {
	env := newTestEnv(t)
	a := seedMember(t, env.db, "a@test.nl", "Anna")
	b := seedMember(t, env.db, "b@test.nl", "Bram")
	env.mutualMatch(t, a, b)
	ctx := context.Background()

	_, err := env.chatSvc.Send(ctx, b, a, "een")
	require.NoError(t, err)
	_, err = env.chatSvc.Send(ctx, b, a, "twee")
	require.NoError(t, err)

	n, err := env.chatSvc.UnreadBadge(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	marked, err := env.chatSvc.MarkRead(ctx, a, b)
	require.NoError(t, err)
	assert.Equal(t, int64(2), marked)

	n, err = env.chatSvc.UnreadBadge(ctx, a)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestInboxThroughService(t *testing.T) {
	env := newTestEnv(t)
	a := seedMember(t, env.db, "a@test.nl", "Anna")
	b := seedMember(t, env.db, "b@test.nl", "Bram")
	env.mutualMatch(t, a, b)
	ctx := context.Background()

	_, err := env.chatSvc.Send(ctx, b, a, "laatste bericht")
	require.NoError(t, err)

	convs, err := env.chatSvc.Inbox(ctx, a)
	require.NoError(t, err)
	require.Len(t, convs, 1)
	assert.Equal(t, b, convs[0].PeerID)
	require.NotNil(t, convs[0].LastMessage)
	assert.Equal(t, "laatste bericht", *convs[0].LastMessage)
	assert.Equal(t, int64(1), convs[0].UnreadCount)
	assert.False(t, convs[0].Online)
}
