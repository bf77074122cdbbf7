package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/emgbraker/greencompanions/internal/cache"
	"github.com/emgbraker/greencompanions/internal/domain"
	"github.com/emgbraker/greencompanions/internal/models"
	"github.com/emgbraker/greencompanions/internal/repository"
)

var (
	ErrEmptyMessage   = errors.New("message is empty")
	ErrMessageTooLong = errors.New("message exceeds maximum length")
)

// ChatService is the send/read path for direct messages. Every write goes
// through here so the mutual-match gate, validation, live fan-out and badge
// invalidation cannot be bypassed.
type ChatService struct {
	messageRepo *repository.MessageRepository
	convRepo    *repository.ConversationRepository
	matches     *MatchService
	hub         MessagePublisher
	cache       *cache.Cache
}

// MessagePublisher is the live fan-out the service pushes committed messages
// into; satisfied by ws.Hub.
type MessagePublisher interface {
	PublishMessage(m *models.Message)
}

func NewChatService(messageRepo *repository.MessageRepository, convRepo *repository.ConversationRepository, matches *MatchService, hub MessagePublisher, c *cache.Cache) *ChatService {
	return &ChatService{
		messageRepo: messageRepo,
		convRepo:    convRepo,
		matches:     matches,
		hub:         hub,
		cache:       c,
	}
}

// Send validates, persists and fans out one message sender→receiver.
// Content is trimmed; empty or whitespace-only content and content over the
// length cap are rejected before anything is written. Messaging requires a
// mutual match.
func (s *ChatService) Send(ctx context.Context, senderID, receiverID uint, content string) (*models.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyMessage
	}
	if utf8.RuneCountInString(content) > domain.MaxMessageLength {
		return nil, ErrMessageTooLong
	}
	if err := s.matches.RequireMutual(senderID, receiverID); err != nil {
		return nil, err
	}
	m := &models.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
	}
	if err := s.messageRepo.Create(m); err != nil {
		return nil, err
	}
	s.hub.PublishMessage(m)
	s.cache.InvalidateUnreadBadge(ctx, receiverID)
	return m, nil
}

// RequireMutual exposes the messaging gate for transports that check it
// before committing to a connection.
func (s *ChatService) RequireMutual(a, b uint) error {
	return s.matches.RequireMutual(a, b)
}

// History returns the full transcript between two matched users,
// oldest-first.
func (s *ChatService) History(userID, peerID uint) ([]models.Message, error) {
	if err := s.matches.RequireMutual(userID, peerID); err != nil {
		return nil, err
	}
	return s.messageRepo.History(userID, peerID)
}

// MarkRead flips every unread message peer→user to read and invalidates the
// user's badge when anything changed.
func (s *ChatService) MarkRead(ctx context.Context, userID, peerID uint) (int64, error) {
	n, err := s.messageRepo.MarkRead(userID, peerID)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.cache.InvalidateUnreadBadge(ctx, userID)
	}
	return n, nil
}

// Inbox returns the caller's conversations with peer profile, unread count
// and last message, most recent first, with live presence filled in.
func (s *ChatService) Inbox(ctx context.Context, userID uint) ([]repository.Conversation, error) {
	convs, err := s.convRepo.ListForUser(userID)
	if err != nil {
		return nil, err
	}
	for i := range convs {
		convs[i].Online = s.cache.IsOnline(ctx, convs[i].PeerID)
	}
	return convs, nil
}

// UnreadBadge returns the user's total unread message count, served from
// cache when fresh.
func (s *ChatService) UnreadBadge(ctx context.Context, userID uint) (int64, error) {
	if n, ok := s.cache.GetUnreadBadge(ctx, userID); ok {
		return n, nil
	}
	n, err := s.messageRepo.CountUnreadTotal(userID)
	if err != nil {
		return 0, err
	}
	s.cache.SetUnreadBadge(ctx, userID, n)
	return n, nil
}
