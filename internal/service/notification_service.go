package service

import (
	"github.com/emgbraker/greencompanions/internal/domain"
	"github.com/emgbraker/greencompanions/internal/logger"
	"github.com/emgbraker/greencompanions/internal/models"
	"github.com/emgbraker/greencompanions/internal/repository"
)

// NotificationService writes in-app notifications. Failures are logged and
// swallowed where a notification is a side effect of another operation;
// a match must never fail because its notification insert did.
type NotificationService struct {
	repo *repository.NotificationRepository
}

func NewNotificationService(repo *repository.NotificationRepository) *NotificationService {
	return &NotificationService{repo: repo}
}

func (s *NotificationService) NotifyMatch(userID uint, peerFirstName string) {
	n := &models.Notification{
		UserID:  userID,
		Type:    domain.NotificationMatch,
		Title:   "Nieuwe match!",
		Message: "Jij en " + peerFirstName + " vinden elkaar leuk. Stuur een berichtje!",
	}
	if err := s.repo.Create(n); err != nil {
		logger.Warn("match notification failed", "user_id", userID, "error", err)
	}
}

func (s *NotificationService) NotifyWarning(userID uint, reason string) {
	n := &models.Notification{
		UserID:  userID,
		Type:    domain.NotificationWarning,
		Title:   "Waarschuwing van de moderatie",
		Message: reason,
	}
	if err := s.repo.Create(n); err != nil {
		logger.Warn("warning notification failed", "user_id", userID, "error", err)
	}
}

func (s *NotificationService) NotifyMembershipExpiry(userID uint, membershipType string) {
	n := &models.Notification{
		UserID:  userID,
		Type:    domain.NotificationInfo,
		Title:   "Lidmaatschap verloopt binnenkort",
		Message: "Je " + membershipType + " lidmaatschap verloopt binnen 30 dagen. Verleng op tijd.",
	}
	if err := s.repo.Create(n); err != nil {
		logger.Warn("expiry notification failed", "user_id", userID, "error", err)
	}
}

func (s *NotificationService) List(userID uint, limit, offset int) ([]models.Notification, error) {
	return s.repo.ListByUserID(userID, limit, offset)
}

func (s *NotificationService) CountUnread(userID uint) (int64, error) {
	return s.repo.CountUnread(userID)
}

func (s *NotificationService) MarkRead(userID, notificationID uint) error {
	return s.repo.MarkRead(userID, notificationID)
}
