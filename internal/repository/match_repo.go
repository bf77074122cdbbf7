package repository

import (
	"github.com/emgbraker/greencompanions/internal/domain"
	"github.com/emgbraker/greencompanions/internal/models"

	"gorm.io/gorm"
)

// MatchRepository provides data access for one-directional like intents.
type MatchRepository struct {
	db *gorm.DB
}

func NewMatchRepository(db *gorm.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

// Create inserts a pending intent actor→target. The unique index on
// (user_id, matched_user_id) makes a lost duplicate-check race surface as
// gorm.ErrDuplicatedKey, which callers must treat as "already exists".
func (r *MatchRepository) Create(actorID, targetID uint) (*models.Match, error) {
	m := models.Match{
		UserID:        actorID,
		MatchedUserID: targetID,
		Status:        domain.MatchStatusPending,
	}
	if err := r.db.Create(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// HasIntent reports whether a pending intent actor→target exists.
func (r *MatchRepository) HasIntent(actorID, targetID uint) (bool, error) {
	var c int64
	err := r.db.Model(&models.Match{}).
		Where("user_id = ? AND matched_user_id = ? AND status = ?", actorID, targetID, domain.MatchStatusPending).
		Count(&c).Error
	return c > 0, err
}

// IsMutual reports whether both directions exist with status pending.
func (r *MatchRepository) IsMutual(a, b uint) (bool, error) {
	var c int64
	err := r.db.Model(&models.Match{}).
		Where("user_id = ? AND matched_user_id = ? AND status = ?", a, b, domain.MatchStatusPending).
		Where("EXISTS (SELECT 1 FROM matches rm WHERE rm.user_id = ? AND rm.matched_user_id = ? AND rm.status = ?)",
			b, a, domain.MatchStatusPending).
		Count(&c).Error
	return c > 0, err
}

// ListPendingByUserID returns the caller's outgoing pending intents.
func (r *MatchRepository) ListPendingByUserID(userID uint) ([]models.Match, error) {
	var list []models.Match
	err := r.db.Where("user_id = ? AND status = ?", userID, domain.MatchStatusPending).
		Order("created_at DESC").Find(&list).Error
	return list, err
}
