package repository

import (
	"time"

	"github.com/emgbraker/greencompanions/internal/domain"
	"github.com/emgbraker/greencompanions/internal/models"

	"gorm.io/gorm"
)

type MembershipRepository struct {
	db *gorm.DB
}

func NewMembershipRepository(db *gorm.DB) *MembershipRepository {
	return &MembershipRepository{db: db}
}

func (r *MembershipRepository) Create(m *models.Membership) error {
	return r.db.Create(m).Error
}

func (r *MembershipRepository) GetActiveByUserID(userID uint) (*models.Membership, error) {
	var m models.Membership
	err := r.db.Where("user_id = ? AND status = ?", userID, domain.MembershipStatusActive).
		Order("created_at DESC").First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// IsElite reports whether the user currently holds an active elite
// membership; a missing membership is simply "not elite", not an error.
func (r *MembershipRepository) IsElite(userID uint) (bool, error) {
	var c int64
	err := r.db.Model(&models.Membership{}).
		Where("user_id = ? AND status = ? AND type = ?", userID, domain.MembershipStatusActive, domain.MembershipElite).
		Count(&c).Error
	return c > 0, err
}

// ExpiringRow joins a soon-to-expire membership with the holder's contact
// fields the notifier needs.
type ExpiringRow struct {
	MembershipID uint
	UserID       uint
	Type         string
	EndDate      time.Time
	FirstName    string
	Email        string
}

// ListExpiringWithin returns active, not-yet-notified memberships whose end
// date falls inside [now, now+d].
func (r *MembershipRepository) ListExpiringWithin(now time.Time, d time.Duration) ([]ExpiringRow, error) {
	var rows []ExpiringRow
	err := r.db.Table("memberships ms").
		Select("ms.id AS membership_id, ms.user_id, ms.type, ms.end_date, p.first_name, u.email").
		Joins("INNER JOIN users u ON u.id = ms.user_id AND u.deleted_at IS NULL").
		Joins("INNER JOIN profiles p ON p.user_id = ms.user_id").
		Where("ms.status = ? AND ms.notification_sent = ? AND ms.deleted_at IS NULL", domain.MembershipStatusActive, false).
		Where("ms.end_date IS NOT NULL AND ms.end_date >= ? AND ms.end_date <= ?", now, now.Add(d)).
		Scan(&rows).Error
	return rows, err
}

func (r *MembershipRepository) MarkNotified(membershipID uint) error {
	return r.db.Model(&models.Membership{}).Where("id = ?", membershipID).
		Update("notification_sent", true).Error
}

// ExpireOverdue flips active memberships whose end date has passed to
// expired and returns how many were affected.
func (r *MembershipRepository) ExpireOverdue(now time.Time) (int64, error) {
	res := r.db.Model(&models.Membership{}).
		Where("status = ? AND end_date IS NOT NULL AND end_date < ?", domain.MembershipStatusActive, now).
		Update("status", domain.MembershipStatusExpired)
	return res.RowsAffected, res.Error
}
