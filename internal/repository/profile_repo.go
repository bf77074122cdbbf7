package repository

import (
	"time"

	"github.com/emgbraker/greencompanions/internal/models"

	"gorm.io/gorm"
)

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) Create(p *models.Profile) error {
	return r.db.Create(p).Error
}

func (r *ProfileRepository) GetByUserID(userID uint) (*models.Profile, error) {
	var p models.Profile
	if err := r.db.Where("user_id = ?", userID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProfileRepository) Update(p *models.Profile) error {
	return r.db.Save(p).Error
}

func (r *ProfileRepository) UpdateAvatar(userID uint, url string) error {
	return r.db.Model(&models.Profile{}).Where("user_id = ?", userID).
		Update("avatar_url", url).Error
}

// Block marks a profile blocked. The three blocked fields are always written
// together so a half-blocked state cannot exist.
func (r *ProfileRepository) Block(userID uint, reason string) error {
	now := time.Now()
	return r.db.Model(&models.Profile{}).Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"blocked":        true,
			"blocked_reason": reason,
			"blocked_at":     now,
		}).Error
}

// Unblock clears all three blocked fields as a unit.
func (r *ProfileRepository) Unblock(userID uint) error {
	return r.db.Model(&models.Profile{}).Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"blocked":        false,
			"blocked_reason": "",
			"blocked_at":     nil,
		}).Error
}

func (r *ProfileRepository) ListAll(limit, offset int) ([]models.Profile, error) {
	var list []models.Profile
	err := r.db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&list).Error
	return list, err
}

func (r *ProfileRepository) CountAll() (int64, error) {
	var c int64
	err := r.db.Model(&models.Profile{}).Count(&c).Error
	return c, err
}
