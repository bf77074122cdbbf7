package repository

import (
	"time"

	"github.com/emgbraker/greencompanions/internal/models"

	"gorm.io/gorm"
)

type WarningRepository struct {
	db *gorm.DB
}

func NewWarningRepository(db *gorm.DB) *WarningRepository {
	return &WarningRepository{db: db}
}

func (r *WarningRepository) Create(w *models.UserWarning) error {
	return r.db.Create(w).Error
}

func (r *WarningRepository) ListByUserID(userID uint) ([]models.UserWarning, error) {
	var list []models.UserWarning
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *WarningRepository) Resolve(id uint) error {
	now := time.Now()
	return r.db.Model(&models.UserWarning{}).Where("id = ?", id).
		Updates(map[string]interface{}{"resolved": true, "resolved_at": now}).Error
}
