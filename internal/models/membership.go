package models

import (
	"time"

	"gorm.io/gorm"
)

type Membership struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	UserID           uint           `gorm:"not null;index" json:"user_id"`
	Type             string         `gorm:"size:20;not null" json:"type"`                   // free | premium | elite
	Status           string         `gorm:"size:20;not null;default:'active';index" json:"status"` // active | expired
	StartDate        time.Time      `json:"start_date"`
	EndDate          *time.Time     `gorm:"index" json:"end_date,omitempty"` // nil for free (never expires)
	NotificationSent bool           `gorm:"not null;default:false" json:"notification_sent"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (Membership) TableName() string {
	return "memberships"
}
