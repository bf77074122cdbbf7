package models

import (
	"time"
)

type UserWarning struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	UserID     uint       `gorm:"not null;index" json:"user_id"`
	WarnedBy   uint       `gorm:"not null" json:"warned_by"`
	Reason     string     `gorm:"size:255;not null" json:"reason"`
	Severity   string     `gorm:"size:20;not null" json:"severity"` // low | medium | high
	Notes      string     `gorm:"type:text" json:"notes"`
	Resolved   bool       `gorm:"not null;default:false;index" json:"resolved"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (UserWarning) TableName() string {
	return "user_warnings"
}
