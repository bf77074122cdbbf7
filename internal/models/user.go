package models

import (
	"time"

	"github.com/emgbraker/greencompanions/internal/domain"

	"gorm.io/gorm"
)

type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Email        string         `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string         `gorm:"size:255" json:"-"`
	Role         string         `gorm:"size:20;not null;index" json:"role"` // USER | ADMIN
	GoogleID     *string        `gorm:"uniqueIndex;size:255" json:"-"`      // nil for email signups (avoids duplicate '' on unique index)
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	Profile *Profile `gorm:"foreignKey:UserID" json:"profile,omitempty"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsAdmin() bool { return u.Role == domain.RoleAdmin }
