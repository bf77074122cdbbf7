package models

import (
	"time"

	"gorm.io/gorm"
)

type Sponsor struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Name         string         `gorm:"size:150;not null" json:"name"`
	PackageType  string         `gorm:"size:50;not null" json:"package_type"`
	Description  string         `gorm:"type:text" json:"description"`
	LogoURL      string         `gorm:"size:512" json:"logo_url"`
	WebsiteURL   string         `gorm:"size:255" json:"website_url"`
	ContactEmail string         `gorm:"size:255" json:"contact_email"`
	ContactPhone string         `gorm:"size:30" json:"contact_phone"`
	Active       bool           `gorm:"not null;default:true;index" json:"active"`
	DisplayOrder int            `gorm:"not null;default:0" json:"display_order"`
	ExpiresAt    *time.Time     `json:"expires_at,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Sponsor) TableName() string {
	return "sponsors"
}
