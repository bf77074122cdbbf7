package models

import (
	"time"

	"gorm.io/gorm"
)

type GolfClub struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"size:150;not null" json:"name"`
	Location    string         `gorm:"size:150;not null" json:"location"`
	Description string         `gorm:"type:text" json:"description"`
	Website     string         `gorm:"size:255" json:"website"`
	Phone       string         `gorm:"size:30" json:"phone"`
	Email       string         `gorm:"size:255" json:"email"`
	ImageURL    string         `gorm:"size:512" json:"image_url"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (GolfClub) TableName() string {
	return "golf_clubs"
}
