package models

import (
	"time"
)

// Profile is the member-facing record behind a user account. It is mutated
// only by its owner or an administrator; the blocked fields are written as a
// unit (blocked, blocked_reason, blocked_at together) and only by admins.
type Profile struct {
	ID                  uint       `gorm:"primaryKey" json:"id"`
	UserID              uint       `gorm:"uniqueIndex;not null" json:"user_id"`
	FirstName           string     `gorm:"size:100;not null" json:"first_name"`
	LastName            string     `gorm:"size:100;not null" json:"last_name"`
	AvatarURL           string     `gorm:"size:512" json:"avatar_url"`
	BirthDate           *time.Time `json:"birth_date,omitempty"`
	City                string     `gorm:"size:100" json:"city"`
	Province            string     `gorm:"size:50;index" json:"province"`
	Gender              string     `gorm:"size:20;index" json:"gender"`
	Handicap            string     `gorm:"size:10" json:"handicap"` // range label: 0-10, 11-20, 21-30, 30+
	GolfClub            string     `gorm:"size:150" json:"golf_club"`
	Bio                 string     `gorm:"type:text" json:"bio"`
	SeekingRelationship bool       `gorm:"not null;default:false" json:"seeking_relationship"`
	Blocked             bool       `gorm:"not null;default:false;index" json:"blocked"`
	BlockedReason       string     `gorm:"size:255" json:"blocked_reason,omitempty"`
	BlockedAt           *time.Time `json:"blocked_at,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (Profile) TableName() string {
	return "profiles"
}

// Age returns age in years at t, or 0 when no birth date is set.
func (p *Profile) Age(t time.Time) int {
	if p.BirthDate == nil {
		return 0
	}
	age := t.Year() - p.BirthDate.Year()
	if t.YearDay() < p.BirthDate.YearDay() {
		age--
	}
	return age
}
