package models

import (
	"time"
)

// Match records a one-directional like intent: UserID expressed interest in
// MatchedUserID. Rows are append-only; the composite unique index makes a
// concurrent duplicate like fail at the store instead of producing two rows.
// A mutual match is never stored, it is derived by readers from the presence
// of both directions.
type Match struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;index:idx_match_pair,unique" json:"user_id"`
	MatchedUserID uint      `gorm:"not null;index:idx_match_pair,unique;index" json:"matched_user_id"`
	Status        string    `gorm:"size:20;not null;default:'pending';index" json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

func (Match) TableName() string {
	return "matches"
}
