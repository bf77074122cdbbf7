package models

import (
	"time"
)

// Message is one row of the append-only per-pair chat log. Read is flipped
// false→true by the receiver only and never reverts.
type Message struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	SenderID   uint      `gorm:"not null;index:idx_msg_pair" json:"sender_id"`
	ReceiverID uint      `gorm:"not null;index:idx_msg_pair" json:"receiver_id"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	Read       bool      `gorm:"not null;default:false;index" json:"read"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Message) TableName() string {
	return "messages"
}
