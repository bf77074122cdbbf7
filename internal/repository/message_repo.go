package repository

import (
	"github.com/emgbraker/greencompanions/internal/models"

	"gorm.io/gorm"
)

// MessageRepository provides data access for the append-only chat log.
type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(m *models.Message) error {
	return r.db.Create(m).Error
}

// MarkRead flips read=true for every unread message sender→receiver that
// exists at call time. Messages inserted after the update begins stay unread
// for the next cycle. Idempotent: zero rows affected is not an error.
func (r *MessageRepository) MarkRead(receiverID, senderID uint) (int64, error) {
	res := r.db.Model(&models.Message{}).
		Where("sender_id = ? AND receiver_id = ? AND `read` = ?", senderID, receiverID, false).
		Update("read", true)
	return res.RowsAffected, res.Error
}

// History returns all messages between a and b in either direction, ordered
// by created_at with the row id as tie-break so equal timestamps still yield
// a deterministic transcript.
func (r *MessageRepository) History(a, b uint) ([]models.Message, error) {
	var list []models.Message
	err := r.db.
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)", a, b, b, a).
		Order("created_at ASC, id ASC").
		Find(&list).Error
	return list, err
}

// CountUnread returns how many messages sender→receiver are still unread.
func (r *MessageRepository) CountUnread(receiverID, senderID uint) (int64, error) {
	var c int64
	err := r.db.Model(&models.Message{}).
		Where("sender_id = ? AND receiver_id = ? AND `read` = ?", senderID, receiverID, false).
		Count(&c).Error
	return c, err
}

// CountUnreadTotal returns the receiver's unread count across all senders,
// used for the inbox badge.
func (r *MessageRepository) CountUnreadTotal(receiverID uint) (int64, error) {
	var c int64
	err := r.db.Model(&models.Message{}).
		Where("receiver_id = ? AND `read` = ?", receiverID, false).
		Count(&c).Error
	return c, err
}
