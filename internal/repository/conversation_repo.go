package repository

import (
	"sort"
	"time"

	"github.com/emgbraker/greencompanions/internal/domain"

	"gorm.io/gorm"
)

// Conversation is the derived inbox entry for one mutual match. It is never
// stored; every field is computed at query time.
type Conversation struct {
	PeerID          uint       `json:"peer_id"`
	FirstName       string     `json:"first_name"`
	LastName        string     `json:"last_name"`
	AvatarURL       string     `json:"avatar_url"`
	UnreadCount     int64      `json:"unread_count"`
	LastMessage     *string    `json:"last_message"`
	LastMessageTime *time.Time `json:"last_message_time"`
	Online          bool       `json:"online" gorm:"-"`
}

// ConversationRepository aggregates the per-user inbox view.
type ConversationRepository struct {
	db *gorm.DB
}

func NewConversationRepository(db *gorm.DB) *ConversationRepository {
	return &ConversationRepository{db: db}
}

// ListForUser returns the caller's conversations: every mutual match joined
// with the peer's profile summary, unread count and last-message preview, in
// one round trip. Mutuality is the self-join on matches; a one-sided like
// never produces a row. Blocked peers are filtered out. Any error aborts the
// whole aggregation so a partial inbox with wrong unread badges is never
// returned.
func (r *ConversationRepository) ListForUser(userID uint) ([]Conversation, error) {
	const lastMsgFilter = "(lm.sender_id = m.user_id AND lm.receiver_id = m.matched_user_id) OR (lm.sender_id = m.matched_user_id AND lm.receiver_id = m.user_id)"

	var rows []Conversation
	err := r.db.Table("matches m").
		Select("m.matched_user_id AS peer_id, "+
			"p.first_name, p.last_name, p.avatar_url, "+
			"(SELECT COUNT(*) FROM messages um WHERE um.sender_id = m.matched_user_id AND um.receiver_id = m.user_id AND um.`read` = ?) AS unread_count, "+
			"(SELECT lm.content FROM messages lm WHERE "+lastMsgFilter+" ORDER BY lm.created_at DESC, lm.id DESC LIMIT 1) AS last_message, "+
			"(SELECT lm.created_at FROM messages lm WHERE "+lastMsgFilter+" ORDER BY lm.created_at DESC, lm.id DESC LIMIT 1) AS last_message_time",
			false).
		Joins("INNER JOIN matches rm ON rm.user_id = m.matched_user_id AND rm.matched_user_id = m.user_id AND rm.status = ?", domain.MatchStatusPending).
		Joins("INNER JOIN profiles p ON p.user_id = m.matched_user_id").
		Where("m.user_id = ? AND m.status = ?", userID, domain.MatchStatusPending).
		Where("p.blocked = ?", false).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	// Most recent activity first; conversations without any message yet sort
	// after all that have one.
	sort.SliceStable(rows, func(i, j int) bool {
		ti, tj := rows[i].LastMessageTime, rows[j].LastMessageTime
		switch {
		case ti == nil && tj == nil:
			return rows[i].PeerID < rows[j].PeerID
		case ti == nil:
			return false
		case tj == nil:
			return true
		case !ti.Equal(*tj):
			return ti.After(*tj)
		default:
			return rows[i].PeerID < rows[j].PeerID
		}
	})
	return rows, nil
}
