package handler

import (
	"net/http"
	"strconv"

	"github.com/emgbraker/greencompanions/internal/logger"
	"github.com/emgbraker/greencompanions/internal/middleware"
	"github.com/emgbraker/greencompanions/internal/service"

	"github.com/gin-gonic/gin"
)

type ConversationHandler struct {
	chat *service.ChatService
}

func NewConversationHandler(chat *service.ChatService) *ConversationHandler {
	return &ConversationHandler{chat: chat}
}

// Inbox returns the caller's conversation list: one row per mutual match,
// most recently active first.
func (h *ConversationHandler) Inbox(c *gin.Context) {
	userID := middleware.GetUserID(c)
	convs, err := h.chat.Inbox(c.Request.Context(), userID)
	if err != nil {
		logger.Error("inbox failed", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load conversations"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversations": convs})
}

// UnreadBadge returns the total unread count across all conversations.
func (h *ConversationHandler) UnreadBadge(c *gin.Context) {
	userID := middleware.GetUserID(c)
	n, err := h.chat.UnreadBadge(c.Request.Context(), userID)
	if err != nil {
		logger.Error("unread badge failed", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load unread count"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread": n})
}

// History returns the transcript with one peer. Requires a mutual match.
func (h *ConversationHandler) History(c *gin.Context) {
	userID := middleware.GetUserID(c)
	peerID, err := strconv.ParseUint(c.Param("peer_id"), 10, 32)
	if err != nil || peerID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid peer id"})
		return
	}
	msgs, err := h.chat.History(userID, uint(peerID))
	if err != nil {
		if err == service.ErrNotMutualMatch {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		logger.Error("history failed", "user_id", userID, "peer_id", peerID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load messages"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}

type SendMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

// Send posts a message to a matched peer over REST. The websocket is the
// preferred path; this exists for clients without a socket.
func (h *ConversationHandler) Send(c *gin.Context) {
	userID := middleware.GetUserID(c)
	peerID, err := strconv.ParseUint(c.Param("peer_id"), 10, 32)
	if err != nil || peerID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid peer id"})
		return
	}
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	m, err := h.chat.Send(c.Request.Context(), userID, uint(peerID), req.Content)
	if err != nil {
		switch err {
		case service.ErrEmptyMessage, service.ErrMessageTooLong:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case service.ErrNotMutualMatch:
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			logger.Error("send failed", "user_id", userID, "peer_id", peerID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not send message"})
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": m})
}

// MarkRead flips all unread messages from the peer to read.
func (h *ConversationHandler) MarkRead(c *gin.Context) {
	userID := middleware.GetUserID(c)
	peerID, err := strconv.ParseUint(c.Param("peer_id"), 10, 32)
	if err != nil || peerID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid peer id"})
		return
	}
	n, err := h.chat.MarkRead(c.Request.Context(), userID, uint(peerID))
	if err != nil {
		logger.Error("mark read failed", "user_id", userID, "peer_id", peerID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not mark as read"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"marked": n})
}
