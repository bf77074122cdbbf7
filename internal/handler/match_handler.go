package handler

import (
	"net/http"

	"github.com/emgbraker/greencompanions/internal/logger"
	"github.com/emgbraker/greencompanions/internal/middleware"
	"github.com/emgbraker/greencompanions/internal/service"

	"github.com/gin-gonic/gin"
)

type MatchHandler struct {
	svc *service.MatchService
}

func NewMatchHandler(svc *service.MatchService) *MatchHandler {
	return &MatchHandler{svc: svc}
}

type LikeRequest struct {
	TargetID uint `json:"target_id" binding:"required"`
}

// Like records interest in another member. The response carries whether the
// like completed a mutual match.
func (h *MatchHandler) Like(c *gin.Context) {
	actorID := middleware.GetUserID(c)
	var req LikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res, err := h.svc.Like(actorID, req.TargetID)
	if err != nil {
		switch err {
		case service.ErrSelfLike:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case service.ErrProfileNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case service.ErrProfileBlocked:
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			logger.Error("like failed", "actor_id", actorID, "target_id", req.TargetID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "like failed"})
		}
		return
	}
	// A repeat like is informational, not a failure.
	if res.Outcome == service.LikeAlreadyExists {
		c.JSON(http.StatusOK, res)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// Likes lists the caller's outgoing likes.
func (h *MatchHandler) Likes(c *gin.Context) {
	userID := middleware.GetUserID(c)
	likes, err := h.svc.Likes(userID)
	if err != nil {
		logger.Error("list likes failed", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list likes"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"likes": likes})
}
