package handler

import (
	"net/http"
	"time"

	"github.com/emgbraker/greencompanions/internal/domain"
	"github.com/emgbraker/greencompanions/internal/logger"
	"github.com/emgbraker/greencompanions/internal/middleware"
	"github.com/emgbraker/greencompanions/internal/models"
	"github.com/emgbraker/greencompanions/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type MembershipHandler struct {
	repo *repository.MembershipRepository
}

func NewMembershipHandler(repo *repository.MembershipRepository) *MembershipHandler {
	return &MembershipHandler{repo: repo}
}

// Me returns the caller's active membership. A member with no active row is
// reported as free.
func (h *MembershipHandler) Me(c *gin.Context) {
	userID := middleware.GetUserID(c)
	m, err := h.repo.GetActiveByUserID(userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusOK, gin.H{"membership": gin.H{"type": domain.MembershipFree, "status": domain.MembershipStatusActive}})
			return
		}
		logger.Error("membership lookup failed", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load membership"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"membership": m})
}

type UpgradeMembershipRequest struct {
	Type   string `json:"type" binding:"required"`
	Months int    `json:"months" binding:"required,min=1,max=24"`
}

// Upgrade switches the caller to a paid plan. Payment settlement happens
// out of band; this endpoint records the plan period.
func (h *MembershipHandler) Upgrade(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req UpgradeMembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !domain.ValidMembershipType(req.Type) || req.Type == domain.MembershipFree {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid membership type"})
		return
	}
	start := time.Now()
	end := start.AddDate(0, req.Months, 0)
	m := &models.Membership{
		UserID:    userID,
		Type:      req.Type,
		Status:    domain.MembershipStatusActive,
		StartDate: start,
		EndDate:   &end,
	}
	if err := h.repo.Create(m); err != nil {
		logger.Error("membership upgrade failed", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not upgrade membership"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"membership": m})
}
