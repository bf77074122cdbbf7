package handler

import (
	"net/http"
	"strconv"

	"github.com/emgbraker/greencompanions/internal/logger"
	"github.com/emgbraker/greencompanions/internal/middleware"
	"github.com/emgbraker/greencompanions/internal/models"
	"github.com/emgbraker/greencompanions/internal/repository"
	"github.com/emgbraker/greencompanions/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminHandler covers the moderation surface: member overview, blocking and
// warnings. Routes using it sit behind AdminRequired.
type AdminHandler struct {
	profileRepo *repository.ProfileRepository
	warningRepo *repository.WarningRepository
	notifier    *service.NotificationService
}

func NewAdminHandler(profileRepo *repository.ProfileRepository, warningRepo *repository.WarningRepository, notifier *service.NotificationService) *AdminHandler {
	return &AdminHandler{profileRepo: profileRepo, warningRepo: warningRepo, notifier: notifier}
}

// ListMembers returns all profiles, blocked included.
func (h *AdminHandler) ListMembers(c *gin.Context) {
	limit := parseIntDefault(c.Query("limit"), 50)
	offset := parseIntDefault(c.Query("offset"), 0)
	profiles, err := h.profileRepo.ListAll(limit, offset)
	if err != nil {
		logger.Error("admin list members failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list members"})
		return
	}
	total, err := h.profileRepo.CountAll()
	if err != nil {
		logger.Error("admin count members failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list members"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"members": profiles, "total": total})
}

type BlockRequest struct {
	Reason string `json:"reason" binding:"required,max=255"`
}

// Block hides a member from the directory and cuts their access. Reason and
// timestamp are stored with the flag.
func (h *AdminHandler) Block(c *gin.Context) {
	adminID := middleware.GetUserID(c)
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || userID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid member id"})
		return
	}
	var req BlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.profileRepo.Block(uint(userID), req.Reason); err != nil {
		logger.Error("block failed", "admin_id", adminID, "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not block member"})
		return
	}
	logger.Info("member blocked", "admin_id", adminID, "user_id", userID, "reason", req.Reason)
	c.JSON(http.StatusOK, gin.H{"status": "blocked"})
}

// Unblock clears the blocked flag, reason and timestamp together.
func (h *AdminHandler) Unblock(c *gin.Context) {
	adminID := middleware.GetUserID(c)
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || userID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid member id"})
		return
	}
	if err := h.profileRepo.Unblock(uint(userID)); err != nil {
		logger.Error("unblock failed", "admin_id", adminID, "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not unblock member"})
		return
	}
	logger.Info("member unblocked", "admin_id", adminID, "user_id", userID)
	c.JSON(http.StatusOK, gin.H{"status": "unblocked"})
}

type WarnRequest struct {
	Reason   string `json:"reason" binding:"required,max=255"`
	Severity string `json:"severity" binding:"required,oneof=low medium high"`
	Notes    string `json:"notes"`
}

// Warn records a moderation warning and notifies the member in-app.
func (h *AdminHandler) Warn(c *gin.Context) {
	adminID := middleware.GetUserID(c)
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || userID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid member id"})
		return
	}
	var req WarnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	w := &models.UserWarning{
		UserID:   uint(userID),
		WarnedBy: adminID,
		Reason:   req.Reason,
		Severity: req.Severity,
		Notes:    req.Notes,
	}
	if err := h.warningRepo.Create(w); err != nil {
		logger.Error("warn failed", "admin_id", adminID, "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create warning"})
		return
	}
	h.notifier.NotifyWarning(uint(userID), req.Reason)
	c.JSON(http.StatusCreated, gin.H{"warning": w})
}

// Warnings lists a member's warning history.
func (h *AdminHandler) Warnings(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || userID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid member id"})
		return
	}
	list, err := h.warningRepo.ListByUserID(uint(userID))
	if err != nil {
		logger.Error("list warnings failed", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list warnings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"warnings": list})
}

// ResolveWarning closes out a warning.
func (h *AdminHandler) ResolveWarning(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("warning_id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid warning id"})
		return
	}
	if err := h.warningRepo.Resolve(uint(id)); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "warning not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "resolved"})
}
