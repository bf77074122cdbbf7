package handler

import (
	"net/http"
	"time"

	"github.com/emgbraker/greencompanions/internal/logger"
	"github.com/emgbraker/greencompanions/internal/middleware"
	"github.com/emgbraker/greencompanions/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	svc *service.AuthService
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

type RegisterRequest struct {
	Email               string `json:"email" binding:"required,email"`
	Password            string `json:"password" binding:"required,min=8"`
	FirstName           string `json:"first_name" binding:"required,max=100"`
	LastName            string `json:"last_name" binding:"required,max=100"`
	BirthDate           string `json:"birth_date" binding:"required"` // YYYY-MM-DD
	City                string `json:"city"`
	Province            string `json:"province"`
	Gender              string `json:"gender"`
	Handicap            string `json:"handicap"`
	GolfClub            string `json:"golf_club"`
	Bio                 string `json:"bio"`
	SeekingRelationship bool   `json:"seeking_relationship"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	birth, err := time.Parse("2006-01-02", req.BirthDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid birth_date format (use YYYY-MM-DD)"})
		return
	}
	u, access, refresh, err := h.svc.Register(service.RegisterInput{
		Email:               req.Email,
		Password:            req.Password,
		FirstName:           req.FirstName,
		LastName:            req.LastName,
		BirthDate:           birth,
		City:                req.City,
		Province:            req.Province,
		Gender:              req.Gender,
		Handicap:            req.Handicap,
		GolfClub:            req.GolfClub,
		Bio:                 req.Bio,
		SeekingRelationship: req.SeekingRelationship,
	})
	if err != nil {
		switch err {
		case service.ErrEmailExists:
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case service.ErrAgeRequired:
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case service.ErrWeakPassword, service.ErrInvalidProvince:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("register failed", "email", req.Email, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"user":          u,
		"access_token":  access,
		"refresh_token": refresh,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, access, refresh, err := h.svc.Login(req.Email, req.Password)
	if err != nil {
		switch err {
		case service.ErrInvalidCreds:
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		case service.ErrAccountBlocked:
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			logger.Error("login failed", "email", req.Email, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user":          u,
		"access_token":  access,
		"refresh_token": refresh,
	})
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	access, refresh, err := h.svc.Refresh(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"access_token":  access,
		"refresh_token": refresh,
	})
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.svc.ChangePassword(userID, req.CurrentPassword, req.NewPassword); err != nil {
		switch err {
		case service.ErrInvalidCreds:
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		case service.ErrWeakPassword:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("change password failed", "user_id", userID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not change password"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "password changed"})
}
