package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/emgbraker/greencompanions/internal/domain"
	"github.com/emgbraker/greencompanions/internal/logger"
	"github.com/emgbraker/greencompanions/internal/middleware"
	"github.com/emgbraker/greencompanions/internal/repository"
	"github.com/emgbraker/greencompanions/pkg/cloudinary"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProfileHandler struct {
	profileRepo *repository.ProfileRepository
	cloud       cloudinary.Client
}

func NewProfileHandler(profileRepo *repository.ProfileRepository, cloud cloudinary.Client) *ProfileHandler {
	return &ProfileHandler{profileRepo: profileRepo, cloud: cloud}
}

// Me returns the caller's own profile, including fields hidden from the
// member directory.
func (h *ProfileHandler) Me(c *gin.Context) {
	userID := middleware.GetUserID(c)
	p, err := h.profileRepo.GetByUserID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": p, "age": p.Age(time.Now())})
}

type UpdateProfileRequest struct {
	FirstName           *string `json:"first_name"`
	LastName            *string `json:"last_name"`
	City                *string `json:"city"`
	Province            *string `json:"province"`
	Gender              *string `json:"gender"`
	Handicap            *string `json:"handicap"`
	GolfClub            *string `json:"golf_club"`
	Bio                 *string `json:"bio"`
	SeekingRelationship *bool   `json:"seeking_relationship"`
}

// UpdateMe applies a partial update to the caller's profile. Blocked state
// is admin-only and not reachable from here.
func (h *ProfileHandler) UpdateMe(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, err := h.profileRepo.GetByUserID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}
	if req.Province != nil && *req.Province != "" && !domain.ValidProvince(*req.Province) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown province"})
		return
	}
	if req.Handicap != nil && *req.Handicap != "" && !domain.ValidHandicapRange(*req.Handicap) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown handicap range"})
		return
	}
	if req.FirstName != nil {
		p.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		p.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.City != nil {
		p.City = *req.City
	}
	if req.Province != nil {
		p.Province = *req.Province
	}
	if req.Gender != nil {
		p.Gender = *req.Gender
	}
	if req.Handicap != nil {
		p.Handicap = *req.Handicap
	}
	if req.GolfClub != nil {
		p.GolfClub = *req.GolfClub
	}
	if req.Bio != nil {
		p.Bio = *req.Bio
	}
	if req.SeekingRelationship != nil {
		p.SeekingRelationship = *req.SeekingRelationship
	}
	if p.FirstName == "" || p.LastName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "first and last name are required"})
		return
	}
	if err := h.profileRepo.Update(p); err != nil {
		logger.Error("profile update failed", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update profile"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": p})
}

// UploadAvatar stores a new profile image. Size is checked before the file
// is handed to Cloudinary.
func (h *ProfileHandler) UploadAvatar(c *gin.Context) {
	userID := middleware.GetUserID(c)
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file required"})
		return
	}
	if file.Size > domain.MaxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "image exceeds 5MB limit"})
		return
	}
	ct := file.Header.Get("Content-Type")
	if !strings.HasPrefix(ct, "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "only images are accepted"})
		return
	}
	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read file"})
		return
	}
	defer f.Close()

	folder := "greenconnect/avatars/" + strconv.FormatUint(uint64(userID), 10)
	publicID := "avatar_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:16]
	url, _, err := h.cloud.UploadImage(c.Request.Context(), f, folder, publicID)
	if err != nil {
		logger.Error("avatar upload failed", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed"})
		return
	}
	if err := h.profileRepo.UpdateAvatar(userID, url); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save avatar"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"avatar_url": url})
}
