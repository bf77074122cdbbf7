package handler

import (
	"net/http"
	"strconv"

	"github.com/emgbraker/greencompanions/internal/logger"
	"github.com/emgbraker/greencompanions/internal/middleware"
	"github.com/emgbraker/greencompanions/internal/models"
	"github.com/emgbraker/greencompanions/internal/repository"

	"github.com/gin-gonic/gin"
)

// ContentHandler serves the public content pages (clubs, sponsors, editable
// copy) and their admin-side writes.
type ContentHandler struct {
	clubRepo    *repository.ClubRepository
	sponsorRepo *repository.SponsorRepository
	contentRepo *repository.ContentRepository
}

func NewContentHandler(clubRepo *repository.ClubRepository, sponsorRepo *repository.SponsorRepository, contentRepo *repository.ContentRepository) *ContentHandler {
	return &ContentHandler{clubRepo: clubRepo, sponsorRepo: sponsorRepo, contentRepo: contentRepo}
}

func (h *ContentHandler) ListClubs(c *gin.Context) {
	clubs, err := h.clubRepo.List()
	if err != nil {
		logger.Error("list clubs failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list clubs"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"clubs": clubs})
}

func (h *ContentHandler) GetClub(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid club id"})
		return
	}
	club, err := h.clubRepo.GetByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "club not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"club": club})
}

func (h *ContentHandler) CreateClub(c *gin.Context) {
	var club models.GolfClub
	if err := c.ShouldBindJSON(&club); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if club.Name == "" || club.Location == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and location are required"})
		return
	}
	club.ID = 0
	if err := h.clubRepo.Create(&club); err != nil {
		logger.Error("create club failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create club"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"club": club})
}

func (h *ContentHandler) UpdateClub(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid club id"})
		return
	}
	existing, err := h.clubRepo.GetByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "club not found"})
		return
	}
	var club models.GolfClub
	if err := c.ShouldBindJSON(&club); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	club.ID = existing.ID
	club.CreatedAt = existing.CreatedAt
	if err := h.clubRepo.Update(&club); err != nil {
		logger.Error("update club failed", "club_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update club"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"club": club})
}

func (h *ContentHandler) DeleteClub(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid club id"})
		return
	}
	if err := h.clubRepo.Delete(uint(id)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete club"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// ListSponsors serves the public sponsor page: active only, display order.
func (h *ContentHandler) ListSponsors(c *gin.Context) {
	sponsors, err := h.sponsorRepo.ListActive()
	if err != nil {
		logger.Error("list sponsors failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list sponsors"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sponsors": sponsors})
}

// ListAllSponsors is the admin view, inactive included.
func (h *ContentHandler) ListAllSponsors(c *gin.Context) {
	sponsors, err := h.sponsorRepo.ListAll()
	if err != nil {
		logger.Error("list all sponsors failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list sponsors"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sponsors": sponsors})
}

func (h *ContentHandler) CreateSponsor(c *gin.Context) {
	var s models.Sponsor
	if err := c.ShouldBindJSON(&s); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if s.Name == "" || s.PackageType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and package_type are required"})
		return
	}
	s.ID = 0
	if err := h.sponsorRepo.Create(&s); err != nil {
		logger.Error("create sponsor failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create sponsor"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"sponsor": s})
}

func (h *ContentHandler) UpdateSponsor(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid sponsor id"})
		return
	}
	existing, err := h.sponsorRepo.GetByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "sponsor not found"})
		return
	}
	var s models.Sponsor
	if err := c.ShouldBindJSON(&s); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.ID = existing.ID
	s.CreatedAt = existing.CreatedAt
	if err := h.sponsorRepo.Update(&s); err != nil {
		logger.Error("update sponsor failed", "sponsor_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update sponsor"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sponsor": s})
}

func (h *ContentHandler) DeleteSponsor(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid sponsor id"})
		return
	}
	if err := h.sponsorRepo.Delete(uint(id)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete sponsor"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// GetPageContent returns the copy blocks for one page.
func (h *ContentHandler) GetPageContent(c *gin.Context) {
	page := c.Param("page")
	blocks, err := h.contentRepo.ListByPage(page)
	if err != nil {
		logger.Error("page content failed", "page", page, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load content"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": page, "content": blocks})
}

type UpsertContentRequest struct {
	SectionKey   string `json:"section_key" binding:"required,max=100"`
	ContentType  string `json:"content_type" binding:"required,oneof=text html markdown"`
	Content      string `json:"content" binding:"required"`
	DisplayOrder int    `json:"display_order"`
}

// UpsertContent creates or replaces one copy block.
func (h *ContentHandler) UpsertContent(c *gin.Context) {
	adminID := middleware.GetUserID(c)
	page := c.Param("page")
	var req UpsertContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	block := &models.WebsiteContent{
		PageKey:      page,
		SectionKey:   req.SectionKey,
		ContentType:  req.ContentType,
		Content:      req.Content,
		DisplayOrder: req.DisplayOrder,
		Editable:     true,
		UpdatedBy:    &adminID,
	}
	if err := h.contentRepo.Upsert(block); err != nil {
		logger.Error("upsert content failed", "page", page, "section", req.SectionKey, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save content"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"content": block})
}
