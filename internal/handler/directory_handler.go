package handler

import (
	"net/http"
	"strconv"

	"github.com/emgbraker/greencompanions/internal/logger"
	"github.com/emgbraker/greencompanions/internal/middleware"
	"github.com/emgbraker/greencompanions/internal/repository"

	"github.com/gin-gonic/gin"
)

type DirectoryHandler struct {
	dirRepo        *repository.DirectoryRepository
	membershipRepo *repository.MembershipRepository
}

func NewDirectoryHandler(dirRepo *repository.DirectoryRepository, membershipRepo *repository.MembershipRepository) *DirectoryHandler {
	return &DirectoryHandler{dirRepo: dirRepo, membershipRepo: membershipRepo}
}

// Search lists visible members for the directory. The seeking_relationship
// filter is an elite perk; other plans get it silently ignored rather than
// an error, matching what the frontend shows them.
func (h *DirectoryHandler) Search(c *gin.Context) {
	viewerID := middleware.GetUserID(c)
	f := repository.MemberFilters{
		Query:    c.Query("q"),
		Province: c.Query("province"),
		Gender:   c.Query("gender"),
		Handicap: c.Query("handicap"),
		Limit:    parseIntDefault(c.Query("limit"), 24),
		Offset:   parseIntDefault(c.Query("offset"), 0),
	}
	if v := c.Query("age_min"); v != "" {
		f.AgeMin = parseIntDefault(v, 0)
	}
	if v := c.Query("age_max"); v != "" {
		f.AgeMax = parseIntDefault(v, 0)
	}
	if v := c.Query("seeking_relationship"); v != "" {
		elite, err := h.membershipRepo.IsElite(viewerID)
		if err != nil {
			logger.Error("membership check failed", "user_id", viewerID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed"})
			return
		}
		if elite {
			b := v == "true" || v == "1"
			f.SeekingRelationship = &b
		}
	}
	members, err := h.dirRepo.SearchMembers(viewerID, f)
	if err != nil {
		logger.Error("member search failed", "user_id", viewerID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"members": members, "count": len(members)})
}

// Get returns one member's public card.
func (h *DirectoryHandler) Get(c *gin.Context) {
	viewerID := middleware.GetUserID(c)
	memberID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || memberID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid member id"})
		return
	}
	m, err := h.dirRepo.GetMember(viewerID, uint(memberID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "member not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"member": m})
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return def
	}
	return n
}
