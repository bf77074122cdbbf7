package repository

import (
	"strings"
	"time"

	"github.com/emgbraker/greencompanions/internal/models"

	"gorm.io/gorm"
)

// MemberFilters narrows the directory search. Zero values mean "no filter".
type MemberFilters struct {
	Query               string // matches first or last name, case-insensitive
	Province            string
	Gender              string
	Handicap            string // range label
	AgeMin              int
	AgeMax              int
	SeekingRelationship *bool // only honored for elite viewers; gated by the handler
	Limit               int
	Offset              int
}

// MemberSummary is the privacy-tiered projection shown in the directory:
// no email, no blocked fields, no account data.
type MemberSummary struct {
	UserID              uint   `json:"user_id"`
	FirstName           string `json:"first_name"`
	LastName            string `json:"last_name"`
	AvatarURL           string `json:"avatar_url"`
	Age                 int    `json:"age"`
	City                string `json:"city"`
	Province            string `json:"province"`
	Gender              string `json:"gender"`
	Handicap            string `json:"handicap"`
	Bio                 string `json:"bio"`
	SeekingRelationship bool   `json:"seeking_relationship"`
}

// DirectoryRepository builds the filtered member directory view.
type DirectoryRepository struct {
	db *gorm.DB
}

func NewDirectoryRepository(db *gorm.DB) *DirectoryRepository {
	return &DirectoryRepository{db: db}
}

// SearchMembers returns candidate members for the viewer. Blocked profiles
// and the viewer's own profile are always excluded, regardless of filters.
// Age filtering runs in the application layer after the fetch since age is
// derived from birth_date.
func (r *DirectoryRepository) SearchMembers(viewerID uint, f MemberFilters) ([]MemberSummary, error) {
	if f.Limit <= 0 {
		f.Limit = 50
	}

	query := r.db.Model(&models.Profile{}).
		Where("blocked = ?", false).
		Where("user_id <> ?", viewerID)

	if q := strings.TrimSpace(f.Query); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		query = query.Where("LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ?", like, like)
	}
	if f.Province != "" {
		query = query.Where("province = ?", f.Province)
	}
	if f.Gender != "" {
		query = query.Where("gender = ?", f.Gender)
	}
	if f.Handicap != "" {
		query = query.Where("handicap = ?", f.Handicap)
	}
	if f.SeekingRelationship != nil {
		query = query.Where("seeking_relationship = ?", *f.SeekingRelationship)
	}

	var profiles []models.Profile
	if err := query.Order("created_at DESC").Limit(f.Limit).Offset(f.Offset).Find(&profiles).Error; err != nil {
		return nil, err
	}

	now := time.Now()
	out := make([]MemberSummary, 0, len(profiles))
	for _, p := range profiles {
		age := p.Age(now)
		if f.AgeMin > 0 || f.AgeMax > 0 {
			if p.BirthDate == nil {
				continue
			}
			if f.AgeMin > 0 && age < f.AgeMin {
				continue
			}
			if f.AgeMax > 0 && age > f.AgeMax {
				continue
			}
		}
		out = append(out, MemberSummary{
			UserID:              p.UserID,
			FirstName:           p.FirstName,
			LastName:            p.LastName,
			AvatarURL:           p.AvatarURL,
			Age:                 age,
			City:                p.City,
			Province:            p.Province,
			Gender:              p.Gender,
			Handicap:            p.Handicap,
			Bio:                 p.Bio,
			SeekingRelationship: p.SeekingRelationship,
		})
	}
	return out, nil
}

// GetMember returns the directory projection for a single member, or
// gorm.ErrRecordNotFound when the profile is missing or blocked.
func (r *DirectoryRepository) GetMember(viewerID, userID uint) (*MemberSummary, error) {
	var p models.Profile
	err := r.db.Where("user_id = ? AND blocked = ?", userID, false).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &MemberSummary{
		UserID:              p.UserID,
		FirstName:           p.FirstName,
		LastName:            p.LastName,
		AvatarURL:           p.AvatarURL,
		Age:                 p.Age(time.Now()),
		City:                p.City,
		Province:            p.Province,
		Gender:              p.Gender,
		Handicap:            p.Handicap,
		Bio:                 p.Bio,
		SeekingRelationship: p.SeekingRelationship,
	}, nil
}
