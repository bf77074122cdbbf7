package repository

import (
	"github.com/emgbraker/greencompanions/internal/models"

	"gorm.io/gorm"
)

// ClubRepository, SponsorRepository and ContentRepository back the admin
// dashboard's data entry; plain CRUD over their models.

type ClubRepository struct {
	db *gorm.DB
}

func NewClubRepository(db *gorm.DB) *ClubRepository {
	return &ClubRepository{db: db}
}

func (r *ClubRepository) Create(c *models.GolfClub) error { return r.db.Create(c).Error }
func (r *ClubRepository) Update(c *models.GolfClub) error { return r.db.Save(c).Error }
func (r *ClubRepository) Delete(id uint) error {
	return r.db.Delete(&models.GolfClub{}, id).Error
}

func (r *ClubRepository) GetByID(id uint) (*models.GolfClub, error) {
	var c models.GolfClub
	if err := r.db.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ClubRepository) List() ([]models.GolfClub, error) {
	var list []models.GolfClub
	err := r.db.Order("name ASC").Find(&list).Error
	return list, err
}

type SponsorRepository struct {
	db *gorm.DB
}

func NewSponsorRepository(db *gorm.DB) *SponsorRepository {
	return &SponsorRepository{db: db}
}

func (r *SponsorRepository) Create(s *models.Sponsor) error { return r.db.Create(s).Error }
func (r *SponsorRepository) Update(s *models.Sponsor) error { return r.db.Save(s).Error }
func (r *SponsorRepository) Delete(id uint) error {
	return r.db.Delete(&models.Sponsor{}, id).Error
}

func (r *SponsorRepository) GetByID(id uint) (*models.Sponsor, error) {
	var s models.Sponsor
	if err := r.db.First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// ListActive returns sponsors for the public page, in display order.
func (r *SponsorRepository) ListActive() ([]models.Sponsor, error) {
	var list []models.Sponsor
	err := r.db.Where("active = ?", true).
		Order("display_order ASC, name ASC").Find(&list).Error
	return list, err
}

func (r *SponsorRepository) ListAll() ([]models.Sponsor, error) {
	var list []models.Sponsor
	err := r.db.Order("display_order ASC, name ASC").Find(&list).Error
	return list, err
}

type ContentRepository struct {
	db *gorm.DB
}

func NewContentRepository(db *gorm.DB) *ContentRepository {
	return &ContentRepository{db: db}
}

func (r *ContentRepository) ListByPage(pageKey string) ([]models.WebsiteContent, error) {
	var list []models.WebsiteContent
	err := r.db.Where("page_key = ?", pageKey).
		Order("display_order ASC").Find(&list).Error
	return list, err
}

func (r *ContentRepository) Upsert(c *models.WebsiteContent) error {
	var existing models.WebsiteContent
	err := r.db.Where("page_key = ? AND section_key = ?", c.PageKey, c.SectionKey).First(&existing).Error
	if err == nil {
		c.ID = existing.ID
		return r.db.Save(c).Error
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}
	return r.db.Create(c).Error
}
