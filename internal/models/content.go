package models

import (
	"time"
)

// WebsiteContent holds the editable copy blocks the admin dashboard manages,
// keyed by page and section.
type WebsiteContent struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	PageKey      string    `gorm:"size:100;not null;index:idx_content_key,unique" json:"page_key"`
	SectionKey   string    `gorm:"size:100;not null;index:idx_content_key,unique" json:"section_key"`
	ContentType  string    `gorm:"size:30;not null" json:"content_type"` // text | html | markdown
	Content      string    `gorm:"type:text;not null" json:"content"`
	DisplayOrder int       `gorm:"not null;default:0" json:"display_order"`
	Editable     bool      `gorm:"not null;default:true" json:"editable"`
	UpdatedBy    *uint     `json:"updated_by,omitempty"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (WebsiteContent) TableName() string {
	return "website_content"
}
