package models

import "gorm.io/gorm"

// ContentItem is an entry in the knowledge/content library. Authoring and
// asset management happen in the content service; this side only reads.
type ContentItem struct {
	gorm.Model
	Title       string `json:"title"`
	Summary     string `json:"summary" gorm:"type:text"`
	ContentType string `json:"content_type" gorm:"default:'ARTICLE'"` // ARTICLE, VIDEO, DOCUMENT
	FileURL     string `json:"file_url"`
	IsPublished bool   `json:"is_published" gorm:"default:false"`
	IsTrainable bool   `json:"is_trainable" gorm:"default:false"`
	IsDeleted   bool   `json:"is_deleted" gorm:"default:false"`
}
