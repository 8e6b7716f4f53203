package training

import "gorm.io/gorm"

// TrainingDefinition marks a content item as trainable and carries its
// completion policy. One definition per content item.
type TrainingDefinition struct {
	gorm.Model
	ContentItemID    uint           `json:"content_item_id" gorm:"uniqueIndex;not null"`
	CompletionRule   CompletionRule `json:"completion_rule" gorm:"default:'ALL_STEPS_VIEWED'"`
	EstimatedMinutes int            `json:"estimated_minutes" gorm:"default:0"`
	Version          int            `json:"version" gorm:"default:1"`
	AllowDownloads   bool           `json:"allow_downloads" gorm:"default:false"`
	RequireAck       bool           `json:"require_ack" gorm:"default:false"`
	IsDeleted        bool           `json:"is_deleted" gorm:"default:false"`
}
