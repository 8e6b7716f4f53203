package training

import "gorm.io/gorm"

// TrainingStep is one ordered unit of content within a training. StepIndex is
// unique per training; soft-deleted rows are re-keyed to a negative index so
// a removed step frees its slot. Gaps left by removals are fine, order is by
// index value.
type TrainingStep struct {
	gorm.Model
	TrainingID     uint `json:"training_id" gorm:"uniqueIndex:idx_training_step;not null"`
	StepIndex      int  `json:"step_index" gorm:"uniqueIndex:idx_training_step;not null"`
	ContentItemID  uint `json:"content_item_id" gorm:"not null"`
	IsRequired     bool `json:"is_required"`
	MinViewSeconds *int `json:"min_view_seconds"` // nil means no minimum
	RequiresAck    bool `json:"requires_ack" gorm:"default:false"`
	IsDeleted      bool `json:"is_deleted" gorm:"default:false"`
}
