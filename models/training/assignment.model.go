package training

import (
	"time"

	"gorm.io/gorm"
)

// Assignment binds one training to one user with lifecycle metadata.
// RevokedAt and WaivedAt are terminal: once either is stamped the engine
// rejects further step mutation.
type Assignment struct {
	gorm.Model
	TrainingID   uint       `json:"training_id" gorm:"index;not null"`
	UserID       uint       `json:"user_id" gorm:"index;not null"`
	AssignedByID *uint      `json:"assigned_by_id"`
	IsRequired   bool       `json:"is_required"`
	DueAt        *time.Time `json:"due_at"`
	AssignedAt   time.Time  `json:"assigned_at"`
	RevokedAt    *time.Time `json:"revoked_at"`
	WaivedAt     *time.Time `json:"waived_at"`
	WaivedByID   *uint      `json:"waived_by_id"`
	WaiveReason  string     `json:"waive_reason"`
}

// Terminal reports whether the assignment has been revoked or waived.
func (a *Assignment) Terminal() bool {
	return a.RevokedAt != nil || a.WaivedAt != nil
}
