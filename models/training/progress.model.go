package training

import "time"

// TrainingProgress is the per-assignment progress aggregate, created in the
// same transaction as its Assignment (shared primary key).
type TrainingProgress struct {
	AssignmentID    uint           `json:"assignment_id" gorm:"primaryKey"`
	Status          ProgressStatus `json:"status" gorm:"default:'ASSIGNED'"`
	ProgressPercent int            `json:"progress_percent" gorm:"default:0"` // advisory, 0-100
	StartedAt       *time.Time     `json:"started_at"`
	LastActivityAt  *time.Time     `json:"last_activity_at"`
	FirstViewedAt   *time.Time     `json:"first_viewed_at"`
	AcknowledgedAt  *time.Time     `json:"acknowledged_at"`
	CompletedAt     *time.Time     `json:"completed_at"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// StepProgress is one row per (assignment, step), created lazily on first
// interaction. TimeSpentSeconds is a running total across viewing sessions.
type StepProgress struct {
	AssignmentID     uint       `json:"assignment_id" gorm:"primaryKey"`
	StepID           uint       `json:"step_id" gorm:"primaryKey"`
	FirstViewedAt    *time.Time `json:"first_viewed_at"`
	LastViewedAt     *time.Time `json:"last_viewed_at"`
	AcknowledgedAt   *time.Time `json:"acknowledged_at"`
	CompletedAt      *time.Time `json:"completed_at"`
	TimeSpentSeconds int        `json:"time_spent_seconds" gorm:"not null;default:0"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}
