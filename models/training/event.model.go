package training

import (
	"time"

	"gorm.io/datatypes"
)

// TrainingEvent is an append-only audit record of a lifecycle occurrence.
// Rows are never updated or deleted; ordering by CreatedAt then ID forms the
// audit trail. ActorID is nil for system-triggered events.
type TrainingEvent struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	Reference    string         `json:"reference" gorm:"size:36;uniqueIndex"`
	AssignmentID uint           `json:"assignment_id" gorm:"index;not null"`
	EventType    string         `json:"event_type" gorm:"not null"`
	ActorID      *uint          `json:"actor_id"`
	Metadata     datatypes.JSON `json:"metadata"`
	CreatedAt    time.Time      `json:"created_at"`
}
