package training

import (
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	model "helpdesk/models/training"
)

// appendEvent inserts one audit record inside the caller's transaction.
// Events are never updated afterwards.
func appendEvent(tx *gorm.DB, assignmentID uint, eventType string, actorID *uint, metadata map[string]interface{}) (*model.TrainingEvent, error) {
	evt := model.TrainingEvent{
		Reference:    uuid.NewString(),
		AssignmentID: assignmentID,
		EventType:    eventType,
		ActorID:      actorID,
	}
	if metadata != nil {
		raw, err := json.Marshal(metadata)
		if err != nil {
			return nil, err
		}
		evt.Metadata = datatypes.JSON(raw)
	}
	if err := tx.Create(&evt).Error; err != nil {
		return nil, err
	}
	return &evt, nil
}

// ListEvents returns the audit trail of an assignment in write order.
func (s *Service) ListEvents(assignmentID uint) ([]model.TrainingEvent, error) {
	if _, err := s.getAssignment(s.db, assignmentID); err != nil {
		return nil, err
	}
	var events []model.TrainingEvent
	err := s.db.Where("assignment_id = ?", assignmentID).
		Order("created_at asc, id asc").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}
