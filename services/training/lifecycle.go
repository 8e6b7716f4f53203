package training

import (
	"errors"
	"time"

	"gorm.io/gorm"

	model "helpdesk/models/training"
)

// CreateAssignment binds a training to a user, creating the assignment and
// its progress aggregate atomically and logging an ASSIGNED event. At most
// one active (not revoked, not waived, not completed) assignment may exist
// per (training, user) pair.
func (s *Service) CreateAssignment(trainingID, userID uint, assignedByID *uint, isRequired bool, dueAt *time.Time) (uint, error) {
	if _, err := s.getDefinition(s.db, trainingID); err != nil {
		return 0, err
	}
	if _, err := s.getUser(s.db, userID); err != nil {
		return 0, err
	}

	var existing model.Assignment
	err := s.db.
		Joins("JOIN training_progresses ON training_progresses.assignment_id = assignments.id").
		Where("assignments.training_id = ? AND assignments.user_id = ?", trainingID, userID).
		Where("assignments.revoked_at IS NULL AND assignments.waived_at IS NULL").
		Where("training_progresses.status <> ?", model.StatusCompleted).
		First(&existing).Error
	if err == nil {
		return 0, &ConflictError{Reason: "user already has an active assignment for this training"}
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}

	now := time.Now()
	assignment := model.Assignment{
		TrainingID:   trainingID,
		UserID:       userID,
		AssignedByID: assignedByID,
		IsRequired:   isRequired,
		DueAt:        dueAt,
		AssignedAt:   now,
	}

	var emitted []model.TrainingEvent
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&assignment).Error; err != nil {
			return err
		}
		progress := model.TrainingProgress{
			AssignmentID: assignment.ID,
			Status:       model.StatusAssigned,
		}
		if err := tx.Create(&progress).Error; err != nil {
			return err
		}
		meta := map[string]interface{}{"training_id": trainingID}
		if dueAt != nil {
			meta["due_at"] = dueAt.Format(time.RFC3339)
		}
		evt, err := appendEvent(tx, assignment.ID, model.EventAssigned, assignedByID, meta)
		if err != nil {
			return err
		}
		emitted = append(emitted, *evt)
		return nil
	})
	if err != nil {
		return 0, err
	}
	s.publish(emitted)
	return assignment.ID, nil
}

// RevokeAssignment stamps revoked-at and moves the aggregate to REVOKED.
// Revoking an already-revoked assignment re-stamps and re-logs; no error.
func (s *Service) RevokeAssignment(assignmentID uint, actorID *uint) error {
	if _, err := s.getAssignment(s.db, assignmentID); err != nil {
		return err
	}

	now := time.Now()
	var emitted []model.TrainingEvent
	err := s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&model.Assignment{}).Where("id = ?", assignmentID).
			Update("revoked_at", now).Error
		if err != nil {
			return err
		}
		err = tx.Model(&model.TrainingProgress{}).Where("assignment_id = ?", assignmentID).
			Update("status", model.StatusRevoked).Error
		if err != nil {
			return err
		}
		evt, err := appendEvent(tx, assignmentID, model.EventRevoked, actorID, nil)
		if err != nil {
			return err
		}
		emitted = append(emitted, *evt)
		return nil
	})
	if err != nil {
		return err
	}
	s.publish(emitted)
	return nil
}

// WaiveAssignment stamps waived-at/by/reason and moves the aggregate to
// WAIVED. The reason travels in the event metadata for the audit trail.
func (s *Service) WaiveAssignment(assignmentID, waivedByID uint, reason string) error {
	if _, err := s.getAssignment(s.db, assignmentID); err != nil {
		return err
	}
	if _, err := s.getUser(s.db, waivedByID); err != nil {
		return err
	}

	now := time.Now()
	var emitted []model.TrainingEvent
	err := s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&model.Assignment{}).Where("id = ?", assignmentID).
			Updates(map[string]interface{}{
				"waived_at":    now,
				"waived_by_id": waivedByID,
				"waive_reason": reason,
			}).Error
		if err != nil {
			return err
		}
		err = tx.Model(&model.TrainingProgress{}).Where("assignment_id = ?", assignmentID).
			Update("status", model.StatusWaived).Error
		if err != nil {
			return err
		}
		var meta map[string]interface{}
		if reason != "" {
			meta = map[string]interface{}{"reason": reason}
		}
		evt, err := appendEvent(tx, assignmentID, model.EventWaived, &waivedByID, meta)
		if err != nil {
			return err
		}
		emitted = append(emitted, *evt)
		return nil
	})
	if err != nil {
		return err
	}
	s.publish(emitted)
	return nil
}
