package training

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	model "helpdesk/models/training"
)

var stepProgressKey = []clause.Column{{Name: "assignment_id"}, {Name: "step_id"}}

// MarkStepViewed records a view of one step. First view stamps
// first-viewed-at once; every view moves last-viewed-at forward. The first
// interaction with any step moves the assignment ASSIGNED -> IN_PROGRESS.
func (s *Service) MarkStepViewed(assignmentID, stepID uint) error {
	now := time.Now()
	var emitted []model.TrainingEvent
	err := s.db.Transaction(func(tx *gorm.DB) error {
		assignment, progress, err := s.loadActive(tx, assignmentID)
		if err != nil {
			return err
		}
		step, err := s.getStep(tx, assignment.TrainingID, stepID)
		if err != nil {
			return err
		}

		row := model.StepProgress{
			AssignmentID:  assignmentID,
			StepID:        stepID,
			FirstViewedAt: &now,
			LastViewedAt:  &now,
		}
		err = tx.Clauses(clause.OnConflict{
			Columns: stepProgressKey,
			DoUpdates: clause.Assignments(map[string]interface{}{
				"first_viewed_at": gorm.Expr("COALESCE(first_viewed_at, ?)", now),
				"last_viewed_at":  now,
				"updated_at":      now,
			}),
		}).Create(&row).Error
		if err != nil {
			return err
		}

		updates := map[string]interface{}{"last_activity_at": now}
		if progress.FirstViewedAt == nil {
			updates["first_viewed_at"] = now
		}
		if progress.StartedAt == nil {
			updates["started_at"] = now
		}
		if progress.Status == model.StatusAssigned {
			updates["status"] = model.StatusInProgress
		}
		err = tx.Model(&model.TrainingProgress{}).Where("assignment_id = ?", assignmentID).
			Updates(updates).Error
		if err != nil {
			return err
		}

		evt, err := appendEvent(tx, assignmentID, model.EventViewed, &assignment.UserID,
			map[string]interface{}{"step_id": stepID, "step_index": step.StepIndex})
		if err != nil {
			return err
		}
		emitted = append(emitted, *evt)
		return s.evaluate(tx, assignment, now, &emitted)
	})
	if err != nil {
		return err
	}
	s.publish(emitted)
	return nil
}

// MarkStepCompleted stamps a step's completed-at and re-runs the completion
// rule, which may finalize the whole assignment.
func (s *Service) MarkStepCompleted(assignmentID, stepID uint) error {
	now := time.Now()
	var emitted []model.TrainingEvent
	err := s.db.Transaction(func(tx *gorm.DB) error {
		assignment, _, err := s.loadActive(tx, assignmentID)
		if err != nil {
			return err
		}
		step, err := s.getStep(tx, assignment.TrainingID, stepID)
		if err != nil {
			return err
		}

		row := model.StepProgress{
			AssignmentID: assignmentID,
			StepID:       stepID,
			CompletedAt:  &now,
		}
		err = tx.Clauses(clause.OnConflict{
			Columns: stepProgressKey,
			DoUpdates: clause.Assignments(map[string]interface{}{
				"completed_at": now,
				"updated_at":   now,
			}),
		}).Create(&row).Error
		if err != nil {
			return err
		}

		err = tx.Model(&model.TrainingProgress{}).Where("assignment_id = ?", assignmentID).
			Update("last_activity_at", now).Error
		if err != nil {
			return err
		}

		evt, err := appendEvent(tx, assignmentID, model.EventStepCompleted, &assignment.UserID,
			map[string]interface{}{"step_id": stepID, "step_index": step.StepIndex})
		if err != nil {
			return err
		}
		emitted = append(emitted, *evt)
		return s.evaluate(tx, assignment, now, &emitted)
	})
	if err != nil {
		return err
	}
	s.publish(emitted)
	return nil
}

// RecordTimeSpent adds deltaSeconds to the step's running total. The add is
// a single conditional update so concurrent sessions never lose a delta.
// Time alone can satisfy ALL_STEPS_VIEWED minimums, so the rule re-runs here.
func (s *Service) RecordTimeSpent(assignmentID, stepID uint, deltaSeconds int) error {
	if deltaSeconds < 0 {
		return &ValidationError{Field: "deltaSeconds", Reason: "must not be negative"}
	}

	now := time.Now()
	var emitted []model.TrainingEvent
	err := s.db.Transaction(func(tx *gorm.DB) error {
		assignment, _, err := s.loadActive(tx, assignmentID)
		if err != nil {
			return err
		}
		if _, err := s.getStep(tx, assignment.TrainingID, stepID); err != nil {
			return err
		}

		row := model.StepProgress{
			AssignmentID:     assignmentID,
			StepID:           stepID,
			TimeSpentSeconds: deltaSeconds,
		}
		err = tx.Clauses(clause.OnConflict{
			Columns: stepProgressKey,
			DoUpdates: clause.Assignments(map[string]interface{}{
				"time_spent_seconds": gorm.Expr("time_spent_seconds + ?", deltaSeconds),
				"updated_at":         now,
			}),
		}).Create(&row).Error
		if err != nil {
			return err
		}

		err = tx.Model(&model.TrainingProgress{}).Where("assignment_id = ?", assignmentID).
			Update("last_activity_at", now).Error
		if err != nil {
			return err
		}
		return s.evaluate(tx, assignment, now, &emitted)
	})
	if err != nil {
		return err
	}
	s.publish(emitted)
	return nil
}

// AcknowledgeStep stamps a step's acknowledged-at, needed by steps that
// require their own acknowledgement under ALL_STEPS_COMPLETED.
func (s *Service) AcknowledgeStep(assignmentID, stepID, userID uint) error {
	now := time.Now()
	var emitted []model.TrainingEvent
	err := s.db.Transaction(func(tx *gorm.DB) error {
		assignment, _, err := s.loadActive(tx, assignmentID)
		if err != nil {
			return err
		}
		step, err := s.getStep(tx, assignment.TrainingID, stepID)
		if err != nil {
			return err
		}

		row := model.StepProgress{
			AssignmentID:   assignmentID,
			StepID:         stepID,
			AcknowledgedAt: &now,
		}
		err = tx.Clauses(clause.OnConflict{
			Columns: stepProgressKey,
			DoUpdates: clause.Assignments(map[string]interface{}{
				"acknowledged_at": gorm.Expr("COALESCE(acknowledged_at, ?)", now),
				"updated_at":      now,
			}),
		}).Create(&row).Error
		if err != nil {
			return err
		}

		err = tx.Model(&model.TrainingProgress{}).Where("assignment_id = ?", assignmentID).
			Update("last_activity_at", now).Error
		if err != nil {
			return err
		}

		evt, err := appendEvent(tx, assignmentID, model.EventAcknowledged, &userID,
			map[string]interface{}{"step_id": stepID, "step_index": step.StepIndex})
		if err != nil {
			return err
		}
		emitted = append(emitted, *evt)
		return s.evaluate(tx, assignment, now, &emitted)
	})
	if err != nil {
		return err
	}
	s.publish(emitted)
	return nil
}

// AcknowledgeTraining stamps the assignment-level acknowledgement and
// re-runs the rule; under MANUAL_ACK this alone finalizes the assignment.
func (s *Service) AcknowledgeTraining(assignmentID, userID uint) error {
	now := time.Now()
	var emitted []model.TrainingEvent
	err := s.db.Transaction(func(tx *gorm.DB) error {
		assignment, progress, err := s.loadActive(tx, assignmentID)
		if err != nil {
			return err
		}

		updates := map[string]interface{}{"last_activity_at": now}
		if progress.AcknowledgedAt == nil {
			updates["acknowledged_at"] = now
		}
		err = tx.Model(&model.TrainingProgress{}).Where("assignment_id = ?", assignmentID).
			Updates(updates).Error
		if err != nil {
			return err
		}

		evt, err := appendEvent(tx, assignmentID, model.EventAcknowledged, &userID, nil)
		if err != nil {
			return err
		}
		emitted = append(emitted, *evt)
		return s.evaluate(tx, assignment, now, &emitted)
	})
	if err != nil {
		return err
	}
	s.publish(emitted)
	return nil
}

// CompleteTraining finalizes the assignment unconditionally, for the
// MANUAL_COMPLETE rule and administrative override. Already-completed
// assignments are left untouched.
func (s *Service) CompleteTraining(assignmentID, userID uint) error {
	now := time.Now()
	var emitted []model.TrainingEvent
	err := s.db.Transaction(func(tx *gorm.DB) error {
		_, progress, err := s.loadActive(tx, assignmentID)
		if err != nil {
			return err
		}
		if progress.Status == model.StatusCompleted {
			return nil
		}
		return finalize(tx, assignmentID, &userID, now, &emitted)
	})
	if err != nil {
		return err
	}
	s.publish(emitted)
	return nil
}

// finalize moves the aggregate to COMPLETED and logs the event. A nil actor
// marks a system-triggered completion.
func finalize(tx *gorm.DB, assignmentID uint, actorID *uint, now time.Time, emitted *[]model.TrainingEvent) error {
	err := tx.Model(&model.TrainingProgress{}).Where("assignment_id = ?", assignmentID).
		Updates(map[string]interface{}{
			"status":           model.StatusCompleted,
			"completed_at":     now,
			"progress_percent": 100,
			"last_activity_at": now,
		}).Error
	if err != nil {
		return err
	}
	evt, err := appendEvent(tx, assignmentID, model.EventCompleted, actorID, nil)
	if err != nil {
		return err
	}
	*emitted = append(*emitted, *evt)
	return nil
}

// evaluate re-runs the completion rule inside the mutating transaction so
// the decision sees the write that triggered it. When the rule is satisfied
// the assignment finalizes with a system-actor COMPLETED event; otherwise
// only the advisory percent is refreshed.
func (s *Service) evaluate(tx *gorm.DB, assignment *model.Assignment, now time.Time, emitted *[]model.TrainingEvent) error {
	progress, err := s.getProgress(tx, assignment.ID)
	if err != nil {
		return err
	}
	if progress.Status == model.StatusCompleted {
		return nil
	}
	def, err := s.getDefinition(tx, assignment.TrainingID)
	if err != nil {
		return err
	}

	var steps []model.TrainingStep
	err = tx.Where("training_id = ? AND is_deleted = ?", assignment.TrainingID, false).
		Order("step_index asc").
		Find(&steps).Error
	if err != nil {
		return err
	}

	var rows []model.StepProgress
	if err := tx.Where("assignment_id = ?", assignment.ID).Find(&rows).Error; err != nil {
		return err
	}
	byStep := make(map[uint]model.StepProgress, len(rows))
	for _, row := range rows {
		byStep[row.StepID] = row
	}

	if RuleSatisfied(def.CompletionRule, steps, byStep, progress) {
		return finalize(tx, assignment.ID, nil, now, emitted)
	}

	percent := AdvisoryPercent(def.CompletionRule, steps, byStep)
	if percent != progress.ProgressPercent {
		return tx.Model(&model.TrainingProgress{}).Where("assignment_id = ?", assignment.ID).
			Update("progress_percent", percent).Error
	}
	return nil
}
