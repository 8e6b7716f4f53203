// Package training implements the training assignment and completion engine:
// assignment lifecycle, per-step progress tracking, completion rule
// evaluation and the append-only audit trail.
package training

import (
	"errors"

	"gorm.io/gorm"

	"helpdesk/models"
	model "helpdesk/models/training"
)

// EventSink receives audit events after their transaction commits, e.g. for
// projection to a notification service. Implementations must not block the
// caller on failure.
type EventSink interface {
	Publish(evt model.TrainingEvent)
}

// Service is the engine. All state lives in the injected store; the service
// itself is stateless and safe for concurrent use.
type Service struct {
	db   *gorm.DB
	sink EventSink
}

// New builds a Service around the given store. sink may be nil.
func New(db *gorm.DB, sink EventSink) *Service {
	return &Service{db: db, sink: sink}
}

func (s *Service) getAssignment(db *gorm.DB, id uint) (*model.Assignment, error) {
	var assignment model.Assignment
	if err := db.Where("id = ?", id).First(&assignment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "assignment", ID: id}
		}
		return nil, err
	}
	return &assignment, nil
}

func (s *Service) getProgress(db *gorm.DB, assignmentID uint) (*model.TrainingProgress, error) {
	var progress model.TrainingProgress
	if err := db.Where("assignment_id = ?", assignmentID).First(&progress).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "assignment progress", ID: assignmentID}
		}
		return nil, err
	}
	return &progress, nil
}

func (s *Service) getDefinition(db *gorm.DB, trainingID uint) (*model.TrainingDefinition, error) {
	var def model.TrainingDefinition
	if err := db.Where("id = ? AND is_deleted = ?", trainingID, false).First(&def).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "training", ID: trainingID}
		}
		return nil, err
	}
	return &def, nil
}

func (s *Service) getStep(db *gorm.DB, trainingID, stepID uint) (*model.TrainingStep, error) {
	var step model.TrainingStep
	err := db.Where("id = ? AND training_id = ? AND is_deleted = ?", stepID, trainingID, false).First(&step).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "training step", ID: stepID}
		}
		return nil, err
	}
	return &step, nil
}

func (s *Service) getUser(db *gorm.DB, id uint) (*models.User, error) {
	var user models.User
	err := db.Where("id = ? AND is_deleted = ? AND is_active = ?", id, false, true).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "user", ID: id}
		}
		return nil, err
	}
	return &user, nil
}

// loadActive loads an assignment and its progress aggregate, rejecting
// waived and revoked assignments. Every step-mutation entry point goes
// through this guard inside its own transaction, so the check sees the
// latest committed assignment state.
func (s *Service) loadActive(db *gorm.DB, assignmentID uint) (*model.Assignment, *model.TrainingProgress, error) {
	assignment, err := s.getAssignment(db, assignmentID)
	if err != nil {
		return nil, nil, err
	}
	progress, err := s.getProgress(db, assignmentID)
	if err != nil {
		return nil, nil, err
	}
	if assignment.Terminal() {
		status := progress.Status
		if !status.Terminal() {
			// aggregate out of step with the assignment row; fall back to the timestamps
			status = model.StatusRevoked
			if assignment.WaivedAt != nil && (assignment.RevokedAt == nil || assignment.WaivedAt.After(*assignment.RevokedAt)) {
				status = model.StatusWaived
			}
		}
		return nil, nil, &TerminalStateError{AssignmentID: assignmentID, Status: status}
	}
	return assignment, progress, nil
}

// publish hands committed events to the sink without blocking the request.
func (s *Service) publish(events []model.TrainingEvent) {
	if s.sink == nil || len(events) == 0 {
		return
	}
	go func(evts []model.TrainingEvent) {
		for _, evt := range evts {
			s.sink.Publish(evt)
		}
	}(events)
}
