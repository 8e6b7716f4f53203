package training

import (
	"errors"
	"fmt"

	model "helpdesk/models/training"
)

// NotFoundError reports a missing assignment, training, step, content item or user.
type NotFoundError struct {
	Entity string
	ID     uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

// TerminalStateError reports an attempted progress mutation on an assignment
// that has already been waived or revoked.
type TerminalStateError struct {
	AssignmentID uint
	Status       model.ProgressStatus
}

func (e *TerminalStateError) Error() string {
	return fmt.Sprintf("assignment %d is %s and no longer accepts progress", e.AssignmentID, e.Status)
}

// ValidationError reports malformed input, surfaced before any store mutation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ConflictError reports a uniqueness violation, e.g. a second active
// assignment for the same (training, user) pair.
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string {
	return e.Reason
}

func IsNotFound(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e)
}

func IsTerminalState(err error) bool {
	var e *TerminalStateError
	return errors.As(err, &e)
}

func IsValidation(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}

func IsConflict(err error) bool {
	var e *ConflictError
	return errors.As(err, &e)
}
