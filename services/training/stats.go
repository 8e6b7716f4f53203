package training

import (
	model "helpdesk/models/training"
)

// StatusCounts buckets assignments by progress status. Revoked assignments
// are excluded entirely; waived ones only count in their own bucket.
type StatusCounts struct {
	Assigned   int64 `json:"assigned"`
	InProgress int64 `json:"in_progress"`
	Completed  int64 `json:"completed"`
	Overdue    int64 `json:"overdue"`
	Waived     int64 `json:"waived"`
	Total      int64 `json:"total"`
}

// GetTrainingStats aggregates assignment statuses for one training.
func (s *Service) GetTrainingStats(trainingID uint) (*StatusCounts, error) {
	if _, err := s.getDefinition(s.db, trainingID); err != nil {
		return nil, err
	}
	return s.statusCounts("assignments.training_id = ?", trainingID)
}

// GetUserTrainingStats aggregates assignment statuses for one user.
func (s *Service) GetUserTrainingStats(userID uint) (*StatusCounts, error) {
	if _, err := s.getUser(s.db, userID); err != nil {
		return nil, err
	}
	return s.statusCounts("assignments.user_id = ?", userID)
}

func (s *Service) statusCounts(scope string, arg interface{}) (*StatusCounts, error) {
	type bucket struct {
		Status model.ProgressStatus
		Count  int64
	}
	var buckets []bucket
	err := s.db.Model(&model.Assignment{}).
		Select("training_progresses.status AS status, COUNT(*) AS count").
		Joins("JOIN training_progresses ON training_progresses.assignment_id = assignments.id").
		Where(scope, arg).
		Where("assignments.revoked_at IS NULL").
		Group("training_progresses.status").
		Scan(&buckets).Error
	if err != nil {
		return nil, err
	}

	counts := &StatusCounts{}
	for _, b := range buckets {
		switch b.Status {
		case model.StatusAssigned:
			counts.Assigned = b.Count
		case model.StatusInProgress:
			counts.InProgress = b.Count
		case model.StatusCompleted:
			counts.Completed = b.Count
		case model.StatusOverdue:
			counts.Overdue = b.Count
		case model.StatusWaived:
			counts.Waived = b.Count
		}
		counts.Total += b.Count
	}
	return counts, nil
}

// AssignmentDetail pairs an assignment with its progress aggregate and
// training definition, for the active-assignments listing.
type AssignmentDetail struct {
	Assignment model.Assignment         `json:"assignment"`
	Progress   model.TrainingProgress   `json:"progress"`
	Training   model.TrainingDefinition `json:"training"`
}

// GetActiveAssignmentsForUser lists the user's outstanding assignments:
// not revoked, not waived, not completed. Soonest due first, then most
// recently assigned.
func (s *Service) GetActiveAssignmentsForUser(userID uint) ([]AssignmentDetail, error) {
	var assignments []model.Assignment
	err := s.db.
		Joins("JOIN training_progresses ON training_progresses.assignment_id = assignments.id").
		Where("assignments.user_id = ?", userID).
		Where("assignments.revoked_at IS NULL AND assignments.waived_at IS NULL").
		Where("training_progresses.status <> ?", model.StatusCompleted).
		Order("assignments.due_at asc, assignments.assigned_at desc").
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}

	details := make([]AssignmentDetail, 0, len(assignments))
	for _, assignment := range assignments {
		progress, err := s.getProgress(s.db, assignment.ID)
		if err != nil {
			return nil, err
		}
		var def model.TrainingDefinition
		if err := s.db.Where("id = ?", assignment.TrainingID).First(&def).Error; err != nil {
			return nil, err
		}
		details = append(details, AssignmentDetail{
			Assignment: assignment,
			Progress:   *progress,
			Training:   def,
		})
	}
	return details, nil
}

// StepView pairs a step definition with the assignment's progress on it, if
// the step has been interacted with.
type StepView struct {
	Step     model.TrainingStep  `json:"step"`
	Progress *model.StepProgress `json:"progress,omitempty"`
}

// AssignmentView is the full employee-facing view of one assignment.
type AssignmentView struct {
	Assignment model.Assignment         `json:"assignment"`
	Progress   model.TrainingProgress   `json:"progress"`
	Training   model.TrainingDefinition `json:"training"`
	Steps      []StepView               `json:"steps"`
}

// GetAssignment returns one assignment with per-step progress.
func (s *Service) GetAssignment(assignmentID uint) (*AssignmentView, error) {
	assignment, err := s.getAssignment(s.db, assignmentID)
	if err != nil {
		return nil, err
	}
	progress, err := s.getProgress(s.db, assignmentID)
	if err != nil {
		return nil, err
	}
	var def model.TrainingDefinition
	if err := s.db.Where("id = ?", assignment.TrainingID).First(&def).Error; err != nil {
		return nil, err
	}

	var steps []model.TrainingStep
	err = s.db.Where("training_id = ? AND is_deleted = ?", assignment.TrainingID, false).
		Order("step_index asc").
		Find(&steps).Error
	if err != nil {
		return nil, err
	}

	var rows []model.StepProgress
	if err := s.db.Where("assignment_id = ?", assignmentID).Find(&rows).Error; err != nil {
		return nil, err
	}
	byStep := make(map[uint]model.StepProgress, len(rows))
	for _, row := range rows {
		byStep[row.StepID] = row
	}

	view := &AssignmentView{
		Assignment: *assignment,
		Progress:   *progress,
		Training:   def,
		Steps:      make([]StepView, 0, len(steps)),
	}
	for _, step := range steps {
		sv := StepView{Step: step}
		if row, ok := byStep[step.ID]; ok {
			r := row
			sv.Progress = &r
		}
		view.Steps = append(view.Steps, sv)
	}
	return view, nil
}
