package training

import (
	"time"

	model "helpdesk/models/training"
)

// MarkOverdueAssignments moves past-due assignments that are still ASSIGNED
// or IN_PROGRESS to OVERDUE and returns how many were moved. The engine
// never schedules this itself; the sweep scheduler calls it.
func (s *Service) MarkOverdueAssignments(asOf time.Time, limit int) (int, error) {
	var ids []uint
	query := s.db.Model(&model.Assignment{}).
		Joins("JOIN training_progresses ON training_progresses.assignment_id = assignments.id").
		Where("assignments.due_at IS NOT NULL AND assignments.due_at < ?", asOf).
		Where("assignments.revoked_at IS NULL AND assignments.waived_at IS NULL").
		Where("training_progresses.status IN ?", []model.ProgressStatus{model.StatusAssigned, model.StatusInProgress})
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Pluck("assignments.id", &ids).Error; err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}

	err := s.db.Model(&model.TrainingProgress{}).
		Where("assignment_id IN ?", ids).
		Update("status", model.StatusOverdue).Error
	if err != nil {
		return 0, err
	}
	return len(ids), nil
}
