package training

import (
	"errors"

	"gorm.io/gorm"

	"helpdesk/models"
	model "helpdesk/models/training"
)

// DefinitionInput declares a content item trainable.
type DefinitionInput struct {
	ContentItemID    uint
	CompletionRule   model.CompletionRule
	EstimatedMinutes int
	AllowDownloads   bool
	RequireAck       bool
}

// DefinitionUpdate carries optional definition changes; nil fields are left
// alone. Any applied change bumps the definition version.
type DefinitionUpdate struct {
	CompletionRule   *model.CompletionRule
	EstimatedMinutes *int
	AllowDownloads   *bool
	RequireAck       *bool
}

// StepInput adds or replaces a step's attributes.
type StepInput struct {
	StepIndex      int
	ContentItemID  uint
	IsRequired     bool
	MinViewSeconds *int
	RequiresAck    bool
}

// CreateDefinition marks a content item trainable. One definition per
// content item.
func (s *Service) CreateDefinition(in DefinitionInput) (*model.TrainingDefinition, error) {
	if !model.ValidRule(in.CompletionRule) {
		return nil, &ValidationError{Field: "completionRule", Reason: "unknown completion rule"}
	}
	if in.EstimatedMinutes < 0 {
		return nil, &ValidationError{Field: "estimatedMinutes", Reason: "must not be negative"}
	}

	var item models.ContentItem
	err := s.db.Where("id = ? AND is_deleted = ?", in.ContentItemID, false).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "content item", ID: in.ContentItemID}
		}
		return nil, err
	}

	var existing model.TrainingDefinition
	err = s.db.Where("content_item_id = ? AND is_deleted = ?", in.ContentItemID, false).First(&existing).Error
	if err == nil {
		return nil, &ConflictError{Reason: "content item is already trainable"}
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	def := model.TrainingDefinition{
		ContentItemID:    in.ContentItemID,
		CompletionRule:   in.CompletionRule,
		EstimatedMinutes: in.EstimatedMinutes,
		Version:          1,
		AllowDownloads:   in.AllowDownloads,
		RequireAck:       in.RequireAck,
	}
	if err := s.db.Create(&def).Error; err != nil {
		return nil, err
	}
	return &def, nil
}

// UpdateDefinition applies the non-nil fields and bumps the version.
func (s *Service) UpdateDefinition(trainingID uint, in DefinitionUpdate) (*model.TrainingDefinition, error) {
	def, err := s.getDefinition(s.db, trainingID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if in.CompletionRule != nil {
		if !model.ValidRule(*in.CompletionRule) {
			return nil, &ValidationError{Field: "completionRule", Reason: "unknown completion rule"}
		}
		updates["completion_rule"] = *in.CompletionRule
	}
	if in.EstimatedMinutes != nil {
		if *in.EstimatedMinutes < 0 {
			return nil, &ValidationError{Field: "estimatedMinutes", Reason: "must not be negative"}
		}
		updates["estimated_minutes"] = *in.EstimatedMinutes
	}
	if in.AllowDownloads != nil {
		updates["allow_downloads"] = *in.AllowDownloads
	}
	if in.RequireAck != nil {
		updates["require_ack"] = *in.RequireAck
	}
	if len(updates) == 0 {
		return def, nil
	}
	updates["version"] = gorm.Expr("version + 1")

	err = s.db.Model(&model.TrainingDefinition{}).Where("id = ?", trainingID).Updates(updates).Error
	if err != nil {
		return nil, err
	}
	return s.getDefinition(s.db, trainingID)
}

// TrainingView is a definition with its ordered steps.
type TrainingView struct {
	Definition model.TrainingDefinition `json:"definition"`
	Steps      []model.TrainingStep     `json:"steps"`
}

// GetTraining returns a definition with its steps in index order.
func (s *Service) GetTraining(trainingID uint) (*TrainingView, error) {
	def, err := s.getDefinition(s.db, trainingID)
	if err != nil {
		return nil, err
	}
	var steps []model.TrainingStep
	err = s.db.Where("training_id = ? AND is_deleted = ?", trainingID, false).
		Order("step_index asc").
		Find(&steps).Error
	if err != nil {
		return nil, err
	}
	return &TrainingView{Definition: *def, Steps: steps}, nil
}

// AddStep appends a step at the given index. (trainingId, stepIndex) is
// unique; an occupied index is a conflict.
func (s *Service) AddStep(trainingID uint, in StepInput) (*model.TrainingStep, error) {
	if in.StepIndex < 0 {
		return nil, &ValidationError{Field: "stepIndex", Reason: "must not be negative"}
	}
	if in.MinViewSeconds != nil && *in.MinViewSeconds < 0 {
		return nil, &ValidationError{Field: "minViewSeconds", Reason: "must not be negative"}
	}
	if _, err := s.getDefinition(s.db, trainingID); err != nil {
		return nil, err
	}

	var item models.ContentItem
	err := s.db.Where("id = ? AND is_deleted = ?", in.ContentItemID, false).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "content item", ID: in.ContentItemID}
		}
		return nil, err
	}

	var existing model.TrainingStep
	err = s.db.Where("training_id = ? AND step_index = ? AND is_deleted = ?", trainingID, in.StepIndex, false).
		First(&existing).Error
	if err == nil {
		return nil, &ConflictError{Reason: "a step already exists at this index"}
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	step := model.TrainingStep{
		TrainingID:     trainingID,
		StepIndex:      in.StepIndex,
		ContentItemID:  in.ContentItemID,
		IsRequired:     in.IsRequired,
		MinViewSeconds: in.MinViewSeconds,
		RequiresAck:    in.RequiresAck,
	}
	if err := s.db.Create(&step).Error; err != nil {
		// a concurrent insert at the same index lands on the unique index
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, &ConflictError{Reason: "a step already exists at this index"}
		}
		return nil, err
	}
	return &step, nil
}

// UpdateStep replaces a step's flags and thresholds; the index stays put.
func (s *Service) UpdateStep(trainingID, stepID uint, in StepInput) (*model.TrainingStep, error) {
	if in.MinViewSeconds != nil && *in.MinViewSeconds < 0 {
		return nil, &ValidationError{Field: "minViewSeconds", Reason: "must not be negative"}
	}
	step, err := s.getStep(s.db, trainingID, stepID)
	if err != nil {
		return nil, err
	}

	err = s.db.Model(&model.TrainingStep{}).Where("id = ?", step.ID).
		Updates(map[string]interface{}{
			"is_required":      in.IsRequired,
			"min_view_seconds": in.MinViewSeconds,
			"requires_ack":     in.RequiresAck,
		}).Error
	if err != nil {
		return nil, err
	}
	return s.getStep(s.db, trainingID, stepID)
}

// RemoveStep soft-deletes a step, re-keying it to a negative index so the
// unique (training, index) slot frees for a later AddStep. Index gaps are
// fine; order is preserved by the surviving index values.
func (s *Service) RemoveStep(trainingID, stepID uint) error {
	step, err := s.getStep(s.db, trainingID, stepID)
	if err != nil {
		return err
	}
	return s.db.Model(&model.TrainingStep{}).Where("id = ?", step.ID).
		Updates(map[string]interface{}{
			"is_deleted": true,
			"step_index": -int(step.ID),
		}).Error
}
