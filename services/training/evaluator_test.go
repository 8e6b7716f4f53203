package training

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "helpdesk/models/training"
)

func ts() *time.Time {
	now := time.Now()
	return &now
}

func TestRuleSatisfied_ManualAck(t *testing.T) {
	steps := []model.TrainingStep{
		{IsRequired: true},
	}
	steps[0].ID = 1

	agg := &model.TrainingProgress{}
	assert.False(t, RuleSatisfied(model.RuleManualAck, steps, nil, agg))

	agg.AcknowledgedAt = ts()
	// step progress is irrelevant under MANUAL_ACK
	assert.True(t, RuleSatisfied(model.RuleManualAck, steps, nil, agg))
}

func TestRuleSatisfied_AllStepsViewed(t *testing.T) {
	required := model.TrainingStep{IsRequired: true}
	required.ID = 1
	optional := model.TrainingStep{IsRequired: false}
	optional.ID = 2
	timed := model.TrainingStep{IsRequired: true, MinViewSeconds: intPtr(300)}
	timed.ID = 3

	steps := []model.TrainingStep{required, optional, timed}
	agg := &model.TrainingProgress{}

	progress := map[uint]model.StepProgress{}
	assert.False(t, RuleSatisfied(model.RuleAllStepsViewed, steps, progress, agg))

	progress[1] = model.StepProgress{StepID: 1, FirstViewedAt: ts()}
	assert.False(t, RuleSatisfied(model.RuleAllStepsViewed, steps, progress, agg),
		"timed step not viewed yet")

	progress[3] = model.StepProgress{StepID: 3, FirstViewedAt: ts(), TimeSpentSeconds: 100}
	assert.False(t, RuleSatisfied(model.RuleAllStepsViewed, steps, progress, agg),
		"minimum view time not met")

	progress[3] = model.StepProgress{StepID: 3, FirstViewedAt: ts(), TimeSpentSeconds: 300}
	assert.True(t, RuleSatisfied(model.RuleAllStepsViewed, steps, progress, agg),
		"optional step never viewed but rule holds")
}

func TestRuleSatisfied_AllStepsCompleted(t *testing.T) {
	required := model.TrainingStep{IsRequired: true}
	required.ID = 1
	ackStep := model.TrainingStep{IsRequired: true, RequiresAck: true}
	ackStep.ID = 2

	steps := []model.TrainingStep{required, ackStep}
	agg := &model.TrainingProgress{}

	progress := map[uint]model.StepProgress{
		1: {StepID: 1, CompletedAt: ts()},
		2: {StepID: 2, CompletedAt: ts()},
	}
	assert.False(t, RuleSatisfied(model.RuleAllStepsCompleted, steps, progress, agg),
		"required acknowledgement missing")

	row := progress[2]
	row.AcknowledgedAt = ts()
	progress[2] = row
	assert.True(t, RuleSatisfied(model.RuleAllStepsCompleted, steps, progress, agg))
}

func TestRuleSatisfied_AckRequiredOnOptionalStep(t *testing.T) {
	optionalAck := model.TrainingStep{IsRequired: false, RequiresAck: true}
	optionalAck.ID = 1

	steps := []model.TrainingStep{optionalAck}
	agg := &model.TrainingProgress{}

	// completion is not needed for an optional step, but its ack still is
	assert.False(t, RuleSatisfied(model.RuleAllStepsCompleted, steps, map[uint]model.StepProgress{}, agg))
	progress := map[uint]model.StepProgress{1: {StepID: 1, AcknowledgedAt: ts()}}
	assert.True(t, RuleSatisfied(model.RuleAllStepsCompleted, steps, progress, agg))
}

func TestRuleSatisfied_ManualCompleteNeverAuto(t *testing.T) {
	step := model.TrainingStep{IsRequired: true}
	step.ID = 1
	progress := map[uint]model.StepProgress{
		1: {StepID: 1, FirstViewedAt: ts(), CompletedAt: ts(), AcknowledgedAt: ts()},
	}
	agg := &model.TrainingProgress{AcknowledgedAt: ts()}
	assert.False(t, RuleSatisfied(model.RuleManualComplete, []model.TrainingStep{step}, progress, agg))
}

// Property: for ALL_STEPS_VIEWED and ALL_STEPS_COMPLETED, RuleSatisfied
// agrees with a direct check of the rule table over random configurations.
func TestRuleSatisfied_RandomConfigurations(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 500; trial++ {
		stepCount := rng.Intn(6)
		steps := make([]model.TrainingStep, stepCount)
		progress := map[uint]model.StepProgress{}

		for i := range steps {
			steps[i] = model.TrainingStep{
				StepIndex:   i,
				IsRequired:  rng.Intn(2) == 0,
				RequiresAck: rng.Intn(2) == 0,
			}
			steps[i].ID = uint(i + 1)
			if rng.Intn(3) == 0 {
				steps[i].MinViewSeconds = intPtr(rng.Intn(300))
			}

			if rng.Intn(4) > 0 {
				row := model.StepProgress{StepID: steps[i].ID, TimeSpentSeconds: rng.Intn(400)}
				if rng.Intn(2) == 0 {
					row.FirstViewedAt = ts()
				}
				if rng.Intn(2) == 0 {
					row.CompletedAt = ts()
				}
				if rng.Intn(2) == 0 {
					row.AcknowledgedAt = ts()
				}
				progress[steps[i].ID] = row
			}
		}
		agg := &model.TrainingProgress{}

		wantViewed := true
		for _, step := range steps {
			if !step.IsRequired {
				continue
			}
			row := progress[step.ID]
			if row.FirstViewedAt == nil {
				wantViewed = false
			} else if step.MinViewSeconds != nil && row.TimeSpentSeconds < *step.MinViewSeconds {
				wantViewed = false
			}
		}
		require.Equal(t, wantViewed,
			RuleSatisfied(model.RuleAllStepsViewed, steps, progress, agg),
			"trial %d ALL_STEPS_VIEWED", trial)

		wantCompleted := true
		for _, step := range steps {
			row := progress[step.ID]
			if step.IsRequired && row.CompletedAt == nil {
				wantCompleted = false
			}
			if step.RequiresAck && row.AcknowledgedAt == nil {
				wantCompleted = false
			}
		}
		require.Equal(t, wantCompleted,
			RuleSatisfied(model.RuleAllStepsCompleted, steps, progress, agg),
			"trial %d ALL_STEPS_COMPLETED", trial)
	}
}

func TestAdvisoryPercent(t *testing.T) {
	first := model.TrainingStep{IsRequired: true}
	first.ID = 1
	second := model.TrainingStep{IsRequired: true}
	second.ID = 2
	third := model.TrainingStep{IsRequired: true}
	third.ID = 3
	optional := model.TrainingStep{IsRequired: false}
	optional.ID = 4
	steps := []model.TrainingStep{first, second, third, optional}

	progress := map[uint]model.StepProgress{
		1: {StepID: 1, FirstViewedAt: ts()},
		4: {StepID: 4, FirstViewedAt: ts()},
	}
	// 1 of 3 required steps viewed, floored
	assert.Equal(t, 33, AdvisoryPercent(model.RuleAllStepsViewed, steps, progress))

	// completed-based rules ignore views
	assert.Equal(t, 0, AdvisoryPercent(model.RuleAllStepsCompleted, steps, progress))

	assert.Equal(t, 0, AdvisoryPercent(model.RuleAllStepsViewed, nil, nil),
		"no required steps")
}
