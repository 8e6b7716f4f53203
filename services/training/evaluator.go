package training

import model "helpdesk/models/training"

// RuleSatisfied is the pure completion decision: given the training's rule,
// its steps and the assignment's step progress, report whether the
// assignment should finalize.
//
//	MANUAL_ACK           assignment-level acknowledgement is set
//	ALL_STEPS_VIEWED     every required step viewed, minimum view time met
//	ALL_STEPS_COMPLETED  every required step completed, every ack-requiring step acknowledged
//	MANUAL_COMPLETE      never; only CompleteTraining finalizes
func RuleSatisfied(rule model.CompletionRule, steps []model.TrainingStep, progress map[uint]model.StepProgress, aggregate *model.TrainingProgress) bool {
	switch rule {
	case model.RuleManualAck:
		return aggregate.AcknowledgedAt != nil

	case model.RuleAllStepsViewed:
		for _, step := range steps {
			if !step.IsRequired {
				continue
			}
			if !stepViewed(step, progress[step.ID]) {
				return false
			}
		}
		return true

	case model.RuleAllStepsCompleted:
		for _, step := range steps {
			row := progress[step.ID]
			if step.IsRequired && row.CompletedAt == nil {
				return false
			}
			if step.RequiresAck && row.AcknowledgedAt == nil {
				return false
			}
		}
		return true
	}
	return false
}

// AdvisoryPercent computes the display percentage: required steps meeting
// the rule's per-step condition over all required steps, floored. Not used
// by the decision itself; finalization always writes 100.
func AdvisoryPercent(rule model.CompletionRule, steps []model.TrainingStep, progress map[uint]model.StepProgress) int {
	required, satisfied := 0, 0
	for _, step := range steps {
		if !step.IsRequired {
			continue
		}
		required++
		row := progress[step.ID]
		switch rule {
		case model.RuleAllStepsViewed:
			if stepViewed(step, row) {
				satisfied++
			}
		default:
			if row.CompletedAt != nil {
				satisfied++
			}
		}
	}
	if required == 0 {
		return 0
	}
	return satisfied * 100 / required
}

func stepViewed(step model.TrainingStep, row model.StepProgress) bool {
	if row.FirstViewedAt == nil {
		return false
	}
	if step.MinViewSeconds != nil && row.TimeSpentSeconds < *step.MinViewSeconds {
		return false
	}
	return true
}
