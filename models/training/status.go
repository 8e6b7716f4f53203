package training

// ProgressStatus is the lifecycle state of a training assignment. Status is
// written only by the engine's transition code, never directly by handlers.
type ProgressStatus string

const (
	StatusAssigned   ProgressStatus = "ASSIGNED"
	StatusInProgress ProgressStatus = "IN_PROGRESS"
	StatusCompleted  ProgressStatus = "COMPLETED"
	StatusOverdue    ProgressStatus = "OVERDUE"
	StatusWaived     ProgressStatus = "WAIVED"
	StatusRevoked    ProgressStatus = "REVOKED"
)

// Terminal reports whether no further progress mutation is accepted.
func (s ProgressStatus) Terminal() bool {
	return s == StatusWaived || s == StatusRevoked
}

// CompletionRule decides which step interactions finalize an assignment.
type CompletionRule string

const (
	RuleManualAck         CompletionRule = "MANUAL_ACK"
	RuleAllStepsViewed    CompletionRule = "ALL_STEPS_VIEWED"
	RuleAllStepsCompleted CompletionRule = "ALL_STEPS_COMPLETED"
	RuleManualComplete    CompletionRule = "MANUAL_COMPLETE"
)

// ValidRule reports whether r is one of the known completion rules.
func ValidRule(r CompletionRule) bool {
	switch r {
	case RuleManualAck, RuleAllStepsViewed, RuleAllStepsCompleted, RuleManualComplete:
		return true
	}
	return false
}

// Audit event types.
const (
	EventAssigned      = "ASSIGNED"
	EventViewed        = "VIEWED"
	EventStepCompleted = "STEP_COMPLETED"
	EventAcknowledged  = "ACKNOWLEDGED"
	EventCompleted     = "COMPLETED"
	EventWaived        = "WAIVED"
	EventRevoked       = "REVOKED"
)
