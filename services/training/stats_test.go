package training

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "helpdesk/models/training"
)

func TestGetTrainingStats_Buckets(t *testing.T) {
	svc, db := newTestService(t)
	trainingID := seedTraining(t, db, model.RuleManualAck)
	adminID := seedUser(t, db, "admin@corp.test")

	// assigned, untouched
	assignedUser := seedUser(t, db, "assigned@corp.test")
	_, err := svc.CreateAssignment(trainingID, assignedUser, &adminID, true, nil)
	require.NoError(t, err)

	// completed via acknowledgement
	completedUser := seedUser(t, db, "completed@corp.test")
	completedAssignment, err := svc.CreateAssignment(trainingID, completedUser, &adminID, true, nil)
	require.NoError(t, err)
	require.NoError(t, svc.AcknowledgeTraining(completedAssignment, completedUser))

	// waived
	waivedUser := seedUser(t, db, "waived@corp.test")
	waivedAssignment, err := svc.CreateAssignment(trainingID, waivedUser, &adminID, true, nil)
	require.NoError(t, err)
	require.NoError(t, svc.WaiveAssignment(waivedAssignment, adminID, "exempt"))

	// revoked, must vanish from every bucket
	revokedUser := seedUser(t, db, "revoked@corp.test")
	revokedAssignment, err := svc.CreateAssignment(trainingID, revokedUser, &adminID, true, nil)
	require.NoError(t, err)
	require.NoError(t, svc.RevokeAssignment(revokedAssignment, &adminID))

	stats, err := svc.GetTrainingStats(trainingID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.Assigned)
	assert.EqualValues(t, 1, stats.Completed)
	assert.EqualValues(t, 1, stats.Waived)
	assert.EqualValues(t, 0, stats.InProgress)
	assert.EqualValues(t, 3, stats.Total, "revoked assignment counts nowhere")
}

func TestGetUserTrainingStats(t *testing.T) {
	svc, db := newTestService(t)
	userID := seedUser(t, db, "employee@corp.test")

	firstTraining := seedTraining(t, db, model.RuleAllStepsViewed)
	stepID := seedStep(t, db, firstTraining, 0, true, intPtr(60), false)
	secondTraining := seedTraining(t, db, model.RuleManualComplete)

	firstAssignment, err := svc.CreateAssignment(firstTraining, userID, nil, true, nil)
	require.NoError(t, err)
	require.NoError(t, svc.MarkStepViewed(firstAssignment, stepID))

	_, err = svc.CreateAssignment(secondTraining, userID, nil, false, nil)
	require.NoError(t, err)

	stats, err := svc.GetUserTrainingStats(userID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.InProgress)
	assert.EqualValues(t, 1, stats.Assigned)
	assert.EqualValues(t, 2, stats.Total)

	_, err = svc.GetUserTrainingStats(9999)
	assert.True(t, IsNotFound(err))
}

func TestMarkOverdueAssignments(t *testing.T) {
	svc, db := newTestService(t)
	adminID := seedUser(t, db, "admin@corp.test")
	trainingID := seedTraining(t, db, model.RuleManualComplete)

	past := time.Now().Add(-48 * time.Hour)
	future := time.Now().Add(48 * time.Hour)

	overdueUser := seedUser(t, db, "late@corp.test")
	overdueAssignment, err := svc.CreateAssignment(trainingID, overdueUser, &adminID, true, &past)
	require.NoError(t, err)

	onTimeUser := seedUser(t, db, "ontime@corp.test")
	onTimeAssignment, err := svc.CreateAssignment(trainingID, onTimeUser, &adminID, true, &future)
	require.NoError(t, err)

	noDueUser := seedUser(t, db, "nodue@corp.test")
	noDueAssignment, err := svc.CreateAssignment(trainingID, noDueUser, &adminID, true, nil)
	require.NoError(t, err)

	waivedUser := seedUser(t, db, "waived@corp.test")
	waivedAssignment, err := svc.CreateAssignment(trainingID, waivedUser, &adminID, true, &past)
	require.NoError(t, err)
	require.NoError(t, svc.WaiveAssignment(waivedAssignment, adminID, ""))

	moved, err := svc.MarkOverdueAssignments(time.Now(), 0)
	require.NoError(t, err)
	assert.Equal(t, 1, moved)

	assert.Equal(t, model.StatusOverdue, loadProgress(t, db, overdueAssignment).Status)
	assert.Equal(t, model.StatusAssigned, loadProgress(t, db, onTimeAssignment).Status)
	assert.Equal(t, model.StatusAssigned, loadProgress(t, db, noDueAssignment).Status)
	assert.Equal(t, model.StatusWaived, loadProgress(t, db, waivedAssignment).Status)

	// an overdue assignment can still finish
	require.NoError(t, svc.CompleteTraining(overdueAssignment, overdueUser))
	assert.Equal(t, model.StatusCompleted, loadProgress(t, db, overdueAssignment).Status)

	// sweep is idempotent once statuses moved on
	moved, err = svc.MarkOverdueAssignments(time.Now(), 0)
	require.NoError(t, err)
	assert.Zero(t, moved)
}

func TestListEvents_UnknownAssignment(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.ListEvents(12345)
	assert.True(t, IsNotFound(err))
}
