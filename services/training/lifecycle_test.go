package training

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "helpdesk/models/training"
)

func TestCreateAssignment(t *testing.T) {
	svc, db := newTestService(t)
	trainingID := seedTraining(t, db, model.RuleAllStepsViewed)
	userID := seedUser(t, db, "employee@corp.test")
	adminID := seedUser(t, db, "admin@corp.test")

	due := time.Now().Add(7 * 24 * time.Hour)
	assignmentID, err := svc.CreateAssignment(trainingID, userID, &adminID, true, &due)
	require.NoError(t, err)
	require.NotZero(t, assignmentID)

	progress := loadProgress(t, db, assignmentID)
	assert.Equal(t, model.StatusAssigned, progress.Status)
	assert.Equal(t, 0, progress.ProgressPercent)

	assert.Equal(t, []string{model.EventAssigned}, eventTypes(t, db, assignmentID))
}

func TestCreateAssignment_OptionalAssignmentStaysOptional(t *testing.T) {
	svc, db := newTestService(t)
	trainingID := seedTraining(t, db, model.RuleManualComplete)
	userID := seedUser(t, db, "employee@corp.test")
	adminID := seedUser(t, db, "admin@corp.test")

	assignmentID, err := svc.CreateAssignment(trainingID, userID, &adminID, false, nil)
	require.NoError(t, err)

	var stored model.Assignment
	require.NoError(t, db.Where("id = ?", assignmentID).First(&stored).Error)
	assert.False(t, stored.IsRequired, "optional assignments must persist as optional")
}

func TestCreateAssignment_UnknownReferences(t *testing.T) {
	svc, db := newTestService(t)
	trainingID := seedTraining(t, db, model.RuleManualComplete)
	userID := seedUser(t, db, "employee@corp.test")

	_, err := svc.CreateAssignment(9999, userID, nil, true, nil)
	assert.True(t, IsNotFound(err))

	_, err = svc.CreateAssignment(trainingID, 9999, nil, true, nil)
	assert.True(t, IsNotFound(err))
}

func TestCreateAssignment_ActiveDuplicateRejected(t *testing.T) {
	svc, db := newTestService(t)
	trainingID := seedTraining(t, db, model.RuleManualComplete)
	userID := seedUser(t, db, "employee@corp.test")

	first, err := svc.CreateAssignment(trainingID, userID, nil, true, nil)
	require.NoError(t, err)

	_, err = svc.CreateAssignment(trainingID, userID, nil, true, nil)
	assert.True(t, IsConflict(err))

	// a revoked assignment no longer blocks re-assignment
	require.NoError(t, svc.RevokeAssignment(first, nil))
	_, err = svc.CreateAssignment(trainingID, userID, nil, true, nil)
	assert.NoError(t, err)
}

func TestRevokeAssignment(t *testing.T) {
	svc, db := newTestService(t)
	trainingID := seedTraining(t, db, model.RuleAllStepsViewed)
	userID := seedUser(t, db, "employee@corp.test")
	adminID := seedUser(t, db, "admin@corp.test")

	assignmentID, err := svc.CreateAssignment(trainingID, userID, &adminID, true, nil)
	require.NoError(t, err)

	require.NoError(t, svc.RevokeAssignment(assignmentID, &adminID))

	var assignment model.Assignment
	require.NoError(t, db.First(&assignment, assignmentID).Error)
	assert.NotNil(t, assignment.RevokedAt)
	assert.Equal(t, model.StatusRevoked, loadProgress(t, db, assignmentID).Status)

	// revoked assignments disappear from the active list
	active, err := svc.GetActiveAssignmentsForUser(userID)
	require.NoError(t, err)
	assert.Empty(t, active)

	// re-revoking re-stamps without error
	require.NoError(t, svc.RevokeAssignment(assignmentID, &adminID))
	assert.Equal(t,
		[]string{model.EventAssigned, model.EventRevoked, model.EventRevoked},
		eventTypes(t, db, assignmentID))
}

func TestWaiveAssignment(t *testing.T) {
	svc, db := newTestService(t)
	trainingID := seedTraining(t, db, model.RuleAllStepsViewed)
	userID := seedUser(t, db, "employee@corp.test")
	adminID := seedUser(t, db, "admin@corp.test")

	assignmentID, err := svc.CreateAssignment(trainingID, userID, &adminID, true, nil)
	require.NoError(t, err)

	require.NoError(t, svc.WaiveAssignment(assignmentID, adminID, "completed equivalent course"))

	var assignment model.Assignment
	require.NoError(t, db.First(&assignment, assignmentID).Error)
	require.NotNil(t, assignment.WaivedAt)
	assert.Equal(t, adminID, *assignment.WaivedByID)
	assert.Equal(t, "completed equivalent course", assignment.WaiveReason)
	assert.Equal(t, model.StatusWaived, loadProgress(t, db, assignmentID).Status)

	events, err := svc.ListEvents(assignmentID)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, model.EventWaived, events[1].EventType)
	assert.JSONEq(t, `{"reason":"completed equivalent course"}`, string(events[1].Metadata))
}

func TestRevokeThenWaive_SingleTerminalStatus(t *testing.T) {
	svc, db := newTestService(t)
	trainingID := seedTraining(t, db, model.RuleAllStepsViewed)
	userID := seedUser(t, db, "employee@corp.test")
	adminID := seedUser(t, db, "admin@corp.test")

	assignmentID, err := svc.CreateAssignment(trainingID, userID, &adminID, true, nil)
	require.NoError(t, err)

	require.NoError(t, svc.RevokeAssignment(assignmentID, &adminID))
	require.NoError(t, svc.WaiveAssignment(assignmentID, adminID, ""))

	// the later action's status is current; both actions are on the trail in order
	assert.Equal(t, model.StatusWaived, loadProgress(t, db, assignmentID).Status)
	assert.Equal(t,
		[]string{model.EventAssigned, model.EventRevoked, model.EventWaived},
		eventTypes(t, db, assignmentID))
}

func TestGetActiveAssignmentsForUser_Ordering(t *testing.T) {
	svc, db := newTestService(t)
	userID := seedUser(t, db, "employee@corp.test")

	soon := time.Now().Add(24 * time.Hour)
	later := time.Now().Add(72 * time.Hour)

	firstTraining := seedTraining(t, db, model.RuleAllStepsViewed)
	secondTraining := seedTraining(t, db, model.RuleAllStepsViewed)

	laterID, err := svc.CreateAssignment(firstTraining, userID, nil, true, &later)
	require.NoError(t, err)
	soonID, err := svc.CreateAssignment(secondTraining, userID, nil, true, &soon)
	require.NoError(t, err)

	active, err := svc.GetActiveAssignmentsForUser(userID)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, soonID, active[0].Assignment.ID, "soonest due first")
	assert.Equal(t, laterID, active[1].Assignment.ID)
	assert.Equal(t, secondTraining, active[0].Training.ID)
}
