package training

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"

	"helpdesk/models"
	model "helpdesk/models/training"
)

// recordingSink collects published events for assertions.
type recordingSink struct {
	events chan model.TrainingEvent
}

func (r *recordingSink) Publish(evt model.TrainingEvent) {
	r.events <- evt
}

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         glogger.Default.LogMode(glogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	// one in-memory database per test; a second connection would see a fresh one
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.ContentItem{},
		&model.TrainingDefinition{},
		&model.TrainingStep{},
		&model.Assignment{},
		&model.TrainingProgress{},
		&model.StepProgress{},
		&model.TrainingEvent{},
	)
	require.NoError(t, err)

	return New(db, nil), db
}

func seedUser(t *testing.T, db *gorm.DB, email string) uint {
	t.Helper()
	user := models.User{Name: "Test User", Email: email, Role: "EMPLOYEE", IsActive: true}
	require.NoError(t, db.Create(&user).Error)
	return user.ID
}

func seedContent(t *testing.T, db *gorm.DB, title string) uint {
	t.Helper()
	item := models.ContentItem{Title: title, IsPublished: true, IsTrainable: true}
	require.NoError(t, db.Create(&item).Error)
	return item.ID
}

// seedTraining creates a definition with the given rule plus one content item.
func seedTraining(t *testing.T, db *gorm.DB, rule model.CompletionRule) uint {
	t.Helper()
	contentID := seedContent(t, db, "training content")
	def := model.TrainingDefinition{
		ContentItemID:  contentID,
		CompletionRule: rule,
		Version:        1,
	}
	require.NoError(t, db.Create(&def).Error)
	return def.ID
}

func seedStep(t *testing.T, db *gorm.DB, trainingID uint, index int, required bool, minView *int, requiresAck bool) uint {
	t.Helper()
	contentID := seedContent(t, db, "step content")
	step := model.TrainingStep{
		TrainingID:     trainingID,
		StepIndex:      index,
		ContentItemID:  contentID,
		IsRequired:     required,
		MinViewSeconds: minView,
		RequiresAck:    requiresAck,
	}
	require.NoError(t, db.Create(&step).Error)
	return step.ID
}

func loadProgress(t *testing.T, db *gorm.DB, assignmentID uint) model.TrainingProgress {
	t.Helper()
	var progress model.TrainingProgress
	require.NoError(t, db.Where("assignment_id = ?", assignmentID).First(&progress).Error)
	return progress
}

func loadStepProgress(t *testing.T, db *gorm.DB, assignmentID, stepID uint) model.StepProgress {
	t.Helper()
	var row model.StepProgress
	require.NoError(t, db.Where("assignment_id = ? AND step_id = ?", assignmentID, stepID).First(&row).Error)
	return row
}

func eventTypes(t *testing.T, db *gorm.DB, assignmentID uint) []string {
	t.Helper()
	var events []model.TrainingEvent
	require.NoError(t, db.Where("assignment_id = ?", assignmentID).Order("created_at asc, id asc").Find(&events).Error)
	types := make([]string, len(events))
	for i, evt := range events {
		types[i] = evt.EventType
	}
	return types
}

func intPtr(v int) *int { return &v }
