package trainingRoutes

import (
	"github.com/gofiber/fiber/v2"

	"helpdesk/config"
	controllers "helpdesk/controllers/training"
	"helpdesk/middleware"
	"helpdesk/services/training"
	validators "helpdesk/validators/training"
)

// SetupTrainingRoutes wires the employee-facing training endpoints
func SetupTrainingRoutes(app *fiber.App, cfg *config.Config, svc *training.Service) {
	auth := middleware.JWTMiddleware(cfg)
	group := app.Group("/api/training")

	group.Get("/assignments", auth, controllers.GetMyAssignments(svc))
	group.Get("/assignments/:id", auth, validators.AssignmentID(), controllers.GetAssignmentDetail(svc))

	group.Post("/assignments/:id/steps/:stepId/viewed", auth, validators.AssignmentStep(), controllers.MarkStepViewed(svc))
	group.Post("/assignments/:id/steps/:stepId/completed", auth, validators.AssignmentStep(), controllers.MarkStepCompleted(svc))
	group.Post("/assignments/:id/steps/:stepId/time", auth, validators.AssignmentStep(), validators.RecordTime(), controllers.RecordTimeSpent(svc))
	group.Post("/assignments/:id/steps/:stepId/acknowledge", auth, validators.AssignmentStep(), controllers.AcknowledgeStep(svc))

	group.Post("/assignments/:id/acknowledge", auth, validators.AssignmentID(), controllers.AcknowledgeTraining(svc))
	group.Post("/assignments/:id/complete", auth, validators.AssignmentID(), controllers.CompleteTraining(svc))
}

// SetupTrainingAdminRoutes wires the admin training endpoints
func SetupTrainingAdminRoutes(app *fiber.App, cfg *config.Config, svc *training.Service) {
	auth := middleware.JWTMiddleware(cfg)
	admin := middleware.RequireRole("ADMIN")
	group := app.Group("/api/admin")

	// Training catalog
	group.Post("/trainings", auth, admin, validators.CreateDefinition(), controllers.CreateDefinition(svc))
	group.Put("/trainings/:id", auth, admin, validators.TrainingID(), validators.UpdateDefinition(), controllers.UpdateDefinition(svc))
	group.Get("/trainings/:id", auth, admin, validators.TrainingID(), controllers.GetTraining(svc))
	group.Post("/trainings/:id/steps", auth, admin, validators.Step(), controllers.AddStep(svc))
	group.Put("/trainings/:id/steps/:stepId", auth, admin, validators.Step(), controllers.UpdateStep(svc))
	group.Delete("/trainings/:id/steps/:stepId", auth, admin, validators.StepID(), controllers.RemoveStep(svc))

	// Assignment lifecycle
	group.Post("/assignments", auth, admin, validators.CreateAssignment(), controllers.CreateAssignment(svc))
	group.Post("/assignments/:id/revoke", auth, admin, validators.AssignmentID(), controllers.RevokeAssignment(svc))
	group.Post("/assignments/:id/waive", auth, admin, validators.AssignmentID(), validators.WaiveAssignment(), controllers.WaiveAssignment(svc))
	group.Get("/assignments/:id/events", auth, admin, validators.AssignmentID(), controllers.GetAssignmentEvents(svc))

	// Dashboards
	group.Get("/trainings/:id/stats", auth, admin, validators.TrainingID(), controllers.GetTrainingStats(svc))
	group.Get("/users/:userId/training-stats", auth, admin, validators.UserID(), controllers.GetUserTrainingStats(svc))
}
