package controllers

import (
	"github.com/gofiber/fiber/v2"

	"helpdesk/middleware"
	"helpdesk/services/training"
)

// GetMyAssignments lists the caller's outstanding training assignments
func GetMyAssignments(svc *training.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("userId").(uint)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
		}

		assignments, err := svc.GetActiveAssignmentsForUser(userID)
		if err != nil {
			return respondEngineError(c, err)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Assignments fetched successfully!", fiber.Map{
			"assignments": assignments,
		})
	}
}

// GetAssignmentDetail returns one assignment with per-step progress
func GetAssignmentDetail(svc *training.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("userId").(uint)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
		}
		assignmentID := c.Locals("assignmentID").(uint)

		view, err := svc.GetAssignment(assignmentID)
		if err != nil {
			return respondEngineError(c, err)
		}
		if view.Assignment.UserID != userID {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "This assignment belongs to another user!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Assignment fetched successfully!", view)
	}
}

// MarkStepViewed records a view of one training step
func MarkStepViewed(svc *training.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := c.Locals("userId").(uint); !ok {
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
		}
		assignmentID := c.Locals("assignmentID").(uint)
		stepID := c.Locals("stepID").(uint)

		if err := svc.MarkStepViewed(assignmentID, stepID); err != nil {
			return respondEngineError(c, err)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Step view recorded!", nil)
	}
}

// MarkStepCompleted records completion of one training step
func MarkStepCompleted(svc *training.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := c.Locals("userId").(uint); !ok {
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
		}
		assignmentID := c.Locals("assignmentID").(uint)
		stepID := c.Locals("stepID").(uint)

		if err := svc.MarkStepCompleted(assignmentID, stepID); err != nil {
			return respondEngineError(c, err)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Step completed!", nil)
	}
}

// RecordTimeSpent adds a viewing session's seconds to a step
func RecordTimeSpent(svc *training.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := c.Locals("userId").(uint); !ok {
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
		}
		assignmentID := c.Locals("assignmentID").(uint)
		stepID := c.Locals("stepID").(uint)
		seconds := c.Locals("validatedSeconds").(int)

		if err := svc.RecordTimeSpent(assignmentID, stepID, seconds); err != nil {
			return respondEngineError(c, err)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Time recorded!", nil)
	}
}

// AcknowledgeStep acknowledges one training step
func AcknowledgeStep(svc *training.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("userId").(uint)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
		}
		assignmentID := c.Locals("assignmentID").(uint)
		stepID := c.Locals("stepID").(uint)

		if err := svc.AcknowledgeStep(assignmentID, stepID, userID); err != nil {
			return respondEngineError(c, err)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Step acknowledged!", nil)
	}
}

// AcknowledgeTraining acknowledges the whole training
func AcknowledgeTraining(svc *training.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("userId").(uint)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
		}
		assignmentID := c.Locals("assignmentID").(uint)

		if err := svc.AcknowledgeTraining(assignmentID, userID); err != nil {
			return respondEngineError(c, err)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Training acknowledged!", nil)
	}
}

// CompleteTraining finalizes the assignment manually
func CompleteTraining(svc *training.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("userId").(uint)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
		}
		assignmentID := c.Locals("assignmentID").(uint)

		if err := svc.CompleteTraining(assignmentID, userID); err != nil {
			return respondEngineError(c, err)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Training completed!", nil)
	}
}
