package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"helpdesk/middleware"
	"helpdesk/services/training"
	trainingValidator "helpdesk/validators/training"
)

// CreateAssignment assigns a training to a user (admin)
func CreateAssignment(svc *training.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		adminID, ok := c.Locals("userId").(uint)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
		}

		reqData := c.Locals("validatedAssignment").(*trainingValidator.CreateAssignmentRequest)
		var dueAt *time.Time
		if v, ok := c.Locals("validatedDueAt").(*time.Time); ok {
			dueAt = v
		}

		assignmentID, err := svc.CreateAssignment(reqData.TrainingID, reqData.UserID, &adminID, reqData.IsRequired, dueAt)
		if err != nil {
			return respondEngineError(c, err)
		}

		return middleware.JsonResponse(c, fiber.StatusOK, true, "Training assigned successfully!", fiber.Map{
			"assignment_id": assignmentID,
		})
	}
}

// RevokeAssignment revokes an assignment (admin)
func RevokeAssignment(svc *training.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		adminID, ok := c.Locals("userId").(uint)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
		}
		assignmentID := c.Locals("assignmentID").(uint)

		if err := svc.RevokeAssignment(assignmentID, &adminID); err != nil {
			return respondEngineError(c, err)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Assignment revoked successfully!", nil)
	}
}

// WaiveAssignment waives an assignment with an optional reason (admin)
func WaiveAssignment(svc *training.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		adminID, ok := c.Locals("userId").(uint)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
		}
		assignmentID := c.Locals("assignmentID").(uint)
		reqData := c.Locals("validatedWaive").(*trainingValidator.WaiveRequest)

		if err := svc.WaiveAssignment(assignmentID, adminID, reqData.Reason); err != nil {
			return respondEngineError(c, err)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Assignment waived successfully!", nil)
	}
}

// GetAssignmentEvents returns the audit trail of an assignment (admin)
func GetAssignmentEvents(svc *training.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		assignmentID := c.Locals("assignmentID").(uint)

		events, err := svc.ListEvents(assignmentID)
		if err != nil {
			return respondEngineError(c, err)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Events fetched successfully!", fiber.Map{
			"events": events,
		})
	}
}

// GetTrainingStats returns assignment counts by status for a training (admin)
func GetTrainingStats(svc *training.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		trainingID := c.Locals("trainingID").(uint)

		stats, err := svc.GetTrainingStats(trainingID)
		if err != nil {
			return respondEngineError(c, err)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Training stats fetched successfully!", stats)
	}
}

// GetUserTrainingStats returns assignment counts by status for a user (admin)
func GetUserTrainingStats(svc *training.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		targetID := c.Locals("targetUserID").(uint)

		stats, err := svc.GetUserTrainingStats(targetID)
		if err != nil {
			return respondEngineError(c, err)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "User training stats fetched successfully!", stats)
	}
}
