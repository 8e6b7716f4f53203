package controllers

import (
	"github.com/gofiber/fiber/v2"

	"helpdesk/middleware"
	trainingModels "helpdesk/models/training"
	"helpdesk/services/training"
	trainingValidator "helpdesk/validators/training"
)

// CreateDefinition declares a content item trainable (admin)
func CreateDefinition(svc *training.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := c.Locals("validatedDefinition").(*trainingValidator.CreateDefinitionRequest)

		def, err := svc.CreateDefinition(training.DefinitionInput{
			ContentItemID:    reqData.ContentItemID,
			CompletionRule:   trainingModels.CompletionRule(reqData.CompletionRule),
			EstimatedMinutes: reqData.EstimatedMinutes,
			AllowDownloads:   reqData.AllowDownloads,
			RequireAck:       reqData.RequireAck,
		})
		if err != nil {
			return respondEngineError(c, err)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Training created successfully!", def)
	}
}

// UpdateDefinition updates a training definition (admin)
func UpdateDefinition(svc *training.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		trainingID := c.Locals("trainingID").(uint)
		reqData := c.Locals("validatedDefinitionUpdate").(*trainingValidator.UpdateDefinitionRequest)

		update := training.DefinitionUpdate{
			EstimatedMinutes: reqData.EstimatedMinutes,
			AllowDownloads:   reqData.AllowDownloads,
			RequireAck:       reqData.RequireAck,
		}
		if reqData.CompletionRule != nil {
			rule := trainingModels.CompletionRule(*reqData.CompletionRule)
			update.CompletionRule = &rule
		}

		def, err := svc.UpdateDefinition(trainingID, update)
		if err != nil {
			return respondEngineError(c, err)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Training updated successfully!", def)
	}
}

// GetTraining returns a training definition with its steps (admin)
func GetTraining(svc *training.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		trainingID := c.Locals("trainingID").(uint)

		view, err := svc.GetTraining(trainingID)
		if err != nil {
			return respondEngineError(c, err)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Training fetched successfully!", view)
	}
}

// AddStep appends a step to a training (admin)
func AddStep(svc *training.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		trainingID := c.Locals("trainingID").(uint)
		reqData := c.Locals("validatedStep").(*trainingValidator.StepRequest)

		step, err := svc.AddStep(trainingID, training.StepInput{
			StepIndex:      reqData.StepIndex,
			ContentItemID:  reqData.ContentItemID,
			IsRequired:     reqData.IsRequired,
			MinViewSeconds: reqData.MinViewSeconds,
			RequiresAck:    reqData.RequiresAck,
		})
		if err != nil {
			return respondEngineError(c, err)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Step added successfully!", step)
	}
}

// UpdateStep updates a training step (admin)
func UpdateStep(svc *training.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		trainingID := c.Locals("trainingID").(uint)
		stepID := c.Locals("stepID").(uint)
		reqData := c.Locals("validatedStep").(*trainingValidator.StepRequest)

		step, err := svc.UpdateStep(trainingID, stepID, training.StepInput{
			StepIndex:      reqData.StepIndex,
			ContentItemID:  reqData.ContentItemID,
			IsRequired:     reqData.IsRequired,
			MinViewSeconds: reqData.MinViewSeconds,
			RequiresAck:    reqData.RequiresAck,
		})
		if err != nil {
			return respondEngineError(c, err)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Step updated successfully!", step)
	}
}

// RemoveStep soft-deletes a training step (admin)
func RemoveStep(svc *training.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		trainingID := c.Locals("trainingID").(uint)
		stepID := c.Locals("stepID").(uint)

		if err := svc.RemoveStep(trainingID, stepID); err != nil {
			return respondEngineError(c, err)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Step removed successfully!", nil)
	}
}
