package trainingValidator

import (
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"helpdesk/middleware"
	trainingModels "helpdesk/models/training"
)

// CreateDefinitionRequest declares a content item trainable.
type CreateDefinitionRequest struct {
	ContentItemID    uint   `json:"content_item_id" validate:"required,gt=0"`
	CompletionRule   string `json:"completion_rule" validate:"required"`
	EstimatedMinutes int    `json:"estimated_minutes" validate:"gte=0"`
	AllowDownloads   bool   `json:"allow_downloads"`
	RequireAck       bool   `json:"require_ack"`
}

// CreateDefinition validates the training definition creation request
func CreateDefinition() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateDefinitionRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if err := validate.Struct(reqData); err != nil {
			for _, fieldErr := range err.(validator.ValidationErrors) {
				switch fieldErr.Field() {
				case "ContentItemID":
					errors["content_item_id"] = "Content item ID is required!"
				case "CompletionRule":
					errors["completion_rule"] = "Completion rule is required!"
				case "EstimatedMinutes":
					errors["estimated_minutes"] = "Estimated minutes must not be negative!"
				}
			}
		}
		reqData.CompletionRule = strings.TrimSpace(reqData.CompletionRule)
		if reqData.CompletionRule != "" && !trainingModels.ValidRule(trainingModels.CompletionRule(reqData.CompletionRule)) {
			errors["completion_rule"] = "Completion rule must be MANUAL_ACK, ALL_STEPS_VIEWED, ALL_STEPS_COMPLETED, or MANUAL_COMPLETE!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedDefinition", reqData)
		return c.Next()
	}
}

// UpdateDefinitionRequest carries optional definition changes.
type UpdateDefinitionRequest struct {
	CompletionRule   *string `json:"completion_rule"`
	EstimatedMinutes *int    `json:"estimated_minutes"`
	AllowDownloads   *bool   `json:"allow_downloads"`
	RequireAck       *bool   `json:"require_ack"`
}

// UpdateDefinition validates the training definition update request
func UpdateDefinition() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateDefinitionRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if reqData.CompletionRule != nil && !trainingModels.ValidRule(trainingModels.CompletionRule(*reqData.CompletionRule)) {
			errors["completion_rule"] = "Completion rule must be MANUAL_ACK, ALL_STEPS_VIEWED, ALL_STEPS_COMPLETED, or MANUAL_COMPLETE!"
		}
		if reqData.EstimatedMinutes != nil && *reqData.EstimatedMinutes < 0 {
			errors["estimated_minutes"] = "Estimated minutes must not be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedDefinitionUpdate", reqData)
		return c.Next()
	}
}

// TrainingID validates the :id route param
func TrainingID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("id"))
		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid training ID!", nil)
		}
		c.Locals("trainingID", uint(id))
		return c.Next()
	}
}

// StepRequest adds or updates a training step.
type StepRequest struct {
	StepIndex      int  `json:"step_index" validate:"gte=0"`
	ContentItemID  uint `json:"content_item_id" validate:"required,gt=0"`
	IsRequired     bool `json:"is_required"`
	MinViewSeconds *int `json:"min_view_seconds"`
	RequiresAck    bool `json:"requires_ack"`
}

// Step validates a step create/update request together with the :id param
// and, on update routes, the :stepId param.
func Step() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("id"))
		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid training ID!", nil)
		}
		if stepStr := strings.TrimSpace(c.Params("stepId")); stepStr != "" {
			stepID, err := strconv.Atoi(stepStr)
			if err != nil || stepID <= 0 {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid step ID!", nil)
			}
			c.Locals("stepID", uint(stepID))
		}

		reqData := new(StepRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if err := validate.Struct(reqData); err != nil {
			for _, fieldErr := range err.(validator.ValidationErrors) {
				switch fieldErr.Field() {
				case "ContentItemID":
					errors["content_item_id"] = "Content item ID is required!"
				case "StepIndex":
					errors["step_index"] = "Step index must not be negative!"
				}
			}
		}
		if reqData.MinViewSeconds != nil && *reqData.MinViewSeconds < 0 {
			errors["min_view_seconds"] = "Minimum view seconds must not be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("trainingID", uint(id))
		c.Locals("validatedStep", reqData)
		return c.Next()
	}
}

// StepID validates the :id and :stepId route params for step removal
func StepID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("id"))
		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid training ID!", nil)
		}
		stepStr := strings.TrimSpace(c.Params("stepId"))
		stepID, err := strconv.Atoi(stepStr)
		if err != nil || stepID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid step ID!", nil)
		}
		c.Locals("trainingID", uint(id))
		c.Locals("stepID", uint(stepID))
		return c.Next()
	}
}
