package trainingValidator

import (
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"helpdesk/middleware"
)

var validate = validator.New()

// CreateAssignmentRequest is the admin assignment creation body.
type CreateAssignmentRequest struct {
	TrainingID uint   `json:"training_id" validate:"required,gt=0"`
	UserID     uint   `json:"user_id" validate:"required,gt=0"`
	IsRequired bool   `json:"is_required"`
	DueAt      string `json:"due_at" validate:"omitempty"` // RFC3339
}

// CreateAssignment validates the assignment creation request
func CreateAssignment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateAssignmentRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if err := validate.Struct(reqData); err != nil {
			for _, fieldErr := range err.(validator.ValidationErrors) {
				switch fieldErr.Field() {
				case "TrainingID":
					errors["training_id"] = "Training ID is required!"
				case "UserID":
					errors["user_id"] = "User ID is required!"
				}
			}
		}

		var dueAt *time.Time
		if strings.TrimSpace(reqData.DueAt) != "" {
			parsed, err := time.Parse(time.RFC3339, reqData.DueAt)
			if err != nil {
				errors["due_at"] = "Due date must be RFC3339!"
			} else {
				dueAt = &parsed
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedAssignment", reqData)
		c.Locals("validatedDueAt", dueAt)
		return c.Next()
	}
}

// AssignmentID validates the :id route param
func AssignmentID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("id"))
		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid assignment ID!", nil)
		}
		c.Locals("assignmentID", uint(id))
		return c.Next()
	}
}

// AssignmentStep validates the :id and :stepId route params
func AssignmentStep() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("id"))
		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid assignment ID!", nil)
		}
		stepStr := strings.TrimSpace(c.Params("stepId"))
		stepID, err := strconv.Atoi(stepStr)
		if err != nil || stepID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid step ID!", nil)
		}
		c.Locals("assignmentID", uint(id))
		c.Locals("stepID", uint(stepID))
		return c.Next()
	}
}

// WaiveRequest carries the optional waive reason.
type WaiveRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

// WaiveAssignment validates the waive request
func WaiveAssignment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(WaiveRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		reqData.Reason = strings.TrimSpace(reqData.Reason)
		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"reason": "Reason must be at most 500 characters!",
			})
		}
		c.Locals("validatedWaive", reqData)
		return c.Next()
	}
}

// TimeSpentRequest carries one viewing session's seconds.
type TimeSpentRequest struct {
	Seconds int `json:"seconds" validate:"required,gt=0"`
}

// RecordTime validates the time-spent request
func RecordTime() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(TimeSpentRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"seconds": "Seconds must be a positive number!",
			})
		}
		c.Locals("validatedSeconds", reqData.Seconds)
		return c.Next()
	}
}

// UserID validates the :userId route param
func UserID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("userId"))
		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user ID!", nil)
		}
		c.Locals("targetUserID", uint(id))
		return c.Next()
	}
}
