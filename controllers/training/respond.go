package controllers

import (
	"github.com/gofiber/fiber/v2"

	"helpdesk/middleware"
	"helpdesk/services/training"
)

// respondEngineError maps engine error kinds to HTTP statuses. Only the kind
// and message cross the boundary.
func respondEngineError(c *fiber.Ctx, err error) error {
	switch {
	case training.IsNotFound(err):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, err.Error(), nil)
	case training.IsTerminalState(err):
		return middleware.JsonResponse(c, fiber.StatusConflict, false, err.Error(), nil)
	case training.IsConflict(err):
		return middleware.JsonResponse(c, fiber.StatusConflict, false, err.Error(), nil)
	case training.IsValidation(err):
		return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, err.Error(), nil)
	}
	return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong!", nil)
}
