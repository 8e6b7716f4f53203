package supportValidators

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"helpdesk/middleware"
)

// CreateTicketRequest is the ticket creation body.
type CreateTicketRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Priority    *string `json:"priority"`
	Category    *string `json:"category"`
}

// TicketListRequest carries pagination and filters.
type TicketListRequest struct {
	Page     *int    `query:"page"`
	Limit    *int    `query:"limit"`
	Status   *string `query:"status"`
	Priority *string `query:"priority"`
}

var validStatus = map[string]bool{"open": true, "in_progress": true, "resolved": true, "closed": true}
var validPriority = map[string]bool{"low": true, "medium": true, "high": true}
var validCategory = map[string]bool{"general": true, "hardware": true, "software": true, "access": true}

// CreateTicket validates the ticket creation request
func CreateTicket() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateTicketRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Title = strings.TrimSpace(reqData.Title)
		if reqData.Title == "" {
			errors["title"] = "Title is required!"
		} else {
			if len(reqData.Title) < 3 {
				errors["title"] = "Title must be at least 3 characters long!"
			}
			if len(reqData.Title) > 100 {
				errors["title"] = "Title must not exceed 100 characters!"
			}
			if matched, _ := regexp.MatchString(`[<>{}]`, reqData.Title); matched {
				errors["title"] = "Title contains invalid characters (e.g., <, >, {, })!"
			}
		}

		reqData.Description = strings.TrimSpace(reqData.Description)
		if reqData.Description == "" {
			errors["description"] = "Description is required!"
		}

		if reqData.Priority != nil && !validPriority[strings.ToLower(*reqData.Priority)] {
			errors["priority"] = "Invalid priority! Allowed: low, medium, high"
		}
		if reqData.Category != nil && !validCategory[strings.ToLower(*reqData.Category)] {
			errors["category"] = "Invalid category! Allowed: general, hardware, software, access"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedTicket", reqData)
		return c.Next()
	}
}

// TicketList validates pagination and filter query params
func TicketList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(TicketListRequest)
		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		errors := make(map[string]string)
		if reqData.Page != nil && *reqData.Page <= 0 {
			errors["page"] = "Page must be a positive number!"
		}
		if reqData.Limit != nil && (*reqData.Limit <= 0 || *reqData.Limit > 100) {
			errors["limit"] = "Limit must be between 1 and 100!"
		}
		if reqData.Status != nil && !validStatus[strings.ToLower(*reqData.Status)] {
			errors["status"] = "Invalid status! Allowed: open, in_progress, resolved, closed"
		}
		if reqData.Priority != nil && !validPriority[strings.ToLower(*reqData.Priority)] {
			errors["priority"] = "Invalid priority! Allowed: low, medium, high"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedTicketList", reqData)
		return c.Next()
	}
}

// UpdateTicketStatus validates the :id param and new status
func UpdateTicketStatus() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("id"))
		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid ticket ID!", nil)
		}

		reqData := new(struct {
			Status string `json:"status"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		status := strings.ToLower(strings.TrimSpace(reqData.Status))
		if !validStatus[status] {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"status": "Invalid status! Allowed: open, in_progress, resolved, closed",
			})
		}

		c.Locals("ticketID", uint(id))
		c.Locals("validatedTicketStatus", status)
		return c.Next()
	}
}
