package supportControllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"helpdesk/middleware"
	"helpdesk/models"
	supportValidators "helpdesk/validators/support"
)

// CreateTicket opens a support ticket for the caller
func CreateTicket(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("userId").(uint)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
		}

		var user models.User
		if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
		}

		reqData := c.Locals("validatedTicket").(*supportValidators.CreateTicketRequest)

		ticket := models.SupportTicket{
			UserID:      userID,
			Title:       reqData.Title,
			Description: reqData.Description,
			Status:      "open",
			Priority:    "medium",
			Category:    "general",
		}
		if reqData.Priority != nil {
			ticket.Priority = strings.ToLower(*reqData.Priority)
		}
		if reqData.Category != nil {
			ticket.Category = strings.ToLower(*reqData.Category)
		}

		if err := db.Create(&ticket).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create support ticket!", nil)
		}

		return middleware.JsonResponse(c, fiber.StatusOK, true, "Support ticket created successfully!", ticket)
	}
}

// ListMyTickets lists the caller's tickets with pagination
func ListMyTickets(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("userId").(uint)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
		}

		reqData := c.Locals("validatedTicketList").(*supportValidators.TicketListRequest)
		page, limit := 1, 10
		if reqData.Page != nil {
			page = *reqData.Page
		}
		if reqData.Limit != nil {
			limit = *reqData.Limit
		}
		offset := (page - 1) * limit

		query := db.Model(&models.SupportTicket{}).Where("user_id = ? AND is_deleted = ?", userID, false)
		if reqData.Status != nil {
			query = query.Where("status = ?", strings.ToLower(*reqData.Status))
		}

		var total int64
		query.Count(&total)

		var tickets []models.SupportTicket
		if err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&tickets).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch tickets!", nil)
		}

		return middleware.JsonResponse(c, fiber.StatusOK, true, "Tickets fetched successfully!", fiber.Map{
			"tickets": tickets,
			"pagination": fiber.Map{
				"total": total,
				"page":  page,
				"limit": limit,
			},
		})
	}
}

// AdminListTickets lists all tickets with optional status filter (admin)
func AdminListTickets(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := c.Locals("validatedTicketList").(*supportValidators.TicketListRequest)
		page, limit := 1, 10
		if reqData.Page != nil {
			page = *reqData.Page
		}
		if reqData.Limit != nil {
			limit = *reqData.Limit
		}
		offset := (page - 1) * limit

		query := db.Model(&models.SupportTicket{}).Where("is_deleted = ?", false)
		if reqData.Status != nil {
			query = query.Where("status = ?", strings.ToLower(*reqData.Status))
		}
		if reqData.Priority != nil {
			query = query.Where("priority = ?", strings.ToLower(*reqData.Priority))
		}

		var total int64
		query.Count(&total)

		var tickets []models.SupportTicket
		if err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&tickets).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch tickets!", nil)
		}

		return middleware.JsonResponse(c, fiber.StatusOK, true, "Tickets fetched successfully!", fiber.Map{
			"tickets": tickets,
			"pagination": fiber.Map{
				"total": total,
				"page":  page,
				"limit": limit,
			},
		})
	}
}

// AdminUpdateTicketStatus moves a ticket through its workflow (admin)
func AdminUpdateTicketStatus(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ticketID := c.Locals("ticketID").(uint)
		status := c.Locals("validatedTicketStatus").(string)

		var ticket models.SupportTicket
		if err := db.Where("id = ? AND is_deleted = ?", ticketID, false).First(&ticket).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Ticket not found!", nil)
		}

		if err := db.Model(&ticket).Update("status", status).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update ticket!", nil)
		}

		return middleware.JsonResponse(c, fiber.StatusOK, true, "Ticket updated successfully!", ticket)
	}
}
