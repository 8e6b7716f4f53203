package supportRoutes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"helpdesk/config"
	controller "helpdesk/controllers/support"
	"helpdesk/middleware"
	validator "helpdesk/validators/support"
)

func SetupSupportRoutes(app *fiber.App, cfg *config.Config, db *gorm.DB) {
	auth := middleware.JWTMiddleware(cfg)
	admin := middleware.RequireRole("ADMIN")

	support := app.Group("/api/support")
	support.Post("/tickets", auth, validator.CreateTicket(), controller.CreateTicket(db))
	support.Get("/tickets", auth, validator.TicketList(), controller.ListMyTickets(db))

	adminGroup := app.Group("/api/admin/support")
	adminGroup.Get("/tickets", auth, admin, validator.TicketList(), controller.AdminListTickets(db))
	adminGroup.Put("/tickets/:id/status", auth, admin, validator.UpdateTicketStatus(), controller.AdminUpdateTicketStatus(db))
}
