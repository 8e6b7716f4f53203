package contentRoutes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"helpdesk/config"
	controllers "helpdesk/controllers/content"
	"helpdesk/middleware"
)

func SetupContentRoutes(app *fiber.App, cfg *config.Config, db *gorm.DB) {
	auth := middleware.JWTMiddleware(cfg)
	group := app.Group("/api/content")

	group.Get("/", auth, controllers.ListContent(db))
	group.Get("/:id", auth, controllers.GetContent(db))
}
