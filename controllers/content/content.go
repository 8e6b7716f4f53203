package contentControllers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"helpdesk/middleware"
	"helpdesk/models"
)

// ListContent lists published content items from the library
func ListContent(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := c.Locals("userId").(uint); !ok {
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
		}

		query := db.Model(&models.ContentItem{}).Where("is_published = ? AND is_deleted = ?", true, false)
		if contentType := strings.TrimSpace(c.Query("type")); contentType != "" {
			query = query.Where("content_type = ?", strings.ToUpper(contentType))
		}

		var items []models.ContentItem
		if err := query.Order("created_at desc").Find(&items).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch content!", nil)
		}

		return middleware.JsonResponse(c, fiber.StatusOK, true, "Content fetched successfully!", fiber.Map{
			"items": items,
		})
	}
}

// GetContent returns one published content item
func GetContent(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := c.Locals("userId").(uint); !ok {
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
		}

		idStr := strings.TrimSpace(c.Params("id"))
		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid content ID!", nil)
		}

		var item models.ContentItem
		err = db.Where("id = ? AND is_published = ? AND is_deleted = ?", id, true, false).First(&item).Error
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found!", nil)
		}

		return middleware.JsonResponse(c, fiber.StatusOK, true, "Content fetched successfully!", item)
	}
}
