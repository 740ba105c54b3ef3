package audit

import (
	"masapp-backend/internal/database"
	"masapp-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ListAuditLogsHandler - son değişiklik kayıtlarını listeler (admin)
func ListAuditLogsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		restaurantID := c.Query("restaurantId")
		entityType := c.Query("entityType")
		limit := c.QueryInt("limit", 100)
		if limit > 500 {
			limit = 500
		}

		q := database.DB.Model(&models.AuditLog{}).Order("created_at DESC").Limit(limit)
		if restaurantID != "" {
			q = q.Where("restaurant_id = ?", restaurantID)
		}
		if entityType != "" {
			q = q.Where("entity_type = ?", entityType)
		}

		var logs []models.AuditLog
		if err := q.Find(&logs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kayıtlar okunamadı")
		}

		return c.JSON(fiber.Map{"success": true, "data": logs})
	}
}
