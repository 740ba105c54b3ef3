package menu

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"masapp-backend/internal/database"
	"masapp-backend/internal/models"
)

// ResolveRestaurantID - :restaurantId parametresi uuid ya da restoran
// kullanıcı adı olabilir; QR linkleri okunabilirlik için kullanıcı adı
// taşır. İkisini de kabul edip uuid'ye çevirir.
func ResolveRestaurantID(db *gorm.DB, idOrUsername string) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	err := db.Where("id = ? OR username = ?", idOrUsername, idOrUsername).First(&restaurant).Error
	if err != nil {
		return nil, err
	}
	return &restaurant, nil
}

// GetMenuHandler - restoranın menüsünü kategori sıralı döner
func GetMenuHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		restaurant, err := ResolveRestaurantID(database.DB, c.Params("restaurantId"))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Restoran bulunamadı")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Restoran yüklenemedi")
		}
		if !restaurant.IsActive {
			return fiber.NewError(fiber.StatusForbidden, "Restoran aktif değil")
		}

		var categories []models.MenuCategory
		if err := database.DB.
			Where("restaurant_id = ?", restaurant.ID).
			Order("display_order ASC, name ASC").
			Find(&categories).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Menü yüklenemedi")
		}

		var items []models.MenuItem
		if err := database.DB.
			Where("restaurant_id = ? AND is_available = ?", restaurant.ID, true).
			Order("name ASC").
			Find(&items).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Menü yüklenemedi")
		}

		grouped := make(map[string][]models.MenuItem, len(categories))
		for _, item := range items {
			grouped[item.CategoryID] = append(grouped[item.CategoryID], item)
		}

		type categoryResponse struct {
			models.MenuCategory
			Items []models.MenuItem `json:"items"`
		}
		out := make([]categoryResponse, 0, len(categories))
		for _, cat := range categories {
			out = append(out, categoryResponse{MenuCategory: cat, Items: grouped[cat.ID]})
		}

		return c.JSON(fiber.Map{
			"restaurant": fiber.Map{
				"id":       restaurant.ID,
				"name":     restaurant.Name,
				"username": restaurant.Username,
			},
			"categories": out,
		})
	}
}
