package qr

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	qrcode "github.com/skip2/go-qrcode"
)

// TableQRImageHandler - masanın QR kodunu PNG olarak üretir. Kod,
// müşteri menü uygulamasının masa adresini taşır; token sorgu
// parametresi olarak gömülüdür.
func TableQRImageHandler(service *Service, frontendBaseURL string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		restaurantID := c.Params("restaurantId")
		tableNumber, err := strconv.Atoi(c.Params("table"))
		if err != nil || tableNumber <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz masa numarası")
		}

		token, err := service.ActiveToken(restaurantID, tableNumber)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "QR token alınamadı")
		}

		url := fmt.Sprintf("%s/menu/%s?table=%d&token=%s", frontendBaseURL, restaurantID, tableNumber, token.Token)
		png, err := qrcode.Encode(url, qrcode.Medium, 512)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "QR kod üretilemedi")
		}

		c.Set(fiber.HeaderContentType, "image/png")
		return c.Send(png)
	}
}

// ValidateTokenHandler - müşteri uygulaması açılırken token'ı doğrular
func ValidateTokenHandler(service *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenValue := c.Query("token")
		if tokenValue == "" {
			return fiber.NewError(fiber.StatusBadRequest, "token gerekli")
		}

		token, err := service.Validate(tokenValue)
		if err != nil {
			return c.JSON(fiber.Map{"valid": false})
		}

		return c.JSON(fiber.Map{
			"valid":        true,
			"restaurantId": token.RestaurantID,
			"tableNumber":  token.TableNumber,
		})
	}
}

// RotateTokenHandler - masa token'ını elle döndürür (admin)
func RotateTokenHandler(service *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		restaurantID := c.Params("restaurantId")
		tableNumber, err := strconv.Atoi(c.Params("table"))
		if err != nil || tableNumber <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz masa numarası")
		}

		token, err := service.RotateTableToken(restaurantID, tableNumber, "manual")
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Token döndürülemedi")
		}

		return c.JSON(fiber.Map{"token": token})
	}
}
