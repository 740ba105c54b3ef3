package waiter

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"masapp-backend/internal/realtime"
)

var validate = validator.New()

type callRequest struct {
	RestaurantID string `json:"restaurantId" validate:"required"`
	TableNumber  int    `json:"tableNumber" validate:"required,gt=0"`
	Type         string `json:"type" validate:"omitempty,oneof=waiter water clean payment custom ready"`
	Message      string `json:"message" validate:"max=500"`
}

// CreateCallHandler - müşteri garson çağırır. Çağrı bellekte tutulur
// ve personel panellerine SSE ile anında duyurulur.
func CreateCallHandler(store *Store, bus *realtime.Bus) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req callRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if err := validate.Struct(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Restoran ve geçerli masa numarası gerekli")
		}

		callType := req.Type
		if callType == "" {
			callType = CallTypeWaiter
		}

		call := store.Create(req.RestaurantID, req.TableNumber, callType, req.Message, "")

		bus.Publish("waiter_call", map[string]any{
			"call":         call,
			"restaurantId": call.RestaurantID,
			"tableNumber":  call.TableNumber,
		})

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"call": call})
	}
}

// ListCallsHandler - restoranın aktif çağrılarını döner
func ListCallsHandler(store *Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		restaurantID := c.Query("restaurantId")
		if restaurantID == "" {
			restaurantID = c.Params("restaurantId")
		}
		if restaurantID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "restaurantId gerekli")
		}

		return c.JSON(fiber.Map{"calls": store.ListActive(restaurantID)})
	}
}

// ResolveCallHandler - garson çağrıyı çözer
func ResolveCallHandler(store *Store, bus *realtime.Bus) fiber.Handler {
	return func(c *fiber.Ctx) error {
		call, ok := store.Resolve(c.Params("id"))
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "Çağrı bulunamadı")
		}

		bus.Publish("waiter_call_resolved", map[string]any{
			"callId":       call.ID,
			"restaurantId": call.RestaurantID,
			"tableNumber":  call.TableNumber,
		})

		return c.JSON(fiber.Map{"call": call})
	}
}

// DeleteCallHandler - çağrıyı listeden kaldırır
func DeleteCallHandler(store *Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !store.Delete(c.Params("id")) {
			return fiber.NewError(fiber.StatusNotFound, "Çağrı bulunamadı")
		}
		return c.JSON(fiber.Map{"message": "Çağrı silindi"})
	}
}
