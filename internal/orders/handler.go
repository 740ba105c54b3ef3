package orders

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"masapp-backend/internal/audit"
	"masapp-backend/internal/auth"
	"masapp-backend/internal/database"
	"masapp-backend/internal/menu"
	"masapp-backend/internal/models"
)

var validate = validator.New()

// Personel rolü başına izin verilen durum geçiş hedefleri. Müşteri
// (anonim) istekler durum değiştiremez; admin her duruma geçebilir.
var roleStatusMap = map[models.UserRole][]models.OrderStatus{
	models.RoleKitchen: {models.OrderPreparing, models.OrderReady},
	models.RoleWaiter:  {models.OrderCompleted, models.OrderCancelled},
	models.RoleCashier: {models.OrderPending, models.OrderCompleted, models.OrderCancelled},
}

func roleAllowsStatus(role models.UserRole, status models.OrderStatus) bool {
	if role == models.RoleAdmin {
		return true
	}
	for _, s := range roleStatusMap[role] {
		if s == status {
			return true
		}
	}
	return false
}

// ListOrdersHandler - siparişleri filtreli listeler
func ListOrdersHandler(service *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		restaurantParam := c.Query("restaurantId")
		if restaurantParam == "" {
			return fiber.NewError(fiber.StatusBadRequest, "restaurantId gerekli")
		}

		restaurant, err := menu.ResolveRestaurantID(service.DB, restaurantParam)
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Restoran bulunamadı")
		}

		query := service.DB.Preload("Items").
			Where("restaurant_id = ?", restaurant.ID).
			Order("created_at DESC")

		if status := c.Query("status"); status != "" {
			query = query.Where("status = ?", status)
		}
		if approved := c.Query("approved"); approved != "" {
			query = query.Where("approved = ?", approved == "true")
		}
		if table := c.Query("table"); table != "" {
			if n, err := strconv.Atoi(table); err == nil {
				// Masa sorgusu açık hesabı arar; kapanmış siparişler hariç
				query = query.Where("table_number = ? AND status NOT IN ?", n,
					[]models.OrderStatus{models.OrderCompleted, models.OrderCancelled})
			}
		}

		limit := 100
		if l := c.QueryInt("limit"); l > 0 && l <= 500 {
			limit = l
		}

		var orders []models.Order
		if err := query.Limit(limit).Find(&orders).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Siparişler yüklenemedi")
		}

		return c.JSON(fiber.Map{"orders": orders})
	}
}

// GetOrderHandler - tek sipariş
func GetOrderHandler(service *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var order models.Order
		err := service.DB.Preload("Items").First(&order, "id = ?", c.Params("id")).Error
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Sipariş bulunamadı")
		}
		return c.JSON(fiber.Map{"order": order})
	}
}

// CreateOrderHandler - müşteri veya personel yeni sipariş oluşturur
func CreateOrderHandler(service *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in CreateInput
		if err := c.BodyParser(&in); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if err := validate.Struct(&in); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Restoran ve en az bir geçerli kalem gerekli")
		}

		order, printResults, err := service.Create(in)
		if err != nil {
			switch {
			case errors.Is(err, ErrRestaurantNotFound):
				return fiber.NewError(fiber.StatusNotFound, "Restoran bulunamadı")
			case errors.Is(err, ErrNoItems):
				return fiber.NewError(fiber.StatusBadRequest, "Sipariş en az bir kalem içermeli")
			default:
				return fiber.NewError(fiber.StatusInternalServerError, "Sipariş oluşturulamadı")
			}
		}

		resp := fiber.Map{"order": order}
		if printResults != nil {
			resp["printResults"] = printResults
		}
		return c.Status(fiber.StatusCreated).JSON(resp)
	}
}

// ApproveOrderHandler - kasiyer siparişi onaylar; fişler basılır
func ApproveOrderHandler(service *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		order, printResults, err := service.Approve(c.Params("id"))
		if err != nil {
			if errors.Is(err, ErrOrderNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Sipariş bulunamadı")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Sipariş onaylanamadı")
		}

		userID, _ := c.Locals(auth.CtxUserIDKey).(string)
		userName, _ := c.Locals(auth.CtxUserNameKey).(string)
		audit.WriteLog(database.DB, audit.LogOptions{
			RestaurantID: &order.RestaurantID,
			UserID:       userID,
			UserName:     userName,
			EntityType:   "order",
			EntityID:     order.ID,
			Action:       models.AuditActionUpdate,
			Description:  "Sipariş onaylandı",
		})

		resp := fiber.Map{"order": order}
		if printResults != nil {
			resp["printResults"] = printResults
		}
		return c.JSON(resp)
	}
}

// UpdateOrderHandler - sipariş günceller. Personel token'ı varsa durum
// geçişi rol haritasıyla sınırlanır; anonim istek durum değiştiremez.
func UpdateOrderHandler(service *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in UpdateInput
		if err := c.BodyParser(&in); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if in.Status != nil {
			role, authenticated := auth.RoleFromCtx(c)
			if !authenticated {
				return fiber.NewError(fiber.StatusUnauthorized, "Durum değişikliği için personel girişi gerekli")
			}
			if !roleAllowsStatus(role, models.OrderStatus(*in.Status)) {
				return fiber.NewError(fiber.StatusForbidden, "Bu duruma geçiş için yetkiniz yok")
			}
		}
		in.CashierName, _ = c.Locals(auth.CtxUserNameKey).(string)

		before, _ := currentOrderSnapshot(service, c.Params("id"))

		order, err := service.Update(c.Params("id"), in)
		if err != nil {
			switch {
			case errors.Is(err, ErrOrderNotFound):
				return fiber.NewError(fiber.StatusNotFound, "Sipariş bulunamadı")
			case errors.Is(err, ErrInvalidStatus):
				return fiber.NewError(fiber.StatusBadRequest, "Geçersiz sipariş durumu")
			default:
				return fiber.NewError(fiber.StatusInternalServerError, "Sipariş güncellenemedi")
			}
		}

		userID, _ := c.Locals(auth.CtxUserIDKey).(string)
		userName, _ := c.Locals(auth.CtxUserNameKey).(string)
		if userID != "" {
			audit.WriteLog(database.DB, audit.LogOptions{
				RestaurantID: &order.RestaurantID,
				UserID:       userID,
				UserName:     userName,
				EntityType:   "order",
				EntityID:     order.ID,
				Action:       models.AuditActionUpdate,
				Description:  "Sipariş güncellendi",
				Before:       before,
				After:        order,
			})
		}

		return c.JSON(fiber.Map{"order": order})
	}
}

func currentOrderSnapshot(service *Service, id string) (*models.Order, error) {
	var order models.Order
	if err := service.DB.Preload("Items").First(&order, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// DeleteOrderHandler - siparişi siler (admin/kasiyer)
func DeleteOrderHandler(service *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var order models.Order
		if err := service.DB.First(&order, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Sipariş bulunamadı")
		}

		if err := service.DB.Select("Items").Delete(&order).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sipariş silinemedi")
		}

		userID, _ := c.Locals(auth.CtxUserIDKey).(string)
		userName, _ := c.Locals(auth.CtxUserNameKey).(string)
		audit.WriteLog(database.DB, audit.LogOptions{
			RestaurantID: &order.RestaurantID,
			UserID:       userID,
			UserName:     userName,
			EntityType:   "order",
			EntityID:     order.ID,
			Action:       models.AuditActionDelete,
			Description:  "Sipariş silindi",
			Before:       order,
		})

		service.Bus.Publish("order_deleted", map[string]any{
			"orderId":      order.ID,
			"restaurantId": order.RestaurantID,
		})

		return c.JSON(fiber.Map{"message": "Sipariş silindi"})
	}
}

type bulkDeleteRequest struct {
	RestaurantID string   `json:"restaurantId" validate:"required"`
	OrderIDs     []string `json:"orderIds" validate:"required,min=1"`
}

// BulkDeleteOrdersHandler - gün sonu temizliği için toplu silme
func BulkDeleteOrdersHandler(service *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req bulkDeleteRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if err := validate.Struct(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "restaurantId ve en az bir orderId gerekli")
		}

		restaurant, err := menu.ResolveRestaurantID(service.DB, req.RestaurantID)
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Restoran bulunamadı")
		}

		result := service.DB.
			Where("restaurant_id = ? AND id IN ?", restaurant.ID, req.OrderIDs).
			Delete(&models.Order{})
		if result.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Siparişler silinemedi")
		}

		userID, _ := c.Locals(auth.CtxUserIDKey).(string)
		userName, _ := c.Locals(auth.CtxUserNameKey).(string)
		audit.WriteLog(database.DB, audit.LogOptions{
			RestaurantID: &restaurant.ID,
			UserID:       userID,
			UserName:     userName,
			EntityType:   "order",
			Action:       models.AuditActionDelete,
			Description:  "Toplu sipariş silme",
			Before:       req.OrderIDs,
		})

		return c.JSON(fiber.Map{"deleted": result.RowsAffected})
	}
}

type mergeRequest struct {
	RestaurantID string   `json:"restaurantId" validate:"required"`
	OrderIDs     []string `json:"orderIds" validate:"required,min=1"`
	TargetTable  int      `json:"targetTable" validate:"required,gt=0"`
}

// MergeOrdersHandler - masaları birleştirir
func MergeOrdersHandler(service *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req mergeRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if err := validate.Struct(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "restaurantId, orderIds ve targetTable gerekli")
		}

		order, err := service.Merge(req.RestaurantID, req.OrderIDs, req.TargetTable)
		if err != nil {
			switch {
			case errors.Is(err, ErrSameTableMerge):
				return fiber.NewError(fiber.StatusBadRequest, "Sipariş zaten bu masada")
			case errors.Is(err, ErrRestaurantNotFound):
				return fiber.NewError(fiber.StatusNotFound, "Restoran bulunamadı")
			case errors.Is(err, ErrOrderNotFound):
				return fiber.NewError(fiber.StatusNotFound, "Birleştirilecek sipariş bulunamadı")
			default:
				return fiber.NewError(fiber.StatusInternalServerError, "Siparişler birleştirilemedi")
			}
		}

		return c.JSON(fiber.Map{"order": order})
	}
}

// PrintOrderHandler - sipariş fişlerini yeniden basar
func PrintOrderHandler(service *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		_, results, err := service.PrintTickets(c.Params("id"))
		if err != nil {
			if errors.Is(err, ErrOrderNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Sipariş bulunamadı")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Fişler basılamadı")
		}
		return c.JSON(fiber.Map{"printResults": results})
	}
}

// PrintInfoHandler - ödeme bilgi fişini kasaya basar (hesap isteği)
func PrintInfoHandler(service *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cashierName, _ := c.Locals(auth.CtxUserNameKey).(string)

		results, err := service.PrintInfo(c.Params("id"), cashierName)
		if err != nil {
			if errors.Is(err, ErrOrderNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Sipariş bulunamadı")
			}
			return fiber.NewError(fiber.StatusBadRequest, "Kasa yazıcısı yapılandırılmamış")
		}
		return c.JSON(fiber.Map{"printResults": results})
	}
}
