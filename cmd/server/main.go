package main

import (
	"log"
	"strings"
	"time"

	"masapp-backend/internal/audit"
	"masapp-backend/internal/auth"
	"masapp-backend/internal/config"
	"masapp-backend/internal/database"
	"masapp-backend/internal/menu"
	"masapp-backend/internal/models"
	"masapp-backend/internal/orders"
	"masapp-backend/internal/printing"
	"masapp-backend/internal/qr"
	"masapp-backend/internal/realtime"
	"masapp-backend/internal/station"
	"masapp-backend/internal/waiter"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/robfig/cron/v3"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	bus := realtime.NewBus()
	callStore := waiter.NewStore()
	stationRegistry := station.NewRegistry(database.DB)
	dispatcher := printing.NewDispatcher(cfg.CloudMode, cfg.PrinterTimeout)
	qrService := qr.NewService(database.DB)

	orderService := &orders.Service{
		DB:         database.DB,
		Bus:        bus,
		Dispatcher: dispatcher,
		QR:         qrService,
		Calls:      callStore,
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Beklenmeyen sunucu hatası",
			})
		},
	})

	// CORS origins'i virgülle ayrılmış string'den temizleyerek geçir
	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// SSE olay akışı: müşteri ve personel panelleri dinler
	api.Get("/events", realtime.EventsHandler(bus))

	// Müşteri yüzü: menü, QR doğrulama, sipariş ve garson çağrısı
	// (token'lı personel isteklerinde rol kısıtları devreye girer)
	api.Get("/restaurants/:restaurantId/menu", menu.GetMenuHandler())
	api.Get("/qr/validate", qr.ValidateTokenHandler(qrService))
	api.Get("/qr/:restaurantId/:table/image", qr.TableQRImageHandler(qrService, cfg.FrontendURL))

	optional := api.Group("")
	optional.Use(auth.OptionalJWTMiddleware(cfg))

	optional.Get("/orders", orders.ListOrdersHandler(orderService))
	optional.Post("/orders", orders.CreateOrderHandler(orderService))
	optional.Get("/orders/:id", orders.GetOrderHandler(orderService))
	optional.Put("/orders/:id", orders.UpdateOrderHandler(orderService))
	optional.Post("/orders/:id/print-info", orders.PrintInfoHandler(orderService))

	optional.Post("/waiter/call", waiter.CreateCallHandler(callStore, bus))
	optional.Get("/waiter/calls", waiter.ListCallsHandler(callStore))

	// Personel uçları
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	protected.Post("/orders/:id/approve",
		auth.RequireRole(models.RoleCashier, models.RoleAdmin),
		orders.ApproveOrderHandler(orderService))
	protected.Post("/orders/:id/print", orders.PrintOrderHandler(orderService))
	protected.Post("/orders/merge",
		auth.RequireRole(models.RoleWaiter, models.RoleCashier, models.RoleAdmin),
		orders.MergeOrdersHandler(orderService))
	protected.Delete("/orders/bulk",
		auth.RequireRole(models.RoleCashier, models.RoleAdmin),
		orders.BulkDeleteOrdersHandler(orderService))
	protected.Delete("/orders/:id",
		auth.RequireRole(models.RoleCashier, models.RoleAdmin),
		orders.DeleteOrderHandler(orderService))

	protected.Put("/waiter/calls/:id/resolve", waiter.ResolveCallHandler(callStore, bus))
	protected.Delete("/waiter/calls/:id", waiter.DeleteCallHandler(callStore))

	// Yazıcı istasyonları (admin)
	stationRoutes := protected.Group("/restaurants/:restaurantId/stations")
	stationRoutes.Use(auth.RequireRole(models.RoleAdmin))
	stationRoutes.Get("/", station.ListStationsHandler(stationRegistry))
	stationRoutes.Put("/:stationId", station.UpsertStationHandler(stationRegistry))
	stationRoutes.Delete("/:stationId", station.DeleteStationHandler(stationRegistry))
	stationRoutes.Post("/:stationId/test-print", station.TestPrintHandler(stationRegistry, dispatcher))

	// QR ve menü yönetimi (admin)
	protected.Post("/restaurants/:restaurantId/tables/:table/qr/rotate",
		auth.RequireRole(models.RoleAdmin),
		qr.RotateTokenHandler(qrService))
	protected.Post("/restaurants/:restaurantId/menu/import",
		auth.RequireRole(models.RoleAdmin),
		menu.ImportMenuHandler())

	protected.Get("/audit-logs",
		auth.RequireRole(models.RoleAdmin),
		audit.ListAuditLogsHandler())

	// Zamanlanmış bakım işleri
	scheduler := cron.New()
	scheduler.AddFunc("@hourly", func() {
		if removed := callStore.PruneResolved(time.Hour); removed > 0 {
			log.Printf("Temizlik: %d çözülmüş garson çağrısı silindi", removed)
		}
	})
	scheduler.AddFunc("@daily", func() {
		if n, err := qrService.DeactivateExpired(); err != nil {
			log.Printf("QR token temizliği başarısız: %v", err)
		} else if n > 0 {
			log.Printf("Temizlik: %d süresi dolmuş QR token pasifleştirildi", n)
		}
	})
	scheduler.Start()

	log.Printf("Sunucu %s portunda başlıyor", cfg.HTTPPort)
	log.Fatal(app.Listen(":" + cfg.HTTPPort))
}
