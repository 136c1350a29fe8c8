package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/jhoicas/Farmacias-api/internal/application/auth"
	"github.com/jhoicas/Farmacias-api/internal/application/inventory"
	"github.com/jhoicas/Farmacias-api/internal/application/usecase"
	"github.com/jhoicas/Farmacias-api/internal/infrastructure/metrics"
	"github.com/jhoicas/Farmacias-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	PharmacyUC  *usecase.PharmacyUseCase
	MedicineUC  *usecase.MedicineUseCase
	InventoryUC *inventory.UseCase
	Metrics     *metrics.Metrics // nil = sin /metrics
	Logger      *logger.Logger   // nil = sin access log
	JWTSecret   string
	ServiceName string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Logger != nil {
		app.Use(RequestLogger(deps.Logger.Component("http"), deps.Metrics))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	})
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics.Handler()))
	}

	requireAuth := AuthMiddleware(deps.JWTSecret)
	api := app.Group("/api")

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC, deps.Metrics)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", requireAuth, authHandler.Me)

	// Catálogo público
	medicineHandler := NewMedicineHandler(deps.MedicineUC)
	pharmacyHandler := NewPharmacyHandler(deps.PharmacyUC)
	api.Get("/medicines", medicineHandler.Search)
	api.Get("/medicines/:id", medicineHandler.Detail)
	api.Post("/medicines", requireAuth, medicineHandler.Create)
	api.Get("/pharmacies", pharmacyHandler.ListActive)

	// Farmacias del usuario (protegido)
	me := api.Group("/me", requireAuth)
	me.Get("/pharmacies", pharmacyHandler.ListMine)
	me.Post("/pharmacies", pharmacyHandler.Create)
	me.Get("/pharmacies/:id", pharmacyHandler.Get)
	me.Put("/pharmacies/:id", pharmacyHandler.Update)
	me.Delete("/pharmacies/:id", pharmacyHandler.Delete)

	// Inventario (protegido)
	inventoryHandler := NewInventoryHandler(deps.InventoryUC, deps.Metrics)
	me.Get("/pharmacies/:id/inventory", inventoryHandler.List)
	me.Post("/pharmacies/:id/inventory", inventoryHandler.Add)
	me.Post("/pharmacies/:id/inventory/new-medicine", inventoryHandler.AddWithNewMedicine)
	me.Get("/pharmacies/:id/inventory/report.pdf", inventoryHandler.Report)

	inv := api.Group("/inventory", requireAuth)
	inv.Put("/:id", inventoryHandler.Update)
	inv.Delete("/:id", inventoryHandler.Delete)
}
