package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Farmacias-api/internal/application/auth"
	"github.com/jhoicas/Farmacias-api/internal/application/inventory"
	"github.com/jhoicas/Farmacias-api/internal/application/usecase"
	"github.com/jhoicas/Farmacias-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/Farmacias-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Farmacias-api/internal/infrastructure/store"
	httpRouter "github.com/jhoicas/Farmacias-api/internal/interfaces/http"
	"github.com/jhoicas/Farmacias-api/pkg/config"
	"github.com/jhoicas/Farmacias-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	st, err := store.Open(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DB.Driver).Msg("conexión a la base de datos")
	}
	defer st.Close()

	if cfg.DB.AutoMigrate {
		if err := st.Migrate(ctx); err != nil {
			log.Fatal().Err(err).Msg("migración del esquema")
		}
		log.Info().Msg("esquema aplicado")
	}

	authUC := auth.NewAuthUseCase(st.Repos.Users, auth.JWTConfig{
		Secret:             cfg.JWT.Secret,
		ExpMinutes:         cfg.JWT.Expiration,
		RememberExpMinutes: cfg.JWT.RememberExpiration,
		Issuer:             cfg.JWT.Issuer,
	})
	pharmacyUC := usecase.NewPharmacyUseCase(st.Repos.Pharmacies)
	medicineUC := usecase.NewMedicineUseCase(st.Repos.Medicines, st.Repos.Inventory)
	inventoryUC := inventory.NewUseCase(st.TxRunner, st.Repos, infrapdf.NewStockReportGenerator())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.HTTP.DocsPath); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.HTTP.DocsPath,
			Path:     "docs",
			Title:    "Farmacias API",
		}))
	} else {
		log.Warn().Str("path", cfg.HTTP.DocsPath).Msg("swagger.json no encontrado, /docs deshabilitado")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		PharmacyUC:  pharmacyUC,
		MedicineUC:  medicineUC,
		InventoryUC: inventoryUC,
		Metrics:     metrics.New("farmacias"),
		Logger:      log,
		JWTSecret:   cfg.JWT.Secret,
		ServiceName: cfg.App.Name,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
