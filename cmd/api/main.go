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

	"github.com/tu-usuario/barstock/internal/application/usecase"
	"github.com/tu-usuario/barstock/internal/infrastructure/backup"
	infrapdf "github.com/tu-usuario/barstock/internal/infrastructure/pdf"
	"github.com/tu-usuario/barstock/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/barstock/internal/interfaces/http"
	"github.com/tu-usuario/barstock/pkg/config"
	"github.com/tu-usuario/barstock/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	purchaseRepo := postgres.NewPurchaseRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	configRepo := postgres.NewConfigRepository(pool)
	noteRepo := postgres.NewNoteRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	alertSourceRepo := postgres.NewAlertSourceRepository(pool)

	analyticsUC := usecase.NewAnalyticsUseCase(analyticsRepo, configRepo, log)
	alertUC := usecase.NewAlertUseCase(alertSourceRepo, configRepo, log)
	configUC := usecase.NewConfigUseCase(configRepo, log)
	purchaseUC := usecase.NewPurchaseUseCase(purchaseRepo, productRepo, supplierRepo, log)
	productUC := usecase.NewProductUseCase(productRepo, purchaseRepo, log)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo, purchaseRepo, log)
	noteUC := usecase.NewNoteUseCase(noteRepo, log)

	backupSvc := backup.NewService(cfg.Backup, cfg.DB, log)
	backupSvc.Schedule(ctx)

	pdfReport := infrapdf.NewVolumeReportGenerator()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    cfg.App.Name,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AnalyticsUC: analyticsUC,
		AlertUC:     alertUC,
		ConfigUC:    configUC,
		PurchaseUC:  purchaseUC,
		ProductUC:   productUC,
		SupplierUC:  supplierUC,
		NoteUC:      noteUC,
		BackupSvc:   backupSvc,
		PDFReport:   pdfReport,
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
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
