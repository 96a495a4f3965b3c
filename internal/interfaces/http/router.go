package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/barstock/internal/application/usecase"
	"github.com/tu-usuario/barstock/internal/infrastructure/backup"
	"github.com/tu-usuario/barstock/internal/infrastructure/pdf"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AnalyticsUC *usecase.AnalyticsUseCase
	AlertUC     *usecase.AlertUseCase
	ConfigUC    *usecase.ConfigUseCase
	PurchaseUC  *usecase.PurchaseUseCase
	ProductUC   *usecase.ProductUseCase
	SupplierUC  *usecase.SupplierUseCase
	NoteUC      *usecase.NoteUseCase
	BackupSvc   *backup.Service
	PDFReport   *pdf.VolumeReportGenerator
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Motores de análisis
	analytics := api.Group("/analytics")
	analyticsHandler := NewAnalyticsHandler(deps.AnalyticsUC, deps.PDFReport)
	analytics.Get("/volumes", analyticsHandler.Volumes)
	analytics.Get("/volumes.pdf", analyticsHandler.VolumesPDF)
	analytics.Get("/suppliers/:product", analyticsHandler.Suppliers)
	analytics.Get("/trend/:product", analyticsHandler.Trend)
	analytics.Get("/similar/:product", analyticsHandler.Similar)
	analytics.Get("/summary", analyticsHandler.Summary)

	// Alertas
	alerts := api.Group("/alerts")
	alertHandler := NewAlertHandler(deps.AlertUC)
	alerts.Get("/", alertHandler.Generate)
	alerts.Get("/stats", alertHandler.Stats)

	// Configuración
	configHandler := NewConfigHandler(deps.ConfigUC)
	api.Get("/config", configHandler.List)
	api.Put("/config", configHandler.Set)

	// Compras
	purchases := api.Group("/purchases")
	purchaseHandler := NewPurchaseHandler(deps.PurchaseUC)
	purchases.Post("/", purchaseHandler.Register)
	purchases.Get("/", purchaseHandler.History)
	purchases.Delete("/:id", purchaseHandler.Delete)

	// Productos
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Proveedores
	suppliers := api.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", supplierHandler.Delete)

	// Notas
	notes := api.Group("/notes")
	noteHandler := NewNoteHandler(deps.NoteUC)
	notes.Post("/", noteHandler.Create)
	notes.Get("/", noteHandler.List)
	notes.Get("/:id", noteHandler.GetByID)
	notes.Put("/:id", noteHandler.Update)
	notes.Delete("/:id", noteHandler.Delete)

	// Catálogo combinado para el formulario de compras
	catalogHandler := NewCatalogHandler(deps.ProductUC, deps.SupplierUC)
	api.Get("/catalog", catalogHandler.Get)

	// Backups
	backups := api.Group("/backups")
	backupHandler := NewBackupHandler(deps.BackupSvc)
	backups.Get("/", backupHandler.List)
	backups.Post("/", backupHandler.Run)
}
