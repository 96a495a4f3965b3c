package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/barstock/internal/application/dto"
	"github.com/tu-usuario/barstock/internal/application/usecase"
	"github.com/tu-usuario/barstock/internal/infrastructure/pdf"
)

// AnalyticsHandler expone los motores de análisis de compras.
type AnalyticsHandler struct {
	uc  *usecase.AnalyticsUseCase
	pdf *pdf.VolumeReportGenerator
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(uc *usecase.AnalyticsUseCase, gen *pdf.VolumeReportGenerator) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc, pdf: gen}
}

// Volumes godoc
// @Summary      Análisis de volúmenes de compra por producto
// @Tags         analytics
// @Produce      json
// @Param        start_date  query  string  false  "Fecha inicio (YYYY-MM-DD)"
// @Param        end_date    query  string  false  "Fecha fin (YYYY-MM-DD)"
// @Param        product     query  string  false  "Filtrar por producto"
// @Success      200  {array}   dto.ProductVolumeDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/analytics/volumes [get]
func (h *AnalyticsHandler) Volumes(c *fiber.Ctx) error {
	req := dto.VolumeAnalysisRequest{
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
		Product:   c.Query("product"),
	}
	out, err := h.uc.AnalyzeVolumes(c.Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// VolumesPDF godoc
// @Summary      Análisis de volúmenes en PDF
// @Tags         analytics
// @Produce      application/pdf
// @Param        start_date  query  string  false  "Fecha inicio (YYYY-MM-DD)"
// @Param        end_date    query  string  false  "Fecha fin (YYYY-MM-DD)"
// @Param        product     query  string  false  "Filtrar por producto"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/analytics/volumes.pdf [get]
func (h *AnalyticsHandler) VolumesPDF(c *fiber.Ctx) error {
	req := dto.VolumeAnalysisRequest{
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
		Product:   c.Query("product"),
	}
	volumes, err := h.uc.AnalyzeVolumes(c.Context(), req)
	if err != nil {
		return writeError(c, err)
	}

	doc, err := h.pdf.Generate(req.StartDate, req.EndDate, volumes)
	if err != nil {
		return writeError(c, err)
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="analisis_volumenes.pdf"`)
	return c.Send(doc)
}

// Suppliers godoc
// @Summary      Comparar proveedores de un producto por precio unitario
// @Tags         analytics
// @Produce      json
// @Param        product   path   string  true   "Nombre del producto"
// @Param        recent_n  query  int     false  "Reservado"  default(5)
// @Success      200  {array}  dto.SupplierComparisonDTO
// @Router       /api/analytics/suppliers/{product} [get]
func (h *AnalyticsHandler) Suppliers(c *fiber.Ctx) error {
	product, err := pathParam(c, "product")
	if err != nil {
		return writeError(c, err)
	}
	recentN := c.QueryInt("recent_n", 5)
	return c.JSON(h.uc.CompareSuppliers(c.Context(), product, recentN))
}

// Trend godoc
// @Summary      Tendencia de precios de un producto
// @Tags         analytics
// @Produce      json
// @Param        product  path   string  true   "Nombre del producto"
// @Param        days     query  int     false  "Días hacia atrás"  default(30)
// @Success      200  {array}  dto.TrendPointDTO
// @Router       /api/analytics/trend/{product} [get]
func (h *AnalyticsHandler) Trend(c *fiber.Ctx) error {
	product, err := pathParam(c, "product")
	if err != nil {
		return writeError(c, err)
	}
	days := c.QueryInt("days", 30)
	return c.JSON(h.uc.PriceTrend(c.Context(), product, days))
}

// Similar godoc
// @Summary      Compras con precio unitario similar al histórico
// @Tags         analytics
// @Produce      json
// @Param        product   path   string  true   "Nombre del producto"
// @Param        quantity  query  number  false  "Cantidad de referencia (reservado)"
// @Param        margin    query  number  false  "Margen de precio (fracción)"  default(0.1)
// @Success      200  {array}  dto.SimilarPurchaseDTO
// @Router       /api/analytics/similar/{product} [get]
func (h *AnalyticsHandler) Similar(c *fiber.Ctx) error {
	product, err := pathParam(c, "product")
	if err != nil {
		return writeError(c, err)
	}

	quantity := queryDecimal(c, "quantity")
	margin := queryDecimal(c, "margin")
	return c.JSON(h.uc.FindSimilarPurchases(c.Context(), product, quantity, margin))
}

// Summary godoc
// @Summary      Resumen general de actividad de compras
// @Tags         analytics
// @Produce      json
// @Success      200  {object}  dto.SummaryDTO
// @Router       /api/analytics/summary [get]
func (h *AnalyticsHandler) Summary(c *fiber.Ctx) error {
	return c.JSON(h.uc.GeneralSummary(c.Context()))
}

func queryDecimal(c *fiber.Ctx, name string) decimal.Decimal {
	raw := c.Query(name)
	if raw == "" {
		return decimal.Zero
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	return v
}
