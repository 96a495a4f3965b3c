package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/barstock/internal/application/usecase"
)

// AlertHandler expone el motor de alertas dinámicas.
type AlertHandler struct {
	uc *usecase.AlertUseCase
}

// NewAlertHandler construye el handler.
func NewAlertHandler(uc *usecase.AlertUseCase) *AlertHandler {
	return &AlertHandler{uc: uc}
}

// Generate godoc
// @Summary      Generar las alertas activas
// @Description  Evalúa las reglas de stock, inactividad, variación de precio y
// @Description  proveedores caros con los umbrales configurados. Las alertas no
// @Description  se persisten; se calculan en cada petición.
// @Tags         alerts
// @Produce      json
// @Success      200  {array}  dto.AlertDTO
// @Router       /api/alerts [get]
func (h *AlertHandler) Generate(c *fiber.Ctx) error {
	return c.JSON(h.uc.GenerateAlerts(c.Context()))
}

// Stats godoc
// @Summary      Estadísticas de alertas por tipo, categoría y prioridad
// @Tags         alerts
// @Produce      json
// @Success      200  {object}  dto.AlertStatsDTO
// @Router       /api/alerts/stats [get]
func (h *AlertHandler) Stats(c *fiber.Ctx) error {
	return c.JSON(h.uc.AlertStats(c.Context()))
}
