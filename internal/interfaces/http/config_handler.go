package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/barstock/internal/application/dto"
	"github.com/tu-usuario/barstock/internal/application/usecase"
)

// ConfigHandler expone la configuración clave/valor de la aplicación.
type ConfigHandler struct {
	uc *usecase.ConfigUseCase
}

// NewConfigHandler construye el handler.
func NewConfigHandler(uc *usecase.ConfigUseCase) *ConfigHandler {
	return &ConfigHandler{uc: uc}
}

// List godoc
// @Summary      Listar la configuración completa
// @Tags         config
// @Produce      json
// @Success      200  {array}  dto.ConfigEntryResponse
// @Router       /api/config [get]
func (h *ConfigHandler) List(c *fiber.Ctx) error {
	return c.JSON(h.uc.List(c.Context()))
}

// Set godoc
// @Summary      Crear o actualizar una clave de configuración
// @Tags         config
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SetConfigRequest  true  "Clave, valor y descripción"
// @Success      200   {object}  dto.ConfigEntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/config [put]
func (h *ConfigHandler) Set(c *fiber.Ctx) error {
	var in dto.SetConfigRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.SetValue(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
