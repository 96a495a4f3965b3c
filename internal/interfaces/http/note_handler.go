package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/barstock/internal/application/dto"
	"github.com/tu-usuario/barstock/internal/application/usecase"
	"github.com/tu-usuario/barstock/internal/domain/repository"
)

// NoteHandler maneja las notas del usuario.
type NoteHandler struct {
	uc *usecase.NoteUseCase
}

// NewNoteHandler construye el handler.
func NewNoteHandler(uc *usecase.NoteUseCase) *NoteHandler {
	return &NoteHandler{uc: uc}
}

// Create godoc
// @Summary      Crear nota
// @Tags         notes
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateNoteRequest  true  "Datos de la nota"
// @Success      201   {object}  dto.NoteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/notes [post]
func (h *NoteHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateNoteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener nota por ID
// @Tags         notes
// @Produce      json
// @Param        id  path  string  true  "ID de la nota"
// @Success      200  {object}  dto.NoteResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/notes/{id} [get]
func (h *NoteHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar notas con filtros opcionales
// @Tags         notes
// @Produce      json
// @Param        category  query  string  false  "Filtrar por categoría"
// @Param        priority  query  string  false  "Filtrar por prioridad"
// @Param        status    query  string  false  "Filtrar por estado"
// @Param        search    query  string  false  "Buscar en título y contenido"
// @Success      200  {array}  dto.NoteResponse
// @Router       /api/notes [get]
func (h *NoteHandler) List(c *fiber.Ctx) error {
	filter := repository.NoteFilter{
		Category: c.Query("category"),
		Priority: c.Query("priority"),
		Status:   c.Query("status"),
		Search:   c.Query("search"),
	}
	return c.JSON(h.uc.List(c.Context(), filter))
}

// Update godoc
// @Summary      Actualizar nota
// @Tags         notes
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la nota"
// @Param        body  body  dto.UpdateNoteRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.NoteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/notes/{id} [put]
func (h *NoteHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateNoteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar nota
// @Tags         notes
// @Produce      json
// @Param        id  path  string  true  "ID de la nota"
// @Success      200  {object}  dto.StatusResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/notes/{id} [delete]
func (h *NoteHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.StatusResponse{Status: "ok", Message: "nota eliminada"})
}
