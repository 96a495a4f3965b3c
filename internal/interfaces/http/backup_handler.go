package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/barstock/internal/application/dto"
	"github.com/tu-usuario/barstock/internal/infrastructure/backup"
)

// BackupHandler expone la gestión de copias de seguridad.
type BackupHandler struct {
	svc *backup.Service
}

// NewBackupHandler construye el handler.
func NewBackupHandler(svc *backup.Service) *BackupHandler {
	return &BackupHandler{svc: svc}
}

// List godoc
// @Summary      Listar backups existentes
// @Tags         backups
// @Produce      json
// @Success      200  {array}  dto.BackupInfoResponse
// @Router       /api/backups [get]
func (h *BackupHandler) List(c *fiber.Ctx) error {
	infos, err := h.svc.List()
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.BackupInfoResponse, 0, len(infos))
	for _, info := range infos {
		out = append(out, backupInfoResponse(info))
	}
	return c.JSON(out)
}

// Run godoc
// @Summary      Ejecutar un ciclo de backup
// @Description  Crea un backup nuevo y elimina los que superan la retención.
// @Tags         backups
// @Produce      json
// @Success      200  {object}  dto.BackupRunResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/backups [post]
func (h *BackupHandler) Run(c *fiber.Ctx) error {
	result := h.svc.RunAutomatic(c.Context())
	if result.Err != nil {
		return writeError(c, result.Err)
	}

	out := dto.BackupRunResponse{
		Removed:    result.Removed,
		DurationMS: result.Duration.Milliseconds(),
	}
	if result.Created != nil {
		info := backupInfoResponse(*result.Created)
		out.Created = &info
	}
	return c.JSON(out)
}

func backupInfoResponse(info backup.Info) dto.BackupInfoResponse {
	return dto.BackupInfoResponse{
		Name:       info.Name,
		SizeMB:     info.SizeMB,
		CreatedAt:  info.CreatedAt.Format(time.RFC3339),
		AgeDays:    info.AgeDays,
		Compressed: info.Compressed,
	}
}
