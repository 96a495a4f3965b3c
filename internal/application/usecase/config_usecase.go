package usecase

import (
	"context"
	"time"

	"github.com/tu-usuario/barstock/internal/application"
	"github.com/tu-usuario/barstock/internal/application/dto"
	"github.com/tu-usuario/barstock/internal/domain/entity"
	"github.com/tu-usuario/barstock/internal/domain/repository"
	"github.com/tu-usuario/barstock/pkg/logger"
)

// ConfigUseCase gestiona la tabla de configuración clave/valor que parametriza
// los umbrales del motor de alertas y los límites de análisis.
type ConfigUseCase struct {
	configRepo repository.ConfigRepository
	log        *logger.Logger
}

// NewConfigUseCase construye el caso de uso.
func NewConfigUseCase(configRepo repository.ConfigRepository, log *logger.Logger) *ConfigUseCase {
	return &ConfigUseCase{configRepo: configRepo, log: log}
}

// GetValue devuelve el valor de una clave, o fallback si no existe o el
// almacén falla.
func (uc *ConfigUseCase) GetValue(ctx context.Context, key, fallback string) string {
	entry, err := uc.configRepo.Get(ctx, key)
	if err != nil {
		uc.log.Error().Err(err).Str("clave", key).Msg("Error leyendo configuración")
		return fallback
	}
	if entry == nil {
		return fallback
	}
	return entry.Value
}

// SetValue valida y persiste una entrada de configuración.
func (uc *ConfigUseCase) SetValue(ctx context.Context, req dto.SetConfigRequest) (*dto.ConfigEntryResponse, error) {
	if err := application.ValidateStruct(&req); err != nil {
		return nil, err
	}

	entry := &entity.ConfigEntry{
		Key:         req.Key,
		Value:       application.SanitizeString(req.Value, 200),
		Description: application.SanitizeString(req.Description, 200),
	}
	if err := uc.configRepo.Upsert(ctx, entry); err != nil {
		return nil, err
	}

	uc.log.Info().Str("clave", entry.Key).Str("valor", entry.Value).Msg("Configuración actualizada")
	return &dto.ConfigEntryResponse{
		Key:         entry.Key,
		Value:       entry.Value,
		Description: entry.Description,
		UpdatedAt:   time.Now().Format(time.RFC3339),
	}, nil
}

// List devuelve todas las entradas. Falla de almacén degrada a lista vacía.
func (uc *ConfigUseCase) List(ctx context.Context) []dto.ConfigEntryResponse {
	entries, err := uc.configRepo.List(ctx)
	if err != nil {
		uc.log.Error().Err(err).Msg("Error listando configuración")
		return []dto.ConfigEntryResponse{}
	}

	results := make([]dto.ConfigEntryResponse, 0, len(entries))
	for _, e := range entries {
		results = append(results, dto.ConfigEntryResponse{
			Key:         e.Key,
			Value:       e.Value,
			Description: e.Description,
			UpdatedAt:   e.UpdatedAt.Format(time.RFC3339),
		})
	}
	return results
}
