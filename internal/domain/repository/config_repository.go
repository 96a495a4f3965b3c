package repository

import (
	"context"

	"github.com/tu-usuario/barstock/internal/domain/entity"
)

// ConfigRepository clave/valor persistido para los umbrales del motor de alertas.
type ConfigRepository interface {
	// Get devuelve la entrada o nil si la clave no existe.
	Get(ctx context.Context, key string) (*entity.ConfigEntry, error)
	// Upsert inserta o reemplaza la entrada, estampando updated_at.
	Upsert(ctx context.Context, e *entity.ConfigEntry) error
	// List devuelve todas las entradas ordenadas por clave.
	List(ctx context.Context) ([]entity.ConfigEntry, error)
}
