package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/barstock/internal/domain/entity"
	"github.com/tu-usuario/barstock/internal/domain/repository"
)

var _ repository.ConfigRepository = (*ConfigRepo)(nil)

// ConfigRepo implementación del puerto ConfigRepository sobre PostgreSQL.
type ConfigRepo struct {
	q Querier
}

func NewConfigRepository(q Querier) *ConfigRepo {
	return &ConfigRepo{q: q}
}

// Get obtiene una entrada de configuración por clave; nil si no existe.
func (r *ConfigRepo) Get(ctx context.Context, key string) (*entity.ConfigEntry, error) {
	const query = `
		SELECT key, value, description, updated_at
		FROM config WHERE key = $1`
	var e entity.ConfigEntry
	err := r.q.QueryRow(ctx, query, key).Scan(&e.Key, &e.Value, &e.Description, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get config %q: %w", key, err)
	}
	return &e, nil
}

// Upsert inserta o actualiza una entrada de configuración.
func (r *ConfigRepo) Upsert(ctx context.Context, e *entity.ConfigEntry) error {
	const query = `
		INSERT INTO config (key, value, description, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (key) DO UPDATE SET
		    value = EXCLUDED.value,
		    description = COALESCE(NULLIF(EXCLUDED.description, ''), config.description),
		    updated_at = now()`
	if _, err := r.q.Exec(ctx, query, e.Key, e.Value, e.Description); err != nil {
		return fmt.Errorf("upsert config %q: %w", e.Key, err)
	}
	return nil
}

// List devuelve todas las entradas de configuración ordenadas por clave.
func (r *ConfigRepo) List(ctx context.Context) ([]entity.ConfigEntry, error) {
	const query = `
		SELECT key, value, description, updated_at
		FROM config ORDER BY key`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list config: %w", err)
	}
	defer rows.Close()

	var entries []entity.ConfigEntry
	for rows.Next() {
		var e entity.ConfigEntry
		if err := rows.Scan(&e.Key, &e.Value, &e.Description, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan config: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
