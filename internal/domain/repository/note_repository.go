package repository

import (
	"context"

	"github.com/tu-usuario/barstock/internal/domain/entity"
)

// NoteFilter filtros opcionales del listado de notas; campos vacíos no filtran.
type NoteFilter struct {
	Category string
	Priority string
	Status   string
	Search   string // busca en título y contenido (LIKE)
}

// NoteRepository persistencia de notas.
type NoteRepository interface {
	Create(ctx context.Context, n *entity.Note) error
	GetByID(ctx context.Context, id string) (*entity.Note, error)
	// List devuelve las notas que cumplen el filtro, más recientes primero.
	List(ctx context.Context, f NoteFilter) ([]entity.Note, error)
	Update(ctx context.Context, n *entity.Note) error
	Delete(ctx context.Context, id string) error
}
