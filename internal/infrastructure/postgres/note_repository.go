package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/barstock/internal/domain"
	"github.com/tu-usuario/barstock/internal/domain/entity"
	"github.com/tu-usuario/barstock/internal/domain/repository"
)

var _ repository.NoteRepository = (*NoteRepo)(nil)

// NoteRepo implementación del puerto NoteRepository sobre PostgreSQL.
type NoteRepo struct {
	q Querier
}

func NewNoteRepository(q Querier) *NoteRepo {
	return &NoteRepo{q: q}
}

const noteColumns = `
	    id, title, content, category, priority, status, tags,
	    COALESCE(related_product, '')  AS related_product,
	    COALESCE(related_supplier, '') AS related_supplier,
	    COALESCE(related_purchase, '') AS related_purchase,
	    created_at, updated_at`

// Create persiste una nota nueva.
func (r *NoteRepo) Create(ctx context.Context, n *entity.Note) error {
	const query = `
		INSERT INTO notes (id, title, content, category, priority, status, tags,
		                   related_product, related_supplier, related_purchase,
		                   created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), NULLIF($9, ''), NULLIF($10, ''), $11, $12)`
	_, err := r.q.Exec(ctx, query,
		n.ID, n.Title, n.Content, n.Category, n.Priority, n.Status, n.Tags,
		n.RelatedProduct, n.RelatedSupplier, n.RelatedPurchase,
		n.CreatedAt, n.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert note: %w", err)
	}
	return nil
}

// GetByID obtiene una nota por ID; nil si no existe.
func (r *NoteRepo) GetByID(ctx context.Context, id string) (*entity.Note, error) {
	query := `SELECT` + noteColumns + ` FROM notes WHERE id = $1`
	var n entity.Note
	err := r.q.QueryRow(ctx, query, id).Scan(
		&n.ID, &n.Title, &n.Content, &n.Category, &n.Priority, &n.Status, &n.Tags,
		&n.RelatedProduct, &n.RelatedSupplier, &n.RelatedPurchase,
		&n.CreatedAt, &n.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get note: %w", err)
	}
	return &n, nil
}

// List devuelve las notas que cumplen el filtro, más recientes primero.
func (r *NoteRepo) List(ctx context.Context, f repository.NoteFilter) ([]entity.Note, error) {
	query := `SELECT` + noteColumns + ` FROM notes WHERE 1=1`
	var args []any
	if f.Category != "" {
		args = append(args, f.Category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if f.Priority != "" {
		args = append(args, f.Priority)
		query += fmt.Sprintf(" AND priority = $%d", len(args))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		query += fmt.Sprintf(" AND (title ILIKE $%d OR content ILIKE $%d)", len(args), len(args))
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	var notes []entity.Note
	for rows.Next() {
		var n entity.Note
		if err := rows.Scan(
			&n.ID, &n.Title, &n.Content, &n.Category, &n.Priority, &n.Status, &n.Tags,
			&n.RelatedProduct, &n.RelatedSupplier, &n.RelatedPurchase,
			&n.CreatedAt, &n.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// Update actualiza el contenido de la nota.
func (r *NoteRepo) Update(ctx context.Context, n *entity.Note) error {
	const query = `
		UPDATE notes SET
		    title = $2, content = $3, category = $4, priority = $5, status = $6,
		    tags = $7, related_product = NULLIF($8, ''), related_supplier = NULLIF($9, ''),
		    related_purchase = NULLIF($10, ''), updated_at = $11
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		n.ID, n.Title, n.Content, n.Category, n.Priority, n.Status, n.Tags,
		n.RelatedProduct, n.RelatedSupplier, n.RelatedPurchase, n.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update note: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una nota por ID.
func (r *NoteRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM notes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
