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

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// SupplierRepo implementación del puerto SupplierRepository sobre PostgreSQL.
type SupplierRepo struct {
	q Querier
}

func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

const supplierColumns = `id, name, contact, phone, email, address, tax_id, notes, active, created_at, updated_at`

// Create persiste un proveedor nuevo.
func (r *SupplierRepo) Create(ctx context.Context, s *entity.Supplier) error {
	const query = `
		INSERT INTO suppliers (id, name, contact, phone, email, address, tax_id, notes, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.Name, s.Contact, s.Phone, s.Email, s.Address,
		s.TaxID, s.Notes, s.Active, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}

// GetByID obtiene un proveedor por ID; nil si no existe.
func (r *SupplierRepo) GetByID(ctx context.Context, id string) (*entity.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers WHERE id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, id))
}

// GetByName obtiene un proveedor por nombre exacto; nil si no existe.
func (r *SupplierRepo) GetByName(ctx context.Context, name string) (*entity.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers WHERE name = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, name))
}

func (r *SupplierRepo) scanOne(row pgx.Row) (*entity.Supplier, error) {
	var s entity.Supplier
	err := row.Scan(
		&s.ID, &s.Name, &s.Contact, &s.Phone, &s.Email, &s.Address,
		&s.TaxID, &s.Notes, &s.Active, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return &s, nil
}

// List devuelve todos los proveedores ordenados por nombre, con su contador de compras.
func (r *SupplierRepo) List(ctx context.Context) ([]repository.SupplierListRow, error) {
	const query = `
	SELECT
	    s.id, s.name, s.contact, s.phone, s.email, s.address, s.tax_id,
	    s.notes, s.active, s.created_at, s.updated_at,
	    (SELECT COUNT(*) FROM purchases WHERE supplier_id = s.id) AS total_purchases
	FROM suppliers s
	ORDER BY s.name`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()

	var list []repository.SupplierListRow
	for rows.Next() {
		var row repository.SupplierListRow
		if err := rows.Scan(
			&row.Supplier.ID, &row.Supplier.Name, &row.Supplier.Contact,
			&row.Supplier.Phone, &row.Supplier.Email, &row.Supplier.Address,
			&row.Supplier.TaxID, &row.Supplier.Notes, &row.Supplier.Active,
			&row.Supplier.CreatedAt, &row.Supplier.UpdatedAt, &row.TotalPurchases,
		); err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// Update actualiza el perfil completo del proveedor.
func (r *SupplierRepo) Update(ctx context.Context, s *entity.Supplier) error {
	const query = `
		UPDATE suppliers SET
		    name = $2, contact = $3, phone = $4, email = $5, address = $6,
		    tax_id = $7, notes = $8, active = $9, updated_at = $10
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		s.ID, s.Name, s.Contact, s.Phone, s.Email, s.Address,
		s.TaxID, s.Notes, s.Active, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update supplier: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrSupplierNotFound
	}
	return nil
}

// Delete elimina un proveedor por ID.
func (r *SupplierRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM suppliers WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrHasPurchases
		}
		return fmt.Errorf("delete supplier: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrSupplierNotFound
	}
	return nil
}
