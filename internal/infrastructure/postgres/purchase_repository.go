package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/barstock/internal/domain"
	"github.com/tu-usuario/barstock/internal/domain/entity"
	"github.com/tu-usuario/barstock/internal/domain/repository"
)

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

// PurchaseRepo implementación del puerto PurchaseRepository sobre PostgreSQL.
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el adaptador de persistencia para compras.
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

// Insert persiste una compra nueva. SupplierID vacío se guarda como NULL.
func (r *PurchaseRepo) Insert(ctx context.Context, p *entity.Purchase) error {
	const query = `
		INSERT INTO purchases (id, product_id, supplier_id, quantity, unit, total_price, purchase_date, discount_note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), $9)`

	var supplierID any
	if p.SupplierID != "" {
		supplierID = p.SupplierID
	}
	_, err := r.q.Exec(ctx, query,
		p.ID, p.ProductID, supplierID, p.Quantity, p.Unit,
		p.TotalPrice, p.PurchaseDate, p.DiscountNote, p.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrProductNotFound
		}
		return fmt.Errorf("insert purchase: %w", err)
	}
	return nil
}

// History devuelve las compras más recientes con los nombres resueltos.
func (r *PurchaseRepo) History(ctx context.Context, limit int) ([]repository.PurchaseHistoryRow, error) {
	const query = `
	SELECT
	    c.id,
	    p.name                        AS product,
	    COALESCE(s.name, '')          AS supplier,
	    c.quantity,
	    c.unit,
	    c.total_price,
	    c.purchase_date,
	    COALESCE(c.discount_note, '') AS discount_note
	FROM purchases c
	JOIN products p       ON p.id = c.product_id
	LEFT JOIN suppliers s ON s.id = c.supplier_id
	ORDER BY c.purchase_date DESC, c.created_at DESC
	LIMIT $1`

	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("purchase history: %w", err)
	}
	defer rows.Close()

	var results []repository.PurchaseHistoryRow
	for rows.Next() {
		var row repository.PurchaseHistoryRow
		if err := rows.Scan(
			&row.ID,
			&row.ProductName,
			&row.SupplierName,
			&row.Quantity,
			&row.Unit,
			&row.TotalPrice,
			&row.PurchaseDate,
			&row.DiscountNote,
		); err != nil {
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// Delete elimina una compra por ID.
func (r *PurchaseRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM purchases WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete purchase: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CountByProduct cuenta las compras que referencian un producto.
func (r *PurchaseRepo) CountByProduct(ctx context.Context, productID string) (int, error) {
	var count int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM purchases WHERE product_id = $1`, productID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count purchases by product: %w", err)
	}
	return count, nil
}

// CountBySupplier cuenta las compras que referencian un proveedor.
func (r *PurchaseRepo) CountBySupplier(ctx context.Context, supplierID string) (int, error) {
	var count int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM purchases WHERE supplier_id = $1`, supplierID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count purchases by supplier: %w", err)
	}
	return count, nil
}
