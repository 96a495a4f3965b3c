package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/barstock/internal/domain/repository"
)

var _ repository.AlertSourceRepository = (*AlertSourceRepo)(nil)

// AlertSourceRepo snapshots de datos para el motor de alertas. Solo lectura;
// la evaluación de reglas vive en el use case como funciones puras.
type AlertSourceRepo struct {
	pool *pgxpool.Pool
}

// NewAlertSourceRepository construye el adaptador.
func NewAlertSourceRepository(pool *pgxpool.Pool) *AlertSourceRepo {
	return &AlertSourceRepo{pool: pool}
}

// StockTotals agrega la cantidad total comprada por producto, mayor primero.
func (r *AlertSourceRepo) StockTotals(ctx context.Context) ([]repository.StockTotalRow, error) {
	const query = `
	SELECT
	    p.name,
	    SUM(c.quantity) AS total_quantity,
	    COUNT(c.id)     AS num_purchases
	FROM purchases c
	JOIN products p ON p.id = c.product_id
	GROUP BY p.name
	ORDER BY total_quantity DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("alerts.StockTotals: %w", err)
	}
	defer rows.Close()

	var results []repository.StockTotalRow
	for rows.Next() {
		var row repository.StockTotalRow
		if err := rows.Scan(&row.ProductName, &row.TotalQuantity, &row.NumPurchases); err != nil {
			return nil, fmt.Errorf("alerts.StockTotals scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// ProductActivity devuelve todos los productos con su última fecha de compra.
// LEFT JOIN para incluir productos que nunca se compraron (LastPurchase nil).
func (r *AlertSourceRepo) ProductActivity(ctx context.Context) ([]repository.ProductActivityRow, error) {
	const query = `
	SELECT
	    p.name,
	    MAX(c.purchase_date) AS last_purchase,
	    COUNT(c.id)          AS num_purchases
	FROM products p
	LEFT JOIN purchases c ON c.product_id = p.id
	GROUP BY p.name
	ORDER BY last_purchase ASC NULLS FIRST`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("alerts.ProductActivity: %w", err)
	}
	defer rows.Close()

	var results []repository.ProductActivityRow
	for rows.Next() {
		var row repository.ProductActivityRow
		var last *time.Time
		if err := rows.Scan(&row.ProductName, &last, &row.NumPurchases); err != nil {
			return nil, fmt.Errorf("alerts.ProductActivity scan: %w", err)
		}
		row.LastPurchase = last
		results = append(results, row)
	}
	return results, rows.Err()
}

// PriceSpreads agrega min/max/avg de precio unitario por producto desde la fecha dada.
func (r *AlertSourceRepo) PriceSpreads(ctx context.Context, since time.Time) ([]repository.PriceSpreadRow, error) {
	const query = `
	SELECT
	    p.name                                                   AS product,
	    COUNT(*)                                                 AS num_purchases,
	    COALESCE(MIN(c.total_price / NULLIF(c.quantity, 0)), 0)  AS min_unit_price,
	    COALESCE(MAX(c.total_price / NULLIF(c.quantity, 0)), 0)  AS max_unit_price,
	    COALESCE(AVG(c.total_price / NULLIF(c.quantity, 0)), 0)  AS avg_unit_price,
	    MAX(c.purchase_date)                                     AS last_purchase
	FROM purchases c
	JOIN products p ON p.id = c.product_id
	WHERE c.purchase_date >= $1
	GROUP BY p.name
	ORDER BY max_unit_price - min_unit_price DESC`

	rows, err := r.pool.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("alerts.PriceSpreads: %w", err)
	}
	defer rows.Close()

	var results []repository.PriceSpreadRow
	for rows.Next() {
		var row repository.PriceSpreadRow
		if err := rows.Scan(
			&row.ProductName,
			&row.NumPurchases,
			&row.MinUnitPrice,
			&row.MaxUnitPrice,
			&row.AvgUnitPrice,
			&row.LastPurchase,
		); err != nil {
			return nil, fmt.Errorf("alerts.PriceSpreads scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// SupplierAverages agrega el precio promedio por (producto, proveedor) desde la
// fecha dada, descartando grupos con menos de minPurchases compras.
func (r *AlertSourceRepo) SupplierAverages(
	ctx context.Context,
	since time.Time,
	minPurchases int,
) ([]repository.SupplierAverageRow, error) {
	const query = `
	SELECT
	    p.name                                                   AS product,
	    COALESCE(s.name, 'Sin proveedor')                        AS supplier,
	    COALESCE(AVG(c.total_price / NULLIF(c.quantity, 0)), 0)  AS avg_unit_price,
	    COUNT(*)                                                 AS num_purchases
	FROM purchases c
	JOIN products p       ON p.id = c.product_id
	LEFT JOIN suppliers s ON s.id = c.supplier_id
	WHERE c.purchase_date >= $1
	GROUP BY p.name, s.name
	HAVING COUNT(*) >= $2
	ORDER BY p.name, avg_unit_price ASC`

	rows, err := r.pool.Query(ctx, query, since, minPurchases)
	if err != nil {
		return nil, fmt.Errorf("alerts.SupplierAverages: %w", err)
	}
	defer rows.Close()

	var results []repository.SupplierAverageRow
	for rows.Next() {
		var row repository.SupplierAverageRow
		if err := rows.Scan(&row.ProductName, &row.SupplierName, &row.AvgUnitPrice, &row.NumPurchases); err != nil {
			return nil, fmt.Errorf("alerts.SupplierAverages scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
