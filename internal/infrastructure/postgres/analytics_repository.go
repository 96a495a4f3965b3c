package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/barstock/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura de los motores de análisis de compras.
// El precio unitario siempre se deriva en la consulta (total_price / quantity),
// con NULLIF para que una cantidad cero nunca produzca una división inválida.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// VolumesByProduct agrega compras por producto dentro del rango dado.
// El filtro por producto es opcional (cadena vacía = todos).
func (r *AnalyticsRepo) VolumesByProduct(
	ctx context.Context,
	start, end time.Time,
	productName string,
) ([]repository.ProductVolumeRow, error) {
	query := `
	SELECT
	    p.name                                                   AS product,
	    p.valid_units,
	    COUNT(*)                                                 AS num_purchases,
	    SUM(c.quantity)                                          AS total_volume,
	    COALESCE(AVG(c.total_price / NULLIF(c.quantity, 0)), 0)  AS avg_unit_price,
	    COALESCE(MIN(c.total_price / NULLIF(c.quantity, 0)), 0)  AS min_unit_price,
	    COALESCE(MAX(c.total_price / NULLIF(c.quantity, 0)), 0)  AS max_unit_price,
	    SUM(c.total_price)                                       AS total_spend
	FROM purchases c
	JOIN products p ON p.id = c.product_id
	WHERE c.purchase_date BETWEEN $1 AND $2`

	args := []any{start, end}
	if productName != "" {
		query += ` AND p.name = $3`
		args = append(args, productName)
	}
	query += `
	GROUP BY p.id, p.name, p.valid_units
	ORDER BY total_spend DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("analytics.VolumesByProduct: %w", err)
	}
	defer rows.Close()

	var results []repository.ProductVolumeRow
	for rows.Next() {
		var row repository.ProductVolumeRow
		if err := rows.Scan(
			&row.ProductName,
			&row.ValidUnits,
			&row.NumPurchases,
			&row.TotalVolume,
			&row.AvgUnitPrice,
			&row.MinUnitPrice,
			&row.MaxUnitPrice,
			&row.TotalSpend,
		); err != nil {
			return nil, fmt.Errorf("analytics.VolumesByProduct scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// SupplierPricesForProduct agrupa todo el histórico del producto por proveedor.
// Las compras sin proveedor se consolidan bajo "Sin proveedor".
func (r *AnalyticsRepo) SupplierPricesForProduct(
	ctx context.Context,
	productName string,
) ([]repository.SupplierPriceRow, error) {
	const query = `
	SELECT
	    COALESCE(s.name, 'Sin proveedor')                        AS supplier,
	    COALESCE(AVG(c.total_price / NULLIF(c.quantity, 0)), 0)  AS avg_unit_price,
	    COUNT(*)                                                 AS num_purchases,
	    SUM(c.quantity)                                          AS total_volume,
	    MAX(c.purchase_date)                                     AS last_purchase,
	    COALESCE(MIN(c.total_price / NULLIF(c.quantity, 0)), 0)  AS min_unit_price,
	    COALESCE(MAX(c.total_price / NULLIF(c.quantity, 0)), 0)  AS max_unit_price
	FROM purchases c
	JOIN products p       ON p.id = c.product_id
	LEFT JOIN suppliers s ON s.id = c.supplier_id
	WHERE p.name = $1
	GROUP BY s.name
	ORDER BY avg_unit_price ASC`

	rows, err := r.pool.Query(ctx, query, productName)
	if err != nil {
		return nil, fmt.Errorf("analytics.SupplierPricesForProduct: %w", err)
	}
	defer rows.Close()

	var results []repository.SupplierPriceRow
	for rows.Next() {
		var row repository.SupplierPriceRow
		if err := rows.Scan(
			&row.SupplierName,
			&row.AvgUnitPrice,
			&row.NumPurchases,
			&row.TotalVolume,
			&row.LastPurchase,
			&row.MinUnitPrice,
			&row.MaxUnitPrice,
		); err != nil {
			return nil, fmt.Errorf("analytics.SupplierPricesForProduct scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// PriceTrend devuelve las compras del producto desde la fecha dada, ascendente.
func (r *AnalyticsRepo) PriceTrend(
	ctx context.Context,
	productName string,
	since time.Time,
) ([]repository.TrendRow, error) {
	const query = `
	SELECT
	    c.purchase_date,
	    COALESCE(c.total_price / NULLIF(c.quantity, 0), 0)  AS unit_price,
	    c.quantity,
	    COALESCE(s.name, '')                                AS supplier
	FROM purchases c
	JOIN products p       ON p.id = c.product_id
	LEFT JOIN suppliers s ON s.id = c.supplier_id
	WHERE p.name = $1 AND c.purchase_date >= $2
	ORDER BY c.purchase_date ASC`

	rows, err := r.pool.Query(ctx, query, productName, since)
	if err != nil {
		return nil, fmt.Errorf("analytics.PriceTrend: %w", err)
	}
	defer rows.Close()

	var results []repository.TrendRow
	for rows.Next() {
		var row repository.TrendRow
		if err := rows.Scan(&row.Date, &row.UnitPrice, &row.Quantity, &row.SupplierName); err != nil {
			return nil, fmt.Errorf("analytics.PriceTrend scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// AverageUnitPrice devuelve el promedio histórico; found=false si no hay compras.
func (r *AnalyticsRepo) AverageUnitPrice(
	ctx context.Context,
	productName string,
) (decimal.Decimal, bool, error) {
	const query = `
	SELECT
	    COALESCE(AVG(c.total_price / NULLIF(c.quantity, 0)), 0) AS avg_unit_price,
	    COUNT(*)                                                AS num_purchases
	FROM purchases c
	JOIN products p ON p.id = c.product_id
	WHERE p.name = $1`

	var avg decimal.Decimal
	var count int
	if err := r.pool.QueryRow(ctx, query, productName).Scan(&avg, &count); err != nil {
		return decimal.Zero, false, fmt.Errorf("analytics.AverageUnitPrice: %w", err)
	}
	return avg, count > 0, nil
}

// SimilarPurchases devuelve las compras dentro de la banda de precio, recientes primero.
func (r *AnalyticsRepo) SimilarPurchases(
	ctx context.Context,
	productName string,
	minPrice, maxPrice decimal.Decimal,
	limit int,
) ([]repository.SimilarPurchaseRow, error) {
	const query = `
	SELECT
	    c.purchase_date,
	    c.quantity,
	    c.total_price,
	    COALESCE(c.total_price / NULLIF(c.quantity, 0), 0) AS unit_price,
	    COALESCE(s.name, '')                               AS supplier,
	    COALESCE(c.discount_note, '')                      AS discount_note
	FROM purchases c
	JOIN products p       ON p.id = c.product_id
	LEFT JOIN suppliers s ON s.id = c.supplier_id
	WHERE p.name = $1
	  AND c.total_price / NULLIF(c.quantity, 0) BETWEEN $2 AND $3
	ORDER BY c.purchase_date DESC
	LIMIT $4`

	rows, err := r.pool.Query(ctx, query, productName, minPrice, maxPrice, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics.SimilarPurchases: %w", err)
	}
	defer rows.Close()

	var results []repository.SimilarPurchaseRow
	for rows.Next() {
		var row repository.SimilarPurchaseRow
		if err := rows.Scan(
			&row.Date,
			&row.Quantity,
			&row.TotalPrice,
			&row.UnitPrice,
			&row.SupplierName,
			&row.DiscountNote,
		); err != nil {
			return nil, fmt.Errorf("analytics.SimilarPurchases scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// PurchaseTotals cuenta compras y gasto acumulado; since en cero cubre todo el histórico.
func (r *AnalyticsRepo) PurchaseTotals(
	ctx context.Context,
	since time.Time,
) (int, decimal.Decimal, error) {
	query := `
	SELECT COUNT(*), COALESCE(SUM(total_price), 0)
	FROM purchases`
	args := []any{}
	if !since.IsZero() {
		query += ` WHERE purchase_date >= $1`
		args = append(args, since)
	}

	var count int
	var spend decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&count, &spend); err != nil {
		return 0, decimal.Zero, fmt.Errorf("analytics.PurchaseTotals: %w", err)
	}
	return count, spend, nil
}

// TopProductsByPurchases devuelve los productos más comprados.
func (r *AnalyticsRepo) TopProductsByPurchases(
	ctx context.Context,
	limit int,
) ([]repository.TopProductRow, error) {
	const query = `
	SELECT p.name, COUNT(*) AS num_purchases, SUM(c.quantity) AS total_volume
	FROM purchases c
	JOIN products p ON p.id = c.product_id
	GROUP BY p.name
	ORDER BY num_purchases DESC
	LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics.TopProductsByPurchases: %w", err)
	}
	defer rows.Close()

	var results []repository.TopProductRow
	for rows.Next() {
		var row repository.TopProductRow
		if err := rows.Scan(&row.Name, &row.NumPurchases, &row.TotalVolume); err != nil {
			return nil, fmt.Errorf("analytics.TopProductsByPurchases scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// TopSuppliersByUsage devuelve los proveedores más utilizados.
func (r *AnalyticsRepo) TopSuppliersByUsage(
	ctx context.Context,
	limit int,
) ([]repository.TopSupplierRow, error) {
	const query = `
	SELECT COALESCE(s.name, 'Sin proveedor') AS supplier, COUNT(*) AS uses
	FROM purchases c
	LEFT JOIN suppliers s ON s.id = c.supplier_id
	GROUP BY s.name
	ORDER BY uses DESC
	LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics.TopSuppliersByUsage: %w", err)
	}
	defer rows.Close()

	var results []repository.TopSupplierRow
	for rows.Next() {
		var row repository.TopSupplierRow
		if err := rows.Scan(&row.Name, &row.Uses); err != nil {
			return nil, fmt.Errorf("analytics.TopSuppliersByUsage scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
