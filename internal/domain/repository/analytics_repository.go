package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ProductVolumeRow resultado crudo del análisis de volúmenes por producto.
// Lo produce la DB; el use case lo convierte en DTO con redondeos.
type ProductVolumeRow struct {
	ProductName  string
	ValidUnits   []string // unidades configuradas del producto; la primera es la principal
	NumPurchases int
	TotalVolume  decimal.Decimal
	AvgUnitPrice decimal.Decimal // promedio de precio_total/cantidad por fila (no ponderado)
	MinUnitPrice decimal.Decimal
	MaxUnitPrice decimal.Decimal
	TotalSpend   decimal.Decimal
}

// SupplierPriceRow resultado crudo de la comparación de proveedores para un producto.
type SupplierPriceRow struct {
	SupplierName string // "Sin proveedor" cuando la compra no tiene proveedor
	AvgUnitPrice decimal.Decimal
	NumPurchases int
	TotalVolume  decimal.Decimal
	LastPurchase time.Time
	MinUnitPrice decimal.Decimal
	MaxUnitPrice decimal.Decimal
}

// TrendRow un punto de la serie de precios de un producto.
type TrendRow struct {
	Date         time.Time
	UnitPrice    decimal.Decimal
	Quantity     decimal.Decimal
	SupplierName string // vacío cuando la compra no tiene proveedor
}

// SimilarPurchaseRow una compra dentro de la banda de precio de referencia.
type SimilarPurchaseRow struct {
	Date         time.Time
	Quantity     decimal.Decimal
	TotalPrice   decimal.Decimal
	UnitPrice    decimal.Decimal
	SupplierName string
	DiscountNote string
}

// TopProductRow producto del resumen general, ordenado por número de compras.
type TopProductRow struct {
	Name         string
	NumPurchases int
	TotalVolume  decimal.Decimal
}

// TopSupplierRow proveedor del resumen general, ordenado por usos.
type TopSupplierRow struct {
	Name string
	Uses int
}

// AnalyticsRepository define las consultas de lectura de los motores de análisis.
// Las implementaciones son read-only (no modifican datos).
type AnalyticsRepository interface {
	// VolumesByProduct agrega las compras del rango [start, end] por producto,
	// opcionalmente filtrado por nombre exacto, ordenado por gasto descendente.
	VolumesByProduct(ctx context.Context, start, end time.Time, productName string) ([]ProductVolumeRow, error)

	// SupplierPricesForProduct agrupa el histórico completo del producto por
	// proveedor, ordenado por precio promedio ascendente (el más barato primero).
	SupplierPricesForProduct(ctx context.Context, productName string) ([]SupplierPriceRow, error)

	// PriceTrend devuelve las compras del producto con fecha >= since,
	// ordenadas por fecha ascendente.
	PriceTrend(ctx context.Context, productName string, since time.Time) ([]TrendRow, error)

	// AverageUnitPrice devuelve el precio unitario promedio histórico del
	// producto; found=false si el producto no tiene compras.
	AverageUnitPrice(ctx context.Context, productName string) (avg decimal.Decimal, found bool, err error)

	// SimilarPurchases devuelve hasta limit compras del producto cuyo precio
	// unitario cae en [minPrice, maxPrice], las más recientes primero.
	SimilarPurchases(ctx context.Context, productName string, minPrice, maxPrice decimal.Decimal, limit int) ([]SimilarPurchaseRow, error)

	// ── Resumen general ──────────────────────────────────────────────────────

	// PurchaseTotals devuelve número de compras y gasto acumulado; since en
	// cero significa todo el histórico.
	PurchaseTotals(ctx context.Context, since time.Time) (count int, spend decimal.Decimal, err error)

	// TopProductsByPurchases devuelve los limit productos con más compras.
	TopProductsByPurchases(ctx context.Context, limit int) ([]TopProductRow, error)

	// TopSuppliersByUsage devuelve los limit proveedores más utilizados.
	TopSuppliersByUsage(ctx context.Context, limit int) ([]TopSupplierRow, error)
}
