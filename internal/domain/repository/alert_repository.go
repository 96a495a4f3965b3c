package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// StockTotalRow cantidad acumulada por producto (todas las compras).
type StockTotalRow struct {
	ProductName   string
	TotalQuantity decimal.Decimal
	NumPurchases  int
}

// ProductActivityRow última compra por producto. Incluye productos sin compras
// (LEFT JOIN): LastPurchase es nil y NumPurchases cero.
type ProductActivityRow struct {
	ProductName  string
	LastPurchase *time.Time
	NumPurchases int
}

// PriceSpreadRow dispersión de precio unitario por producto dentro de una ventana.
type PriceSpreadRow struct {
	ProductName  string
	NumPurchases int
	MinUnitPrice decimal.Decimal
	MaxUnitPrice decimal.Decimal
	AvgUnitPrice decimal.Decimal
	LastPurchase time.Time
}

// SupplierAverageRow precio promedio por (producto, proveedor) dentro de una ventana.
type SupplierAverageRow struct {
	ProductName  string
	SupplierName string
	AvgUnitPrice decimal.Decimal
	NumPurchases int
}

// AlertSourceRepository entrega los snapshots de datos sobre los que el motor
// de alertas evalúa sus reglas. Las reglas en sí son funciones puras en el use
// case; este puerto solo lee.
type AlertSourceRepository interface {
	// StockTotals agrega la cantidad total comprada por producto.
	StockTotals(ctx context.Context) ([]StockTotalRow, error)

	// ProductActivity devuelve todos los productos con su última fecha de
	// compra (nil si nunca se compró).
	ProductActivity(ctx context.Context) ([]ProductActivityRow, error)

	// PriceSpreads agrega min/max/avg de precio unitario por producto para
	// compras con fecha >= since.
	PriceSpreads(ctx context.Context, since time.Time) ([]PriceSpreadRow, error)

	// SupplierAverages agrega el precio promedio por (producto, proveedor) para
	// compras con fecha >= since, descartando grupos con menos de minPurchases.
	SupplierAverages(ctx context.Context, since time.Time, minPurchases int) ([]SupplierAverageRow, error)
}
