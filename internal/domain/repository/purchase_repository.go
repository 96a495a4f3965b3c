package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/barstock/internal/domain/entity"
)

// PurchaseHistoryRow una compra del historial con los nombres ya resueltos.
type PurchaseHistoryRow struct {
	ID           string
	ProductName  string
	SupplierName string // vacío si la compra no tiene proveedor
	Quantity     decimal.Decimal
	Unit         string
	TotalPrice   decimal.Decimal
	PurchaseDate time.Time
	DiscountNote string
}

// PurchaseRepository persistencia de compras.
type PurchaseRepository interface {
	// Insert persiste una compra nueva.
	Insert(ctx context.Context, p *entity.Purchase) error

	// History devuelve las limit compras más recientes (fecha desc).
	History(ctx context.Context, limit int) ([]PurchaseHistoryRow, error)

	// Delete elimina una compra; domain.ErrNotFound si no existe.
	Delete(ctx context.Context, id string) error

	// CountByProduct y CountBySupplier soportan el bloqueo referencial del
	// borrado de productos/proveedores.
	CountByProduct(ctx context.Context, productID string) (int, error)
	CountBySupplier(ctx context.Context, supplierID string) (int, error)
}
