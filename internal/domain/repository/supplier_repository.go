package repository

import (
	"context"

	"github.com/tu-usuario/barstock/internal/domain/entity"
)

// SupplierListRow proveedor con el número de compras que lo referencian.
type SupplierListRow struct {
	Supplier       entity.Supplier
	TotalPurchases int
}

// SupplierRepository persistencia de proveedores.
type SupplierRepository interface {
	Create(ctx context.Context, s *entity.Supplier) error
	GetByID(ctx context.Context, id string) (*entity.Supplier, error)
	// GetByName busca por nombre exacto; nil si no existe.
	GetByName(ctx context.Context, name string) (*entity.Supplier, error)
	// List devuelve todos los proveedores ordenados por nombre, con su contador de compras.
	List(ctx context.Context) ([]SupplierListRow, error)
	Update(ctx context.Context, s *entity.Supplier) error
	Delete(ctx context.Context, id string) error
}
