package repository

import (
	"context"

	"github.com/tu-usuario/barstock/internal/domain/entity"
)

// ProductListRow producto con el número de compras que lo referencian.
type ProductListRow struct {
	Product        entity.Product
	TotalPurchases int
}

// ProductRepository persistencia de productos.
type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetByName busca por nombre exacto; nil si no existe.
	GetByName(ctx context.Context, name string) (*entity.Product, error)
	// List devuelve todos los productos ordenados por nombre, con su contador de compras.
	List(ctx context.Context) ([]ProductListRow, error)
	Update(ctx context.Context, p *entity.Product) error
	Delete(ctx context.Context, id string) error
}
