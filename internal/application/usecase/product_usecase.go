package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/barstock/internal/application"
	"github.com/tu-usuario/barstock/internal/application/dto"
	"github.com/tu-usuario/barstock/internal/domain"
	"github.com/tu-usuario/barstock/internal/domain/entity"
	"github.com/tu-usuario/barstock/internal/domain/repository"
	"github.com/tu-usuario/barstock/pkg/logger"
	"github.com/tu-usuario/barstock/pkg/textutil"
)

// ProductUseCase gestiona el catálogo de productos.
type ProductUseCase struct {
	productRepo  repository.ProductRepository
	purchaseRepo repository.PurchaseRepository
	log          *logger.Logger
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	productRepo repository.ProductRepository,
	purchaseRepo repository.PurchaseRepository,
	log *logger.Logger,
) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo, purchaseRepo: purchaseRepo, log: log}
}

// Create valida y crea un producto. El nombre se compara sin acentos ni
// mayúsculas contra los existentes para evitar duplicados como "Pollo"/"pollo".
func (uc *ProductUseCase) Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := application.ValidateStruct(&req); err != nil {
		return nil, err
	}

	name := application.SanitizeString(req.Name, 50)
	if dup, err := uc.findDuplicate(ctx, name, ""); err != nil {
		return nil, err
	} else if dup {
		return nil, domain.ErrDuplicate
	}

	units := req.ValidUnits
	if len(units) == 0 {
		units = []string{entity.DefaultUnit}
	}

	now := time.Now()
	product := &entity.Product{
		ID:         uuid.NewString(),
		Name:       name,
		ValidUnits: units,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	uc.log.Info().Str("producto", product.Name).Msg("Producto creado")
	return productResponse(product, 0), nil
}

// Get devuelve un producto por ID.
func (uc *ProductUseCase) Get(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}

	count, err := uc.purchaseRepo.CountByProduct(ctx, product.ID)
	if err != nil {
		uc.log.Error().Err(err).Str("producto", product.Name).Msg("Error contando compras")
		count = 0
	}
	return productResponse(product, count), nil
}

// List devuelve el catálogo completo. Falla de almacén degrada a lista vacía.
func (uc *ProductUseCase) List(ctx context.Context) []dto.ProductResponse {
	rows, err := uc.productRepo.List(ctx)
	if err != nil {
		uc.log.Error().Err(err).Msg("Error listando productos")
		return []dto.ProductResponse{}
	}

	results := make([]dto.ProductResponse, 0, len(rows))
	for _, r := range rows {
		results = append(results, *productResponse(&r.Product, r.TotalPurchases))
	}
	return results
}

// Update actualiza nombre y/o unidades de un producto.
func (uc *ProductUseCase) Update(ctx context.Context, id string, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if err := application.ValidateStruct(&req); err != nil {
		return nil, err
	}

	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}

	if req.Name != nil {
		name := application.SanitizeString(*req.Name, 50)
		if dup, err := uc.findDuplicate(ctx, name, product.ID); err != nil {
			return nil, err
		} else if dup {
			return nil, domain.ErrDuplicate
		}
		product.Name = name
	}
	if len(req.ValidUnits) > 0 {
		product.ValidUnits = req.ValidUnits
	}
	product.UpdatedAt = time.Now()

	if err := uc.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	count, _ := uc.purchaseRepo.CountByProduct(ctx, product.ID)
	return productResponse(product, count), nil
}

// Delete elimina un producto sin compras asociadas.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrProductNotFound
	}

	count, err := uc.purchaseRepo.CountByProduct(ctx, product.ID)
	if err != nil {
		return fmt.Errorf("contar compras del producto: %w", err)
	}
	if count > 0 {
		return domain.ErrHasPurchases
	}

	if err := uc.productRepo.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Info().Str("producto", product.Name).Msg("Producto eliminado")
	return nil
}

// findDuplicate busca otro producto con el mismo nombre normalizado.
func (uc *ProductUseCase) findDuplicate(ctx context.Context, name, excludeID string) (bool, error) {
	rows, err := uc.productRepo.List(ctx)
	if err != nil {
		return false, fmt.Errorf("listar productos: %w", err)
	}
	normalized := textutil.NormalizeName(name)
	for _, r := range rows {
		if r.Product.ID == excludeID {
			continue
		}
		if textutil.NormalizeName(r.Product.Name) == normalized {
			return true, nil
		}
	}
	return false, nil
}

func productResponse(p *entity.Product, purchases int) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:             p.ID,
		Name:           p.Name,
		ValidUnits:     p.ValidUnits,
		TotalPurchases: purchases,
		CreatedAt:      p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      p.UpdatedAt.Format(time.RFC3339),
	}
}
