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
)

const defaultHistoryLimit = 50

// PurchaseUseCase registra compras y sirve el historial.
type PurchaseUseCase struct {
	purchaseRepo repository.PurchaseRepository
	productRepo  repository.ProductRepository
	supplierRepo repository.SupplierRepository
	log          *logger.Logger
}

// NewPurchaseUseCase construye el caso de uso.
func NewPurchaseUseCase(
	purchaseRepo repository.PurchaseRepository,
	productRepo repository.ProductRepository,
	supplierRepo repository.SupplierRepository,
	log *logger.Logger,
) *PurchaseUseCase {
	return &PurchaseUseCase{
		purchaseRepo: purchaseRepo,
		productRepo:  productRepo,
		supplierRepo: supplierRepo,
		log:          log,
	}
}

// Register valida y persiste una compra. El producto debe existir; el proveedor
// es opcional y si el nombre no corresponde a ninguno registrado la compra se
// guarda sin proveedor.
func (uc *PurchaseUseCase) Register(ctx context.Context, req dto.RegisterPurchaseRequest) (*dto.PurchaseResponse, error) {
	if err := application.ValidateStruct(&req); err != nil {
		return nil, err
	}

	product, err := uc.productRepo.GetByName(ctx, application.SanitizeString(req.Product, 50))
	if err != nil {
		return nil, fmt.Errorf("buscar producto: %w", err)
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}

	unit := application.SanitizeString(req.Unit, 20)
	if unit == "" {
		unit = product.PrimaryUnit()
	}

	supplierID := ""
	supplierName := entity.NoSupplierLabel
	if req.Supplier != "" {
		supplier, err := uc.supplierRepo.GetByName(ctx, application.SanitizeString(req.Supplier, 100))
		if err != nil {
			return nil, fmt.Errorf("buscar proveedor: %w", err)
		}
		if supplier != nil {
			supplierID = supplier.ID
			supplierName = supplier.Name
		}
	}

	purchaseDate := time.Now()
	if req.PurchaseDate != "" {
		purchaseDate, err = time.Parse("2006-01-02", req.PurchaseDate)
		if err != nil {
			return nil, fmt.Errorf("%w: fecha de compra inválida", domain.ErrInvalidInput)
		}
	}

	purchase := &entity.Purchase{
		ID:           uuid.NewString(),
		ProductID:    product.ID,
		SupplierID:   supplierID,
		Quantity:     req.Quantity,
		Unit:         unit,
		TotalPrice:   req.TotalPrice,
		PurchaseDate: purchaseDate,
		DiscountNote: application.SanitizeString(req.DiscountNote, 100),
		CreatedAt:    time.Now(),
	}

	if err := uc.purchaseRepo.Insert(ctx, purchase); err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("producto", product.Name).
		Str("cantidad", purchase.Quantity.String()).
		Msg("Compra registrada")

	return &dto.PurchaseResponse{
		ID:           purchase.ID,
		Product:      product.Name,
		Quantity:     purchase.Quantity,
		Unit:         purchase.Unit,
		TotalPrice:   purchase.TotalPrice,
		UnitPrice:    purchase.UnitPrice(),
		Supplier:     supplierName,
		PurchaseDate: purchase.PurchaseDate.Format("2006-01-02"),
		DiscountNote: purchase.DiscountNote,
		CreatedAt:    purchase.CreatedAt.Format(time.RFC3339),
	}, nil
}

// History devuelve las compras más recientes. Falla de almacén degrada a lista
// vacía.
func (uc *PurchaseUseCase) History(ctx context.Context, limit int) []dto.PurchaseResponse {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	rows, err := uc.purchaseRepo.History(ctx, limit)
	if err != nil {
		uc.log.Error().Err(err).Msg("Error obteniendo historial de compras")
		return []dto.PurchaseResponse{}
	}

	results := make([]dto.PurchaseResponse, 0, len(rows))
	for _, r := range rows {
		supplier := r.SupplierName
		if supplier == "" {
			supplier = entity.NoSupplierLabel
		}
		results = append(results, dto.PurchaseResponse{
			ID:           r.ID,
			Product:      r.ProductName,
			Quantity:     r.Quantity,
			Unit:         r.Unit,
			TotalPrice:   r.TotalPrice,
			UnitPrice:    entity.SafeUnitPrice(r.TotalPrice, r.Quantity),
			Supplier:     supplier,
			PurchaseDate: r.PurchaseDate.Format("2006-01-02"),
			DiscountNote: r.DiscountNote,
		})
	}
	return results
}

// Delete elimina una compra por ID.
func (uc *PurchaseUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: id de compra inválido", domain.ErrInvalidInput)
	}
	if err := uc.purchaseRepo.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Info().Str("id", id).Msg("Compra eliminada")
	return nil
}
