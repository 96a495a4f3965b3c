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

// SupplierUseCase gestiona el directorio de proveedores.
type SupplierUseCase struct {
	supplierRepo repository.SupplierRepository
	purchaseRepo repository.PurchaseRepository
	log          *logger.Logger
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(
	supplierRepo repository.SupplierRepository,
	purchaseRepo repository.PurchaseRepository,
	log *logger.Logger,
) *SupplierUseCase {
	return &SupplierUseCase{supplierRepo: supplierRepo, purchaseRepo: purchaseRepo, log: log}
}

// Create valida y crea un proveedor.
func (uc *SupplierUseCase) Create(ctx context.Context, req dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	if err := application.ValidateStruct(&req); err != nil {
		return nil, err
	}

	name := application.SanitizeString(req.Name, 100)
	if dup, err := uc.findDuplicate(ctx, name, ""); err != nil {
		return nil, err
	} else if dup {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	supplier := &entity.Supplier{
		ID:        uuid.NewString(),
		Name:      name,
		Contact:   application.SanitizeString(req.Contact, 100),
		Phone:     application.SanitizeString(req.Phone, 30),
		Email:     application.SanitizeString(req.Email, 100),
		Address:   application.SanitizeString(req.Address, 200),
		TaxID:     application.SanitizeString(req.TaxID, 30),
		Notes:     application.SanitizeString(req.Notes, 500),
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.supplierRepo.Create(ctx, supplier); err != nil {
		return nil, err
	}

	uc.log.Info().Str("proveedor", supplier.Name).Msg("Proveedor creado")
	return supplierResponse(supplier, 0), nil
}

// Get devuelve un proveedor por ID.
func (uc *SupplierUseCase) Get(ctx context.Context, id string) (*dto.SupplierResponse, error) {
	supplier, err := uc.supplierRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrSupplierNotFound
	}

	count, err := uc.purchaseRepo.CountBySupplier(ctx, supplier.ID)
	if err != nil {
		uc.log.Error().Err(err).Str("proveedor", supplier.Name).Msg("Error contando compras")
		count = 0
	}
	return supplierResponse(supplier, count), nil
}

// List devuelve todos los proveedores. Falla de almacén degrada a lista vacía.
func (uc *SupplierUseCase) List(ctx context.Context) []dto.SupplierResponse {
	rows, err := uc.supplierRepo.List(ctx)
	if err != nil {
		uc.log.Error().Err(err).Msg("Error listando proveedores")
		return []dto.SupplierResponse{}
	}

	results := make([]dto.SupplierResponse, 0, len(rows))
	for _, r := range rows {
		results = append(results, *supplierResponse(&r.Supplier, r.TotalPurchases))
	}
	return results
}

// Update actualiza el perfil de un proveedor campo a campo.
func (uc *SupplierUseCase) Update(ctx context.Context, id string, req dto.UpdateSupplierRequest) (*dto.SupplierResponse, error) {
	if err := application.ValidateStruct(&req); err != nil {
		return nil, err
	}

	supplier, err := uc.supplierRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrSupplierNotFound
	}

	if req.Name != nil {
		name := application.SanitizeString(*req.Name, 100)
		if dup, err := uc.findDuplicate(ctx, name, supplier.ID); err != nil {
			return nil, err
		} else if dup {
			return nil, domain.ErrDuplicate
		}
		supplier.Name = name
	}
	if req.Contact != nil {
		supplier.Contact = application.SanitizeString(*req.Contact, 100)
	}
	if req.Phone != nil {
		supplier.Phone = application.SanitizeString(*req.Phone, 30)
	}
	if req.Email != nil {
		supplier.Email = application.SanitizeString(*req.Email, 100)
	}
	if req.Address != nil {
		supplier.Address = application.SanitizeString(*req.Address, 200)
	}
	if req.TaxID != nil {
		supplier.TaxID = application.SanitizeString(*req.TaxID, 30)
	}
	if req.Notes != nil {
		supplier.Notes = application.SanitizeString(*req.Notes, 500)
	}
	if req.Active != nil {
		supplier.Active = *req.Active
	}
	supplier.UpdatedAt = time.Now()

	if err := uc.supplierRepo.Update(ctx, supplier); err != nil {
		return nil, err
	}

	count, _ := uc.purchaseRepo.CountBySupplier(ctx, supplier.ID)
	return supplierResponse(supplier, count), nil
}

// Delete elimina un proveedor sin compras asociadas.
func (uc *SupplierUseCase) Delete(ctx context.Context, id string) error {
	supplier, err := uc.supplierRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if supplier == nil {
		return domain.ErrSupplierNotFound
	}

	count, err := uc.purchaseRepo.CountBySupplier(ctx, supplier.ID)
	if err != nil {
		return fmt.Errorf("contar compras del proveedor: %w", err)
	}
	if count > 0 {
		return domain.ErrHasPurchases
	}

	if err := uc.supplierRepo.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Info().Str("proveedor", supplier.Name).Msg("Proveedor eliminado")
	return nil
}

func (uc *SupplierUseCase) findDuplicate(ctx context.Context, name, excludeID string) (bool, error) {
	rows, err := uc.supplierRepo.List(ctx)
	if err != nil {
		return false, fmt.Errorf("listar proveedores: %w", err)
	}
	normalized := textutil.NormalizeName(name)
	for _, r := range rows {
		if r.Supplier.ID == excludeID {
			continue
		}
		if textutil.NormalizeName(r.Supplier.Name) == normalized {
			return true, nil
		}
	}
	return false, nil
}

func supplierResponse(s *entity.Supplier, purchases int) *dto.SupplierResponse {
	return &dto.SupplierResponse{
		ID:             s.ID,
		Name:           s.Name,
		Contact:        s.Contact,
		Phone:          s.Phone,
		Email:          s.Email,
		Address:        s.Address,
		TaxID:          s.TaxID,
		Notes:          s.Notes,
		Active:         s.Active,
		TotalPurchases: purchases,
		CreatedAt:      s.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      s.UpdatedAt.Format(time.RFC3339),
	}
}
