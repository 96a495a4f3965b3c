package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/barstock/internal/application/dto"
	"github.com/tu-usuario/barstock/internal/application/usecase"
)

// CatalogHandler entrega en una sola respuesta los productos y proveedores
// disponibles, pensado para poblar el formulario de registro de compras.
type CatalogHandler struct {
	productUC  *usecase.ProductUseCase
	supplierUC *usecase.SupplierUseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(productUC *usecase.ProductUseCase, supplierUC *usecase.SupplierUseCase) *CatalogHandler {
	return &CatalogHandler{productUC: productUC, supplierUC: supplierUC}
}

// catalogResponse productos y proveedores del catálogo.
type catalogResponse struct {
	Products  []dto.ProductResponse  `json:"products"`
	Suppliers []dto.SupplierResponse `json:"suppliers"`
}

// Get godoc
// @Summary      Catálogo de productos y proveedores
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  catalogResponse
// @Router       /api/catalog [get]
func (h *CatalogHandler) Get(c *fiber.Ctx) error {
	return c.JSON(catalogResponse{
		Products:  h.productUC.List(c.Context()),
		Suppliers: h.supplierUC.List(c.Context()),
	})
}
