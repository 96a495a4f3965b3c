package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrProductNotFound  = errors.New("producto no encontrado")
	ErrSupplierNotFound = errors.New("proveedor no encontrado")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrDuplicate        = errors.New("recurso duplicado")
	ErrConflict         = errors.New("conflicto con el estado actual")
	// ErrHasPurchases bloquea el borrado de productos/proveedores referenciados por compras.
	ErrHasPurchases = errors.New("tiene compras asociadas")
)
