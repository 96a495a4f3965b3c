package entity

import "time"

// NoSupplierLabel etiqueta usada en análisis cuando una compra no tiene proveedor.
const NoSupplierLabel = "Sin proveedor"

// Supplier representa un proveedor del bar con sus datos de contacto.
type Supplier struct {
	ID        string
	Name      string // único
	Contact   string
	Phone     string
	Email     string
	Address   string
	TaxID     string // CIF/NIF
	Notes     string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
