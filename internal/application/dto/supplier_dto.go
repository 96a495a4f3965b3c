package dto

// CreateSupplierRequest entrada para crear un proveedor.
type CreateSupplierRequest struct {
	Name    string `json:"name" validate:"required,supplier_name"`
	Contact string `json:"contact" validate:"max=100"`
	Phone   string `json:"phone" validate:"max=30"`
	Email   string `json:"email" validate:"omitempty,email,max=100"`
	Address string `json:"address" validate:"max=200"`
	TaxID   string `json:"tax_id" validate:"max=30"`
	Notes   string `json:"notes" validate:"max=500"`
}

// UpdateSupplierRequest entrada para actualizar un proveedor.
type UpdateSupplierRequest struct {
	Name    *string `json:"name" validate:"omitempty,supplier_name"`
	Contact *string `json:"contact" validate:"omitempty,max=100"`
	Phone   *string `json:"phone" validate:"omitempty,max=30"`
	Email   *string `json:"email" validate:"omitempty,email,max=100"`
	Address *string `json:"address" validate:"omitempty,max=200"`
	TaxID   *string `json:"tax_id" validate:"omitempty,max=30"`
	Notes   *string `json:"notes" validate:"omitempty,max=500"`
	Active  *bool   `json:"active"`
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Contact        string `json:"contact"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
	Address        string `json:"address"`
	TaxID          string `json:"tax_id"`
	Notes          string `json:"notes"`
	Active         bool   `json:"active"`
	TotalPurchases int    `json:"total_purchases"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}
