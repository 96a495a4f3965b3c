package dto

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name       string   `json:"name" validate:"required,product_name"`
	ValidUnits []string `json:"valid_units" validate:"omitempty,max=10,dive,required,max=20"`
}

// UpdateProductRequest entrada para actualizar un producto.
type UpdateProductRequest struct {
	Name       *string  `json:"name" validate:"omitempty,product_name"`
	ValidUnits []string `json:"valid_units" validate:"omitempty,max=10,dive,required,max=20"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	ValidUnits     []string `json:"valid_units"`
	TotalPurchases int      `json:"total_purchases"`
	CreatedAt      string   `json:"created_at"`
	UpdatedAt      string   `json:"updated_at"`
}
