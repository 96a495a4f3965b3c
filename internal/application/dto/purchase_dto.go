package dto

import "github.com/shopspring/decimal"

// RegisterPurchaseRequest entrada para registrar una compra.
// El precio unitario nunca se recibe: se deriva de total_price / quantity.
type RegisterPurchaseRequest struct {
	Product      string          `json:"product" validate:"required,product_name"`
	Quantity     decimal.Decimal `json:"quantity" validate:"required,gt=0,lte=10000"`
	Unit         string          `json:"unit" validate:"omitempty,max=20"`
	TotalPrice   decimal.Decimal `json:"total_price" validate:"gte=0,lte=10000"`
	Supplier     string          `json:"supplier" validate:"omitempty,supplier_name"`
	PurchaseDate string          `json:"purchase_date" validate:"omitempty,purchase_date"`
	DiscountNote string          `json:"discount_note" validate:"max=100"`
}

// PurchaseResponse compra registrada con su precio unitario derivado.
type PurchaseResponse struct {
	ID           string          `json:"id"`
	Product      string          `json:"product"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit"`
	TotalPrice   decimal.Decimal `json:"total_price"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Supplier     string          `json:"supplier"`
	PurchaseDate string          `json:"purchase_date"`
	DiscountNote string          `json:"discount_note"`
	CreatedAt    string          `json:"created_at"`
}
