package dto

import "github.com/shopspring/decimal"

// VolumeAnalysisRequest parámetros del análisis de volúmenes de compra.
// Fechas en formato YYYY-MM-DD; Product vacío analiza todos los productos.
type VolumeAnalysisRequest struct {
	StartDate string `query:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `query:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Product   string `query:"product" validate:"omitempty,max=100"`
}

// ProductVolumeDTO resumen de compras de un producto en un rango de fechas.
type ProductVolumeDTO struct {
	Product          string          `json:"product"`
	Unit             string          `json:"unit"`
	NumPurchases     int             `json:"num_purchases"`
	TotalVolume      decimal.Decimal `json:"total_volume"`
	TotalSpend       decimal.Decimal `json:"total_spend"`
	AvgUnitPrice     decimal.Decimal `json:"avg_unit_price"`
	BestPrice        decimal.Decimal `json:"best_price"`
	WorstPrice       decimal.Decimal `json:"worst_price"`
	PotentialSavings decimal.Decimal `json:"potential_savings"`
}

// SupplierComparisonDTO comparación de un proveedor para un producto.
type SupplierComparisonDTO struct {
	Supplier       string          `json:"supplier"`
	AvgUnitPrice   decimal.Decimal `json:"avg_unit_price"`
	MinUnitPrice   decimal.Decimal `json:"min_unit_price"`
	MaxUnitPrice   decimal.Decimal `json:"max_unit_price"`
	NumPurchases   int             `json:"num_purchases"`
	TotalVolume    decimal.Decimal `json:"total_volume"`
	LastPurchase   string          `json:"last_purchase"`
	IsBest         bool            `json:"is_best"`
	PriceVariation decimal.Decimal `json:"price_variation"`
}

// TrendPointDTO un punto de la serie de evolución de precio de un producto.
type TrendPointDTO struct {
	Date      string          `json:"date"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  decimal.Decimal `json:"quantity"`
	Supplier  string          `json:"supplier"`
}

// SimilarPurchaseDTO compra histórica con precio unitario cercano al de referencia.
type SimilarPurchaseDTO struct {
	Date         string          `json:"date"`
	Quantity     decimal.Decimal `json:"quantity"`
	TotalPrice   decimal.Decimal `json:"total_price"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Supplier     string          `json:"supplier"`
	DiscountNote string          `json:"discount_note"`
}

// SummaryDTO resumen general de actividad de compras. Las cifras "week"
// cubren los últimos 7 días.
type SummaryDTO struct {
	TotalPurchases int              `json:"total_purchases"`
	TotalSpend     decimal.Decimal  `json:"total_spend"`
	WeekPurchases  int              `json:"week_purchases"`
	WeekSpend      decimal.Decimal  `json:"week_spend"`
	TopProducts    []TopProductDTO  `json:"top_products"`
	TopSuppliers   []TopSupplierDTO `json:"top_suppliers"`
}

// TopProductDTO producto más comprado.
type TopProductDTO struct {
	Product      string          `json:"product"`
	NumPurchases int             `json:"num_purchases"`
	TotalVolume  decimal.Decimal `json:"total_volume"`
}

// TopSupplierDTO proveedor más usado.
type TopSupplierDTO struct {
	Supplier string `json:"supplier"`
	Uses     int    `json:"uses"`
}
