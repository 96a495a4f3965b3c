package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase representa una compra registrada: un producto, opcionalmente un
// proveedor, una cantidad en una unidad concreta y el precio total pagado.
// El precio unitario nunca se almacena; se deriva con UnitPrice().
type Purchase struct {
	ID           string
	ProductID    string
	SupplierID   string // vacío = sin proveedor
	Quantity     decimal.Decimal
	Unit         string
	TotalPrice   decimal.Decimal
	PurchaseDate time.Time // solo fecha, calendario local
	DiscountNote string
	CreatedAt    time.Time
}

// UnitPrice calcula precio_total / cantidad con 4 decimales.
// Cantidad no positiva (no debería pasar la validación) devuelve cero en vez
// de provocar una división inválida.
func (p Purchase) UnitPrice() decimal.Decimal {
	return SafeUnitPrice(p.TotalPrice, p.Quantity)
}

// SafeUnitPrice divide total entre cantidad protegiendo contra cantidad <= 0.
func SafeUnitPrice(total, quantity decimal.Decimal) decimal.Decimal {
	if quantity.Sign() <= 0 {
		return decimal.Zero
	}
	return total.DivRound(quantity, 4)
}
