package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/barstock/internal/domain/entity"
)

func TestUnitPrice_SeDerivaDelTotalYLaCantidad(t *testing.T) {
	p := entity.Purchase{
		Quantity:   decimal.RequireFromString("3"),
		TotalPrice: decimal.RequireFromString("10"),
	}
	assert.Equal(t, "3.3333", p.UnitPrice().StringFixed(4))
}

func TestSafeUnitPrice_CantidadNoPositivaDevuelveCero(t *testing.T) {
	assert.True(t, entity.SafeUnitPrice(decimal.RequireFromString("10"), decimal.Zero).IsZero())
	assert.True(t, entity.SafeUnitPrice(decimal.RequireFromString("10"), decimal.RequireFromString("-2")).IsZero())
}

func TestPrimaryUnit_SinUnidadesUsaLaGenerica(t *testing.T) {
	assert.Equal(t, "kg", entity.Product{ValidUnits: []string{"kg", "unidad"}}.PrimaryUnit())
	assert.Equal(t, entity.DefaultUnit, entity.Product{}.PrimaryUnit())
}
