package entity

import "time"

// DefaultUnit unidad genérica usada cuando un producto no tiene unidades configuradas.
const DefaultUnit = "unidad"

// Product representa un producto comprable del bar.
// ValidUnits es la lista ordenada de unidades de medida aceptadas; la primera
// es la unidad principal que muestran los análisis de volúmenes.
type Product struct {
	ID         string
	Name       string // único
	ValidUnits []string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// PrimaryUnit devuelve la primera unidad válida, o DefaultUnit si no hay ninguna.
func (p Product) PrimaryUnit() string {
	if len(p.ValidUnits) == 0 {
		return DefaultUnit
	}
	return p.ValidUnits[0]
}
