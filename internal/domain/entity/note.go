package entity

import "time"

// Note es una nota libre del usuario, opcionalmente vinculada a un producto,
// proveedor o compra.
type Note struct {
	ID              string
	Title           string
	Content         string
	Category        string
	Priority        string // alta | media | baja
	Status          string // activa | archivada
	Tags            []string
	RelatedProduct  string
	RelatedSupplier string
	RelatedPurchase string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
