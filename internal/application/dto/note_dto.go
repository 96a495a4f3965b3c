package dto

// CreateNoteRequest entrada para crear una nota.
type CreateNoteRequest struct {
	Title           string   `json:"title" validate:"required,min=1,max=100"`
	Content         string   `json:"content" validate:"required,max=2000"`
	Category        string   `json:"category" validate:"required,max=50"`
	Priority        string   `json:"priority" validate:"omitempty,oneof=alta media baja"`
	Tags            []string `json:"tags" validate:"omitempty,max=10,dive,required,max=30"`
	RelatedProduct  string   `json:"related_product" validate:"omitempty,max=100"`
	RelatedSupplier string   `json:"related_supplier" validate:"omitempty,max=100"`
	RelatedPurchase string   `json:"related_purchase" validate:"omitempty,uuid4"`
}

// UpdateNoteRequest entrada para actualizar una nota.
type UpdateNoteRequest struct {
	Title    *string  `json:"title" validate:"omitempty,min=1,max=100"`
	Content  *string  `json:"content" validate:"omitempty,max=2000"`
	Category *string  `json:"category" validate:"omitempty,max=50"`
	Priority *string  `json:"priority" validate:"omitempty,oneof=alta media baja"`
	Status   *string  `json:"status" validate:"omitempty,oneof=activa archivada"`
	Tags     []string `json:"tags" validate:"omitempty,max=10,dive,required,max=30"`
}

// NoteResponse salida de una nota.
type NoteResponse struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Content         string   `json:"content"`
	Category        string   `json:"category"`
	Priority        string   `json:"priority"`
	Status          string   `json:"status"`
	Tags            []string `json:"tags"`
	RelatedProduct  string   `json:"related_product"`
	RelatedSupplier string   `json:"related_supplier"`
	RelatedPurchase string   `json:"related_purchase"`
	CreatedAt       string   `json:"created_at"`
	UpdatedAt       string   `json:"updated_at"`
}
