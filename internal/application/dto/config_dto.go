package dto

// SetConfigRequest entrada para crear o actualizar una clave de configuración.
type SetConfigRequest struct {
	Key         string `json:"key" validate:"required,config_key,max=50"`
	Value       string `json:"value" validate:"required,max=200"`
	Description string `json:"description" validate:"max=200"`
}

// ConfigEntryResponse entrada de configuración.
type ConfigEntryResponse struct {
	Key         string `json:"key"`
	Value       string `json:"value"`
	Description string `json:"description"`
	UpdatedAt   string `json:"updated_at"`
}
