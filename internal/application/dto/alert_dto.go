package dto

// AlertDTO alerta generada bajo demanda; nunca se persiste.
type AlertDTO struct {
	Kind     string         `json:"kind"`
	Category string         `json:"category"`
	Title    string         `json:"title"`
	Message  string         `json:"message"`
	Data     map[string]any `json:"datos"`
	Priority string         `json:"priority"`
}

// AlertStatsDTO contadores de alertas por tipo, categoría y prioridad.
type AlertStatsDTO struct {
	Total      int            `json:"total"`
	ByKind     map[string]int `json:"by_kind"`
	ByCategory map[string]int `json:"by_category"`
	ByPriority map[string]int `json:"by_priority"`
	Latest     []AlertDTO     `json:"alertas"`
}
