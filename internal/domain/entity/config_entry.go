package entity

import "time"

// Claves de configuración que consume el motor de alertas, con sus defaults
// de respaldo si la fila no existe en la tabla config.
const (
	ConfigKeyStockThreshold  = "umbral_exceso_stock"
	ConfigKeyInactivityDays  = "dias_sin_compra_alerta"
	ConfigKeyPriceVariation  = "variacion_precio_alerta"
	ConfigKeyMaxAnalysisDays = "max_dias_analisis"

	DefaultStockThreshold  = "10.0"
	DefaultInactivityDays  = "30"
	DefaultPriceVariation  = "0.15"
	DefaultMaxAnalysisDays = "730"
)

// ConfigEntry es un umbral persistido y modificable en caliente.
type ConfigEntry struct {
	Key         string
	Value       string
	Description string
	UpdatedAt   time.Time
}
