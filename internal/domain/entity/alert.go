package entity

// Tipos de alerta.
const (
	AlertKindWarning = "warning"
	AlertKindInfo    = "info"
)

// Categorías de alerta.
const (
	AlertCategoryStock      = "stock"
	AlertCategoryInactivity = "inactividad"
	AlertCategoryPrice      = "precio"
	AlertCategorySupplier   = "proveedor"
)

// Prioridades de alerta.
const (
	AlertPriorityHigh   = "alta"
	AlertPriorityMedium = "media"
	AlertPriorityLow    = "baja"
)

// Alert es un hallazgo efímero del motor de alertas. No se persiste: se genera
// fresco en cada invocación y no tiene identidad ni ciclo de vida propio.
type Alert struct {
	Kind     string // warning | info
	Category string // stock | inactividad | precio | proveedor
	Title    string
	Message  string
	Data     map[string]any // payload estructurado para la UI
	Priority string         // alta | media | baja
}
