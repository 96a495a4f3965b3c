package usecase

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/barstock/internal/application/dto"
	"github.com/tu-usuario/barstock/internal/domain/entity"
	"github.com/tu-usuario/barstock/internal/domain/repository"
	"github.com/tu-usuario/barstock/pkg/logger"
)

const (
	priceVarianceWindowDays   = 90
	priceVarianceMinPurchases = 3
	supplierWindowDays        = 60
	supplierMinPurchases      = 2
	supplierMaxAlerts         = 5
	savingsReferenceUnits     = 5 // estimación simplificada, no proyección real de inventario
	statsLatestAlerts         = 5
)

// factor sobre el mejor precio a partir del cual un proveedor se considera caro
var overpriceFactor = decimal.RequireFromString("1.20")

// Thresholds umbrales del motor de alertas. Se cargan UNA vez por ejecución de
// GenerateAlerts; un cambio de configuración a mitad de evaluación no afecta a
// la pasada en curso.
type Thresholds struct {
	StockExcess    decimal.Decimal // umbral_exceso_stock
	InactivityDays int             // dias_sin_compra_alerta
	PriceVariation decimal.Decimal // variacion_precio_alerta (fracción, ej. 0.15)
}

// AlertUseCase evalúa las reglas de alertas sobre snapshots de datos. Cada
// regla es una función pura: recibe las filas y los umbrales ya cargados y
// devuelve alertas, sin tocar el almacén. Las alertas nunca se persisten.
type AlertUseCase struct {
	sourceRepo repository.AlertSourceRepository
	configRepo repository.ConfigRepository
	log        *logger.Logger
}

// NewAlertUseCase construye el caso de uso.
func NewAlertUseCase(
	sourceRepo repository.AlertSourceRepository,
	configRepo repository.ConfigRepository,
	log *logger.Logger,
) *AlertUseCase {
	return &AlertUseCase{sourceRepo: sourceRepo, configRepo: configRepo, log: log}
}

// GenerateAlerts evalúa las cuatro reglas y devuelve las alertas activas.
// Cualquier fallo del almacén degrada a lista vacía.
func (uc *AlertUseCase) GenerateAlerts(ctx context.Context) []dto.AlertDTO {
	uc.log.Info().Msg("Generando alertas dinámicas")
	th := uc.loadThresholds(ctx)
	now := time.Now()

	stocks, err := uc.sourceRepo.StockTotals(ctx)
	if err != nil {
		uc.log.Error().Err(err).Msg("Error generando alertas")
		return []dto.AlertDTO{}
	}
	activity, err := uc.sourceRepo.ProductActivity(ctx)
	if err != nil {
		uc.log.Error().Err(err).Msg("Error generando alertas")
		return []dto.AlertDTO{}
	}
	spreads, err := uc.sourceRepo.PriceSpreads(ctx, now.AddDate(0, 0, -priceVarianceWindowDays))
	if err != nil {
		uc.log.Error().Err(err).Msg("Error generando alertas")
		return []dto.AlertDTO{}
	}
	averages, err := uc.sourceRepo.SupplierAverages(ctx, now.AddDate(0, 0, -supplierWindowDays), supplierMinPurchases)
	if err != nil {
		uc.log.Error().Err(err).Msg("Error generando alertas")
		return []dto.AlertDTO{}
	}

	findings := make([]entity.Alert, 0)
	findings = append(findings, stockAlerts(stocks, th)...)
	findings = append(findings, inactivityAlerts(activity, th, now)...)
	findings = append(findings, priceVarianceAlerts(spreads, th)...)
	findings = append(findings, supplierPricingAlerts(averages)...)

	alerts := make([]dto.AlertDTO, 0, len(findings))
	for _, a := range findings {
		alerts = append(alerts, dto.AlertDTO{
			Kind:     a.Kind,
			Category: a.Category,
			Title:    a.Title,
			Message:  a.Message,
			Data:     a.Data,
			Priority: a.Priority,
		})
	}

	uc.log.Info().Int("alertas", len(alerts)).Msg("Generación de alertas completada")
	return alerts
}

// AlertStats genera las alertas y las cuenta por tipo, categoría y prioridad.
func (uc *AlertUseCase) AlertStats(ctx context.Context) dto.AlertStatsDTO {
	alerts := uc.GenerateAlerts(ctx)

	stats := dto.AlertStatsDTO{
		Total:      len(alerts),
		ByKind:     map[string]int{},
		ByCategory: map[string]int{},
		ByPriority: map[string]int{
			entity.AlertPriorityHigh:   0,
			entity.AlertPriorityMedium: 0,
			entity.AlertPriorityLow:    0,
		},
	}
	for _, a := range alerts {
		stats.ByKind[a.Kind]++
		stats.ByCategory[a.Category]++
		stats.ByPriority[a.Priority]++
	}

	latest := alerts
	if len(latest) > statsLatestAlerts {
		latest = latest[:statsLatestAlerts]
	}
	stats.Latest = latest
	return stats
}

// loadThresholds lee los umbrales de configuración, con valores por defecto si
// la clave no existe o no parsea.
func (uc *AlertUseCase) loadThresholds(ctx context.Context) Thresholds {
	return Thresholds{
		StockExcess:    uc.decimalConfig(ctx, entity.ConfigKeyStockThreshold, entity.DefaultStockThreshold),
		InactivityDays: uc.intConfig(ctx, entity.ConfigKeyInactivityDays, entity.DefaultInactivityDays),
		PriceVariation: uc.decimalConfig(ctx, entity.ConfigKeyPriceVariation, entity.DefaultPriceVariation),
	}
}

func (uc *AlertUseCase) decimalConfig(ctx context.Context, key, fallback string) decimal.Decimal {
	raw := fallback
	if entry, err := uc.configRepo.Get(ctx, key); err == nil && entry != nil {
		raw = entry.Value
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.RequireFromString(fallback)
	}
	return v
}

func (uc *AlertUseCase) intConfig(ctx context.Context, key, fallback string) int {
	raw := fallback
	if entry, err := uc.configRepo.Get(ctx, key); err == nil && entry != nil {
		raw = entry.Value
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		v, _ = strconv.Atoi(fallback)
	}
	return v
}

// ── Reglas ───────────────────────────────────────────────────────────────────

// stockAlerts productos cuya cantidad acumulada supera el umbral, ordenados
// por cantidad descendente (el snapshot ya viene ordenado así).
func stockAlerts(rows []repository.StockTotalRow, th Thresholds) []entity.Alert {
	var alerts []entity.Alert
	for _, r := range rows {
		if !r.TotalQuantity.GreaterThan(th.StockExcess) {
			continue
		}
		alerts = append(alerts, entity.Alert{
			Kind:     entity.AlertKindWarning,
			Category: entity.AlertCategoryStock,
			Title:    "Exceso de Stock Detectado",
			Message:  fmt.Sprintf("%s: %s unidades (umbral: %s)", r.ProductName, r.TotalQuantity.StringFixed(1), th.StockExcess),
			Data: map[string]any{
				"producto":      r.ProductName,
				"stock_actual":  r.TotalQuantity,
				"umbral":        th.StockExcess,
				"total_compras": r.NumPurchases,
			},
			Priority: entity.AlertPriorityMedium,
		})
	}
	return alerts
}

// inactivityAlerts productos sin compras dentro de la ventana de inactividad,
// incluyendo los que nunca se han comprado.
func inactivityAlerts(rows []repository.ProductActivityRow, th Thresholds, now time.Time) []entity.Alert {
	cutoff := now.AddDate(0, 0, -th.InactivityDays)

	var alerts []entity.Alert
	for _, r := range rows {
		if r.LastPurchase != nil && !r.LastPurchase.Before(cutoff) {
			continue
		}

		last := "nunca"
		status := "Sin compras registradas"
		if r.NumPurchases > 0 && r.LastPurchase != nil {
			last = r.LastPurchase.Format("2006-01-02")
			status = "Última compra: " + last
		}

		alerts = append(alerts, entity.Alert{
			Kind:     entity.AlertKindInfo,
			Category: entity.AlertCategoryInactivity,
			Title:    "Sin Movimiento Reciente",
			Message:  fmt.Sprintf("%s: %s", r.ProductName, status),
			Data: map[string]any{
				"producto":        r.ProductName,
				"ultima_compra":   last,
				"dias_sin_compra": th.InactivityDays,
				"total_compras":   r.NumPurchases,
			},
			Priority: entity.AlertPriorityLow,
		})
	}
	return alerts
}

// priceVarianceAlerts productos con dispersión de precio (max-min)/avg por
// encima de la fracción configurada, con al menos 3 compras en la ventana.
func priceVarianceAlerts(rows []repository.PriceSpreadRow, th Thresholds) []entity.Alert {
	var alerts []entity.Alert
	for _, r := range rows {
		if r.NumPurchases < priceVarianceMinPurchases || !r.AvgUnitPrice.IsPositive() {
			continue
		}
		spread := r.MaxUnitPrice.Sub(r.MinUnitPrice)
		variation := spread.Div(r.AvgUnitPrice)
		if !variation.GreaterThan(th.PriceVariation) {
			continue
		}

		variationPct := variation.Mul(decimal.NewFromInt(100))
		savings := spread.Mul(decimal.NewFromInt(savingsReferenceUnits))

		alerts = append(alerts, entity.Alert{
			Kind:     entity.AlertKindWarning,
			Category: entity.AlertCategoryPrice,
			Title:    "Alta Variación de Precios",
			Message:  fmt.Sprintf("%s: variación del %s%% entre proveedores", r.ProductName, variationPct.StringFixed(1)),
			Data: map[string]any{
				"producto":         r.ProductName,
				"precio_min":       r.MinUnitPrice.Round(3),
				"precio_max":       r.MaxUnitPrice.Round(3),
				"variacion_pct":    variationPct.Round(1),
				"ahorro_potencial": savings.Round(2),
			},
			Priority: entity.AlertPriorityHigh,
		})
	}
	return alerts
}

// supplierPricingAlerts proveedores cuyo promedio supera en más de un 20% al
// mejor promedio del producto. Máximo 5 alertas, las de mayor exceso primero.
func supplierPricingAlerts(rows []repository.SupplierAverageRow) []entity.Alert {
	// Mejor promedio por producto
	best := make(map[string]decimal.Decimal)
	for _, r := range rows {
		b, ok := best[r.ProductName]
		if !ok || r.AvgUnitPrice.LessThan(b) {
			best[r.ProductName] = r.AvgUnitPrice
		}
	}

	type offender struct {
		row       repository.SupplierAverageRow
		bestPrice decimal.Decimal
		excess    decimal.Decimal // fracción sobre el mejor precio
	}
	var offenders []offender
	for _, r := range rows {
		b := best[r.ProductName]
		if !b.IsPositive() || !r.AvgUnitPrice.GreaterThan(b.Mul(overpriceFactor)) {
			continue
		}
		offenders = append(offenders, offender{
			row:       r,
			bestPrice: b,
			excess:    r.AvgUnitPrice.Sub(b).Div(b),
		})
	}

	sort.Slice(offenders, func(i, j int) bool {
		return offenders[i].excess.GreaterThan(offenders[j].excess)
	})
	if len(offenders) > supplierMaxAlerts {
		offenders = offenders[:supplierMaxAlerts]
	}

	var alerts []entity.Alert
	for _, o := range offenders {
		excessPct := o.excess.Mul(decimal.NewFromInt(100))
		alerts = append(alerts, entity.Alert{
			Kind:     entity.AlertKindInfo,
			Category: entity.AlertCategorySupplier,
			Title:    "Proveedor con Precios Elevados",
			Message: fmt.Sprintf("%s: %s%% más caro que el mejor precio para %s",
				o.row.SupplierName, excessPct.StringFixed(1), o.row.ProductName),
			Data: map[string]any{
				"producto":      o.row.ProductName,
				"proveedor":     o.row.SupplierName,
				"precio_actual": o.row.AvgUnitPrice.Round(3),
				"mejor_precio":  o.bestPrice.Round(3),
				"exceso_pct":    excessPct.Round(1),
			},
			Priority: entity.AlertPriorityMedium,
		})
	}
	return alerts
}
