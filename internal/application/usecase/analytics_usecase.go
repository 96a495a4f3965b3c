package usecase

import (
	"context"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/barstock/internal/application"
	"github.com/tu-usuario/barstock/internal/application/dto"
	"github.com/tu-usuario/barstock/internal/domain/entity"
	"github.com/tu-usuario/barstock/internal/domain/repository"
	"github.com/tu-usuario/barstock/pkg/logger"
)

const (
	defaultTrendDays    = 30
	defaultPriceMargin  = "0.1" // banda de ±10% para compras similares
	similarLimit        = 10
	summaryTopN         = 5
	bestPriceTolerance  = "0.001"
)

// AnalyticsUseCase orquesta los motores de análisis de compras:
//   - Volúmenes y gasto por producto en un período.
//   - Comparación de proveedores por precio unitario promedio.
//   - Tendencia de precios de un producto.
//   - Búsqueda de compras con precio similar al histórico.
//   - Resumen general de actividad.
//
// Las operaciones de lectura degradan a lista vacía si el almacén falla:
// se registra el error y el llamador recibe un resultado vacío, nunca un 500.
type AnalyticsUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	configRepo    repository.ConfigRepository
	log           *logger.Logger
}

// NewAnalyticsUseCase construye el caso de uso.
func NewAnalyticsUseCase(
	analyticsRepo repository.AnalyticsRepository,
	configRepo repository.ConfigRepository,
	log *logger.Logger,
) *AnalyticsUseCase {
	return &AnalyticsUseCase{analyticsRepo: analyticsRepo, configRepo: configRepo, log: log}
}

// AnalyzeVolumes agrega las compras del rango por producto. El precio unitario
// de cada compra se deriva como precio_total/cantidad; el promedio es por fila,
// no ponderado por volumen.
func (uc *AnalyticsUseCase) AnalyzeVolumes(ctx context.Context, req dto.VolumeAnalysisRequest) ([]dto.ProductVolumeDTO, error) {
	start, end, err := uc.resolveRange(ctx, req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	rows, err := uc.analyticsRepo.VolumesByProduct(ctx, start, end, req.Product)
	if err != nil {
		uc.log.Error().Err(err).Msg("Error en análisis de volúmenes")
		return []dto.ProductVolumeDTO{}, nil
	}

	results := make([]dto.ProductVolumeDTO, 0, len(rows))
	for _, r := range rows {
		unit := entity.DefaultUnit
		if len(r.ValidUnits) > 0 {
			unit = r.ValidUnits[0]
		}
		savings := r.MaxUnitPrice.Sub(r.MinUnitPrice).Mul(r.TotalVolume)
		results = append(results, dto.ProductVolumeDTO{
			Product:          r.ProductName,
			Unit:             unit,
			NumPurchases:     r.NumPurchases,
			TotalVolume:      r.TotalVolume.Round(2),
			TotalSpend:       r.TotalSpend.Round(2),
			AvgUnitPrice:     r.AvgUnitPrice.Round(4),
			BestPrice:        r.MinUnitPrice.Round(4),
			WorstPrice:       r.MaxUnitPrice.Round(4),
			PotentialSavings: savings.Round(2),
		})
	}

	uc.log.Info().Int("productos", len(results)).Msg("Análisis de volúmenes completado")
	return results, nil
}

// CompareSuppliers compara el precio unitario promedio por proveedor para un
// producto, el más barato primero. Los proveedores cuyo promedio queda a menos
// de 0.001 del mínimo se marcan como mejores (tolerancia de coma flotante, no
// igualdad exacta, así que puede haber empates).
//
// recentN está reservado: hoy la comparación usa el histórico completo.
func (uc *AnalyticsUseCase) CompareSuppliers(ctx context.Context, product string, recentN int) []dto.SupplierComparisonDTO {
	_ = recentN

	rows, err := uc.analyticsRepo.SupplierPricesForProduct(ctx, product)
	if err != nil {
		uc.log.Error().Err(err).Str("producto", product).Msg("Error comparando proveedores")
		return []dto.SupplierComparisonDTO{}
	}
	if len(rows) == 0 {
		uc.log.Warn().Str("producto", product).Msg("Sin compras para el producto")
		return []dto.SupplierComparisonDTO{}
	}

	tolerance := decimal.RequireFromString(bestPriceTolerance)
	best := rows[0].AvgUnitPrice

	results := make([]dto.SupplierComparisonDTO, 0, len(rows))
	for _, r := range rows {
		isBest := r.AvgUnitPrice.Sub(best).Abs().LessThan(tolerance)
		results = append(results, dto.SupplierComparisonDTO{
			Supplier:       r.SupplierName,
			AvgUnitPrice:   r.AvgUnitPrice.Round(4),
			MinUnitPrice:   r.MinUnitPrice.Round(4),
			MaxUnitPrice:   r.MaxUnitPrice.Round(4),
			NumPurchases:   r.NumPurchases,
			TotalVolume:    r.TotalVolume.Round(2),
			LastPurchase:   r.LastPurchase.Format("2006-01-02"),
			IsBest:         isBest,
			PriceVariation: r.MaxUnitPrice.Sub(r.MinUnitPrice).Round(4),
		})
	}
	return results
}

// PriceTrend devuelve la evolución del precio unitario de un producto en los
// últimos days días, en orden cronológico ascendente.
func (uc *AnalyticsUseCase) PriceTrend(ctx context.Context, product string, days int) []dto.TrendPointDTO {
	if days <= 0 {
		days = defaultTrendDays
	}
	since := time.Now().AddDate(0, 0, -days)

	rows, err := uc.analyticsRepo.PriceTrend(ctx, product, since)
	if err != nil {
		uc.log.Error().Err(err).Str("producto", product).Msg("Error obteniendo tendencia de precios")
		return []dto.TrendPointDTO{}
	}

	results := make([]dto.TrendPointDTO, 0, len(rows))
	for _, r := range rows {
		supplier := r.SupplierName
		if supplier == "" {
			supplier = "N/A"
		}
		results = append(results, dto.TrendPointDTO{
			Date:      r.Date.Format("2006-01-02"),
			UnitPrice: r.UnitPrice.Round(4),
			Quantity:  r.Quantity,
			Supplier:  supplier,
		})
	}
	return results
}

// FindSimilarPurchases busca compras cuyo precio unitario cae dentro de una
// banda de ±priceMargin alrededor del promedio histórico del producto. Máximo
// 10 resultados, los más recientes primero.
//
// refQuantity está reservado: hoy no afecta la búsqueda.
func (uc *AnalyticsUseCase) FindSimilarPurchases(ctx context.Context, product string, refQuantity, priceMargin decimal.Decimal) []dto.SimilarPurchaseDTO {
	_ = refQuantity
	if priceMargin.Sign() <= 0 {
		priceMargin = decimal.RequireFromString(defaultPriceMargin)
	}

	avg, found, err := uc.analyticsRepo.AverageUnitPrice(ctx, product)
	if err != nil {
		uc.log.Error().Err(err).Str("producto", product).Msg("Error buscando compras similares")
		return []dto.SimilarPurchaseDTO{}
	}
	if !found {
		return []dto.SimilarPurchaseDTO{}
	}

	one := decimal.NewFromInt(1)
	minPrice := avg.Mul(one.Sub(priceMargin))
	maxPrice := avg.Mul(one.Add(priceMargin))

	rows, err := uc.analyticsRepo.SimilarPurchases(ctx, product, minPrice, maxPrice, similarLimit)
	if err != nil {
		uc.log.Error().Err(err).Str("producto", product).Msg("Error buscando compras similares")
		return []dto.SimilarPurchaseDTO{}
	}

	results := make([]dto.SimilarPurchaseDTO, 0, len(rows))
	for _, r := range rows {
		supplier := r.SupplierName
		if supplier == "" {
			supplier = "N/A"
		}
		discount := r.DiscountNote
		if discount == "" {
			discount = "N/A"
		}
		results = append(results, dto.SimilarPurchaseDTO{
			Date:         r.Date.Format("2006-01-02"),
			Quantity:     r.Quantity,
			TotalPrice:   r.TotalPrice,
			UnitPrice:    r.UnitPrice.Round(4),
			Supplier:     supplier,
			DiscountNote: discount,
		})
	}
	uc.log.Info().Int("encontradas", len(results)).Str("producto", product).Msg("Búsqueda de compras similares completada")
	return results
}

// GeneralSummary arma el resumen de actividad: totales históricos, actividad
// de los últimos 7 días y los 5 productos y proveedores más usados.
func (uc *AnalyticsUseCase) GeneralSummary(ctx context.Context) dto.SummaryDTO {
	summary := dto.SummaryDTO{
		TopProducts:  []dto.TopProductDTO{},
		TopSuppliers: []dto.TopSupplierDTO{},
	}

	count, spend, err := uc.analyticsRepo.PurchaseTotals(ctx, time.Time{})
	if err != nil {
		uc.log.Error().Err(err).Msg("Error generando resumen")
		return summary
	}
	summary.TotalPurchases = count
	summary.TotalSpend = spend.Round(2)

	weekAgo := time.Now().AddDate(0, 0, -7)
	weekCount, weekSpend, err := uc.analyticsRepo.PurchaseTotals(ctx, weekAgo)
	if err != nil {
		uc.log.Error().Err(err).Msg("Error generando resumen")
		return summary
	}
	summary.WeekPurchases = weekCount
	summary.WeekSpend = weekSpend.Round(2)

	products, err := uc.analyticsRepo.TopProductsByPurchases(ctx, summaryTopN)
	if err != nil {
		uc.log.Error().Err(err).Msg("Error generando resumen")
		return summary
	}
	for _, p := range products {
		summary.TopProducts = append(summary.TopProducts, dto.TopProductDTO{
			Product:      p.Name,
			NumPurchases: p.NumPurchases,
			TotalVolume:  p.TotalVolume.Round(2),
		})
	}

	suppliers, err := uc.analyticsRepo.TopSuppliersByUsage(ctx, summaryTopN)
	if err != nil {
		uc.log.Error().Err(err).Msg("Error generando resumen")
		return summary
	}
	for _, s := range suppliers {
		summary.TopSuppliers = append(summary.TopSuppliers, dto.TopSupplierDTO{
			Supplier: s.Name,
			Uses:     s.Uses,
		})
	}
	return summary
}

// resolveRange parsea y valida el rango de análisis; aplica valores por defecto
// (fin = hoy, inicio = primer día del mes) y limita la amplitud según la clave
// de configuración max_dias_analisis.
func (uc *AnalyticsUseCase) resolveRange(ctx context.Context, startStr, endStr string) (time.Time, time.Time, error) {
	now := time.Now()
	if endStr == "" {
		endStr = now.Format("2006-01-02")
	}
	if startStr == "" {
		startStr = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).Format("2006-01-02")
	}

	maxDays := uc.maxAnalysisDays(ctx)
	start, end, err := application.ValidateAnalysisRange(startStr, endStr, maxDays)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	// Inclusivo hasta el final del día
	end = end.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
	return start, end, nil
}

func (uc *AnalyticsUseCase) maxAnalysisDays(ctx context.Context) int {
	raw := entity.DefaultMaxAnalysisDays
	if entry, err := uc.configRepo.Get(ctx, entity.ConfigKeyMaxAnalysisDays); err == nil && entry != nil {
		raw = entry.Value
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days <= 0 {
		days, _ = strconv.Atoi(entity.DefaultMaxAnalysisDays)
	}
	return days
}
