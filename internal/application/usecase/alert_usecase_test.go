package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/barstock/internal/application/dto"
	"github.com/tu-usuario/barstock/internal/application/usecase"
	"github.com/tu-usuario/barstock/internal/domain/entity"
	"github.com/tu-usuario/barstock/internal/domain/repository"
)

type fakeAlertSourceRepo struct {
	stocks   []repository.StockTotalRow
	activity []repository.ProductActivityRow
	spreads  []repository.PriceSpreadRow
	averages []repository.SupplierAverageRow
	err      error
}

func (f *fakeAlertSourceRepo) StockTotals(_ context.Context) ([]repository.StockTotalRow, error) {
	return f.stocks, f.err
}

func (f *fakeAlertSourceRepo) ProductActivity(_ context.Context) ([]repository.ProductActivityRow, error) {
	return f.activity, f.err
}

func (f *fakeAlertSourceRepo) PriceSpreads(_ context.Context, _ time.Time) ([]repository.PriceSpreadRow, error) {
	return f.spreads, f.err
}

func (f *fakeAlertSourceRepo) SupplierAverages(_ context.Context, _ time.Time, _ int) ([]repository.SupplierAverageRow, error) {
	return f.averages, f.err
}

func configWith(values map[string]string) *fakeConfigRepo {
	entries := map[string]*entity.ConfigEntry{}
	for k, v := range values {
		entries[k] = &entity.ConfigEntry{Key: k, Value: v}
	}
	return &fakeConfigRepo{entries: entries}
}

func alertsByCategory(alerts []dto.AlertDTO, category string) []dto.AlertDTO {
	var out []dto.AlertDTO
	for _, a := range alerts {
		if a.Category == category {
			out = append(out, a)
		}
	}
	return out
}

// ── Regla de stock ────────────────────────────────────────────────────────────

func TestGenerateAlerts_ExcesoDeStockConUmbralConfigurado(t *testing.T) {
	repo := &fakeAlertSourceRepo{
		stocks: []repository.StockTotalRow{
			{ProductName: "Patatas", TotalQuantity: dec("10.0"), NumPurchases: 4},
			{ProductName: "Leche", TotalQuantity: dec("5.0"), NumPurchases: 2},
		},
	}
	cfg := configWith(map[string]string{entity.ConfigKeyStockThreshold: "5.0"})
	uc := usecase.NewAlertUseCase(repo, cfg, testLogger())

	alerts := uc.GenerateAlerts(context.Background())
	stock := alertsByCategory(alerts, entity.AlertCategoryStock)
	require.Len(t, stock, 1, "Solo la cantidad estrictamente mayor al umbral dispara la alerta")

	a := stock[0]
	assert.Equal(t, entity.AlertKindWarning, a.Kind)
	assert.Equal(t, "Exceso de Stock Detectado", a.Title)
	assert.Equal(t, entity.AlertPriorityMedium, a.Priority)
	assert.Equal(t, "Patatas", a.Data["producto"])
	assert.Contains(t, a.Message, "10.0 unidades")
}

func TestGenerateAlerts_StockUsaUmbralPorDefecto(t *testing.T) {
	// Sin configuración: umbral 10.0
	repo := &fakeAlertSourceRepo{
		stocks: []repository.StockTotalRow{
			{ProductName: "Harina", TotalQuantity: dec("10.0")},
			{ProductName: "Tomates", TotalQuantity: dec("10.5")},
		},
	}
	uc := usecase.NewAlertUseCase(repo, &fakeConfigRepo{}, testLogger())

	stock := alertsByCategory(uc.GenerateAlerts(context.Background()), entity.AlertCategoryStock)
	require.Len(t, stock, 1)
	assert.Equal(t, "Tomates", stock[0].Data["producto"])
}

// ── Regla de inactividad ──────────────────────────────────────────────────────

func TestGenerateAlerts_InactividadDistingueNuncaCompradoDeAntiguo(t *testing.T) {
	old := time.Now().AddDate(0, 0, -45)
	recent := time.Now().AddDate(0, 0, -3)
	repo := &fakeAlertSourceRepo{
		activity: []repository.ProductActivityRow{
			{ProductName: "Harina", LastPurchase: nil, NumPurchases: 0},
			{ProductName: "Tomates", LastPurchase: &old, NumPurchases: 7},
			{ProductName: "Pollo", LastPurchase: &recent, NumPurchases: 12},
		},
	}
	uc := usecase.NewAlertUseCase(repo, &fakeConfigRepo{}, testLogger())

	inactivity := alertsByCategory(uc.GenerateAlerts(context.Background()), entity.AlertCategoryInactivity)
	require.Len(t, inactivity, 2, "El producto con compra reciente no genera alerta")

	assert.Equal(t, entity.AlertKindInfo, inactivity[0].Kind)
	assert.Equal(t, entity.AlertPriorityLow, inactivity[0].Priority)
	assert.Contains(t, inactivity[0].Message, "Sin compras registradas")
	assert.Equal(t, "nunca", inactivity[0].Data["ultima_compra"])
	assert.Contains(t, inactivity[1].Message, "Última compra: "+old.Format("2006-01-02"))
}

// ── Regla de variación de precios ─────────────────────────────────────────────

func TestGenerateAlerts_VariacionDePrecioRequiereTresCompras(t *testing.T) {
	repo := &fakeAlertSourceRepo{
		spreads: []repository.PriceSpreadRow{
			// variación = (2.5 - 1.5) / 2.0 = 0.5 > 0.15 pero solo 2 compras
			{ProductName: "Leche", NumPurchases: 2, MinUnitPrice: dec("1.5"), MaxUnitPrice: dec("2.5"), AvgUnitPrice: dec("2.0")},
			// variación = (2.4 - 1.8) / 2.0 = 0.3 > 0.15 con 4 compras
			{ProductName: "Pollo", NumPurchases: 4, MinUnitPrice: dec("1.8"), MaxUnitPrice: dec("2.4"), AvgUnitPrice: dec("2.0")},
		},
	}
	uc := usecase.NewAlertUseCase(repo, &fakeConfigRepo{}, testLogger())

	price := alertsByCategory(uc.GenerateAlerts(context.Background()), entity.AlertCategoryPrice)
	require.Len(t, price, 1)

	a := price[0]
	assert.Equal(t, entity.AlertKindWarning, a.Kind)
	assert.Equal(t, entity.AlertPriorityHigh, a.Priority)
	assert.Equal(t, "Pollo", a.Data["producto"])
	assert.Contains(t, a.Message, "30.0%")
	// ahorro estimado = (2.4 - 1.8) * 5 unidades = 3.00
	savings, ok := a.Data["ahorro_potencial"].(decimal.Decimal)
	require.True(t, ok, "El ahorro potencial viaja como decimal")
	assert.True(t, dec("3").Equal(savings), "ahorro esperado 3.00, obtenido %s", savings)
}

func TestGenerateAlerts_VariacionBajoElUmbralNoAlerta(t *testing.T) {
	repo := &fakeAlertSourceRepo{
		spreads: []repository.PriceSpreadRow{
			// variación = (2.1 - 1.9) / 2.0 = 0.1 < 0.15
			{ProductName: "Leche", NumPurchases: 5, MinUnitPrice: dec("1.9"), MaxUnitPrice: dec("2.1"), AvgUnitPrice: dec("2.0")},
		},
	}
	uc := usecase.NewAlertUseCase(repo, &fakeConfigRepo{}, testLogger())

	price := alertsByCategory(uc.GenerateAlerts(context.Background()), entity.AlertCategoryPrice)
	assert.Empty(t, price)
}

// ── Regla de proveedores caros ────────────────────────────────────────────────

func TestGenerateAlerts_ProveedorCaroSoloSobreElVeintePorCiento(t *testing.T) {
	repo := &fakeAlertSourceRepo{
		averages: []repository.SupplierAverageRow{
			{ProductName: "Pollo", SupplierName: "Barato SA", AvgUnitPrice: dec("2.00"), NumPurchases: 3},
			// 15% más caro: no alerta
			{ProductName: "Pollo", SupplierName: "Medio SL", AvgUnitPrice: dec("2.30"), NumPurchases: 2},
			// 50% más caro: alerta
			{ProductName: "Pollo", SupplierName: "Caro SL", AvgUnitPrice: dec("3.00"), NumPurchases: 2},
		},
	}
	uc := usecase.NewAlertUseCase(repo, &fakeConfigRepo{}, testLogger())

	supplier := alertsByCategory(uc.GenerateAlerts(context.Background()), entity.AlertCategorySupplier)
	require.Len(t, supplier, 1)

	a := supplier[0]
	assert.Equal(t, entity.AlertKindInfo, a.Kind)
	assert.Equal(t, entity.AlertPriorityMedium, a.Priority)
	assert.Equal(t, "Caro SL", a.Data["proveedor"])
	assert.Contains(t, a.Message, "50.0% más caro")
}

func TestGenerateAlerts_ProveedoresCarosLimitadosACinco(t *testing.T) {
	averages := []repository.SupplierAverageRow{
		{ProductName: "Pollo", SupplierName: "Base", AvgUnitPrice: dec("1.00"), NumPurchases: 3},
	}
	names := []string{"P1", "P2", "P3", "P4", "P5", "P6", "P7"}
	price := dec("2.0")
	for _, n := range names {
		averages = append(averages, repository.SupplierAverageRow{
			ProductName: "Pollo", SupplierName: n, AvgUnitPrice: price, NumPurchases: 2,
		})
		price = price.Add(dec("0.5"))
	}
	uc := usecase.NewAlertUseCase(&fakeAlertSourceRepo{averages: averages}, &fakeConfigRepo{}, testLogger())

	supplier := alertsByCategory(uc.GenerateAlerts(context.Background()), entity.AlertCategorySupplier)
	require.Len(t, supplier, 5, "Máximo 5 alertas de proveedor")
	assert.Equal(t, "P7", supplier[0].Data["proveedor"], "El mayor exceso va primero")
}

// ── Degradación y estadísticas ────────────────────────────────────────────────

func TestGenerateAlerts_ErrorDeAlmacenDegradaAListaVacia(t *testing.T) {
	repo := &fakeAlertSourceRepo{err: errors.New("sin conexión")}
	uc := usecase.NewAlertUseCase(repo, &fakeConfigRepo{}, testLogger())

	alerts := uc.GenerateAlerts(context.Background())
	assert.Empty(t, alerts)
	assert.NotNil(t, alerts)
}

func TestAlertStats_CuentaPorTipoCategoriaYPrioridad(t *testing.T) {
	old := time.Now().AddDate(0, 0, -60)
	repo := &fakeAlertSourceRepo{
		stocks: []repository.StockTotalRow{
			{ProductName: "Patatas", TotalQuantity: dec("50")},
		},
		activity: []repository.ProductActivityRow{
			{ProductName: "Harina", LastPurchase: &old, NumPurchases: 1},
		},
	}
	uc := usecase.NewAlertUseCase(repo, &fakeConfigRepo{}, testLogger())

	stats := uc.AlertStats(context.Background())
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.ByKind[entity.AlertKindWarning])
	assert.Equal(t, 1, stats.ByKind[entity.AlertKindInfo])
	assert.Equal(t, 1, stats.ByCategory[entity.AlertCategoryStock])
	assert.Equal(t, 1, stats.ByCategory[entity.AlertCategoryInactivity])
	assert.Equal(t, 1, stats.ByPriority[entity.AlertPriorityMedium])
	assert.Equal(t, 1, stats.ByPriority[entity.AlertPriorityLow])
	assert.Equal(t, 0, stats.ByPriority[entity.AlertPriorityHigh])
	assert.Len(t, stats.Latest, 2, "Las estadísticas incluyen las primeras alertas")
}
