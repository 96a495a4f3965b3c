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
	"github.com/tu-usuario/barstock/pkg/logger"
)

// ── fakes ─────────────────────────────────────────────────────────────────────

type fakeAnalyticsRepo struct {
	volumes   []repository.ProductVolumeRow
	suppliers []repository.SupplierPriceRow
	trend     []repository.TrendRow
	avgPrice  decimal.Decimal
	avgFound  bool
	similar   []repository.SimilarPurchaseRow
	err       error

	gotMinPrice decimal.Decimal
	gotMaxPrice decimal.Decimal
	gotLimit    int
}

func (f *fakeAnalyticsRepo) VolumesByProduct(_ context.Context, _, _ time.Time, _ string) ([]repository.ProductVolumeRow, error) {
	return f.volumes, f.err
}

func (f *fakeAnalyticsRepo) SupplierPricesForProduct(_ context.Context, _ string) ([]repository.SupplierPriceRow, error) {
	return f.suppliers, f.err
}

func (f *fakeAnalyticsRepo) PriceTrend(_ context.Context, _ string, _ time.Time) ([]repository.TrendRow, error) {
	return f.trend, f.err
}

func (f *fakeAnalyticsRepo) AverageUnitPrice(_ context.Context, _ string) (decimal.Decimal, bool, error) {
	return f.avgPrice, f.avgFound, f.err
}

func (f *fakeAnalyticsRepo) SimilarPurchases(_ context.Context, _ string, minPrice, maxPrice decimal.Decimal, limit int) ([]repository.SimilarPurchaseRow, error) {
	f.gotMinPrice = minPrice
	f.gotMaxPrice = maxPrice
	f.gotLimit = limit
	return f.similar, f.err
}

func (f *fakeAnalyticsRepo) PurchaseTotals(_ context.Context, _ time.Time) (int, decimal.Decimal, error) {
	return 0, decimal.Zero, f.err
}

func (f *fakeAnalyticsRepo) TopProductsByPurchases(_ context.Context, _ int) ([]repository.TopProductRow, error) {
	return nil, f.err
}

func (f *fakeAnalyticsRepo) TopSuppliersByUsage(_ context.Context, _ int) ([]repository.TopSupplierRow, error) {
	return nil, f.err
}

type fakeConfigRepo struct {
	entries map[string]*entity.ConfigEntry
	err     error
}

func (f *fakeConfigRepo) Get(_ context.Context, key string) (*entity.ConfigEntry, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.entries[key], nil
}

func (f *fakeConfigRepo) Upsert(_ context.Context, e *entity.ConfigEntry) error {
	if f.err != nil {
		return f.err
	}
	if f.entries == nil {
		f.entries = map[string]*entity.ConfigEntry{}
	}
	f.entries[e.Key] = e
	return nil
}

func (f *fakeConfigRepo) List(_ context.Context) ([]entity.ConfigEntry, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []entity.ConfigEntry
	for _, e := range f.entries {
		out = append(out, *e)
	}
	return out, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ── AnalyzeVolumes ────────────────────────────────────────────────────────────

func TestAnalyzeVolumes_CalculaAhorroYRedondeos(t *testing.T) {
	repo := &fakeAnalyticsRepo{
		volumes: []repository.ProductVolumeRow{
			{
				ProductName:  "Pollo",
				ValidUnits:   []string{"kg", "unidad"},
				NumPurchases: 4,
				TotalVolume:  dec("25.5"),
				AvgUnitPrice: dec("2.123456"),
				MinUnitPrice: dec("1.9"),
				MaxUnitPrice: dec("2.4"),
				TotalSpend:   dec("54.138"),
			},
		},
	}
	uc := usecase.NewAnalyticsUseCase(repo, &fakeConfigRepo{}, testLogger())

	out, err := uc.AnalyzeVolumes(context.Background(), dto.VolumeAnalysisRequest{
		StartDate: "2026-01-01",
		EndDate:   "2026-03-01",
	})
	require.NoError(t, err)
	require.Len(t, out, 1)

	got := out[0]
	assert.Equal(t, "Pollo", got.Product)
	assert.Equal(t, "kg", got.Unit, "La unidad principal es la primera de la lista")
	assert.Equal(t, 4, got.NumPurchases)
	assert.True(t, dec("25.5").Equal(got.TotalVolume))
	assert.True(t, dec("54.14").Equal(got.TotalSpend), "El gasto se redondea a 2 decimales")
	assert.True(t, dec("2.1235").Equal(got.AvgUnitPrice), "El precio promedio se redondea a 4 decimales")
	// ahorro = (2.4 - 1.9) * 25.5 = 12.75
	assert.True(t, dec("12.75").Equal(got.PotentialSavings))
}

func TestAnalyzeVolumes_SinUnidadesUsaUnidadPorDefecto(t *testing.T) {
	repo := &fakeAnalyticsRepo{
		volumes: []repository.ProductVolumeRow{
			{ProductName: "Hielo", TotalVolume: dec("3"), AvgUnitPrice: dec("1"), MinUnitPrice: dec("1"), MaxUnitPrice: dec("1")},
		},
	}
	uc := usecase.NewAnalyticsUseCase(repo, &fakeConfigRepo{}, testLogger())

	out, err := uc.AnalyzeVolumes(context.Background(), dto.VolumeAnalysisRequest{
		StartDate: "2026-01-01",
		EndDate:   "2026-01-31",
	})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "unidad", out[0].Unit)
}

func TestAnalyzeVolumes_ErrorDeAlmacenDegradaAListaVacia(t *testing.T) {
	repo := &fakeAnalyticsRepo{err: errors.New("conexión perdida")}
	uc := usecase.NewAnalyticsUseCase(repo, &fakeConfigRepo{}, testLogger())

	out, err := uc.AnalyzeVolumes(context.Background(), dto.VolumeAnalysisRequest{
		StartDate: "2026-01-01",
		EndDate:   "2026-01-31",
	})
	require.NoError(t, err, "Un fallo del almacén no debe propagarse al llamador")
	assert.Empty(t, out)
	assert.NotNil(t, out, "Debe devolver lista vacía, no nil")
}

func TestAnalyzeVolumes_RangoInvalidoRetornaError(t *testing.T) {
	uc := usecase.NewAnalyticsUseCase(&fakeAnalyticsRepo{}, &fakeConfigRepo{}, testLogger())

	_, err := uc.AnalyzeVolumes(context.Background(), dto.VolumeAnalysisRequest{
		StartDate: "2026-03-01",
		EndDate:   "2026-01-01",
	})
	assert.Error(t, err, "Inicio posterior al fin debe rechazarse")
}

func TestAnalyzeVolumes_RangoExcedeMaximoConfigurado(t *testing.T) {
	cfg := &fakeConfigRepo{entries: map[string]*entity.ConfigEntry{
		entity.ConfigKeyMaxAnalysisDays: {Key: entity.ConfigKeyMaxAnalysisDays, Value: "30"},
	}}
	uc := usecase.NewAnalyticsUseCase(&fakeAnalyticsRepo{}, cfg, testLogger())

	_, err := uc.AnalyzeVolumes(context.Background(), dto.VolumeAnalysisRequest{
		StartDate: "2026-01-01",
		EndDate:   "2026-03-15",
	})
	assert.Error(t, err, "El rango no puede exceder max_dias_analisis")
}

// ── CompareSuppliers ──────────────────────────────────────────────────────────

func TestCompareSuppliers_MarcaElMejorPrecio(t *testing.T) {
	repo := &fakeAnalyticsRepo{
		suppliers: []repository.SupplierPriceRow{
			{SupplierName: "Proveedor A", AvgUnitPrice: dec("1.90"), NumPurchases: 3, TotalVolume: dec("30"), LastPurchase: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), MinUnitPrice: dec("1.85"), MaxUnitPrice: dec("1.95")},
			{SupplierName: "Proveedor B", AvgUnitPrice: dec("2.00"), NumPurchases: 2, TotalVolume: dec("15"), LastPurchase: time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC), MinUnitPrice: dec("1.98"), MaxUnitPrice: dec("2.02")},
		},
	}
	uc := usecase.NewAnalyticsUseCase(repo, &fakeConfigRepo{}, testLogger())

	out := uc.CompareSuppliers(context.Background(), "Pollo", 5)
	require.Len(t, out, 2)

	assert.Equal(t, "Proveedor A", out[0].Supplier)
	assert.True(t, out[0].IsBest, "El proveedor más barato debe marcarse como mejor")
	assert.False(t, out[1].IsBest)
	assert.True(t, dec("0.04").Equal(out[1].PriceVariation), "variación = max - min")
	assert.Equal(t, "2026-08-01", out[0].LastPurchase)
}

func TestCompareSuppliers_EmpateDentroDeLaTolerancia(t *testing.T) {
	// Diferencia de 0.0005 < 0.001: ambos se marcan como mejores
	repo := &fakeAnalyticsRepo{
		suppliers: []repository.SupplierPriceRow{
			{SupplierName: "A", AvgUnitPrice: dec("2.0000")},
			{SupplierName: "B", AvgUnitPrice: dec("2.0005")},
			{SupplierName: "C", AvgUnitPrice: dec("2.50")},
		},
	}
	uc := usecase.NewAnalyticsUseCase(repo, &fakeConfigRepo{}, testLogger())

	out := uc.CompareSuppliers(context.Background(), "Leche", 5)
	require.Len(t, out, 3)
	assert.True(t, out[0].IsBest)
	assert.True(t, out[1].IsBest, "Precios casi idénticos comparten la marca de mejor")
	assert.False(t, out[2].IsBest)
}

func TestCompareSuppliers_ProductoInexistenteRetornaVacio(t *testing.T) {
	uc := usecase.NewAnalyticsUseCase(&fakeAnalyticsRepo{}, &fakeConfigRepo{}, testLogger())

	out := uc.CompareSuppliers(context.Background(), "NoExiste", 5)
	assert.Empty(t, out)
	assert.NotNil(t, out)
}

// ── PriceTrend ────────────────────────────────────────────────────────────────

func TestPriceTrend_ProveedorAusenteSeReportaComoNA(t *testing.T) {
	repo := &fakeAnalyticsRepo{
		trend: []repository.TrendRow{
			{Date: time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC), UnitPrice: dec("1.95"), Quantity: dec("10"), SupplierName: ""},
			{Date: time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC), UnitPrice: dec("2.05"), Quantity: dec("5"), SupplierName: "Distribuidora Central"},
		},
	}
	uc := usecase.NewAnalyticsUseCase(repo, &fakeConfigRepo{}, testLogger())

	out := uc.PriceTrend(context.Background(), "Pollo", 30)
	require.Len(t, out, 2)
	assert.Equal(t, "N/A", out[0].Supplier)
	assert.Equal(t, "Distribuidora Central", out[1].Supplier)
	assert.Equal(t, "2026-08-10", out[0].Date)
}

// ── FindSimilarPurchases ──────────────────────────────────────────────────────

func TestFindSimilarPurchases_CalculaLaBandaDePrecio(t *testing.T) {
	repo := &fakeAnalyticsRepo{
		avgPrice: dec("2.00"),
		avgFound: true,
		similar: []repository.SimilarPurchaseRow{
			{Date: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), Quantity: dec("10"), TotalPrice: dec("20"), UnitPrice: dec("2.0")},
		},
	}
	uc := usecase.NewAnalyticsUseCase(repo, &fakeConfigRepo{}, testLogger())

	out := uc.FindSimilarPurchases(context.Background(), "Pollo", dec("10"), dec("0.2"))
	require.Len(t, out, 1)

	// banda = 2.00 * (1 ± 0.2) = [1.60, 2.40]
	assert.True(t, dec("1.6").Equal(repo.gotMinPrice))
	assert.True(t, dec("2.4").Equal(repo.gotMaxPrice))
	assert.Equal(t, 10, repo.gotLimit, "Máximo 10 compras similares")
	assert.Equal(t, "N/A", out[0].Supplier)
	assert.Equal(t, "N/A", out[0].DiscountNote)
}

func TestFindSimilarPurchases_SinHistoricoRetornaVacio(t *testing.T) {
	repo := &fakeAnalyticsRepo{avgFound: false}
	uc := usecase.NewAnalyticsUseCase(repo, &fakeConfigRepo{}, testLogger())

	out := uc.FindSimilarPurchases(context.Background(), "NoExiste", decimal.Zero, decimal.Zero)
	assert.Empty(t, out)
}
