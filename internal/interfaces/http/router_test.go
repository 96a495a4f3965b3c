package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/barstock/internal/application/dto"
	"github.com/tu-usuario/barstock/internal/application/usecase"
	"github.com/tu-usuario/barstock/internal/domain/entity"
	"github.com/tu-usuario/barstock/internal/domain/repository"
	httpiface "github.com/tu-usuario/barstock/internal/interfaces/http"
	"github.com/tu-usuario/barstock/pkg/logger"
)

// ── Stubs de los puertos ──────────────────────────────────────────────────────

type stubAnalyticsRepo struct {
	suppliers []repository.SupplierPriceRow
}

func (s *stubAnalyticsRepo) VolumesByProduct(_ context.Context, _, _ time.Time, _ string) ([]repository.ProductVolumeRow, error) {
	return nil, nil
}

func (s *stubAnalyticsRepo) SupplierPricesForProduct(_ context.Context, _ string) ([]repository.SupplierPriceRow, error) {
	return s.suppliers, nil
}

func (s *stubAnalyticsRepo) PriceTrend(_ context.Context, _ string, _ time.Time) ([]repository.TrendRow, error) {
	return nil, nil
}

func (s *stubAnalyticsRepo) AverageUnitPrice(_ context.Context, _ string) (decimal.Decimal, bool, error) {
	return decimal.Zero, false, nil
}

func (s *stubAnalyticsRepo) SimilarPurchases(_ context.Context, _ string, _, _ decimal.Decimal, _ int) ([]repository.SimilarPurchaseRow, error) {
	return nil, nil
}

func (s *stubAnalyticsRepo) PurchaseTotals(_ context.Context, _ time.Time) (int, decimal.Decimal, error) {
	return 0, decimal.Zero, nil
}

func (s *stubAnalyticsRepo) TopProductsByPurchases(_ context.Context, _ int) ([]repository.TopProductRow, error) {
	return nil, nil
}

func (s *stubAnalyticsRepo) TopSuppliersByUsage(_ context.Context, _ int) ([]repository.TopSupplierRow, error) {
	return nil, nil
}

type stubAlertSourceRepo struct {
	stocks []repository.StockTotalRow
}

func (s *stubAlertSourceRepo) StockTotals(_ context.Context) ([]repository.StockTotalRow, error) {
	return s.stocks, nil
}

func (s *stubAlertSourceRepo) ProductActivity(_ context.Context) ([]repository.ProductActivityRow, error) {
	return nil, nil
}

func (s *stubAlertSourceRepo) PriceSpreads(_ context.Context, _ time.Time) ([]repository.PriceSpreadRow, error) {
	return nil, nil
}

func (s *stubAlertSourceRepo) SupplierAverages(_ context.Context, _ time.Time, _ int) ([]repository.SupplierAverageRow, error) {
	return nil, nil
}

type stubConfigRepo struct{}

func (s *stubConfigRepo) Get(_ context.Context, _ string) (*entity.ConfigEntry, error) {
	return nil, nil
}
func (s *stubConfigRepo) Upsert(_ context.Context, _ *entity.ConfigEntry) error { return nil }
func (s *stubConfigRepo) List(_ context.Context) ([]entity.ConfigEntry, error) {
	return []entity.ConfigEntry{{Key: entity.ConfigKeyStockThreshold, Value: "10.0"}}, nil
}

type stubProductRepo struct {
	products map[string]*entity.Product
}

func (s *stubProductRepo) Create(_ context.Context, _ *entity.Product) error { return nil }
func (s *stubProductRepo) GetByID(_ context.Context, _ string) (*entity.Product, error) {
	return nil, nil
}
func (s *stubProductRepo) GetByName(_ context.Context, name string) (*entity.Product, error) {
	return s.products[name], nil
}
func (s *stubProductRepo) List(_ context.Context) ([]repository.ProductListRow, error) {
	return nil, nil
}
func (s *stubProductRepo) Update(_ context.Context, _ *entity.Product) error { return nil }
func (s *stubProductRepo) Delete(_ context.Context, _ string) error          { return nil }

type stubSupplierRepo struct{}

func (s *stubSupplierRepo) Create(_ context.Context, _ *entity.Supplier) error { return nil }
func (s *stubSupplierRepo) GetByID(_ context.Context, _ string) (*entity.Supplier, error) {
	return nil, nil
}
func (s *stubSupplierRepo) GetByName(_ context.Context, _ string) (*entity.Supplier, error) {
	return nil, nil
}
func (s *stubSupplierRepo) List(_ context.Context) ([]repository.SupplierListRow, error) {
	return nil, nil
}
func (s *stubSupplierRepo) Update(_ context.Context, _ *entity.Supplier) error { return nil }
func (s *stubSupplierRepo) Delete(_ context.Context, _ string) error           { return nil }

type stubPurchaseRepo struct {
	inserted []*entity.Purchase
}

func (s *stubPurchaseRepo) Insert(_ context.Context, p *entity.Purchase) error {
	s.inserted = append(s.inserted, p)
	return nil
}

func (s *stubPurchaseRepo) History(_ context.Context, _ int) ([]repository.PurchaseHistoryRow, error) {
	return nil, nil
}
func (s *stubPurchaseRepo) Delete(_ context.Context, _ string) error { return nil }
func (s *stubPurchaseRepo) CountByProduct(_ context.Context, _ string) (int, error) {
	return 0, nil
}
func (s *stubPurchaseRepo) CountBySupplier(_ context.Context, _ string) (int, error) {
	return 0, nil
}

// ── Montaje de la app ─────────────────────────────────────────────────────────

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	cfg := &stubConfigRepo{}

	analyticsRepo := &stubAnalyticsRepo{
		suppliers: []repository.SupplierPriceRow{
			{SupplierName: "Avícola Norte", AvgUnitPrice: decimal.RequireFromString("1.90"), NumPurchases: 3, TotalVolume: decimal.RequireFromString("30"), LastPurchase: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)},
			{SupplierName: "Mercado Central", AvgUnitPrice: decimal.RequireFromString("2.10"), NumPurchases: 2, TotalVolume: decimal.RequireFromString("12"), LastPurchase: time.Date(2026, 7, 20, 0, 0, 0, 0, time.UTC)},
		},
	}
	alertRepo := &stubAlertSourceRepo{
		stocks: []repository.StockTotalRow{
			{ProductName: "Patatas", TotalQuantity: decimal.RequireFromString("42"), NumPurchases: 6},
		},
	}
	productRepo := &stubProductRepo{products: map[string]*entity.Product{
		"Pollo": {ID: "p-1", Name: "Pollo", ValidUnits: []string{"kg"}},
	}}

	app := fiber.New()
	httpiface.Router(app, httpiface.RouterDeps{
		AnalyticsUC: usecase.NewAnalyticsUseCase(analyticsRepo, cfg, log),
		AlertUC:     usecase.NewAlertUseCase(alertRepo, cfg, log),
		ConfigUC:    usecase.NewConfigUseCase(cfg, log),
		PurchaseUC:  usecase.NewPurchaseUseCase(&stubPurchaseRepo{}, productRepo, &stubSupplierRepo{}, log),
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, target string, body any) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, target, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, raw
}

// ── Rutas ─────────────────────────────────────────────────────────────────────

func TestGetAlerts_DevuelveAlertasActivas(t *testing.T) {
	app := newTestApp(t)

	resp, raw := doJSON(t, app, http.MethodGet, "/api/alerts", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var alerts []dto.AlertDTO
	require.NoError(t, json.Unmarshal(raw, &alerts))
	require.Len(t, alerts, 1)
	assert.Equal(t, entity.AlertCategoryStock, alerts[0].Category)
	assert.Equal(t, "Patatas", alerts[0].Data["producto"])
}

func TestGetSupplierComparison_MarcaElMejor(t *testing.T) {
	app := newTestApp(t)

	resp, raw := doJSON(t, app, http.MethodGet, "/api/analytics/suppliers/Pollo", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var out []dto.SupplierComparisonDTO
	require.NoError(t, json.Unmarshal(raw, &out))
	require.Len(t, out, 2)
	assert.Equal(t, "Avícola Norte", out[0].Supplier)
	assert.True(t, out[0].IsBest)
	assert.False(t, out[1].IsBest)
}

func TestPostPurchase_ValidacionFallida(t *testing.T) {
	app := newTestApp(t)

	resp, raw := doJSON(t, app, http.MethodPost, "/api/purchases", dto.RegisterPurchaseRequest{
		Product:    "Pollo",
		Quantity:   decimal.RequireFromString("-3"),
		TotalPrice: decimal.RequireFromString("10"),
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var out dto.ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, "VALIDATION", out.Code)
}

func TestPostPurchase_ProductoDesconocido(t *testing.T) {
	app := newTestApp(t)

	resp, raw := doJSON(t, app, http.MethodPost, "/api/purchases", dto.RegisterPurchaseRequest{
		Product:    "Caviar",
		Quantity:   decimal.RequireFromString("2"),
		TotalPrice: decimal.RequireFromString("10"),
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var out dto.ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, "NOT_FOUND", out.Code)
}

func TestPostPurchase_RegistroCorrecto(t *testing.T) {
	app := newTestApp(t)

	resp, raw := doJSON(t, app, http.MethodPost, "/api/purchases", dto.RegisterPurchaseRequest{
		Product:      "Pollo",
		Quantity:     decimal.RequireFromString("5"),
		TotalPrice:   decimal.RequireFromString("12.50"),
		PurchaseDate: time.Now().Format("2006-01-02"),
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var out dto.PurchaseResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, "Pollo", out.Product)
	assert.Equal(t, "kg", out.Unit)
	assert.True(t, decimal.RequireFromString("2.5").Equal(out.UnitPrice), "precio unitario derivado de total/cantidad")
	assert.Equal(t, entity.NoSupplierLabel, out.Supplier)
}

func TestGetConfig_ListaLasClaves(t *testing.T) {
	app := newTestApp(t)

	resp, raw := doJSON(t, app, http.MethodGet, "/api/config", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var out []dto.ConfigEntryResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	require.Len(t, out, 1)
	assert.Equal(t, entity.ConfigKeyStockThreshold, out[0].Key)
}
