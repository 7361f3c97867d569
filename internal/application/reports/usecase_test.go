package reports_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmcastano/inventario-retail/internal/application/reports"
	"github.com/jmcastano/inventario-retail/internal/domain/entity"
	"github.com/jmcastano/inventario-retail/internal/domain/repository"
)

var testNow = time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return testNow }

type fakeReportRepo struct {
	monthlySales     []repository.MonthlyQuantityRow
	monthlyPurchases []repository.MonthlyQuantityRow
	topProducts      []repository.TopProductRow
	stock            []repository.StockRow
	prices           []entity.ProductPrice
}

func (r *fakeReportRepo) MonthlySaleQuantities(ctx context.Context) ([]repository.MonthlyQuantityRow, error) {
	return r.monthlySales, nil
}
func (r *fakeReportRepo) MonthlyPurchaseQuantities(ctx context.Context) ([]repository.MonthlyQuantityRow, error) {
	return r.monthlyPurchases, nil
}
func (r *fakeReportRepo) TopProductsSold(ctx context.Context, limit int) ([]repository.TopProductRow, error) {
	if len(r.topProducts) > limit {
		return r.topProducts[:limit], nil
	}
	return r.topProducts, nil
}
func (r *fakeReportRepo) ListStockWithProduct(ctx context.Context) ([]repository.StockRow, error) {
	return r.stock, nil
}
func (r *fakeReportRepo) ListExpiringPurchases(ctx context.Context, cutoff time.Time) ([]repository.ExpiringPurchaseRow, error) {
	return nil, nil
}
func (r *fakeReportRepo) ListPrices(ctx context.Context) ([]entity.ProductPrice, error) {
	return r.prices, nil
}
func (r *fakeReportRepo) LatestSale(ctx context.Context) (*repository.SaleEventRow, error) {
	return nil, nil
}
func (r *fakeReportRepo) LatestPurchase(ctx context.Context) (*repository.PurchaseEventRow, error) {
	return nil, nil
}
func (r *fakeReportRepo) LatestStockUpdate(ctx context.Context) (*repository.StockEventRow, error) {
	return nil, nil
}
func (r *fakeReportRepo) LatestPriceChange(ctx context.Context) (*repository.PriceEventRow, error) {
	return nil, nil
}

// TestMonthlySales_DoceMesesCompletos: sin ventas, el reporte trae los 12 meses
// con cantidad cero, nunca un arreglo disperso.
func TestMonthlySales_DoceMesesCompletos(t *testing.T) {
	uc := reports.NewReportUseCase(&fakeReportRepo{}, fixedNow)

	got, err := uc.MonthlySales(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 12)
	for i, m := range got {
		assert.Equal(t, i+1, m.Month)
		assert.Equal(t, int64(0), m.TotalQuantity)
	}
	assert.Equal(t, "Enero", got[0].Label)
	assert.Equal(t, "Diciembre", got[11].Label)
}

// TestMonthlySales_RellenaYSumaAnios: las filas dispersas caen en su mes y los
// distintos años del mismo mes se suman (perfil estacional).
func TestMonthlySales_RellenaYSumaAnios(t *testing.T) {
	repo := &fakeReportRepo{
		monthlySales: []repository.MonthlyQuantityRow{
			{Month: 3, Quantity: 40},
			{Month: 11, Quantity: 7},
		},
	}
	uc := reports.NewReportUseCase(repo, fixedNow)

	got, err := uc.MonthlySales(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(40), got[2].TotalQuantity)
	assert.Equal(t, int64(7), got[10].TotalQuantity)
	assert.Equal(t, int64(0), got[0].TotalQuantity)
}

// TestPurchasesVsSales_CombinaFuentes: compras y ventas se agregan de forma
// independiente sobre la misma estructura de 12 meses.
func TestPurchasesVsSales_CombinaFuentes(t *testing.T) {
	repo := &fakeReportRepo{
		monthlySales:     []repository.MonthlyQuantityRow{{Month: 1, Quantity: 10}},
		monthlyPurchases: []repository.MonthlyQuantityRow{{Month: 1, Quantity: 25}, {Month: 2, Quantity: 5}},
	}
	uc := reports.NewReportUseCase(repo, fixedNow)

	got, err := uc.PurchasesVsSales(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 12)
	assert.Equal(t, int64(25), got[0].Purchases)
	assert.Equal(t, int64(10), got[0].Sales)
	assert.Equal(t, int64(5), got[1].Purchases)
	assert.Equal(t, int64(0), got[1].Sales)
}

// TestTopProducts_OrdenDescendenteYCorte: {A:50,B:30,C:20,D:10,E:5,F:1} devuelve
// [A,B,C,D,E] y excluye F.
func TestTopProducts_OrdenDescendenteYCorte(t *testing.T) {
	repo := &fakeReportRepo{
		topProducts: []repository.TopProductRow{
			{ProductID: "A", Name: "A", Quantity: 50},
			{ProductID: "B", Name: "B", Quantity: 30},
			{ProductID: "C", Name: "C", Quantity: 20},
			{ProductID: "D", Name: "D", Quantity: 10},
			{ProductID: "E", Name: "E", Quantity: 5},
			{ProductID: "F", Name: "F", Quantity: 1},
		},
	}
	uc := reports.NewReportUseCase(repo, fixedNow)

	got, err := uc.TopProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 5)
	wantOrder := []string{"A", "B", "C", "D", "E"}
	for i, w := range wantOrder {
		assert.Equal(t, w, got[i].ProductID)
	}
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Quantity, got[i].Quantity)
	}
}

// TestTotalStock_Suma: suma del disponible de todos los resúmenes.
func TestTotalStock_Suma(t *testing.T) {
	repo := &fakeReportRepo{
		stock: []repository.StockRow{
			{ProductID: "p1", AvailableQuantity: 10},
			{ProductID: "p2", AvailableQuantity: 0},
			{ProductID: "p3", AvailableQuantity: 32},
		},
	}
	uc := reports.NewReportUseCase(repo, fixedNow)

	total, err := uc.TotalStock(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(42), total)
}

// TestStockValue_ResuelvePrecioVigente: cada producto se valoriza con su precio
// vigente ahora; el registro futuro no cuenta y un producto sin precio vale cero.
func TestStockValue_ResuelvePrecioVigente(t *testing.T) {
	repo := &fakeReportRepo{
		stock: []repository.StockRow{
			{ProductID: "p1", Name: "Café", AvailableQuantity: 10},
			{ProductID: "p2", Name: "Sin precio", AvailableQuantity: 5},
		},
		prices: []entity.ProductPrice{
			{ID: "a", ProductID: "p1", Price: decimal.NewFromInt(100), EffectiveAt: testNow.AddDate(0, -2, 0)},
			{ID: "b", ProductID: "p1", Price: decimal.NewFromInt(120), EffectiveAt: testNow.AddDate(0, -1, 0)},
			{ID: "c", ProductID: "p1", Price: decimal.NewFromInt(999), EffectiveAt: testNow.AddDate(0, 1, 0)},
		},
	}
	uc := reports.NewReportUseCase(repo, fixedNow)

	got, err := uc.StockValue(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(15), got.TotalQuantity)
	// p1: 120 × 10 = 1200; p2 sin precio vigente: 0.
	assert.True(t, got.TotalValue.Equal(decimal.NewFromInt(1200)),
		"valor total esperado 1200, got %s", got.TotalValue)

	require.Len(t, got.Lines, 2)
	assert.True(t, got.Lines[0].UnitPrice.Equal(decimal.NewFromInt(120)))
	assert.True(t, got.Lines[1].Value.Equal(decimal.Zero))
}
