package ledger_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmcastano/inventario-retail/internal/application/dto"
	"github.com/jmcastano/inventario-retail/internal/application/ledger"
	"github.com/jmcastano/inventario-retail/internal/domain"
	"github.com/jmcastano/inventario-retail/internal/domain/entity"
	"github.com/jmcastano/inventario-retail/internal/domain/repository"
)

var testNow = time.Date(2026, 5, 10, 9, 30, 0, 0, time.UTC)

func fixedNow() time.Time { return testNow }

// ── Dobles en memoria ─────────────────────────────────────────────────────────
// fakeState simula el estado de la base; fakeTxRunner ejecuta el callback sobre
// una copia y solo la publica si no hubo error, reproduciendo Commit/Rollback.

type fakeState struct {
	sales     map[string]entity.Sale
	purchases map[string]entity.Purchase
	stocks    map[string]entity.StockSummary
	lots      map[string]entity.Lot
}

func newFakeState() *fakeState {
	return &fakeState{
		sales:     map[string]entity.Sale{},
		purchases: map[string]entity.Purchase{},
		stocks:    map[string]entity.StockSummary{},
		lots:      map[string]entity.Lot{},
	}
}

func (s *fakeState) clone() *fakeState {
	c := newFakeState()
	for k, v := range s.sales {
		c.sales[k] = v
	}
	for k, v := range s.purchases {
		c.purchases[k] = v
	}
	for k, v := range s.stocks {
		c.stocks[k] = v
	}
	for k, v := range s.lots {
		c.lots[k] = v
	}
	return c
}

type fakeSaleRepo struct {
	st         *fakeState
	failCreate bool
}

func (r *fakeSaleRepo) Create(sale *entity.Sale) error {
	if r.failCreate {
		return errors.New("fallo simulado al insertar venta")
	}
	r.st.sales[sale.ID] = *sale
	return nil
}

func (r *fakeSaleRepo) GetByID(id string) (*entity.Sale, error) {
	s, ok := r.st.sales[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *fakeSaleRepo) Delete(id string) error {
	delete(r.st.sales, id)
	return nil
}

func (r *fakeSaleRepo) List(limit, offset int) ([]*entity.Sale, error) {
	out := make([]*entity.Sale, 0, len(r.st.sales))
	for k := range r.st.sales {
		s := r.st.sales[k]
		out = append(out, &s)
	}
	return out, nil
}

type fakePurchaseRepo struct{ st *fakeState }

func (r *fakePurchaseRepo) Create(p *entity.Purchase) error {
	r.st.purchases[p.ID] = *p
	return nil
}

func (r *fakePurchaseRepo) GetByID(id string) (*entity.Purchase, error) {
	p, ok := r.st.purchases[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *fakePurchaseRepo) List(limit, offset int) ([]*entity.Purchase, error) {
	return nil, nil
}

type fakeStockRepo struct {
	st         *fakeState
	failUpsert bool
}

func (r *fakeStockRepo) Get(productID string) (*entity.StockSummary, error) {
	return r.GetForUpdate(productID)
}

func (r *fakeStockRepo) GetForUpdate(productID string) (*entity.StockSummary, error) {
	s, ok := r.st.stocks[productID]
	if !ok {
		return &entity.StockSummary{ProductID: productID}, nil
	}
	return &s, nil
}

func (r *fakeStockRepo) Upsert(summary *entity.StockSummary) error {
	if r.failUpsert {
		return errors.New("fallo simulado al actualizar stock")
	}
	r.st.stocks[summary.ProductID] = *summary
	return nil
}

func (r *fakeStockRepo) List() ([]*entity.StockSummary, error) {
	out := make([]*entity.StockSummary, 0, len(r.st.stocks))
	for k := range r.st.stocks {
		s := r.st.stocks[k]
		out = append(out, &s)
	}
	return out, nil
}

type fakeLotRepo struct{ st *fakeState }

func lotKey(lotNumber, productID string) string { return lotNumber + "|" + productID }

func (r *fakeLotRepo) Upsert(lot *entity.Lot) error {
	r.st.lots[lotKey(lot.LotNumber, lot.ProductID)] = *lot
	return nil
}

func (r *fakeLotRepo) Get(lotNumber, productID string) (*entity.Lot, error) {
	l, ok := r.st.lots[lotKey(lotNumber, productID)]
	if !ok {
		return nil, nil
	}
	return &l, nil
}

func (r *fakeLotRepo) ListByProduct(productID string) ([]*entity.Lot, error) {
	return nil, nil
}

// fakeTxRunner ejecuta fn sobre un clon del estado; si fn falla el clon se
// descarta (rollback), si no, reemplaza al estado real (commit).
type fakeTxRunner struct {
	st             *fakeState
	failSaleCreate bool
	failStockWrite bool
}

func (t *fakeTxRunner) Run(ctx context.Context, fn func(
	saleRepo repository.SaleRepository,
	purchaseRepo repository.PurchaseRepository,
	stockRepo repository.StockSummaryRepository,
	lotRepo repository.LotRepository,
) error) error {
	work := t.st.clone()
	err := fn(
		&fakeSaleRepo{st: work, failCreate: t.failSaleCreate},
		&fakePurchaseRepo{st: work},
		&fakeStockRepo{st: work, failUpsert: t.failStockWrite},
		&fakeLotRepo{st: work},
	)
	if err != nil {
		return err
	}
	*t.st = *work
	return nil
}

type fakeProductRepo struct{ products map[string]entity.Product }

func (r *fakeProductRepo) Create(p *entity.Product) error { r.products[p.ID] = *p; return nil }
func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}
func (r *fakeProductRepo) Update(p *entity.Product) error                   { return nil }
func (r *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) { return nil, nil }
func (r *fakeProductRepo) Delete(id string) error                           { return nil }

type fakeSupplierRepo struct{ suppliers map[string]entity.Supplier }

func (r *fakeSupplierRepo) Create(s *entity.Supplier) error { r.suppliers[s.ID] = *s; return nil }
func (r *fakeSupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	s, ok := r.suppliers[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}
func (r *fakeSupplierRepo) List(limit, offset int) ([]*entity.Supplier, error) { return nil, nil }
func (r *fakeSupplierRepo) Delete(id string) error                             { return nil }

// ── helpers ───────────────────────────────────────────────────────────────────

type fixture struct {
	uc    *ledger.LedgerUseCase
	st    *fakeState
	tx    *fakeTxRunner
	prods *fakeProductRepo
}

func newFixture() *fixture {
	st := newFakeState()
	tx := &fakeTxRunner{st: st}
	prods := &fakeProductRepo{products: map[string]entity.Product{
		"prod-1": {ID: "prod-1", Name: "Café molido 500g"},
	}}
	sups := &fakeSupplierRepo{suppliers: map[string]entity.Supplier{
		"sup-1": {ID: "sup-1", Name: "Distribuidora Norte"},
	}}
	return &fixture{
		uc:    ledger.NewLedgerUseCase(tx, prods, sups, fixedNow),
		st:    st,
		tx:    tx,
		prods: prods,
	}
}

func (f *fixture) setStock(productID string, qty int64) {
	f.st.stocks[productID] = entity.StockSummary{
		ProductID:         productID,
		AvailableQuantity: qty,
		LastUpdated:       testNow.Add(-time.Hour),
	}
}

// ── RecordSale ────────────────────────────────────────────────────────────────

// TestRecordSale_Exitosa: stock 10 + venta de 3 -> stock 7 y exactamente una
// fila de venta con cantidad 3.
func TestRecordSale_Exitosa(t *testing.T) {
	f := newFixture()
	f.setStock("prod-1", 10)

	sale, err := f.uc.RecordSale(context.Background(), dto.CreateSaleRequest{
		ProductID: "prod-1",
		Quantity:  3,
	})
	require.NoError(t, err)
	require.NotNil(t, sale)

	assert.Equal(t, int64(7), f.st.stocks["prod-1"].AvailableQuantity)
	require.Len(t, f.st.sales, 1)
	assert.Equal(t, int64(3), f.st.sales[sale.ID].Quantity)
	assert.True(t, sale.SoldAt.Equal(testNow))
}

// TestRecordSale_StockInsuficiente: stock 5 + venta de 6 -> ErrInsufficientStock,
// el stock sigue en 5 y no se crea fila de venta.
func TestRecordSale_StockInsuficiente(t *testing.T) {
	f := newFixture()
	f.setStock("prod-1", 5)

	_, err := f.uc.RecordSale(context.Background(), dto.CreateSaleRequest{
		ProductID: "prod-1",
		Quantity:  6,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(5), f.st.stocks["prod-1"].AvailableQuantity)
	assert.Empty(t, f.st.sales)
}

// TestRecordSale_SinResumen: producto sin fila de stock -> rechazo por
// insuficiencia (el resumen inexistente equivale a cantidad cero).
func TestRecordSale_SinResumen(t *testing.T) {
	f := newFixture()

	_, err := f.uc.RecordSale(context.Background(), dto.CreateSaleRequest{
		ProductID: "prod-1",
		Quantity:  1,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Empty(t, f.st.sales)
}

// TestRecordSale_CantidadExacta: vender exactamente el disponible deja el stock
// en cero, nunca negativo.
func TestRecordSale_CantidadExacta(t *testing.T) {
	f := newFixture()
	f.setStock("prod-1", 4)

	_, err := f.uc.RecordSale(context.Background(), dto.CreateSaleRequest{
		ProductID: "prod-1",
		Quantity:  4,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), f.st.stocks["prod-1"].AvailableQuantity)
}

// TestRecordSale_EntradaInvalida: cantidad no positiva o producto vacío se
// rechazan antes de tocar el store.
func TestRecordSale_EntradaInvalida(t *testing.T) {
	f := newFixture()
	f.setStock("prod-1", 10)

	cases := []dto.CreateSaleRequest{
		{ProductID: "prod-1", Quantity: 0},
		{ProductID: "prod-1", Quantity: -2},
		{ProductID: "", Quantity: 3},
	}
	for _, in := range cases {
		_, err := f.uc.RecordSale(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
	assert.Equal(t, int64(10), f.st.stocks["prod-1"].AvailableQuantity)
	assert.Empty(t, f.st.sales)
}

// TestRecordSale_ProductoInexistente devuelve ErrNotFound.
func TestRecordSale_ProductoInexistente(t *testing.T) {
	f := newFixture()

	_, err := f.uc.RecordSale(context.Background(), dto.CreateSaleRequest{
		ProductID: "prod-fantasma",
		Quantity:  1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// TestRecordSale_RollbackCompleto: si falla el insert de la venta, el decremento
// de stock no se publica (no hay estado parcial observable).
func TestRecordSale_RollbackCompleto(t *testing.T) {
	f := newFixture()
	f.setStock("prod-1", 10)
	f.tx.failSaleCreate = true

	_, err := f.uc.RecordSale(context.Background(), dto.CreateSaleRequest{
		ProductID: "prod-1",
		Quantity:  3,
	})
	require.Error(t, err)
	assert.Equal(t, int64(10), f.st.stocks["prod-1"].AvailableQuantity)
	assert.Empty(t, f.st.sales)
}

// TestRecordSale_RollbackEnEscrituraDeStock: la venta insertada se descarta si
// el upsert del resumen falla.
func TestRecordSale_RollbackEnEscrituraDeStock(t *testing.T) {
	f := newFixture()
	f.setStock("prod-1", 10)
	f.tx.failStockWrite = true

	_, err := f.uc.RecordSale(context.Background(), dto.CreateSaleRequest{
		ProductID: "prod-1",
		Quantity:  3,
	})
	require.Error(t, err)
	assert.Empty(t, f.st.sales)
	assert.Equal(t, int64(10), f.st.stocks["prod-1"].AvailableQuantity)
}

// ── DeleteSale ────────────────────────────────────────────────────────────────

// TestDeleteSale_CompensacionSimetrica: eliminar la venta restaura exactamente
// la cantidad previa (deleteSale(recordSale(p, q)) == estado inicial).
func TestDeleteSale_CompensacionSimetrica(t *testing.T) {
	f := newFixture()
	f.setStock("prod-1", 12)

	sale, err := f.uc.RecordSale(context.Background(), dto.CreateSaleRequest{
		ProductID: "prod-1",
		Quantity:  5,
	})
	require.NoError(t, err)
	require.Equal(t, int64(7), f.st.stocks["prod-1"].AvailableQuantity)

	require.NoError(t, f.uc.DeleteSale(context.Background(), sale.ID))
	assert.Equal(t, int64(12), f.st.stocks["prod-1"].AvailableQuantity)
	assert.Empty(t, f.st.sales)
}

// TestDeleteSale_Inexistente: política uniforme de entidad ausente -> ErrNotFound,
// sin tocar el stock.
func TestDeleteSale_Inexistente(t *testing.T) {
	f := newFixture()
	f.setStock("prod-1", 8)

	err := f.uc.DeleteSale(context.Background(), "venta-fantasma")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, int64(8), f.st.stocks["prod-1"].AvailableQuantity)
}

func TestDeleteSale_IDVacio(t *testing.T) {
	f := newFixture()
	assert.ErrorIs(t, f.uc.DeleteSale(context.Background(), ""), domain.ErrInvalidInput)
}

// ── RecordPurchase ────────────────────────────────────────────────────────────

// TestRecordPurchase_IncrementaStock: la compra suma al disponible en la misma
// transacción (simétrico con las ventas).
func TestRecordPurchase_IncrementaStock(t *testing.T) {
	f := newFixture()
	f.setStock("prod-1", 3)

	p, err := f.uc.RecordPurchase(context.Background(), dto.CreatePurchaseRequest{
		ProductID:  "prod-1",
		SupplierID: "sup-1",
		Quantity:   20,
		UnitCost:   decimal.NewFromFloat(2.50),
	})
	require.NoError(t, err)
	require.NotNil(t, p)

	assert.Equal(t, int64(23), f.st.stocks["prod-1"].AvailableQuantity)
	require.Len(t, f.st.purchases, 1)
}

// TestRecordPurchase_SinResumenPrevio: primera compra de un producto crea el
// resumen desde cero.
func TestRecordPurchase_SinResumenPrevio(t *testing.T) {
	f := newFixture()

	_, err := f.uc.RecordPurchase(context.Background(), dto.CreatePurchaseRequest{
		ProductID:  "prod-1",
		SupplierID: "sup-1",
		Quantity:   15,
		UnitCost:   decimal.NewFromInt(3),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(15), f.st.stocks["prod-1"].AvailableQuantity)
}

// TestRecordPurchase_MaterializaLote: compra con número de lote materializa la
// fila del lote con su vencimiento y actualiza la proyección del resumen.
func TestRecordPurchase_MaterializaLote(t *testing.T) {
	f := newFixture()
	exp := testNow.AddDate(0, 2, 0)

	_, err := f.uc.RecordPurchase(context.Background(), dto.CreatePurchaseRequest{
		ProductID:      "prod-1",
		SupplierID:     "sup-1",
		LotNumber:      "L-2026-001",
		Quantity:       10,
		UnitCost:       decimal.NewFromInt(2),
		ExpirationDate: &exp,
	})
	require.NoError(t, err)

	lot, ok := f.st.lots[lotKey("L-2026-001", "prod-1")]
	require.True(t, ok)
	require.NotNil(t, lot.ExpirationDate)
	assert.True(t, lot.ExpirationDate.Equal(exp))

	stock := f.st.stocks["prod-1"]
	assert.Equal(t, "L-2026-001", stock.NextLotNumber)
	require.NotNil(t, stock.NextLotExpiresAt)
	assert.True(t, stock.NextLotExpiresAt.Equal(exp))
}

// TestRecordPurchase_ProyeccionConservaElMasProximo: un lote con vencimiento más
// lejano no desplaza la proyección; uno más próximo sí.
func TestRecordPurchase_ProyeccionConservaElMasProximo(t *testing.T) {
	f := newFixture()
	cerca := testNow.AddDate(0, 1, 0)
	lejos := testNow.AddDate(0, 6, 0)
	masCerca := testNow.AddDate(0, 0, 10)

	buy := func(lot string, exp time.Time) {
		_, err := f.uc.RecordPurchase(context.Background(), dto.CreatePurchaseRequest{
			ProductID:      "prod-1",
			SupplierID:     "sup-1",
			LotNumber:      lot,
			Quantity:       5,
			UnitCost:       decimal.NewFromInt(1),
			ExpirationDate: &exp,
		})
		require.NoError(t, err)
	}

	buy("L-1", cerca)
	buy("L-2", lejos)
	assert.Equal(t, "L-1", f.st.stocks["prod-1"].NextLotNumber)

	buy("L-3", masCerca)
	assert.Equal(t, "L-3", f.st.stocks["prod-1"].NextLotNumber)
}

// TestRecordPurchase_EntradaInvalida: cantidad no positiva, costo negativo o
// identificadores vacíos se rechazan sin efectos.
func TestRecordPurchase_EntradaInvalida(t *testing.T) {
	f := newFixture()

	cases := []dto.CreatePurchaseRequest{
		{ProductID: "prod-1", SupplierID: "sup-1", Quantity: 0, UnitCost: decimal.NewFromInt(1)},
		{ProductID: "prod-1", SupplierID: "sup-1", Quantity: 5, UnitCost: decimal.NewFromInt(-1)},
		{ProductID: "", SupplierID: "sup-1", Quantity: 5, UnitCost: decimal.NewFromInt(1)},
		{ProductID: "prod-1", SupplierID: "", Quantity: 5, UnitCost: decimal.NewFromInt(1)},
	}
	for _, in := range cases {
		_, err := f.uc.RecordPurchase(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
	assert.Empty(t, f.st.purchases)
}

// TestRecordPurchase_ProveedorInexistente devuelve ErrNotFound.
func TestRecordPurchase_ProveedorInexistente(t *testing.T) {
	f := newFixture()

	_, err := f.uc.RecordPurchase(context.Background(), dto.CreatePurchaseRequest{
		ProductID:  "prod-1",
		SupplierID: "sup-fantasma",
		Quantity:   5,
		UnitCost:   decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ── Secuencias ────────────────────────────────────────────────────────────────

// TestSecuencia_NoNegatividad: ninguna secuencia válida de ventas/compras deja
// el disponible por debajo de cero.
func TestSecuencia_NoNegatividad(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.uc.RecordPurchase(ctx, dto.CreatePurchaseRequest{
		ProductID: "prod-1", SupplierID: "sup-1", Quantity: 10, UnitCost: decimal.NewFromInt(1),
	})
	require.NoError(t, err)

	sell := func(q int64) error {
		_, err := f.uc.RecordSale(ctx, dto.CreateSaleRequest{ProductID: "prod-1", Quantity: q})
		return err
	}

	require.NoError(t, sell(6))
	require.NoError(t, sell(4))
	assert.ErrorIs(t, sell(1), domain.ErrInsufficientStock)
	assert.Equal(t, int64(0), f.st.stocks["prod-1"].AvailableQuantity)
}
