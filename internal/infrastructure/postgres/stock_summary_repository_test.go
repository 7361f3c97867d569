package postgres

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmcastano/inventario-retail/internal/domain/entity"
)

// scriptQuerier registra cada sentencia ejecutada contra el repositorio, en
// orden, con sus argumentos. Permite verificar el protocolo SQL sin base real.
type scriptQuerier struct {
	calls []querierCall
	scan  func(dest ...any) error
}

type querierCall struct {
	sql  string
	args []any
}

type scriptRow struct {
	scan func(dest ...any) error
}

func (r *scriptRow) Scan(dest ...any) error { return r.scan(dest...) }

func (q *scriptQuerier) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	q.calls = append(q.calls, querierCall{sql: sql, args: args})
	return pgconn.CommandTag{}, nil
}

func (q *scriptQuerier) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	q.calls = append(q.calls, querierCall{sql: sql, args: args})
	return nil, nil
}

func (q *scriptQuerier) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	q.calls = append(q.calls, querierCall{sql: sql, args: args})
	return &scriptRow{scan: q.scan}
}

// TestStockSummaryRepo_GetForUpdate_SiembraAntesDeBloquear: el SELECT FOR UPDATE
// sobre una fila inexistente no bloquea nada, así que dos primeras compras
// concurrentes del mismo producto leerían ambas cero y una pisaría a la otra.
// El repositorio debe insertar la fila en cero (ON CONFLICT DO NOTHING) antes
// de bloquearla.
func TestStockSummaryRepo_GetForUpdate_SiembraAntesDeBloquear(t *testing.T) {
	q := &scriptQuerier{scan: func(dest ...any) error {
		*dest[0].(*string) = "prod-1"
		*dest[1].(*int64) = 0
		*dest[2].(*string) = ""
		*dest[3].(**time.Time) = nil
		*dest[4].(*time.Time) = time.Now()
		return nil
	}}
	repo := NewStockSummaryRepository(q)

	s, err := repo.GetForUpdate("prod-1")
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, int64(0), s.AvailableQuantity)

	require.Len(t, q.calls, 2)
	assert.Contains(t, q.calls[0].sql, "INSERT INTO stock_summary")
	assert.Contains(t, q.calls[0].sql, "ON CONFLICT (product_id) DO NOTHING")
	assert.Equal(t, []any{"prod-1"}, q.calls[0].args)
	assert.Contains(t, q.calls[1].sql, "FOR UPDATE")
}

// TestStockSummaryRepo_GetForUpdate_DevuelveFilaExistente: con fila presente la
// siembra es un no-op y el repositorio entrega los valores bloqueados.
func TestStockSummaryRepo_GetForUpdate_DevuelveFilaExistente(t *testing.T) {
	updated := time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)
	q := &scriptQuerier{scan: func(dest ...any) error {
		*dest[0].(*string) = "prod-1"
		*dest[1].(*int64) = 42
		*dest[2].(*string) = "L-9"
		*dest[3].(**time.Time) = nil
		*dest[4].(*time.Time) = updated
		return nil
	}}
	repo := NewStockSummaryRepository(q)

	s, err := repo.GetForUpdate("prod-1")
	require.NoError(t, err)
	assert.Equal(t, int64(42), s.AvailableQuantity)
	assert.Equal(t, "L-9", s.NextLotNumber)
	assert.True(t, s.LastUpdated.Equal(updated))
}

// TestStockSummaryRepo_Upsert_PersisteRelojDeLaAplicacion: last_updated viaja
// como parámetro (el reloj lo pone el caso de uso, no la base).
func TestStockSummaryRepo_Upsert_PersisteRelojDeLaAplicacion(t *testing.T) {
	q := &scriptQuerier{}
	repo := NewStockSummaryRepository(q)

	updated := time.Date(2026, 5, 10, 9, 30, 0, 0, time.UTC)
	err := repo.Upsert(&entity.StockSummary{
		ProductID:         "prod-1",
		AvailableQuantity: 7,
		LastUpdated:       updated,
	})
	require.NoError(t, err)

	require.Len(t, q.calls, 1)
	call := q.calls[0]
	assert.NotContains(t, strings.ToLower(call.sql), "now()")
	require.Len(t, call.args, 5)
	got, ok := call.args[4].(time.Time)
	require.True(t, ok)
	assert.True(t, got.Equal(updated))
}
