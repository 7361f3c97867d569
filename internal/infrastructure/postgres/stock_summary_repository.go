package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jmcastano/inventario-retail/internal/domain/entity"
	"github.com/jmcastano/inventario-retail/internal/domain/repository"
)

var _ repository.StockSummaryRepository = (*StockSummaryRepo)(nil)

// StockSummaryRepo implementación de StockSummaryRepository sobre PostgreSQL (usable con pool o tx).
type StockSummaryRepo struct {
	q Querier
}

// NewStockSummaryRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockSummaryRepository(q Querier) *StockSummaryRepo {
	return &StockSummaryRepo{q: q}
}

// Get obtiene el resumen de stock de un producto. Sin fila devuelve cantidad cero.
func (r *StockSummaryRepo) Get(productID string) (*entity.StockSummary, error) {
	query := `
		SELECT product_id, available_quantity, next_lot_number, next_lot_expires_at, last_updated
		FROM stock_summary WHERE product_id = $1`
	var s entity.StockSummary
	err := r.q.QueryRow(context.Background(), query, productID).Scan(
		&s.ProductID, &s.AvailableQuantity, &s.NextLotNumber, &s.NextLotExpiresAt, &s.LastUpdated,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.StockSummary{ProductID: productID}, nil
		}
		return nil, fmt.Errorf("get stock summary: %w", err)
	}
	return &s, nil
}

// GetForUpdate obtiene el resumen y bloquea la fila para update (SELECT FOR UPDATE).
// Si la fila no existe la siembra en cero antes de bloquear: sin fila no hay
// bloqueo, y dos primeras compras concurrentes del mismo producto leerían ambas
// cero y la última sobrescribiría a la otra.
func (r *StockSummaryRepo) GetForUpdate(productID string) (*entity.StockSummary, error) {
	seed := `
		INSERT INTO stock_summary (product_id, available_quantity)
		VALUES ($1, 0)
		ON CONFLICT (product_id) DO NOTHING`
	if _, err := r.q.Exec(context.Background(), seed, productID); err != nil {
		return nil, fmt.Errorf("seed stock summary: %w", err)
	}
	query := `
		SELECT product_id, available_quantity, next_lot_number, next_lot_expires_at, last_updated
		FROM stock_summary WHERE product_id = $1
		FOR UPDATE`
	var s entity.StockSummary
	err := r.q.QueryRow(context.Background(), query, productID).Scan(
		&s.ProductID, &s.AvailableQuantity, &s.NextLotNumber, &s.NextLotExpiresAt, &s.LastUpdated,
	)
	if err != nil {
		return nil, fmt.Errorf("get stock summary for update: %w", err)
	}
	return &s, nil
}

// Upsert inserta o actualiza el resumen de stock por producto.
func (r *StockSummaryRepo) Upsert(summary *entity.StockSummary) error {
	query := `
		INSERT INTO stock_summary (product_id, available_quantity, next_lot_number, next_lot_expires_at, last_updated)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (product_id)
		DO UPDATE SET available_quantity = EXCLUDED.available_quantity,
			next_lot_number = EXCLUDED.next_lot_number,
			next_lot_expires_at = EXCLUDED.next_lot_expires_at,
			last_updated = EXCLUDED.last_updated`
	_, err := r.q.Exec(context.Background(), query,
		summary.ProductID, summary.AvailableQuantity, summary.NextLotNumber, summary.NextLotExpiresAt, summary.LastUpdated,
	)
	if err != nil {
		return fmt.Errorf("upsert stock summary: %w", err)
	}
	return nil
}

// List devuelve todos los resúmenes de stock.
func (r *StockSummaryRepo) List() ([]*entity.StockSummary, error) {
	query := `
		SELECT product_id, available_quantity, next_lot_number, next_lot_expires_at, last_updated
		FROM stock_summary ORDER BY product_id`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list stock summaries: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockSummary
	for rows.Next() {
		var s entity.StockSummary
		if err := rows.Scan(&s.ProductID, &s.AvailableQuantity, &s.NextLotNumber, &s.NextLotExpiresAt, &s.LastUpdated); err != nil {
			return nil, fmt.Errorf("scan stock summary: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
