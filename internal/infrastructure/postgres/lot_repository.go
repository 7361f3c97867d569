package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jmcastano/inventario-retail/internal/domain/entity"
	"github.com/jmcastano/inventario-retail/internal/domain/repository"
)

var _ repository.LotRepository = (*LotRepo)(nil)

// LotRepo implementación del puerto LotRepository sobre PostgreSQL.
// Clave compuesta (lot_number, product_id).
type LotRepo struct {
	q Querier
}

// NewLotRepository construye el adaptador de persistencia para lotes.
func NewLotRepository(q Querier) *LotRepo {
	return &LotRepo{q: q}
}

// Upsert inserta el lote si no existe; si existe actualiza su fecha de vencimiento.
func (r *LotRepo) Upsert(lot *entity.Lot) error {
	query := `
		INSERT INTO lots (lot_number, product_id, expiration_date, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (lot_number, product_id)
		DO UPDATE SET expiration_date = EXCLUDED.expiration_date`
	_, err := r.q.Exec(context.Background(), query,
		lot.LotNumber, lot.ProductID, lot.ExpirationDate, lot.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert lot: %w", err)
	}
	return nil
}

// Get obtiene un lote por su clave compuesta.
func (r *LotRepo) Get(lotNumber, productID string) (*entity.Lot, error) {
	query := `
		SELECT lot_number, product_id, expiration_date, created_at
		FROM lots WHERE lot_number = $1 AND product_id = $2`
	var l entity.Lot
	err := r.q.QueryRow(context.Background(), query, lotNumber, productID).Scan(
		&l.LotNumber, &l.ProductID, &l.ExpirationDate, &l.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lot: %w", err)
	}
	return &l, nil
}

// ListByProduct lista los lotes de un producto, los más próximos a vencer primero.
func (r *LotRepo) ListByProduct(productID string) ([]*entity.Lot, error) {
	query := `
		SELECT lot_number, product_id, expiration_date, created_at
		FROM lots WHERE product_id = $1
		ORDER BY expiration_date ASC NULLS LAST, lot_number ASC`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list lots: %w", err)
	}
	defer rows.Close()
	var list []*entity.Lot
	for rows.Next() {
		var l entity.Lot
		if err := rows.Scan(&l.LotNumber, &l.ProductID, &l.ExpirationDate, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan lot: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
