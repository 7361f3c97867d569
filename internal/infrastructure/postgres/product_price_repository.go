package postgres

import (
	"context"
	"fmt"

	"github.com/jmcastano/inventario-retail/internal/domain"
	"github.com/jmcastano/inventario-retail/internal/domain/entity"
	"github.com/jmcastano/inventario-retail/internal/domain/repository"
)

var _ repository.ProductPriceRepository = (*ProductPriceRepo)(nil)

// ProductPriceRepo implementación del puerto ProductPriceRepository sobre PostgreSQL.
// La serie de precios es append-only.
type ProductPriceRepo struct {
	q Querier
}

// NewProductPriceRepository construye el adaptador de persistencia para precios.
func NewProductPriceRepository(q Querier) *ProductPriceRepo {
	return &ProductPriceRepo{q: q}
}

// Create agrega un punto a la serie de precios del producto.
func (r *ProductPriceRepo) Create(price *entity.ProductPrice) error {
	query := `
		INSERT INTO product_prices (id, product_id, price, effective_at)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query,
		price.ID, price.ProductID, price.Price, price.EffectiveAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product price: %w", err)
	}
	return nil
}

// ListByProduct devuelve la serie de precios de un producto, ordenada por vigencia.
func (r *ProductPriceRepo) ListByProduct(productID string) ([]entity.ProductPrice, error) {
	query := `
		SELECT id, product_id, price, effective_at
		FROM product_prices WHERE product_id = $1
		ORDER BY effective_at ASC`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list product prices: %w", err)
	}
	defer rows.Close()
	var list []entity.ProductPrice
	for rows.Next() {
		var p entity.ProductPrice
		if err := rows.Scan(&p.ID, &p.ProductID, &p.Price, &p.EffectiveAt); err != nil {
			return nil, fmt.Errorf("scan product price: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
