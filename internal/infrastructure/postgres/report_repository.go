package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jmcastano/inventario-retail/internal/domain/entity"
	"github.com/jmcastano/inventario-retail/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura para reportes, alertas y actividad.
type ReportRepo struct {
	pool *pgxpool.Pool
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

// MonthlySaleQuantities agrupa ventas por mes calendario sumando todos los años.
func (r *ReportRepo) MonthlySaleQuantities(ctx context.Context) ([]repository.MonthlyQuantityRow, error) {
	const query = `
	SELECT EXTRACT(MONTH FROM sold_at)::INT AS month, SUM(quantity) AS quantity
	FROM sales
	GROUP BY month
	ORDER BY month`
	return r.monthlyQuantities(ctx, query, "reports.MonthlySaleQuantities")
}

// MonthlyPurchaseQuantities agrupa compras por mes calendario sumando todos los años.
func (r *ReportRepo) MonthlyPurchaseQuantities(ctx context.Context) ([]repository.MonthlyQuantityRow, error) {
	const query = `
	SELECT EXTRACT(MONTH FROM purchased_at)::INT AS month, SUM(quantity) AS quantity
	FROM purchases
	GROUP BY month
	ORDER BY month`
	return r.monthlyQuantities(ctx, query, "reports.MonthlyPurchaseQuantities")
}

func (r *ReportRepo) monthlyQuantities(ctx context.Context, query, op string) ([]repository.MonthlyQuantityRow, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	var results []repository.MonthlyQuantityRow
	for rows.Next() {
		var row repository.MonthlyQuantityRow
		if err := rows.Scan(&row.Month, &row.Quantity); err != nil {
			return nil, fmt.Errorf("%s scan: %w", op, err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// TopProductsSold agrupa ventas por producto y devuelve los `limit` de mayor
// cantidad. Empates se resuelven por nombre de producto.
func (r *ReportRepo) TopProductsSold(ctx context.Context, limit int) ([]repository.TopProductRow, error) {
	const query = `
	SELECT s.product_id, p.name, SUM(s.quantity) AS quantity
	FROM sales s
	JOIN products p ON p.id = s.product_id
	GROUP BY s.product_id, p.name
	ORDER BY quantity DESC, p.name ASC
	LIMIT $1`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("reports.TopProductsSold: %w", err)
	}
	defer rows.Close()
	var results []repository.TopProductRow
	for rows.Next() {
		var row repository.TopProductRow
		if err := rows.Scan(&row.ProductID, &row.Name, &row.Quantity); err != nil {
			return nil, fmt.Errorf("reports.TopProductsSold scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// ListStockWithProduct devuelve todos los resúmenes de stock con el nombre del producto resuelto.
func (r *ReportRepo) ListStockWithProduct(ctx context.Context) ([]repository.StockRow, error) {
	const query = `
	SELECT ss.product_id, p.name, ss.available_quantity
	FROM stock_summary ss
	JOIN products p ON p.id = ss.product_id
	ORDER BY p.name`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("reports.ListStockWithProduct: %w", err)
	}
	defer rows.Close()
	var results []repository.StockRow
	for rows.Next() {
		var row repository.StockRow
		if err := rows.Scan(&row.ProductID, &row.Name, &row.AvailableQuantity); err != nil {
			return nil, fmt.Errorf("reports.ListStockWithProduct scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// ListExpiringPurchases devuelve compras con vencimiento no nulo y <= cutoff,
// incluidas las ya vencidas, las más próximas primero.
func (r *ReportRepo) ListExpiringPurchases(ctx context.Context, cutoff time.Time) ([]repository.ExpiringPurchaseRow, error) {
	const query = `
	SELECT c.id, c.product_id, p.name, c.lot_number, c.expiration_date
	FROM purchases c
	JOIN products p ON p.id = c.product_id
	WHERE c.expiration_date IS NOT NULL AND c.expiration_date <= $1
	ORDER BY c.expiration_date ASC`
	rows, err := r.pool.Query(ctx, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("reports.ListExpiringPurchases: %w", err)
	}
	defer rows.Close()
	var results []repository.ExpiringPurchaseRow
	for rows.Next() {
		var row repository.ExpiringPurchaseRow
		if err := rows.Scan(&row.PurchaseID, &row.ProductID, &row.ProductName, &row.LotNumber, &row.ExpirationDate); err != nil {
			return nil, fmt.Errorf("reports.ListExpiringPurchases scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// ListPrices devuelve la serie completa de precios de todos los productos.
func (r *ReportRepo) ListPrices(ctx context.Context) ([]entity.ProductPrice, error) {
	const query = `
	SELECT id, product_id, price, effective_at
	FROM product_prices
	ORDER BY product_id, effective_at`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("reports.ListPrices: %w", err)
	}
	defer rows.Close()
	var results []entity.ProductPrice
	for rows.Next() {
		var p entity.ProductPrice
		if err := rows.Scan(&p.ID, &p.ProductID, &p.Price, &p.EffectiveAt); err != nil {
			return nil, fmt.Errorf("reports.ListPrices scan: %w", err)
		}
		results = append(results, p)
	}
	return results, rows.Err()
}

// LatestSale devuelve la venta más reciente con el nombre del producto, nil si no hay ventas.
func (r *ReportRepo) LatestSale(ctx context.Context) (*repository.SaleEventRow, error) {
	const query = `
	SELECT p.name, s.quantity, s.sold_at
	FROM sales s
	JOIN products p ON p.id = s.product_id
	ORDER BY s.sold_at DESC
	LIMIT 1`
	var row repository.SaleEventRow
	err := r.pool.QueryRow(ctx, query).Scan(&row.ProductName, &row.Quantity, &row.SoldAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("reports.LatestSale: %w", err)
	}
	return &row, nil
}

// LatestPurchase devuelve la compra más reciente con el nombre del producto, nil si no hay compras.
func (r *ReportRepo) LatestPurchase(ctx context.Context) (*repository.PurchaseEventRow, error) {
	const query = `
	SELECT p.name, c.quantity, c.purchased_at
	FROM purchases c
	JOIN products p ON p.id = c.product_id
	ORDER BY c.purchased_at DESC
	LIMIT 1`
	var row repository.PurchaseEventRow
	err := r.pool.QueryRow(ctx, query).Scan(&row.ProductName, &row.Quantity, &row.PurchasedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("reports.LatestPurchase: %w", err)
	}
	return &row, nil
}

// LatestStockUpdate devuelve el resumen de stock actualizado más recientemente, nil si no hay.
func (r *ReportRepo) LatestStockUpdate(ctx context.Context) (*repository.StockEventRow, error) {
	const query = `
	SELECT p.name, ss.available_quantity, ss.last_updated
	FROM stock_summary ss
	JOIN products p ON p.id = ss.product_id
	ORDER BY ss.last_updated DESC
	LIMIT 1`
	var row repository.StockEventRow
	err := r.pool.QueryRow(ctx, query).Scan(&row.ProductName, &row.AvailableQuantity, &row.LastUpdated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("reports.LatestStockUpdate: %w", err)
	}
	return &row, nil
}

// LatestPriceChange devuelve el cambio de precio más reciente, nil si no hay.
func (r *ReportRepo) LatestPriceChange(ctx context.Context) (*repository.PriceEventRow, error) {
	const query = `
	SELECT p.name, pp.price, pp.effective_at
	FROM product_prices pp
	JOIN products p ON p.id = pp.product_id
	ORDER BY pp.effective_at DESC
	LIMIT 1`
	var row repository.PriceEventRow
	err := r.pool.QueryRow(ctx, query).Scan(&row.ProductName, &row.Price, &row.EffectiveAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("reports.LatestPriceChange: %w", err)
	}
	return &row, nil
}
