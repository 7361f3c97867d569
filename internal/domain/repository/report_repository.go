package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jmcastano/inventario-retail/internal/domain/entity"
)

// MonthlyQuantityRow cantidad agregada para un mes calendario (1–12).
// Los meses sin filas no aparecen; el caso de uso rellena con cero.
type MonthlyQuantityRow struct {
	Month    int
	Quantity int64
}

// TopProductRow producto con su cantidad total vendida.
type TopProductRow struct {
	ProductID string
	Name      string
	Quantity  int64
}

// StockRow resumen de stock con el nombre del producto resuelto.
type StockRow struct {
	ProductID         string
	Name              string
	AvailableQuantity int64
}

// ExpiringPurchaseRow compra con fecha de vencimiento dentro de la ventana consultada.
type ExpiringPurchaseRow struct {
	PurchaseID     string
	ProductID      string
	ProductName    string
	LotNumber      string
	ExpirationDate time.Time
}

// SaleEventRow, PurchaseEventRow, StockEventRow y PriceEventRow son los candidatos
// del feed de actividad: la fila más reciente de cada fuente, con el nombre del
// producto ya resuelto.
type SaleEventRow struct {
	ProductName string
	Quantity    int64
	SoldAt      time.Time
}

type PurchaseEventRow struct {
	ProductName string
	Quantity    int64
	PurchasedAt time.Time
}

type StockEventRow struct {
	ProductName       string
	AvailableQuantity int64
	LastUpdated       time.Time
}

type PriceEventRow struct {
	ProductName string
	Price       decimal.Decimal
	EffectiveAt time.Time
}

// ReportRepository consultas de solo lectura para reportes, alertas y actividad.
// Ningún método adquiere bloqueos; la consistencia de lectura es la del store.
type ReportRepository interface {
	// MonthlySaleQuantities agrupa ventas por mes calendario (sumando todos los años).
	MonthlySaleQuantities(ctx context.Context) ([]MonthlyQuantityRow, error)
	// MonthlyPurchaseQuantities agrupa compras por mes calendario (sumando todos los años).
	MonthlyPurchaseQuantities(ctx context.Context) ([]MonthlyQuantityRow, error)
	// TopProductsSold agrupa ventas por producto y devuelve los `limit` de mayor cantidad.
	TopProductsSold(ctx context.Context, limit int) ([]TopProductRow, error)
	// ListStockWithProduct devuelve todos los resúmenes de stock con nombre de producto.
	ListStockWithProduct(ctx context.Context) ([]StockRow, error)
	// ListExpiringPurchases devuelve compras con vencimiento no nulo y <= cutoff,
	// incluidas las ya vencidas.
	ListExpiringPurchases(ctx context.Context, cutoff time.Time) ([]ExpiringPurchaseRow, error)
	// ListPrices devuelve la serie completa de precios de todos los productos.
	ListPrices(ctx context.Context) ([]entity.ProductPrice, error)

	// Candidatos del feed de actividad: la fila más reciente de cada fuente,
	// nil cuando la fuente está vacía.
	LatestSale(ctx context.Context) (*SaleEventRow, error)
	LatestPurchase(ctx context.Context) (*PurchaseEventRow, error)
	LatestStockUpdate(ctx context.Context) (*StockEventRow, error)
	LatestPriceChange(ctx context.Context) (*PriceEventRow, error)
}
