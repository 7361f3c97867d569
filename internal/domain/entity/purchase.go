package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase es un evento inmutable de entrada de mercancía.
// LotNumber vacío significa compra sin lote asociado.
type Purchase struct {
	ID             string
	ProductID      string
	SupplierID     string
	LotNumber      string
	Quantity       int64
	UnitCost       decimal.Decimal
	ExpirationDate *time.Time
	PurchasedAt    time.Time
}
