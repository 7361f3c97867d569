package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSaleRequest registra una venta. LotNumber es texto libre opcional.
type CreateSaleRequest struct {
	ProductID string `json:"product_id"`
	LotNumber string `json:"lot_number"`
	Quantity  int64  `json:"quantity"`
}

// SaleResponse representación HTTP de una venta.
type SaleResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	LotNumber string    `json:"lot_number,omitempty"`
	Quantity  int64     `json:"quantity"`
	SoldAt    time.Time `json:"sold_at"`
}

// CreatePurchaseRequest registra una compra. ExpirationDate opcional; si viene
// acompañada de LotNumber, el lote se materializa con ese vencimiento.
type CreatePurchaseRequest struct {
	ProductID      string          `json:"product_id"`
	SupplierID     string          `json:"supplier_id"`
	LotNumber      string          `json:"lot_number"`
	Quantity       int64           `json:"quantity"`
	UnitCost       decimal.Decimal `json:"unit_cost"`
	ExpirationDate *time.Time      `json:"expiration_date"`
}

// PurchaseResponse representación HTTP de una compra.
type PurchaseResponse struct {
	ID             string          `json:"id"`
	ProductID      string          `json:"product_id"`
	SupplierID     string          `json:"supplier_id"`
	LotNumber      string          `json:"lot_number,omitempty"`
	Quantity       int64           `json:"quantity"`
	UnitCost       decimal.Decimal `json:"unit_cost"`
	ExpirationDate *time.Time      `json:"expiration_date,omitempty"`
	PurchasedAt    time.Time       `json:"purchased_at"`
}
