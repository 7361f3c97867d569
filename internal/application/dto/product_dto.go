package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest alta de producto.
type CreateProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

// UpdateProductRequest actualización de producto.
type UpdateProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

// ProductResponse representación HTTP de un producto.
type ProductResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// CreatePriceRequest nuevo registro en la serie de precios de un producto.
// EffectiveAt vacío equivale a "ahora".
type CreatePriceRequest struct {
	Price       decimal.Decimal `json:"price"`
	EffectiveAt *time.Time      `json:"effective_at"`
}

// PriceResponse registro de precio.
type PriceResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	Price       decimal.Decimal `json:"price"`
	EffectiveAt time.Time       `json:"effective_at"`
}
