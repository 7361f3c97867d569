package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductPrice es un registro de la serie de precios por producto (append-only).
// Puede haber varios registros con el mismo EffectiveAt; todos tienen el mismo
// rango y el desempate es arbitrario (ver pricing.ResolveActivePrice).
type ProductPrice struct {
	ID          string
	ProductID   string
	Price       decimal.Decimal
	EffectiveAt time.Time
}
