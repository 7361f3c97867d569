package entity

import "time"

// Lot representa un lote de recepción: clave compuesta (LotNumber, ProductID).
// ExpirationDate es opcional; los lotes sin vencimiento no generan alertas de caducidad.
type Lot struct {
	LotNumber      string
	ProductID      string
	ExpirationDate *time.Time
	CreatedAt      time.Time
}
