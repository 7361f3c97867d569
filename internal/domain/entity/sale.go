package entity

import "time"

// Sale es un evento inmutable de salida de mercancía.
// LotNumber es texto libre informativo; no se valida contra la tabla de lotes.
type Sale struct {
	ID        string
	ProductID string
	LotNumber string
	Quantity  int64
	SoldAt    time.Time
}
