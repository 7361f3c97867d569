package entity

import "time"

// StockSummary es el agregado materializado de stock disponible por producto.
// Invariante: AvailableQuantity == suma de compras - suma de ventas, y nunca negativo
// después de una transacción confirmada. Es la única fuente consultada antes de
// autorizar una venta.
//
// NextLotNumber/NextLotExpiresAt proyectan el lote más próximo a vencer; se
// refrescan dentro de la misma transacción que registra la compra.
type StockSummary struct {
	ProductID         string
	AvailableQuantity int64
	NextLotNumber     string
	NextLotExpiresAt  *time.Time
	LastUpdated       time.Time
}
