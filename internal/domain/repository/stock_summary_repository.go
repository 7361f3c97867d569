package repository

import "github.com/jmcastano/inventario-retail/internal/domain/entity"

// StockSummaryRepository define el puerto para consultar/actualizar el stock
// materializado por producto. Usado dentro de transacciones para garantizar
// consistencia: la secuencia leer-verificar-escribir del ledger siempre pasa
// por GetForUpdate.
type StockSummaryRepository interface {
	Get(productID string) (*entity.StockSummary, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE). Si no existe
	// fila la crea con cantidad cero y la bloquea, para que dos transacciones
	// concurrentes sobre el mismo producto siempre se serialicen.
	GetForUpdate(productID string) (*entity.StockSummary, error)
	Upsert(summary *entity.StockSummary) error
	List() ([]*entity.StockSummary, error)
}
