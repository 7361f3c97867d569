package repository

import "github.com/jmcastano/inventario-retail/internal/domain/entity"

// SaleRepository define el puerto de persistencia para ventas (eventos de salida).
// Create y Delete se invocan siempre dentro de la transacción del ledger.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	GetByID(id string) (*entity.Sale, error)
	Delete(id string) error
	List(limit, offset int) ([]*entity.Sale, error)
}
