package repository

import "github.com/jmcastano/inventario-retail/internal/domain/entity"

// LotRepository define el puerto de persistencia para lotes de recepción.
// Clave compuesta (lotNumber, productID).
type LotRepository interface {
	Upsert(lot *entity.Lot) error
	Get(lotNumber, productID string) (*entity.Lot, error)
	ListByProduct(productID string) ([]*entity.Lot, error)
}
