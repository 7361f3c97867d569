package repository

import "github.com/jmcastano/inventario-retail/internal/domain/entity"

// PurchaseRepository define el puerto de persistencia para compras (eventos de entrada).
// Las compras son inmutables: no hay Update.
type PurchaseRepository interface {
	Create(purchase *entity.Purchase) error
	GetByID(id string) (*entity.Purchase, error)
	List(limit, offset int) ([]*entity.Purchase, error)
}
