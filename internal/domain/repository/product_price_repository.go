package repository

import "github.com/jmcastano/inventario-retail/internal/domain/entity"

// ProductPriceRepository define el puerto para la serie temporal de precios.
// Serie append-only: no hay Update ni Delete.
type ProductPriceRepository interface {
	Create(price *entity.ProductPrice) error
	ListByProduct(productID string) ([]entity.ProductPrice, error)
}
