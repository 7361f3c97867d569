package ledger

import (
	"context"

	"github.com/jmcastano/inventario-retail/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el ledger de stock:
// o se confirman el evento y el resumen materializado juntos, o ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		saleRepo repository.SaleRepository,
		purchaseRepo repository.PurchaseRepository,
		stockRepo repository.StockSummaryRepository,
		lotRepo repository.LotRepository,
	) error) error
}
