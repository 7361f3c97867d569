// Package ledger implementa el núcleo transaccional de stock: toda mutación del
// resumen materializado ocurre junto con el evento que la causa, dentro de una
// sola transacción con bloqueo de fila (SELECT FOR UPDATE). Es la base de datos,
// no la aplicación, quien arbitra la carrera entre dos ventas concurrentes.
package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jmcastano/inventario-retail/internal/application/dto"
	"github.com/jmcastano/inventario-retail/internal/domain"
	"github.com/jmcastano/inventario-retail/internal/domain/entity"
	"github.com/jmcastano/inventario-retail/internal/domain/repository"
)

// LedgerUseCase registra ventas y compras de forma transaccional y compensa
// el stock al eliminar una venta.
type LedgerUseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	supplierRepo repository.SupplierRepository
	now          func() time.Time
}

// NewLedgerUseCase construye el caso de uso. `now` es la fuente de reloj
// (time.Now en producción).
func NewLedgerUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	supplierRepo repository.SupplierRepository,
	now func() time.Time,
) *LedgerUseCase {
	return &LedgerUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		supplierRepo: supplierRepo,
		now:          now,
	}
}

// RecordSale inicia una transacción, bloquea el resumen de stock del producto,
// verifica suficiencia, inserta la venta y decrementa el disponible. Si cualquier
// paso falla, la transacción completa se revierte: nunca queda una venta sin
// decremento ni un decremento sin venta.
func (uc *LedgerUseCase) RecordSale(ctx context.Context, in dto.CreateSaleRequest) (*entity.Sale, error) {
	if in.ProductID == "" || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	now := uc.now()
	sale := &entity.Sale{
		ID:        uuid.New().String(),
		ProductID: in.ProductID,
		LotNumber: in.LotNumber,
		Quantity:  in.Quantity,
		SoldAt:    now,
	}

	err = uc.txRunner.Run(ctx, func(
		saleRepo repository.SaleRepository,
		_ repository.PurchaseRepository,
		stockRepo repository.StockSummaryRepository,
		_ repository.LotRepository,
	) error {
		// Bloquea la fila de stock_summary; un resumen inexistente llega con
		// cantidad cero y falla la verificación de suficiencia.
		stock, err := stockRepo.GetForUpdate(in.ProductID)
		if err != nil {
			return err
		}
		if stock.AvailableQuantity < in.Quantity {
			return domain.ErrInsufficientStock
		}
		if err := saleRepo.Create(sale); err != nil {
			return err
		}
		stock.AvailableQuantity -= in.Quantity
		stock.LastUpdated = now
		return stockRepo.Upsert(stock)
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// DeleteSale elimina una venta y devuelve al stock exactamente la cantidad que
// esa venta había retirado (compensación simétrica). Venta inexistente: ErrNotFound.
func (uc *LedgerUseCase) DeleteSale(ctx context.Context, saleID string) error {
	if saleID == "" {
		return domain.ErrInvalidInput
	}
	now := uc.now()
	return uc.txRunner.Run(ctx, func(
		saleRepo repository.SaleRepository,
		_ repository.PurchaseRepository,
		stockRepo repository.StockSummaryRepository,
		_ repository.LotRepository,
	) error {
		sale, err := saleRepo.GetByID(saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}
		if err := saleRepo.Delete(sale.ID); err != nil {
			return err
		}
		stock, err := stockRepo.GetForUpdate(sale.ProductID)
		if err != nil {
			return err
		}
		stock.AvailableQuantity += sale.Quantity
		stock.LastUpdated = now
		return stockRepo.Upsert(stock)
	})
}

// RecordPurchase inserta la compra, materializa el lote si trae número y suma la
// cantidad al stock disponible, todo en la misma transacción. También refresca la
// proyección "próximo lote a vencer" del resumen.
func (uc *LedgerUseCase) RecordPurchase(ctx context.Context, in dto.CreatePurchaseRequest) (*entity.Purchase, error) {
	if in.ProductID == "" || in.SupplierID == "" || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.UnitCost.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	supplier, err := uc.supplierRepo.GetByID(in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}

	now := uc.now()
	purchase := &entity.Purchase{
		ID:             uuid.New().String(),
		ProductID:      in.ProductID,
		SupplierID:     in.SupplierID,
		LotNumber:      in.LotNumber,
		Quantity:       in.Quantity,
		UnitCost:       in.UnitCost,
		ExpirationDate: in.ExpirationDate,
		PurchasedAt:    now,
	}

	err = uc.txRunner.Run(ctx, func(
		_ repository.SaleRepository,
		purchaseRepo repository.PurchaseRepository,
		stockRepo repository.StockSummaryRepository,
		lotRepo repository.LotRepository,
	) error {
		if in.LotNumber != "" {
			lot := &entity.Lot{
				LotNumber:      in.LotNumber,
				ProductID:      in.ProductID,
				ExpirationDate: in.ExpirationDate,
				CreatedAt:      now,
			}
			if err := lotRepo.Upsert(lot); err != nil {
				return err
			}
		}
		if err := purchaseRepo.Create(purchase); err != nil {
			return err
		}
		stock, err := stockRepo.GetForUpdate(in.ProductID)
		if err != nil {
			return err
		}
		stock.AvailableQuantity += in.Quantity
		stock.LastUpdated = now
		if in.ExpirationDate != nil &&
			(stock.NextLotExpiresAt == nil || in.ExpirationDate.Before(*stock.NextLotExpiresAt)) {
			stock.NextLotNumber = in.LotNumber
			stock.NextLotExpiresAt = in.ExpirationDate
		}
		return stockRepo.Upsert(stock)
	})
	if err != nil {
		return nil, err
	}
	return purchase, nil
}
