package ledger

import (
	"github.com/jmcastano/inventario-retail/internal/application/dto"
	"github.com/jmcastano/inventario-retail/internal/domain"
	"github.com/jmcastano/inventario-retail/internal/domain/entity"
	"github.com/jmcastano/inventario-retail/internal/domain/repository"
)

// Queries lecturas del ledger fuera de transacción (listados y consultas por ID).
type Queries struct {
	saleRepo     repository.SaleRepository
	purchaseRepo repository.PurchaseRepository
}

// NewQueries construye las consultas con repos atados al pool.
func NewQueries(saleRepo repository.SaleRepository, purchaseRepo repository.PurchaseRepository) *Queries {
	return &Queries{saleRepo: saleRepo, purchaseRepo: purchaseRepo}
}

// GetSale devuelve una venta o ErrNotFound.
func (q *Queries) GetSale(id string) (*dto.SaleResponse, error) {
	sale, err := q.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	return ToSaleResponse(sale), nil
}

// ListSales lista ventas paginadas, las más recientes primero.
func (q *Queries) ListSales(page dto.PageRequest) ([]*dto.SaleResponse, error) {
	page.DefaultPage()
	sales, err := q.saleRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.SaleResponse, 0, len(sales))
	for _, s := range sales {
		out = append(out, ToSaleResponse(s))
	}
	return out, nil
}

// GetPurchase devuelve una compra o ErrNotFound.
func (q *Queries) GetPurchase(id string) (*dto.PurchaseResponse, error) {
	purchase, err := q.purchaseRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, domain.ErrNotFound
	}
	return ToPurchaseResponse(purchase), nil
}

// ListPurchases lista compras paginadas, las más recientes primero.
func (q *Queries) ListPurchases(page dto.PageRequest) ([]*dto.PurchaseResponse, error) {
	page.DefaultPage()
	purchases, err := q.purchaseRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PurchaseResponse, 0, len(purchases))
	for _, p := range purchases {
		out = append(out, ToPurchaseResponse(p))
	}
	return out, nil
}

// ToSaleResponse mapea la entidad al DTO HTTP.
func ToSaleResponse(s *entity.Sale) *dto.SaleResponse {
	return &dto.SaleResponse{
		ID:        s.ID,
		ProductID: s.ProductID,
		LotNumber: s.LotNumber,
		Quantity:  s.Quantity,
		SoldAt:    s.SoldAt,
	}
}

// ToPurchaseResponse mapea la entidad al DTO HTTP.
func ToPurchaseResponse(p *entity.Purchase) *dto.PurchaseResponse {
	return &dto.PurchaseResponse{
		ID:             p.ID,
		ProductID:      p.ProductID,
		SupplierID:     p.SupplierID,
		LotNumber:      p.LotNumber,
		Quantity:       p.Quantity,
		UnitCost:       p.UnitCost,
		ExpirationDate: p.ExpirationDate,
		PurchasedAt:    p.PurchasedAt,
	}
}
