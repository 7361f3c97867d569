package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jmcastano/inventario-retail/internal/application/dto"
	"github.com/jmcastano/inventario-retail/internal/domain"
	"github.com/jmcastano/inventario-retail/internal/domain/entity"
	"github.com/jmcastano/inventario-retail/internal/domain/pricing"
	"github.com/jmcastano/inventario-retail/internal/domain/repository"
)

// PriceUseCase administra la serie temporal de precios por producto y expone
// la resolución del precio vigente.
type PriceUseCase struct {
	priceRepo   repository.ProductPriceRepository
	productRepo repository.ProductRepository
	now         func() time.Time
}

// NewPriceUseCase construye el caso de uso. `now` es la fuente de reloj.
func NewPriceUseCase(
	priceRepo repository.ProductPriceRepository,
	productRepo repository.ProductRepository,
	now func() time.Time,
) *PriceUseCase {
	return &PriceUseCase{priceRepo: priceRepo, productRepo: productRepo, now: now}
}

// AddPrice agrega un registro a la serie (append-only). EffectiveAt ausente
// equivale a "ahora"; puede ser futuro para programar un cambio de precio.
func (uc *PriceUseCase) AddPrice(productID string, in dto.CreatePriceRequest) (*dto.PriceResponse, error) {
	if productID == "" || in.Price.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	effectiveAt := uc.now()
	if in.EffectiveAt != nil {
		effectiveAt = *in.EffectiveAt
	}
	price := &entity.ProductPrice{
		ID:          uuid.New().String(),
		ProductID:   productID,
		Price:       in.Price,
		EffectiveAt: effectiveAt,
	}
	if err := uc.priceRepo.Create(price); err != nil {
		return nil, err
	}
	return toPriceResponse(price), nil
}

// ListPrices devuelve la serie completa de un producto.
func (uc *PriceUseCase) ListPrices(productID string) ([]*dto.PriceResponse, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	prices, err := uc.priceRepo.ListByProduct(productID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PriceResponse, 0, len(prices))
	for i := range prices {
		out = append(out, toPriceResponse(&prices[i]))
	}
	return out, nil
}

// ActivePrice resuelve el precio vigente ahora. Sin precio vigente devuelve
// nil sin error; el handler decide la representación.
func (uc *PriceUseCase) ActivePrice(productID string) (*dto.PriceResponse, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	prices, err := uc.priceRepo.ListByProduct(productID)
	if err != nil {
		return nil, err
	}
	active := pricing.ResolveActivePrice(prices, uc.now())
	if active == nil {
		return nil, nil
	}
	return toPriceResponse(active), nil
}

func toPriceResponse(p *entity.ProductPrice) *dto.PriceResponse {
	return &dto.PriceResponse{
		ID:          p.ID,
		ProductID:   p.ProductID,
		Price:       p.Price,
		EffectiveAt: p.EffectiveAt,
	}
}
