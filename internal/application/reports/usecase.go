// Package reports agrega el historial de compras y ventas en resúmenes
// mensuales, top de productos y valorización de stock. Todo es de solo lectura.
package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jmcastano/inventario-retail/internal/application/dto"
	"github.com/jmcastano/inventario-retail/internal/domain/pricing"
	"github.com/jmcastano/inventario-retail/internal/domain/repository"
)

const topProductsLimit = 5 // productos en el top de ventas

// monthLabels etiquetas de los 12 meses calendario.
var monthLabels = [...]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// ReportUseCase genera los reportes agregados.
type ReportUseCase struct {
	reportRepo repository.ReportRepository
	now        func() time.Time
}

// NewReportUseCase construye el caso de uso. `now` es la fuente de reloj para
// la resolución de precios vigentes.
func NewReportUseCase(reportRepo repository.ReportRepository, now func() time.Time) *ReportUseCase {
	return &ReportUseCase{reportRepo: reportRepo, now: now}
}

// MonthlySales devuelve los 12 meses calendario con la cantidad total vendida.
// Los meses sin ventas aparecen en cero (nunca un arreglo disperso) y los años
// se suman juntos: es un perfil estacional, no una serie por año.
func (uc *ReportUseCase) MonthlySales(ctx context.Context) ([]dto.MonthlySalesDTO, error) {
	rows, err := uc.reportRepo.MonthlySaleQuantities(ctx)
	if err != nil {
		return nil, fmt.Errorf("reporte ventas mensuales: %w", err)
	}
	buckets := fillMonths(rows)
	out := make([]dto.MonthlySalesDTO, 12)
	for i := 0; i < 12; i++ {
		out[i] = dto.MonthlySalesDTO{
			Month:         i + 1,
			Label:         monthLabels[i],
			TotalQuantity: buckets[i],
		}
	}
	return out, nil
}

// PurchasesVsSales combina compras y ventas en los mismos 12 meses calendario.
// Las dos consultas se lanzan en paralelo.
func (uc *ReportUseCase) PurchasesVsSales(ctx context.Context) ([]dto.PurchasesVsSalesDTO, error) {
	type result struct {
		rows []repository.MonthlyQuantityRow
		err  error
	}
	purchasesCh := make(chan result, 1)
	salesCh := make(chan result, 1)

	go func() {
		rows, err := uc.reportRepo.MonthlyPurchaseQuantities(ctx)
		purchasesCh <- result{rows, err}
	}()
	go func() {
		rows, err := uc.reportRepo.MonthlySaleQuantities(ctx)
		salesCh <- result{rows, err}
	}()

	purchases := <-purchasesCh
	sales := <-salesCh
	if purchases.err != nil {
		return nil, fmt.Errorf("reporte compras vs ventas: compras: %w", purchases.err)
	}
	if sales.err != nil {
		return nil, fmt.Errorf("reporte compras vs ventas: ventas: %w", sales.err)
	}

	pBuckets := fillMonths(purchases.rows)
	sBuckets := fillMonths(sales.rows)
	out := make([]dto.PurchasesVsSalesDTO, 12)
	for i := 0; i < 12; i++ {
		out[i] = dto.PurchasesVsSalesDTO{
			Month:     i + 1,
			Label:     monthLabels[i],
			Purchases: pBuckets[i],
			Sales:     sBuckets[i],
		}
	}
	return out, nil
}

// TopProducts devuelve los 5 productos con mayor cantidad vendida, en orden
// descendente.
func (uc *ReportUseCase) TopProducts(ctx context.Context) ([]dto.TopProductDTO, error) {
	rows, err := uc.reportRepo.TopProductsSold(ctx, topProductsLimit)
	if err != nil {
		return nil, fmt.Errorf("reporte top productos: %w", err)
	}
	out := make([]dto.TopProductDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.TopProductDTO{ProductID: r.ProductID, Name: r.Name, Quantity: r.Quantity})
	}
	return out, nil
}

// TotalStock suma el disponible de todos los resúmenes.
func (uc *ReportUseCase) TotalStock(ctx context.Context) (int64, error) {
	rows, err := uc.reportRepo.ListStockWithProduct(ctx)
	if err != nil {
		return 0, fmt.Errorf("reporte stock total: %w", err)
	}
	var total int64
	for _, r := range rows {
		total += r.AvailableQuantity
	}
	return total, nil
}

// StockValue valoriza el stock: por producto, precio vigente ahora × disponible.
// El precio vigente se resuelve con pricing.ResolveActivePrice; sin precio
// vigente la línea vale cero (la decisión del valor por defecto vive aquí, en
// el borde donde se arma el agregado).
func (uc *ReportUseCase) StockValue(ctx context.Context) (*dto.StockValueReportDTO, error) {
	rows, err := uc.reportRepo.ListStockWithProduct(ctx)
	if err != nil {
		return nil, fmt.Errorf("reporte valorización: stock: %w", err)
	}
	prices, err := uc.reportRepo.ListPrices(ctx)
	if err != nil {
		return nil, fmt.Errorf("reporte valorización: precios: %w", err)
	}

	byProduct := pricing.GroupByProduct(prices)
	now := uc.now()

	report := &dto.StockValueReportDTO{
		TotalValue: decimal.Zero,
		Lines:      make([]dto.StockValueLineDTO, 0, len(rows)),
	}
	for _, r := range rows {
		unit := decimal.Zero
		if active := pricing.ResolveActivePrice(byProduct[r.ProductID], now); active != nil {
			unit = active.Price
		}
		value := unit.Mul(decimal.NewFromInt(r.AvailableQuantity))
		report.TotalQuantity += r.AvailableQuantity
		report.TotalValue = report.TotalValue.Add(value)
		report.Lines = append(report.Lines, dto.StockValueLineDTO{
			ProductID: r.ProductID,
			Name:      r.Name,
			Quantity:  r.AvailableQuantity,
			UnitPrice: unit,
			Value:     value,
		})
	}
	return report, nil
}

// fillMonths reparte filas dispersas (mes 1–12) en un arreglo denso de 12
// posiciones. Meses fuera de rango se ignoran.
func fillMonths(rows []repository.MonthlyQuantityRow) [12]int64 {
	var buckets [12]int64
	for _, r := range rows {
		if r.Month < 1 || r.Month > 12 {
			continue
		}
		buckets[r.Month-1] += r.Quantity
	}
	return buckets
}
