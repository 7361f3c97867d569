// Package activity arma el feed de actividad reciente: la fila más nueva de
// cada fuente (ventas, compras, actualizaciones de stock, cambios de precio)
// fusionada en una sola lista cronológica inversa.
package activity

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jmcastano/inventario-retail/internal/domain/repository"
)

// feedLimit tope de entradas del feed. Hoy cada fuente aporta a lo sumo un
// candidato, así que el tope nunca se alcanza; queda para cuando las fuentes
// aporten más de una fila.
const feedLimit = 15

const feedDateFormat = "02/01/2006 15:04"

// FeedUseCase genera el feed de actividad reciente.
type FeedUseCase struct {
	reportRepo repository.ReportRepository
}

// NewFeedUseCase construye el caso de uso.
func NewFeedUseCase(reportRepo repository.ReportRepository) *FeedUseCase {
	return &FeedUseCase{reportRepo: reportRepo}
}

type feedEntry struct {
	message string
	at      time.Time
}

// Recent devuelve hasta feedLimit entradas "{mensaje} ({fecha})" ordenadas de
// más reciente a más antigua. Las fuentes vacías simplemente no aportan entrada.
func (uc *FeedUseCase) Recent(ctx context.Context) ([]string, error) {
	entries := make([]feedEntry, 0, 4)

	sale, err := uc.reportRepo.LatestSale(ctx)
	if err != nil {
		return nil, fmt.Errorf("actividad: última venta: %w", err)
	}
	if sale != nil {
		entries = append(entries, feedEntry{
			message: fmt.Sprintf("Venta de %d x %s", sale.Quantity, sale.ProductName),
			at:      sale.SoldAt,
		})
	}

	purchase, err := uc.reportRepo.LatestPurchase(ctx)
	if err != nil {
		return nil, fmt.Errorf("actividad: última compra: %w", err)
	}
	if purchase != nil {
		entries = append(entries, feedEntry{
			message: fmt.Sprintf("Compra de %d x %s", purchase.Quantity, purchase.ProductName),
			at:      purchase.PurchasedAt,
		})
	}

	stock, err := uc.reportRepo.LatestStockUpdate(ctx)
	if err != nil {
		return nil, fmt.Errorf("actividad: último stock: %w", err)
	}
	if stock != nil {
		entries = append(entries, feedEntry{
			message: fmt.Sprintf("Stock actualizado de %s: %d disponibles", stock.ProductName, stock.AvailableQuantity),
			at:      stock.LastUpdated,
		})
	}

	price, err := uc.reportRepo.LatestPriceChange(ctx)
	if err != nil {
		return nil, fmt.Errorf("actividad: último precio: %w", err)
	}
	if price != nil {
		entries = append(entries, feedEntry{
			message: fmt.Sprintf("Nuevo precio para %s: $%s", price.ProductName, price.Price.StringFixed(2)),
			at:      price.EffectiveAt,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].at.After(entries[j].at)
	})
	if len(entries) > feedLimit {
		entries = entries[:feedLimit]
	}

	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, fmt.Sprintf("%s (%s)", e.message, e.at.Format(feedDateFormat)))
	}
	return out, nil
}
