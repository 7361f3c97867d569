// Package alerts deriva avisos legibles a partir del estado actual de stock,
// lotes y compras. Es una pasada de solo lectura sin estado persistido: dos
// invocaciones sin cambios intermedios devuelven exactamente la misma lista.
package alerts

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/jmcastano/inventario-retail/internal/domain/repository"
)

// Umbrales de alerta (constantes de política).
const (
	lowStockThreshold = 10  // 0 < disponible < 10 -> stock bajo
	anomalyThreshold  = 100 // disponible >= 100 -> variación inusual
	expiryWindowDays  = 30  // vencimiento dentro de 30 días -> próximos a vencer
)

// AlertUseCase genera la lista ordenada de alertas.
type AlertUseCase struct {
	reportRepo repository.ReportRepository
	now        func() time.Time
}

// NewAlertUseCase construye el caso de uso. `now` es la fuente de reloj.
func NewAlertUseCase(reportRepo repository.ReportRepository, now func() time.Time) *AlertUseCase {
	return &AlertUseCase{reportRepo: reportRepo, now: now}
}

// ListAlerts evalúa las reglas en orden fijo: sin stock, stock bajo, próximos a
// vencer, variación inusual. No deduplica ni limita; el orden dentro de cada
// regla es el orden de las filas leídas.
func (uc *AlertUseCase) ListAlerts(ctx context.Context) ([]string, error) {
	now := uc.now()

	stock, err := uc.reportRepo.ListStockWithProduct(ctx)
	if err != nil {
		return nil, fmt.Errorf("alertas: leer stock: %w", err)
	}
	cutoff := now.AddDate(0, 0, expiryWindowDays)
	expiring, err := uc.reportRepo.ListExpiringPurchases(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("alertas: leer vencimientos: %w", err)
	}

	alerts := make([]string, 0, len(stock)+len(expiring))

	// Regla 1: sin stock.
	for _, row := range stock {
		if row.AvailableQuantity == 0 {
			alerts = append(alerts, fmt.Sprintf("Producto sin stock: %s", row.Name))
		}
	}
	// Regla 2: stock bajo.
	for _, row := range stock {
		if row.AvailableQuantity > 0 && row.AvailableQuantity < lowStockThreshold {
			alerts = append(alerts, fmt.Sprintf(
				"Stock bajo para %s: quedan %d unidades", row.Name, row.AvailableQuantity))
		}
	}
	// Regla 3: próximos a vencer. Los días se calculan con techo; un resultado
	// <= 0 significa que el lote ya venció y se rotula como vencido en lugar de
	// anunciar "vence en -3 días".
	for _, row := range expiring {
		days := daysUntil(now, row.ExpirationDate)
		alerts = append(alerts, expiryMessage(row, days))
	}
	// Regla 4: variación inusual. Umbral fijo, no es un modelo estadístico.
	for _, row := range stock {
		if row.AvailableQuantity >= anomalyThreshold {
			alerts = append(alerts, fmt.Sprintf(
				"Variación inusual de stock en %s: %d unidades disponibles", row.Name, row.AvailableQuantity))
		}
	}

	return alerts, nil
}

// daysUntil devuelve ceil((expiration - now) / 1 día); negativo si ya venció.
func daysUntil(now, expiration time.Time) int {
	return int(math.Ceil(expiration.Sub(now).Hours() / 24))
}

func expiryMessage(row repository.ExpiringPurchaseRow, days int) string {
	if days <= 0 {
		if row.LotNumber != "" {
			return fmt.Sprintf("Lote %s de %s vencido", row.LotNumber, row.ProductName)
		}
		return fmt.Sprintf("Compra de %s vencida", row.ProductName)
	}
	if row.LotNumber != "" {
		return fmt.Sprintf("Lote %s de %s vence en %d días", row.LotNumber, row.ProductName, days)
	}
	return fmt.Sprintf("Compra de %s vence en %d días", row.ProductName, days)
}
