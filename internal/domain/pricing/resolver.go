// Package pricing contiene la resolución temporal de precios (servicio de dominio puro).
package pricing

import (
	"time"

	"github.com/jmcastano/inventario-retail/internal/domain/entity"
)

// ResolveActivePrice devuelve el registro de precio vigente en el instante asOf:
// el de mayor EffectiveAt entre los registros con EffectiveAt <= asOf.
// Devuelve nil si ningún registro califica; el caller decide el valor por defecto
// (los reportes usan cero). Empates en EffectiveAt se resuelven de forma arbitraria:
// todos los registros empatados representan el mismo instante y tienen igual rango.
//
// Escaneo lineal de máximo: la lista ya está cargada en memoria y es pequeña,
// no amerita ordenarla.
func ResolveActivePrice(prices []entity.ProductPrice, asOf time.Time) *entity.ProductPrice {
	var active *entity.ProductPrice
	for i := range prices {
		p := &prices[i]
		if p.EffectiveAt.After(asOf) {
			continue
		}
		if active == nil || p.EffectiveAt.After(active.EffectiveAt) {
			active = p
		}
	}
	return active
}

// GroupByProduct agrupa una serie plana de precios por ProductID, para resolver
// el precio vigente de varios productos con una sola lectura del store.
func GroupByProduct(prices []entity.ProductPrice) map[string][]entity.ProductPrice {
	grouped := make(map[string][]entity.ProductPrice, len(prices))
	for _, p := range prices {
		grouped[p.ProductID] = append(grouped[p.ProductID], p)
	}
	return grouped
}
