package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Contadores del ledger. Se registran en el registry global de prometheus.
var (
	SalesRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inventario_sales_recorded_total",
		Help: "Ventas registradas con éxito.",
	})
	SalesRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inventario_sales_rejected_total",
		Help: "Ventas rechazadas por stock insuficiente.",
	})
	PurchasesRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inventario_purchases_recorded_total",
		Help: "Compras registradas con éxito.",
	})
)
