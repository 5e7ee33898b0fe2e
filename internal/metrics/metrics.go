package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mandi_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	// Ledger writes
	TransactionsRecorded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mandi_transactions_recorded_total",
			Help: "Ledger rows written successfully",
		},
		[]string{"type"}, // BUY|SELL
	)
	LinkedSales = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "mandi_linked_sales_total",
			Help: "Sales that settled a pending purchase",
		},
	)
	OperationsFailed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mandi_operations_failed_total",
			Help: "Failed ledger operations by error kind",
		},
		[]string{"operation", "kind"}, // kind: validation|linkage|not_found|storage
	)
)

// Handler serves /metrics from the default registry.
var Handler = promhttp.Handler

// Init registers every collector with the default registry. Call once at startup.
func Init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(TransactionsRecorded)
	prometheus.MustRegister(LinkedSales)
	prometheus.MustRegister(OperationsFailed)
}
