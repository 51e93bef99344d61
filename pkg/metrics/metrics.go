package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Counters for the money-moving operations. Commission and volume totals are
// tracked in token base units.
var (
	PoolsInitialized = promauto.NewCounter(prometheus.CounterOpts{
		Name: "refpool_pools_initialized_total",
		Help: "Number of pools created",
	})

	SalesProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "refpool_sales_processed_total",
		Help: "Number of sales successfully processed",
	})

	SaleVolume = promauto.NewCounter(prometheus.CounterOpts{
		Name: "refpool_sale_volume_base_units_total",
		Help: "Cumulative sale volume in token base units",
	})

	CommissionsPaid = promauto.NewCounter(prometheus.CounterOpts{
		Name: "refpool_commissions_paid_base_units_total",
		Help: "Cumulative commissions transferred to affiliates in token base units",
	})

	EscrowDeposits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "refpool_escrow_deposits_total",
		Help: "Number of escrow deposits",
	})

	EscrowWithdrawals = promauto.NewCounter(prometheus.CounterOpts{
		Name: "refpool_escrow_withdrawals_total",
		Help: "Number of escrow withdrawals",
	})

	SaleFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "refpool_sale_failures_total",
		Help: "Rejected sales by reason",
	}, []string{"reason"})
)
