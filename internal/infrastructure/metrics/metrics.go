package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// TradeMetrics collects trade lifecycle and reconciliation counters.
type TradeMetrics struct {
	OrdersCreatedTotal       prometheus.CounterVec
	OrdersCompletedTotal     prometheus.CounterVec
	OrdersCancelledTotal     prometheus.CounterVec
	OrdersCompletedUsdtTotal prometheus.CounterVec
	SettlementDuration       prometheus.HistogramVec
	ReconcileRefreshTotal    prometheus.CounterVec
	ExecutorErrorsTotal      prometheus.CounterVec
	ActiveOrdersGauge        prometheus.GaugeVec
}

func NewTradeMetrics() *TradeMetrics {
	return &TradeMetrics{
		OrdersCreatedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "trade_orders_created_total",
				Help: "Number of buy orders created",
			},
			[]string{"private_sale"},
		),

		OrdersCompletedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "trade_orders_completed_total",
				Help: "Number of orders settled (paymentConfirmed)",
			},
			[]string{"private_sale"},
		),

		OrdersCancelledTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "trade_orders_cancelled_total",
				Help: "Number of cancelled orders by actor",
			},
			[]string{"actor"},
		),

		OrdersCompletedUsdtTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "trade_orders_completed_usdt_total",
				Help: "Total settled USDT amount",
			},
			[]string{"private_sale"},
		),

		SettlementDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "trade_settlement_duration_seconds",
				Help:    "Time spent in the settlement transfer path",
				Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
			},
			[]string{"outcome"},
		),

		ReconcileRefreshTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reconcile_refresh_total",
				Help: "Status refresh attempts by resulting status",
			},
			[]string{"status"},
		),

		ExecutorErrorsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "executor_errors_total",
				Help: "Execution service call failures by operation",
			},
			[]string{"operation"},
		),

		ActiveOrdersGauge: *promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "trade_active_orders",
				Help: "Currently open (non-terminal) orders",
			},
			[]string{"private_sale"},
		),
	}
}

func (m *TradeMetrics) RecordOrderCreated(privateSale bool) {
	label := boolLabel(privateSale)
	m.OrdersCreatedTotal.WithLabelValues(label).Inc()
	m.ActiveOrdersGauge.WithLabelValues(label).Inc()
}

func (m *TradeMetrics) RecordOrderCompleted(privateSale bool, usdtAmount float64) {
	label := boolLabel(privateSale)
	m.OrdersCompletedTotal.WithLabelValues(label).Inc()
	m.OrdersCompletedUsdtTotal.WithLabelValues(label).Add(usdtAmount)
	m.ActiveOrdersGauge.WithLabelValues(label).Dec()
}

func (m *TradeMetrics) RecordOrderCancelled(actor string, privateSale bool) {
	m.OrdersCancelledTotal.WithLabelValues(actor).Inc()
	m.ActiveOrdersGauge.WithLabelValues(boolLabel(privateSale)).Dec()
}

func (m *TradeMetrics) RecordSettlementDuration(outcome string, seconds float64) {
	m.SettlementDuration.WithLabelValues(outcome).Observe(seconds)
}

func (m *TradeMetrics) RecordRefresh(status string) {
	m.ReconcileRefreshTotal.WithLabelValues(status).Inc()
}

func (m *TradeMetrics) RecordExecutorError(operation string) {
	m.ExecutorErrorsTotal.WithLabelValues(operation).Inc()
}

func boolLabel(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
