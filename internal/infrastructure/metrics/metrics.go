package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PaymentMetrics holds the collectors of the M-Pesa payment flow.
type PaymentMetrics struct {
	// STK push attempts by outcome: initiated, already_paid, not_found, failed
	StkPushTotal *prometheus.CounterVec

	// Callback deliveries by outcome (see domain.CallbackOutcome)
	CallbacksTotal *prometheus.CounterVec

	// Orders settled by a callback
	OrdersSettledTotal prometheus.Counter
	SettledAmountTotal prometheus.Counter

	// Outbound Daraja calls
	GatewayRequestDuration *prometheus.HistogramVec
}

// NewPaymentMetrics registers the collectors on reg.
// The service passes the registry it serves on /metrics; tests pass a fresh one.
func NewPaymentMetrics(reg prometheus.Registerer) *PaymentMetrics {
	factory := promauto.With(reg)

	return &PaymentMetrics{
		StkPushTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mpesa_stk_push_total",
				Help: "STK push initiation attempts by outcome",
			},
			[]string{"outcome"},
		),

		CallbacksTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mpesa_callbacks_total",
				Help: "STK callback deliveries by outcome",
			},
			[]string{"outcome"},
		),

		OrdersSettledTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "mpesa_orders_settled_total",
				Help: "Orders marked paid by an STK callback",
			},
		),

		SettledAmountTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "mpesa_settled_amount_total",
				Help: "Sum of order totals settled through M-Pesa",
			},
		),

		GatewayRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "mpesa_gateway_request_duration_seconds",
				Help:    "Duration of outbound Daraja requests",
				Buckets: prometheus.ExponentialBuckets(0.05, 2, 10), // 50ms .. ~25s
			},
			[]string{"endpoint", "status"},
		),
	}
}

func (m *PaymentMetrics) RecordStkPush(outcome string) {
	if m == nil {
		return
	}
	m.StkPushTotal.WithLabelValues(outcome).Inc()
}

func (m *PaymentMetrics) RecordCallback(outcome string) {
	if m == nil {
		return
	}
	m.CallbacksTotal.WithLabelValues(outcome).Inc()
}

func (m *PaymentMetrics) RecordSettlement(amount float64) {
	if m == nil {
		return
	}
	m.OrdersSettledTotal.Inc()
	if amount > 0 {
		m.SettledAmountTotal.Add(amount)
	}
}

func (m *PaymentMetrics) ObserveGatewayRequest(endpoint, status string, started time.Time) {
	if m == nil {
		return
	}
	m.GatewayRequestDuration.WithLabelValues(endpoint, status).Observe(time.Since(started).Seconds())
}
