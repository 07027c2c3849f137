package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	ResultCreated           = "created"
	ResultValidation        = "validation"
	ResultInsufficientStock = "insufficient_stock"
	ResultNotFound          = "not_found"
	ResultError             = "error"
)

// CheckoutMetrics records checkout outcomes and side effects.
type CheckoutMetrics struct {
	duration *prometheus.HistogramVec
	orders   *prometheus.CounterVec
	revenue  prometheus.Counter
	lowStock prometheus.Counter
	sideFx   *prometheus.CounterVec
}

// NewCheckoutMetrics registers the checkout metrics on the provided registerer.
// A nil registerer yields a no-op recorder.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "storefront_checkout_duration_seconds",
		Help:    "Duration of checkout requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"result"})
	orders := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_checkout_orders_total",
		Help: "Checkout attempts by result.",
	}, []string{"result"})
	revenue := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "storefront_checkout_revenue_cents_total",
		Help: "Order totals accepted at checkout, in cents.",
	})
	lowStock := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "storefront_low_stock_alerts_total",
		Help: "Low-stock alerts raised after checkout.",
	})
	sideFx := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_side_effect_failures_total",
		Help: "Best-effort side effects that failed.",
	}, []string{"effect"})
	reg.MustRegister(duration, orders, revenue, lowStock, sideFx)
	return &CheckoutMetrics{
		duration: duration,
		orders:   orders,
		revenue:  revenue,
		lowStock: lowStock,
		sideFx:   sideFx,
	}
}

// Observe records one checkout attempt.
func (c *CheckoutMetrics) Observe(result string, elapsed time.Duration) {
	if c == nil || c.orders == nil {
		return
	}
	label := normalizeLabel(result)
	c.orders.WithLabelValues(label).Inc()
	c.duration.WithLabelValues(label).Observe(elapsed.Seconds())
}

// AddRevenue adds an accepted order total.
func (c *CheckoutMetrics) AddRevenue(cents int64) {
	if c == nil || c.revenue == nil || cents <= 0 {
		return
	}
	c.revenue.Add(float64(cents))
}

func (c *CheckoutMetrics) IncLowStock() {
	if c == nil || c.lowStock == nil {
		return
	}
	c.lowStock.Inc()
}

// IncSideEffectFailure counts a swallowed failure of push, publish or notification writes.
func (c *CheckoutMetrics) IncSideEffectFailure(effect string) {
	if c == nil || c.sideFx == nil {
		return
	}
	c.sideFx.WithLabelValues(normalizeLabel(effect)).Inc()
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
