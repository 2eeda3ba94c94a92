package obs

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// OrdersCreatedTotal counts order creation outcomes.
	OrdersCreatedTotal *prometheus.CounterVec
	// OrderNoRetriesTotal counts order-number regenerations after a
	// uniqueness-constraint collision.
	OrderNoRetriesTotal prometheus.Counter
	// PricingFallbackTotal counts unknown option identifiers absorbed by the
	// pricing engine's neutral-value fallback.
	PricingFallbackTotal *prometheus.CounterVec
	// CartMutationsTotal counts cart store mutations by kind.
	CartMutationsTotal *prometheus.CounterVec
)

// MustRegisterDomainMetrics initialises and registers domain-specific Prometheus collectors.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		OrdersCreatedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_created_total",
			Help:      "Count of order creation attempts by result.",
		}, []string{"result"})
		OrderNoRetriesTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_number_retries_total",
			Help:      "Order number regenerations after duplicate-key collisions.",
		})
		PricingFallbackTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pricing_option_fallback_total",
			Help:      "Unknown option identifiers absorbed by the pricing fallback.",
		}, []string{"field"})
		CartMutationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cart_mutations_total",
			Help:      "Cart store mutations by kind.",
		}, []string{"kind"})

		registerOrReuse(reg, OrdersCreatedTotal, func(c prometheus.Collector) {
			if v, ok := c.(*prometheus.CounterVec); ok {
				OrdersCreatedTotal = v
			}
		})
		registerOrReuse(reg, OrderNoRetriesTotal, func(c prometheus.Collector) {
			if v, ok := c.(prometheus.Counter); ok {
				OrderNoRetriesTotal = v
			}
		})
		registerOrReuse(reg, PricingFallbackTotal, func(c prometheus.Collector) {
			if v, ok := c.(*prometheus.CounterVec); ok {
				PricingFallbackTotal = v
			}
		})
		registerOrReuse(reg, CartMutationsTotal, func(c prometheus.Collector) {
			if v, ok := c.(*prometheus.CounterVec); ok {
				CartMutationsTotal = v
			}
		})
	})
}
