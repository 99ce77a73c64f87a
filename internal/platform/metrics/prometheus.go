package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsManager holds the cart service Prometheus collectors on a private registry.
type MetricsManager struct {
	Registry            *prometheus.Registry
	CartOperationsTotal *prometheus.CounterVec
	PersistErrorsTotal  *prometheus.CounterVec
	PersistLatency      *prometheus.HistogramVec
	CartLineItems       prometheus.Gauge
	APIRequestLatency   *prometheus.HistogramVec
}

func NewMetricsManager(namespace string) *MetricsManager {
	registry := prometheus.NewRegistry()

	operations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_operations_total",
		Help:      "Cart operations by name and outcome (ok, noop, error).",
	}, []string{"operation", "outcome"})

	persistErrors := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_persist_errors_total",
		Help:      "Failed snapshot reads and writes by action.",
	}, []string{"action"})

	persistLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "cart_persist_latency_seconds",
		Help:      "Latency of snapshot reads and writes by action.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"action"})

	lineItems := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "cart_line_items",
		Help:      "Number of distinct line items in the cart.",
	})

	apiLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "api_request_latency_seconds",
		Help:      "Latency of API requests by transport and method.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"transport", "method", "code"})

	registry.MustRegister(
		operations,
		persistErrors,
		persistLatency,
		lineItems,
		apiLatency,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &MetricsManager{
		Registry:            registry,
		CartOperationsTotal: operations,
		PersistErrorsTotal:  persistErrors,
		PersistLatency:      persistLatency,
		CartLineItems:       lineItems,
		APIRequestLatency:   apiLatency,
	}
}

func (m *MetricsManager) ObserveOperation(operation, outcome string) {
	if m == nil {
		return
	}
	m.CartOperationsTotal.WithLabelValues(operation, outcome).Inc()
}

func (m *MetricsManager) ObservePersist(action string, started time.Time, err error) {
	if m == nil {
		return
	}
	m.PersistLatency.WithLabelValues(action).Observe(time.Since(started).Seconds())
	if err != nil {
		m.PersistErrorsTotal.WithLabelValues(action).Inc()
	}
}

func (m *MetricsManager) SetLineItems(n int) {
	if m == nil {
		return
	}
	m.CartLineItems.Set(float64(n))
}

func (m *MetricsManager) ObserveRequest(transport, method, code string, started time.Time) {
	if m == nil {
		return
	}
	m.APIRequestLatency.WithLabelValues(transport, method, code).Observe(time.Since(started).Seconds())
}

func (m *MetricsManager) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
