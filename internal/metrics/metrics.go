// Package metrics exposes ledger and HTTP counters in Prometheus format.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"splitter/internal/ledger"
)

const namespace = "splitter"

var _ ledger.Observer = (*Metrics)(nil)

// Metrics owns a private registry so tests can build as many as they like.
type Metrics struct {
	registry *prometheus.Registry

	added       prometheus.Counter
	deleted     prometheus.Counter
	cleared     prometheus.Counter
	rejected    prometheus.Counter
	friends     prometheus.Counter
	persistErrs *prometheus.CounterVec
	size        prometheus.Gauge
	requests    *prometheus.HistogramVec
	suspicious  prometheus.Counter
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		added: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "expenses_added_total",
			Help:      "Expenses appended to the ledger.",
		}),
		deleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "expenses_deleted_total",
			Help:      "Expenses removed from the ledger.",
		}),
		cleared: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ledger_cleared_total",
			Help:      "Confirmed clear-all operations.",
		}),
		rejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validation_errors_total",
			Help:      "Entry-form submissions rejected by validation.",
		}),
		friends: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "friend_names_saved_total",
			Help:      "Friend names written to preferences.",
		}),
		persistErrs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "persistence_errors_total",
			Help:      "Failed writes to the key-value store.",
		}, []string{"key"}),
		size: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "ledger_size",
			Help:      "Expenses currently held in the ledger.",
		}),
		requests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		suspicious: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "suspicious_requests_total",
			Help:      "Requests matching known probe patterns.",
		}),
	}

	m.registry.MustRegister(
		m.added, m.deleted, m.cleared, m.rejected, m.friends,
		m.persistErrs, m.size, m.requests, m.suspicious,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Observe implements ledger.Observer.
func (m *Metrics) Observe(e ledger.Event) {
	switch e.Kind {
	case ledger.EventAdded:
		m.added.Inc()
		m.size.Set(float64(e.Size))
	case ledger.EventRemoved:
		m.deleted.Inc()
		m.size.Set(float64(e.Size))
	case ledger.EventCleared:
		m.cleared.Inc()
		m.size.Set(0)
	case ledger.EventRejected:
		m.rejected.Inc()
	case ledger.EventFriendSaved:
		m.friends.Inc()
	case ledger.EventPersistFailed:
		m.persistErrs.WithLabelValues(e.Key).Inc()
	}
}

// SetLedgerSize seeds the size gauge after a load.
func (m *Metrics) SetLedgerSize(n int) {
	m.size.Set(float64(n))
}

// ObserveRequest records one finished HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, d time.Duration) {
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Observe(d.Seconds())
}

// ObserveSuspicious counts a request flagged by the probe detector.
func (m *Metrics) ObserveSuspicious() {
	m.suspicious.Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry for tests and extra collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
