package telemetry

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "backoffice"

// Metrics groups the collectors the back office exports. Each instance
// registers on its own registerer, so tests can build as many as they need.
type Metrics struct {
	// LifecycleErrors counts rejected operations by operation and error kind
	// (not_found, invalid, conflict, internal).
	LifecycleErrors *prometheus.CounterVec

	// OverdueLoans is the number of loans flagged OVERDUE by the last refresh.
	OverdueLoans prometheus.Gauge

	// OverdueRefreshes counts refresh runs by result (ok, error).
	OverdueRefreshes *prometheus.CounterVec

	// RequestDuration observes HTTP latency by method, route and status code.
	RequestDuration *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		LifecycleErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lifecycle_errors_total",
			Help:      "Rejected lifecycle operations.",
		}, []string{"operation", "kind"}),

		OverdueLoans: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "overdue_loans",
			Help:      "Loans currently flagged overdue.",
		}),

		OverdueRefreshes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "overdue_refresh_runs_total",
			Help:      "Overdue refresh runs by result.",
		}, []string{"result"}),

		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "code"}),
	}
}

// ObserveRequest records one served request.
func (m *Metrics) ObserveRequest(method, route string, code int, elapsed time.Duration) {
	m.RequestDuration.WithLabelValues(method, route, strconv.Itoa(code)).Observe(elapsed.Seconds())
}

// RecordRefresh records the outcome of one overdue refresh.
func (m *Metrics) RecordRefresh(overdue int, err error) {
	if err != nil {
		m.OverdueRefreshes.WithLabelValues("error").Inc()
		return
	}
	m.OverdueRefreshes.WithLabelValues("ok").Inc()
	m.OverdueLoans.Set(float64(overdue))
}

// RecordError counts a rejected operation. Nil errors are ignored.
func (m *Metrics) RecordError(operation, kind string, err error) {
	if err == nil {
		return
	}
	m.LifecycleErrors.WithLabelValues(operation, kind).Inc()
}
