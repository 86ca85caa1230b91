package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Registry holds all Prometheus metrics.
type Registry struct {
	*prometheus.Registry

	// HTTP metrics
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight prometheus.Gauge

	// Business metrics
	providerRequests        *prometheus.CounterVec
	providerRequestDuration *prometheus.HistogramVec
	quotesNormalized        *prometheus.CounterVec
	batchSymbols            prometheus.Histogram
}

// NewRegistry creates a new metrics registry with all metrics registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	// Register Go runtime metrics
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := &Registry{
		Registry: reg,

		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),

		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		httpRequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently in flight",
			},
		),
	}

	reg.MustRegister(r.httpRequestsTotal)
	reg.MustRegister(r.httpRequestDuration)
	reg.MustRegister(r.httpRequestsInFlight)

	// Business metrics
	r.providerRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stockd_provider_requests_total",
			Help: "Total number of upstream provider requests",
		},
		[]string{"endpoint", "status"},
	)
	r.providerRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "stockd_provider_request_duration_seconds",
			Help:    "Upstream provider request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)
	r.quotesNormalized = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stockd_quotes_normalized_total",
			Help: "Total number of normalized quote records by outcome",
		},
		[]string{"result"},
	)
	r.batchSymbols = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "stockd_batch_symbols",
			Help:    "Number of symbols per batch request",
			Buckets: []float64{1, 2, 5, 10, 20, 50},
		},
	)

	reg.MustRegister(r.providerRequests)
	reg.MustRegister(r.providerRequestDuration)
	reg.MustRegister(r.quotesNormalized)
	reg.MustRegister(r.batchSymbols)

	return r
}

// RecordRequest records metrics for an HTTP request.
func (r *Registry) RecordRequest(method, path string, status int, duration float64) {
	statusStr := statusToString(status)
	r.httpRequestsTotal.WithLabelValues(method, path, statusStr).Inc()
	r.httpRequestDuration.WithLabelValues(method, path).Observe(duration)
}

// InFlightInc increments in-flight requests.
func (r *Registry) InFlightInc() {
	r.httpRequestsInFlight.Inc()
}

// InFlightDec decrements in-flight requests.
func (r *Registry) InFlightDec() {
	r.httpRequestsInFlight.Dec()
}

// RecordProviderRequest records an upstream provider call.
func (r *Registry) RecordProviderRequest(endpoint, status string, duration float64) {
	r.providerRequests.WithLabelValues(endpoint, status).Inc()
	r.providerRequestDuration.WithLabelValues(endpoint).Observe(duration)
}

// RecordQuote records a normalized quote by outcome ("ok" or "fallback").
func (r *Registry) RecordQuote(result string) {
	r.quotesNormalized.WithLabelValues(result).Inc()
}

// RecordBatch records the size of a batch request.
func (r *Registry) RecordBatch(size int) {
	r.batchSymbols.Observe(float64(size))
}

func statusToString(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	case status >= 200:
		return "2xx"
	default:
		return "1xx"
	}
}
