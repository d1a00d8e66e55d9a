package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics groups the console's prometheus collectors on a private registry.
type Metrics struct {
	registry        *prometheus.Registry
	requestCount    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	errorCount      *prometheus.CounterVec
	remoteCount     *prometheus.CounterVec
	remoteDuration  *prometheus.HistogramVec
	staleResponses  *prometheus.CounterVec
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestCount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "console_http_requests_total",
			Help: "Console HTTP requests by route, method and status.",
		}, []string{"path", "method", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "console_http_request_duration_seconds",
			Help:    "Console HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"path", "method"}),
		errorCount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "console_http_errors_total",
			Help: "Console HTTP errors by route, method and error code.",
		}, []string{"path", "method", "code"}),
		remoteCount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "console_remote_requests_total",
			Help: "Records API calls by resource, operation and outcome.",
		}, []string{"resource", "operation", "outcome"}),
		remoteDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "console_remote_request_duration_seconds",
			Help:    "Records API call latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"resource", "operation"}),
		staleResponses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "console_store_stale_responses_total",
			Help: "Responses discarded because a newer request was issued.",
		}, []string{"resource", "command"}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requestCount,
		m.requestDuration,
		m.errorCount,
		m.remoteCount,
		m.remoteDuration,
		m.staleResponses,
	)
	return m
}

// Registry exposes the underlying registry for the /metrics handler.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.requestCount.WithLabelValues(path, method, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(path, method).Observe(duration.Seconds())
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	m.errorCount.WithLabelValues(path, method, code).Inc()
}

// RecordRemote tracks one records API call.
func (m *Metrics) RecordRemote(resource, operation, outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	m.remoteCount.WithLabelValues(resource, operation, outcome).Inc()
	m.remoteDuration.WithLabelValues(resource, operation).Observe(duration.Seconds())
}

// RecordStale counts a discarded store response.
func (m *Metrics) RecordStale(resource, command string) {
	if m == nil {
		return
	}
	m.staleResponses.WithLabelValues(resource, command).Inc()
}
