package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics collects Prometheus counters for the HTTP surface and the
// authentication core. A nil *Metrics is a valid no-op recorder.
type Metrics struct {
	httpRequests       *prometheus.CounterVec
	httpDuration       prometheus.Histogram
	httpErrors         *prometheus.CounterVec
	sessionCacheHits   prometheus.Counter
	sessionCacheMisses prometheus.Counter
	sessionExpired     prometheus.Counter
	providerErrors     *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kounty_http_requests_total",
			Help: "HTTP requests by path, method and status.",
		}, []string{"path", "method", "status"}),
		httpDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "kounty_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}),
		httpErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kounty_http_errors_total",
			Help: "Errors returned to clients by error code.",
		}, []string{"code"}),
		sessionCacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kounty_session_cache_hits_total",
			Help: "Authenticated requests served from the session cache.",
		}),
		sessionCacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kounty_session_cache_misses_total",
			Help: "Authenticated requests that took the cold path.",
		}),
		sessionExpired: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kounty_session_expired_total",
			Help: "Requests rejected because the cached session had expired.",
		}),
		providerErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kounty_provider_errors_total",
			Help: "Identity provider failures by classified reason.",
		}, []string{"reason"}),
	}

	reg.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.httpErrors,
		m.sessionCacheHits,
		m.sessionCacheMisses,
		m.sessionExpired,
		m.providerErrors,
	)

	return m
}

// RecordRequest counts a completed request.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(path, method, strconv.Itoa(status)).Inc()
	m.httpDuration.Observe(duration.Seconds())
}

// RecordError counts an error response by its boundary code.
func (m *Metrics) RecordError(code string) {
	if m == nil {
		return
	}
	m.httpErrors.WithLabelValues(code).Inc()
}

// RecordSessionCacheHit counts a warm-path authentication.
func (m *Metrics) RecordSessionCacheHit() {
	if m == nil {
		return
	}
	m.sessionCacheHits.Inc()
}

// RecordSessionCacheMiss counts a cold-path authentication.
func (m *Metrics) RecordSessionCacheMiss() {
	if m == nil {
		return
	}
	m.sessionCacheMisses.Inc()
}

// RecordSessionExpired counts a rejection due to a stale cached session.
func (m *Metrics) RecordSessionExpired() {
	if m == nil {
		return
	}
	m.sessionExpired.Inc()
}

// RecordProviderError counts an identity provider failure.
func (m *Metrics) RecordProviderError(reason string) {
	if m == nil {
		return
	}
	m.providerErrors.WithLabelValues(reason).Inc()
}
