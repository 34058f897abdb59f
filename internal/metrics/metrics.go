package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus instruments for the session service.
// Each instance carries its own registry so tests can build as many as
// they need without duplicate-registration panics.
type Metrics struct {
	registry *prometheus.Registry

	sessionsCreated prometheus.Counter
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
}

// New creates and registers the session metrics.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		sessionsCreated: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "playroom_sessions_created_total",
				Help: "Total sessions created, excluding idempotent replays",
			},
		),

		cacheHits: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "playroom_session_cache_hits_total",
				Help: "Total session lookups served from the cache",
			},
		),

		cacheMisses: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "playroom_session_cache_misses_total",
				Help: "Total session lookups that had to read the store",
			},
		),
	}

	m.registry.MustRegister(m.sessionsCreated, m.cacheHits, m.cacheMisses)
	return m
}

// RecordSessionCreated counts a newly created session.
func (m *Metrics) RecordSessionCreated() {
	if m != nil {
		m.sessionsCreated.Inc()
	}
}

// RecordCacheHit counts a lookup served from the cache.
func (m *Metrics) RecordCacheHit() {
	if m != nil {
		m.cacheHits.Inc()
	}
}

// RecordCacheMiss counts a lookup that fell through to the store.
func (m *Metrics) RecordCacheMiss() {
	if m != nil {
		m.cacheMisses.Inc()
	}
}

// Handler returns the Prometheus scrape handler for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
