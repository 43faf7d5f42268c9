// Package metrics exposes shell activity as Prometheus counters.
package metrics

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/marcus/dash/internal/models"
	"github.com/marcus/dash/internal/router"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is what the shell reports to. Nop discards everything.
type Recorder interface {
	RecordNavigation(page router.Page)
	RecordRedirect(guard router.Guard)
	RecordNotFound()
	RecordSession(op models.EventKind, success bool)
	RecordPreferenceWrite(key string)
}

// Collector is the Prometheus-backed Recorder
type Collector struct {
	navigations *prometheus.CounterVec
	redirects   *prometheus.CounterVec
	notFound    prometheus.Counter
	sessionOps  *prometheus.CounterVec
	prefWrites  *prometheus.CounterVec
}

// NewCollector creates a Collector and registers it with reg
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		navigations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dash_navigations_total",
			Help: "Pages rendered, by page.",
		}, []string{"page"}),
		redirects: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dash_guard_redirects_total",
			Help: "Route guard redirects, by guard.",
		}, []string{"guard"}),
		notFound: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dash_not_found_total",
			Help: "Navigations to unmatched paths.",
		}),
		sessionOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dash_session_operations_total",
			Help: "Session operations, by operation and result.",
		}, []string{"op", "result"}),
		prefWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dash_preference_writes_total",
			Help: "Preference writes, by key.",
		}, []string{"key"}),
	}

	reg.MustRegister(c.navigations, c.redirects, c.notFound, c.sessionOps, c.prefWrites)
	return c
}

func (c *Collector) RecordNavigation(page router.Page) {
	c.navigations.WithLabelValues(string(page)).Inc()
}

func (c *Collector) RecordRedirect(guard router.Guard) {
	c.redirects.WithLabelValues(guard.String()).Inc()
}

func (c *Collector) RecordNotFound() {
	c.notFound.Inc()
}

func (c *Collector) RecordSession(op models.EventKind, success bool) {
	result := "failure"
	if success {
		result = "success"
	}
	c.sessionOps.WithLabelValues(string(op), result).Inc()
}

func (c *Collector) RecordPreferenceWrite(key string) {
	c.prefWrites.WithLabelValues(key).Inc()
}

// Nop is a Recorder that records nothing
type Nop struct{}

func (Nop) RecordNavigation(router.Page)         {}
func (Nop) RecordRedirect(router.Guard)          {}
func (Nop) RecordNotFound()                      {}
func (Nop) RecordSession(models.EventKind, bool) {}
func (Nop) RecordPreferenceWrite(string)         {}

// Handler serves the gathered metrics at /metrics
func Handler(gatherer prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	return r
}
