// Package metrics exposes prometheus instrumentation for catalog loads and
// playback.
//
// All recorders are safe to call on a nil *Metrics, which records nothing.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Playback results
const (
	ResultOK     = "ok"
	ResultFailed = "failed"
)

// Metrics owns a private registry so tests and multiple instances do not
// collide on the global one
type Metrics struct {
	registry *prometheus.Registry

	loads        *prometheus.CounterVec
	stale        *prometheus.CounterVec
	loadFailures *prometheus.CounterVec
	loadDuration *prometheus.HistogramVec
	playback     *prometheus.CounterVec
	httpRequests *prometheus.CounterVec
}

// New registers every reel metric plus the Go runtime collectors
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		loads: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "reel_loads_total",
			Help: "Catalog loads issued per region",
		}, []string{"region"}),
		stale: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "reel_stale_responses_total",
			Help: "Load responses dropped because a newer load superseded them",
		}, []string{"region"}),
		loadFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "reel_load_failures_total",
			Help: "Catalog loads that ended in an error",
		}, []string{"region"}),
		loadDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "reel_load_duration_seconds",
			Help:    "Time from issuing a load to receiving its response",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"region"}),
		playback: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "reel_playback_total",
			Help: "Play requests by result",
		}, []string{"result"}),
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "reel_http_requests_total",
			Help: "Catalog API requests served, by route and status",
		}, []string{"route", "status"}),
	}
}

// Registry returns the registry backing m
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) LoadStarted(region string) {
	if m == nil {
		return
	}
	m.loads.WithLabelValues(region).Inc()
}

// LoadFinished records a response that was applied to its region
func (m *Metrics) LoadFinished(region string, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	m.loadDuration.WithLabelValues(region).Observe(elapsed.Seconds())
	if err != nil {
		m.loadFailures.WithLabelValues(region).Inc()
	}
}

func (m *Metrics) StaleResponse(region string) {
	if m == nil {
		return
	}
	m.stale.WithLabelValues(region).Inc()
}

func (m *Metrics) Playback(err error) {
	if m == nil {
		return
	}
	result := ResultOK
	if err != nil {
		result = ResultFailed
	}
	m.playback.WithLabelValues(result).Inc()
}

func (m *Metrics) HTTPRequest(route string, status int) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
}
