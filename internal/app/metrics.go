package app

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics instruments the HTTP viewer
type Metrics struct {
	registry *prometheus.Registry

	requests     *prometheus.CounterVec
	loads        *prometheus.CounterVec
	eventsLoaded prometheus.Gauge
	lastLoadTS   prometheus.Gauge
	renderDur    prometheus.Histogram
	lookupMisses prometheus.Counter
}

// NewMetrics creates the collectors on a private registry
func NewMetrics() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.requests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "timeline",
		Name:      "http_requests_total",
		Help:      "HTTP requests by handler and status code",
	}, []string{"handler", "code"})
	m.loads = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "timeline",
		Name:      "loads_total",
		Help:      "Event document loads by result",
	}, []string{"result"})
	m.eventsLoaded = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "timeline",
		Name:      "events_loaded",
		Help:      "Number of events in the current store",
	})
	m.lastLoadTS = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "timeline",
		Name:      "last_load_timestamp_seconds",
		Help:      "Unix timestamp of the last successful load",
	})
	m.renderDur = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "timeline",
		Name:      "render_duration_seconds",
		Help:      "Time spent filtering, sorting and rendering a page",
		Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 10),
	})
	m.lookupMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "timeline",
		Name:      "lookup_misses_total",
		Help:      "Detail requests for unknown event ids",
	})

	m.registry.MustRegister(
		m.requests, m.loads, m.eventsLoaded, m.lastLoadTS, m.renderDur, m.lookupMisses,
		collectors.NewGoCollector(),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveLoad records the outcome of a load
func (m *Metrics) ObserveLoad(store *EventStore, err error) {
	if err != nil {
		result := "fetch_error"
		var se *SchemaError
		if errors.As(err, &se) {
			result = "schema_error"
		}
		m.loads.WithLabelValues(result).Inc()
		return
	}
	m.loads.WithLabelValues("ok").Inc()
	m.eventsLoaded.Set(float64(store.Len()))
	m.lastLoadTS.Set(float64(time.Now().Unix()))
}

// ObserveRender records how long building one page took
func (m *Metrics) ObserveRender(d time.Duration) {
	m.renderDur.Observe(d.Seconds())
}

// LookupMiss counts a detail request for an unknown id
func (m *Metrics) LookupMiss() {
	m.lookupMisses.Inc()
}

// Instrument wraps a handler and counts its responses
func (m *Metrics) Instrument(name string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r)
		m.requests.WithLabelValues(name, strconv.Itoa(rec.status)).Inc()
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
