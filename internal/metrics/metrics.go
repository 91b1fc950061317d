package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds the ingest worker's Prometheus collectors.
type Registry struct {
	reg *prometheus.Registry

	EventsReceived  prometheus.Counter
	EventsStored    prometheus.Counter
	EventsFailed    prometheus.Counter
	StoreLatencySec prometheus.Histogram
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	received := prometheus.NewCounter(prometheus.CounterOpts{Name: "ingest_events_received_total"})
	stored := prometheus.NewCounter(prometheus.CounterOpts{Name: "ingest_events_stored_total"})
	failed := prometheus.NewCounter(prometheus.CounterOpts{Name: "ingest_events_failed_total"})
	latency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "ingest_store_latency_seconds",
		Buckets: prometheus.DefBuckets,
	})

	r.MustRegister(received, stored, failed, latency)
	return &Registry{
		reg:             r,
		EventsReceived:  received,
		EventsStored:    stored,
		EventsFailed:    failed,
		StoreLatencySec: latency,
	}
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }
