// Package metrics exposes Prometheus counters and histograms for the API.
//
// Each Metrics value owns its own registry instead of using the global
// default one, so tests can build as many servers as they like without
// "duplicate metrics collector registration" panics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	Registry *prometheus.Registry

	PastesCreated      prometheus.Counter
	PastesUpdated      prometheus.Counter
	PastesDeleted      prometheus.Counter
	ValidationFailures *prometheus.CounterVec
	RequestDuration    *prometheus.HistogramVec
}

// New registers every collector on a fresh registry, together with the
// standard Go runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		PastesCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "pastebin_pastes_created_total",
			Help: "no. of pastes created",
		}),
		PastesUpdated: factory.NewCounter(prometheus.CounterOpts{
			Name: "pastebin_pastes_updated_total",
			Help: "no. of pastes updated",
		}),
		PastesDeleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "pastebin_pastes_deleted_total",
			Help: "no. of pastes deleted",
		}),
		ValidationFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pastebin_validation_failures_total",
				Help: "no. of requests rejected by the validation chain",
			},
			[]string{"field"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pastebin_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}
