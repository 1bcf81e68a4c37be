// Package metrics exports container resolution metrics to Prometheus.
package metrics

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/km-arc/hhcontainer/framework/container"
)

// Collector counts and times container.Get calls. It implements
// container.Observer.
type Collector struct {
	registry    *prometheus.Registry
	resolutions *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

// NewCollector creates a collector on its own registry, with the Go and
// process collectors registered alongside.
func NewCollector(namespace string) *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "container",
			Name:      "resolutions_total",
			Help:      "Container Get calls by identifier, source and outcome.",
		}, []string{"id", "source", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "container",
			Name:      "resolution_duration_seconds",
			Help:      "Time spent in container Get calls.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		}, []string{"source"}),
	}
	c.registry.MustRegister(
		c.resolutions,
		c.duration,
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)
	return c
}

// Observe implements container.Observer.
func (c *Collector) Observe(id string, source container.Source, elapsed time.Duration, err error) {
	c.resolutions.WithLabelValues(id, string(source), outcome(err)).Inc()
	c.duration.WithLabelValues(string(source)).Observe(elapsed.Seconds())
}

// Registry returns the registry the collector's metrics live in.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, container.ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}
