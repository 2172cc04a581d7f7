// Package metrics exposes prometheus counters for translated failures.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors and the registry they live in.
type Metrics struct {
	reg      *prometheus.Registry
	failures *prometheus.CounterVec
}

// New creates a registry with the failure counter and the Go runtime collectors.
func New(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "failures_translated_total",
		Help:      "Failed requests translated into result envelopes, by kind and code.",
	}, []string{"kind", "code"})

	reg.MustRegister(
		failures,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return &Metrics{reg: reg, failures: failures}
}

// ObserveFailure counts one translated failure.
func (m *Metrics) ObserveFailure(kind string, code int) {
	if m == nil {
		return
	}
	m.failures.WithLabelValues(kind, strconv.Itoa(code)).Inc()
}

// Failures returns the counter vector, mostly for tests.
func (m *Metrics) Failures() *prometheus.CounterVec { return m.failures }

// Handler serves the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}
