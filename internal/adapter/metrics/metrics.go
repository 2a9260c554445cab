// Package metrics exposes the gateway's Prometheus collectors.
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"wom-connector/pkg/apperror"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "wom_connector"

// Metrics owns a private Prometheus registry, so tests and multiple gateways
// in one process do not collide on the default registerer.
type Metrics struct {
	registry *prometheus.Registry

	registryCalls   *prometheus.CounterVec
	registryLatency *prometheus.HistogramVec
	httpRequests    *prometheus.CounterVec
	httpLatency     *prometheus.HistogramVec
}

// New creates and registers the gateway collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		registryCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "registry_requests_total",
				Help:      "Number of Registry calls by path and outcome",
			},
			[]string{"path", "outcome"},
		),
		registryLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "registry_request_duration_seconds",
				Help:      "Latency of Registry calls",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"path"},
		),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Number of gateway HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		httpLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Latency of gateway HTTP requests",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}

	m.registry.MustRegister(
		m.registryCalls,
		m.registryLatency,
		m.httpRequests,
		m.httpLatency,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveRegistryCall records one Registry call.
func (m *Metrics) ObserveRegistryCall(path string, err error, d time.Duration) {
	m.registryCalls.WithLabelValues(path, Outcome(err)).Inc()
	m.registryLatency.WithLabelValues(path).Observe(d.Seconds())
}

// ObserveHTTP records one gateway HTTP request. route is the matched route
// template, never the raw path.
func (m *Metrics) ObserveHTTP(method, route string, status int, d time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpLatency.WithLabelValues(method, route).Observe(d.Seconds())
}

// Outcome labels err by its error kind: "ok", "protocol", "crypto" and so on.
func Outcome(err error) string {
	if err == nil {
		return "ok"
	}
	for _, k := range []apperror.Kind{
		apperror.KindArgument,
		apperror.KindCrypto,
		apperror.KindProtocol,
		apperror.KindInsufficient,
		apperror.KindGateway,
	} {
		if apperror.IsKind(err, k) {
			return strings.ToLower(string(k))
		}
	}
	return "internal"
}
