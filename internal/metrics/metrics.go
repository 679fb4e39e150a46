// Package metrics implements the observability hooks with Prometheus
// collectors.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/blobposter/pkg/observability"
)

const namespace = "blobposter"

// Metrics holds the collectors. It satisfies both observability.PosterHooks
// and observability.HTTPHooks.
type Metrics struct {
	composeTotal    *prometheus.CounterVec
	composeDuration prometheus.Histogram
	renderTotal     *prometheus.CounterVec
	renderDuration  *prometheus.HistogramVec
	renderBytes     *prometheus.CounterVec

	httpInflight prometheus.Gauge
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	httpErrors   *prometheus.CounterVec
}

var (
	_ observability.PosterHooks = (*Metrics)(nil)
	_ observability.HTTPHooks   = (*Metrics)(nil)
)

// New creates the collectors and registers them with registry.
func New(registry prometheus.Registerer) *Metrics {
	m := &Metrics{
		composeTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "poster",
			Name:      "composed_total",
			Help:      "Number of composed posters by palette, style and result.",
		}, []string{"palette", "style", "result"}),
		composeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "poster",
			Name:      "compose_duration_seconds",
			Help:      "Time spent composing poster layers.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		renderTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "render",
			Name:      "artifacts_total",
			Help:      "Number of rendered artifacts by format and result.",
		}, []string{"format", "result"}),
		renderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "render",
			Name:      "duration_seconds",
			Help:      "Time spent rendering one artifact.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}, []string{"format"}),
		renderBytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "render",
			Name:      "bytes_total",
			Help:      "Total size of rendered artifacts.",
		}, []string{"format"}),
		httpInflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_inflight",
			Help:      "Number of requests currently being served.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Number of HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		httpErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "errors_total",
			Help:      "Number of handler errors returned to clients.",
		}, []string{"route", "method"}),
	}
	registry.MustRegister(
		m.composeTotal,
		m.composeDuration,
		m.renderTotal,
		m.renderDuration,
		m.renderBytes,
		m.httpInflight,
		m.httpRequests,
		m.httpDuration,
		m.httpErrors,
	)
	return m
}

// Handler exposes the collectors gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (m *Metrics) OnComposeStart(context.Context, string, string) {}

func (m *Metrics) OnComposeComplete(_ context.Context, palette, style string, _ int, d time.Duration, err error) {
	m.composeTotal.WithLabelValues(palette, style, result(err)).Inc()
	m.composeDuration.Observe(d.Seconds())
}

func (m *Metrics) OnRenderStart(context.Context, string) {}

func (m *Metrics) OnRenderComplete(_ context.Context, format string, size int, d time.Duration, err error) {
	m.renderTotal.WithLabelValues(format, result(err)).Inc()
	m.renderDuration.WithLabelValues(format).Observe(d.Seconds())
	if err == nil {
		m.renderBytes.WithLabelValues(format).Add(float64(size))
	}
}

func (m *Metrics) OnRequest(context.Context, string, string) {
	m.httpInflight.Inc()
}

func (m *Metrics) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	m.httpInflight.Dec()
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(route, method).Observe(d.Seconds())
}

func (m *Metrics) OnError(_ context.Context, method, route string, _ error) {
	m.httpErrors.WithLabelValues(route, method).Inc()
}
