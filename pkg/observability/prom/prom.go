// Package prom implements the observability hooks with Prometheus metrics.
//
//	reg := prometheus.NewRegistry()
//	prom.Register(reg)
//	http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
package prom

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/plantforge/plantforge/pkg/observability"
)

const namespace = "plantforge"

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// PipelineHooks records layout and render counts and durations.
type PipelineHooks struct {
	layouts        *prometheus.CounterVec
	layoutDuration *prometheus.HistogramVec
	tanks          prometheus.Histogram
	renders        *prometheus.CounterVec
	renderDuration prometheus.Histogram
}

// NewPipelineHooks registers pipeline metrics on reg.
func NewPipelineHooks(reg prometheus.Registerer) *PipelineHooks {
	f := promauto.With(reg)
	return &PipelineHooks{
		layouts: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "layouts_total",
			Help:      "Computed plant layouts by style and outcome.",
		}, []string{"style", "status"}),
		layoutDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "layout_duration_seconds",
			Help:      "Time spent computing plant layouts.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 8),
		}, []string{"style"}),
		tanks: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "layout_tanks",
			Help:      "Tank count of computed layouts.",
			Buckets:   prometheus.LinearBuckets(1, 1, 20),
		}),
		renders: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "renders_total",
			Help:      "Render calls by outcome.",
		}, []string{"status"}),
		renderDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_seconds",
			Help:      "Time spent rendering artifacts.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

func (h *PipelineHooks) OnLayoutStart(context.Context, string, int) {}

func (h *PipelineHooks) OnLayoutComplete(_ context.Context, style string, tanks int, d time.Duration, err error) {
	h.layouts.WithLabelValues(style, status(err)).Inc()
	h.layoutDuration.WithLabelValues(style).Observe(d.Seconds())
	if err == nil {
		h.tanks.Observe(float64(tanks))
	}
}

func (h *PipelineHooks) OnRenderStart(context.Context, []string) {}

func (h *PipelineHooks) OnRenderComplete(_ context.Context, _ []string, d time.Duration, err error) {
	h.renders.WithLabelValues(status(err)).Inc()
	h.renderDuration.Observe(d.Seconds())
}

// CacheHooks counts cache hits, misses and written bytes.
type CacheHooks struct {
	lookups *prometheus.CounterVec
	written *prometheus.CounterVec
}

// NewCacheHooks registers cache metrics on reg.
func NewCacheHooks(reg prometheus.Registerer) *CacheHooks {
	f := promauto.With(reg)
	return &CacheHooks{
		lookups: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Cache lookups by key type and result.",
		}, []string{"type", "result"}),
		written: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_written_bytes_total",
			Help:      "Bytes written to the cache by key type.",
		}, []string{"type"}),
	}
}

func (h *CacheHooks) OnCacheHit(_ context.Context, keyType string) {
	h.lookups.WithLabelValues(keyType, "hit").Inc()
}

func (h *CacheHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.lookups.WithLabelValues(keyType, "miss").Inc()
}

func (h *CacheHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.written.WithLabelValues(keyType).Add(float64(size))
}

// StoreHooks records design store call durations.
type StoreHooks struct {
	ops *prometheus.HistogramVec
}

// NewStoreHooks registers store metrics on reg.
func NewStoreHooks(reg prometheus.Registerer) *StoreHooks {
	return &StoreHooks{
		ops: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "store_operation_duration_seconds",
			Help:      "Design store call latency by operation and outcome.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op", "status"}),
	}
}

func (h *StoreHooks) OnStoreOp(_ context.Context, op string, d time.Duration, err error) {
	h.ops.WithLabelValues(op, status(err)).Observe(d.Seconds())
}

// HTTPHooks records served requests and live WebSocket traffic.
type HTTPHooks struct {
	inflight *prometheus.GaugeVec
	requests *prometheus.HistogramVec
	live     *prometheus.CounterVec
}

// NewHTTPHooks registers HTTP metrics on reg.
func NewHTTPHooks(reg prometheus.Registerer) *HTTPHooks {
	f := promauto.With(reg)
	return &HTTPHooks{
		inflight: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "Requests currently being served.",
		}, []string{"method"}),
		requests: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Served request latency by route and status code.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "code"}),
		live: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "live_messages_total",
			Help:      "Messages handled on the live layout stream.",
		}, []string{"status"}),
	}
}

func (h *HTTPHooks) OnRequest(_ context.Context, method string) {
	h.inflight.WithLabelValues(method).Inc()
}

func (h *HTTPHooks) OnResponse(_ context.Context, method, route string, code int, d time.Duration) {
	h.inflight.WithLabelValues(method).Dec()
	h.requests.WithLabelValues(method, route, statusCode(code)).Observe(d.Seconds())
}

func (h *HTTPHooks) OnLiveMessage(_ context.Context, err error) {
	h.live.WithLabelValues(status(err)).Inc()
}

func statusCode(code int) string {
	switch {
	case code >= 500:
		return "5xx"
	case code >= 400:
		return "4xx"
	case code >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}

// Register creates every hook set on reg and installs them globally.
func Register(reg prometheus.Registerer) {
	observability.SetPipelineHooks(NewPipelineHooks(reg))
	observability.SetCacheHooks(NewCacheHooks(reg))
	observability.SetStoreHooks(NewStoreHooks(reg))
	observability.SetHTTPHooks(NewHTTPHooks(reg))
}

var (
	_ observability.PipelineHooks = (*PipelineHooks)(nil)
	_ observability.CacheHooks    = (*CacheHooks)(nil)
	_ observability.StoreHooks    = (*StoreHooks)(nil)
	_ observability.HTTPHooks     = (*HTTPHooks)(nil)
)
