package observability

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics implements every hook interface on top of Prometheus collectors.
type Metrics struct {
	IngestNodes      prometheus.Histogram
	IngestErrors     prometheus.Counter
	LayoutDuration   prometheus.Histogram
	LayoutDepths     prometheus.Histogram
	RendersTotal     *prometheus.CounterVec
	RenderDuration   *prometheus.HistogramVec
	CacheRequests    *prometheus.CounterVec
	CacheBytes       *prometheus.CounterVec
	HTTPRequests     *prometheus.CounterVec
	HTTPDuration     *prometheus.HistogramVec
	HTTPInFlight     prometheus.Gauge
	HTTPResponseSize *prometheus.HistogramVec
}

// NewMetrics creates the flowviz collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		IngestNodes: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "flowviz_ingest_nodes",
			Help:    "Nodes per ingested graph",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		}),
		IngestErrors: f.NewCounter(prometheus.CounterOpts{
			Name: "flowviz_ingest_errors_total",
			Help: "Record streams rejected during ingest",
		}),
		LayoutDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "flowviz_layout_duration_seconds",
			Help:    "Layout pass latency in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		LayoutDepths: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "flowviz_layout_depths",
			Help:    "Columns placed per layout",
			Buckets: []float64{1, 2, 4, 8, 16, 32},
		}),
		RendersTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "flowviz_renders_total",
			Help: "Total number of renders",
		}, []string{"formats", "status"}),
		RenderDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "flowviz_render_duration_seconds",
			Help:    "Render latency in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"formats"}),
		CacheRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "flowviz_cache_requests_total",
			Help: "Cache lookups by result",
		}, []string{"key_type", "result"}),
		CacheBytes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "flowviz_cache_written_bytes_total",
			Help: "Bytes written to the cache",
		}, []string{"key_type"}),
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "flowviz_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		HTTPDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "flowviz_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		HTTPInFlight: f.NewGauge(prometheus.GaugeOpts{
			Name: "flowviz_http_requests_in_flight",
			Help: "Current number of HTTP requests being processed",
		}),
		HTTPResponseSize: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "flowviz_http_response_size_bytes",
			Help:    "HTTP response size in bytes",
			Buckets: []float64{100, 1000, 10000, 100000, 1000000},
		}, []string{"method", "path"}),
	}
}

// Install registers m as the pipeline, cache and HTTP hooks.
func (m *Metrics) Install() {
	SetPipelineHooks(m)
	SetCacheHooks(m)
	SetHTTPHooks(m)
}

func (m *Metrics) OnIngestComplete(_ context.Context, nodeCount, _ int, _ time.Duration, err error) {
	if err != nil {
		m.IngestErrors.Inc()
		return
	}
	m.IngestNodes.Observe(float64(nodeCount))
}

func (m *Metrics) OnLayoutStart(context.Context, int) {}

func (m *Metrics) OnLayoutComplete(_ context.Context, depthCount int, d time.Duration, err error) {
	m.LayoutDuration.Observe(d.Seconds())
	if err == nil {
		m.LayoutDepths.Observe(float64(depthCount))
	}
}

func (m *Metrics) OnRenderStart(context.Context, []string) {}

func (m *Metrics) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	label := strings.Join(formats, ",")
	m.RendersTotal.WithLabelValues(label, status(err)).Inc()
	m.RenderDuration.WithLabelValues(label).Observe(d.Seconds())
}

func (m *Metrics) OnCacheHit(_ context.Context, keyType string) {
	m.CacheRequests.WithLabelValues(keyType, "hit").Inc()
}

func (m *Metrics) OnCacheMiss(_ context.Context, keyType string) {
	m.CacheRequests.WithLabelValues(keyType, "miss").Inc()
}

func (m *Metrics) OnCacheSet(_ context.Context, keyType string, size int) {
	m.CacheBytes.WithLabelValues(keyType).Add(float64(size))
}

func (m *Metrics) OnRequest(context.Context, string, string) {
	m.HTTPInFlight.Inc()
}

func (m *Metrics) OnResponse(_ context.Context, method, path string, code, size int, d time.Duration) {
	m.HTTPInFlight.Dec()
	s := strconv.Itoa(code)
	m.HTTPRequests.WithLabelValues(method, path, s).Inc()
	m.HTTPDuration.WithLabelValues(method, path, s).Observe(d.Seconds())
	m.HTTPResponseSize.WithLabelValues(method, path).Observe(float64(size))
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
