package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()
	var (
		p PipelineHooks = NoopPipelineHooks{}
		c CacheHooks    = NoopCacheHooks{}
		h HTTPHooks     = NoopHTTPHooks{}
	)
	p.OnIngestComplete(ctx, 13, 13, time.Millisecond, nil)
	p.OnLayoutStart(ctx, 13)
	p.OnLayoutComplete(ctx, 3, time.Millisecond, nil)
	p.OnRenderStart(ctx, []string{"svg"})
	p.OnRenderComplete(ctx, []string{"svg"}, time.Second, errors.New("draw"))
	c.OnCacheHit(ctx, "artifact")
	c.OnCacheMiss(ctx, "artifact")
	c.OnCacheSet(ctx, "artifact", 1024)
	h.OnRequest(ctx, "POST", "/render")
	h.OnResponse(ctx, "POST", "/render", 200, 512, time.Second)
}

func TestHookSlots(t *testing.T) {
	Reset()
	defer Reset()

	tests := []struct {
		name    string
		isNoop  func() bool
		install func()
		custom  func() bool
	}{
		{
			name:    "pipeline",
			isNoop:  func() bool { _, ok := Pipeline().(NoopPipelineHooks); return ok },
			install: func() { SetPipelineHooks(&testPipelineHooks{}) },
			custom:  func() bool { _, ok := Pipeline().(*testPipelineHooks); return ok },
		},
		{
			name:    "cache",
			isNoop:  func() bool { _, ok := Cache().(NoopCacheHooks); return ok },
			install: func() { SetCacheHooks(&testCacheHooks{}) },
			custom:  func() bool { _, ok := Cache().(*testCacheHooks); return ok },
		},
		{
			name:    "http",
			isNoop:  func() bool { _, ok := HTTP().(NoopHTTPHooks); return ok },
			install: func() { SetHTTPHooks(&testHTTPHooks{}) },
			custom:  func() bool { _, ok := HTTP().(*testHTTPHooks); return ok },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.isNoop() {
				t.Fatal("default should be the no-op")
			}
			tt.install()
			if !tt.custom() {
				t.Fatal("installed hooks not returned")
			}
			Reset()
			if !tt.isNoop() {
				t.Error("Reset should restore the no-op")
			}
		})
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &testPipelineHooks{}
	SetPipelineHooks(custom)
	SetPipelineHooks(nil)
	SetCacheHooks(nil)
	SetHTTPHooks(nil)

	if Pipeline() != custom {
		t.Error("SetPipelineHooks(nil) should be ignored")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("SetCacheHooks(nil) should keep the no-op")
	}
}

func TestMetricsInstall(t *testing.T) {
	Reset()
	defer Reset()

	m := NewMetrics(prometheus.NewRegistry())
	m.Install()

	if Pipeline() != PipelineHooks(m) || Cache() != CacheHooks(m) || HTTP() != HTTPHooks(m) {
		t.Fatal("Install should register the metrics for every hook")
	}
}

func TestMetricsRecord(t *testing.T) {
	ctx := context.Background()
	m := NewMetrics(prometheus.NewRegistry())

	m.OnCacheHit(ctx, "artifact")
	m.OnCacheHit(ctx, "artifact")
	m.OnCacheMiss(ctx, "artifact")
	m.OnCacheSet(ctx, "artifact", 300)

	m.OnRenderComplete(ctx, []string{"svg", "png"}, time.Millisecond, nil)
	m.OnRenderComplete(ctx, []string{"svg", "png"}, time.Millisecond, errors.New("boom"))

	m.OnIngestComplete(ctx, 0, 0, 0, errors.New("bad record"))

	m.OnRequest(ctx, "POST", "/render")
	if got := testutil.ToFloat64(m.HTTPInFlight); got != 1 {
		t.Errorf("in flight = %v, want 1", got)
	}
	m.OnResponse(ctx, "POST", "/render", 200, 2048, time.Millisecond)

	tests := []struct {
		name string
		c    prometheus.Collector
		want float64
	}{
		{"cache hits", m.CacheRequests.WithLabelValues("artifact", "hit"), 2},
		{"cache misses", m.CacheRequests.WithLabelValues("artifact", "miss"), 1},
		{"cache bytes", m.CacheBytes.WithLabelValues("artifact"), 300},
		{"renders ok", m.RendersTotal.WithLabelValues("svg,png", "ok"), 1},
		{"renders failed", m.RendersTotal.WithLabelValues("svg,png", "error"), 1},
		{"ingest errors", m.IngestErrors, 1},
		{"requests", m.HTTPRequests.WithLabelValues("POST", "/render", "200"), 1},
		{"in flight", m.HTTPInFlight, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := testutil.ToFloat64(tt.c); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

type testPipelineHooks struct{ NoopPipelineHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
