// Package observability routes pipeline, cache and HTTP events to a
// metrics backend.
//
// Packages that do work call the hook accessors ([Pipeline], [Cache],
// [HTTP]) and never import Prometheus themselves. Until something is
// installed every accessor returns a no-op. The render server installs
// the collectors from [NewMetrics] once at startup:
//
//	observability.NewMetrics(prometheus.DefaultRegisterer).Install()
//
// and the pipeline reports through whatever is installed:
//
//	hooks := observability.Pipeline()
//	hooks.OnLayoutStart(ctx, g.NodeCount())
//	l, err := flowchart.New(cfg).Layout(g)
//	hooks.OnLayoutComplete(ctx, len(l.Depths), time.Since(start), err)
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// PipelineHooks receives the stage events of one render: ingest, layout,
// then drawing of the requested formats.
type PipelineHooks interface {
	OnIngestComplete(ctx context.Context, nodeCount, edgeCount int, duration time.Duration, err error)
	OnLayoutStart(ctx context.Context, nodeCount int)
	OnLayoutComplete(ctx context.Context, depthCount int, duration time.Duration, err error)
	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// CacheHooks receives artifact cache lookups and writes. keyType names the
// kind of entry, currently always "artifact".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks receives one OnRequest and one OnResponse per served request.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, path string)
	OnResponse(ctx context.Context, method, path string, statusCode, size int, duration time.Duration)
}

// NoopPipelineHooks discards pipeline events.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnIngestComplete(context.Context, int, int, time.Duration, error) {}
func (NoopPipelineHooks) OnLayoutStart(context.Context, int)                               {}
func (NoopPipelineHooks) OnLayoutComplete(context.Context, int, time.Duration, error)      {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                          {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {}

// NoopCacheHooks discards cache events.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks discards HTTP events.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                           {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, int, time.Duration) {}

// slot holds the installed implementation of one hook interface, falling
// back to def while nothing is installed.
type slot[T any] struct {
	def T
	cur atomic.Pointer[T]
}

func (s *slot[T]) get() T {
	if p := s.cur.Load(); p != nil {
		return *p
	}
	return s.def
}

func (s *slot[T]) set(h T) { s.cur.Store(&h) }

func (s *slot[T]) reset() { s.cur.Store(nil) }

var (
	pipelineSlot = slot[PipelineHooks]{def: NoopPipelineHooks{}}
	cacheSlot    = slot[CacheHooks]{def: NoopCacheHooks{}}
	httpSlot     = slot[HTTPHooks]{def: NoopHTTPHooks{}}
)

// SetPipelineHooks installs h for every later [Pipeline] call. A nil h is
// ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h != nil {
		pipelineSlot.set(h)
	}
}

// SetCacheHooks installs h for every later [Cache] call. A nil h is
// ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		cacheSlot.set(h)
	}
}

// SetHTTPHooks installs h for every later [HTTP] call. A nil h is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h != nil {
		httpSlot.set(h)
	}
}

// Pipeline returns the installed pipeline hooks.
func Pipeline() PipelineHooks { return pipelineSlot.get() }

// Cache returns the installed cache hooks.
func Cache() CacheHooks { return cacheSlot.get() }

// HTTP returns the installed HTTP hooks.
func HTTP() HTTPHooks { return httpSlot.get() }

// Reset uninstalls every hook. Tests that install metrics defer it.
func Reset() {
	pipelineSlot.reset()
	cacheSlot.reset()
	httpSlot.reset()
}
