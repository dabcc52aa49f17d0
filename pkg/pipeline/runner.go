package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/flowviz/pkg/cache"
	"github.com/matzehuels/flowviz/pkg/flow"
	"github.com/matzehuels/flowviz/pkg/observability"
	"github.com/matzehuels/flowviz/pkg/render/flowchart"
)

// artifactKeyType labels artifact cache events.
const artifactKeyType = "artifact"

// Runner executes renders against an artifact cache. The CLI and the HTTP
// server share it, and one Runner may serve concurrent Execute calls: it
// keeps no per-render state.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner returns a Runner. Nil arguments fall back to a [cache.NullCache],
// the [cache.DefaultKeyer] and the default logger.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	r := &Runner{Cache: c, Keyer: keyer, Logger: logger}
	if r.Cache == nil {
		r.Cache = cache.NewNullCache()
	}
	if r.Keyer == nil {
		r.Keyer = cache.NewDefaultKeyer()
	}
	if r.Logger == nil {
		r.Logger = log.Default()
	}
	return r
}

// Execute ingests opts.Records, lays the graph out and returns one artifact
// per requested format. Formats already in the cache are not redrawn unless
// opts.Refresh is set.
//
// Every render gets a fresh ID that tags its log lines. Stage errors are
// wrapped with the stage name.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	res := &Result{ID: uuid.New(), RecordsHash: cache.Hash(opts.Records)}
	logger := r.Logger.With("render", res.ID.String())
	hooks := observability.Pipeline()

	if err := r.ingest(ctx, res, opts, hooks); err != nil {
		return nil, fmt.Errorf("ingest: %w", err)
	}
	logger.Info("ingested records",
		"nodes", res.Stats.NodeCount,
		"edges", res.Stats.EdgeCount,
		"duration", res.Stats.IngestTime)

	if err := r.layout(ctx, res, opts, hooks); err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	logger.Info("computed layout",
		"columns", res.Stats.DepthCount,
		"skipped", len(res.Stats.Skipped),
		"duration", res.Stats.LayoutTime)

	if err := r.render(ctx, res, opts, hooks); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", res.CacheInfo.Hits,
		"duration", res.Stats.RenderTime)

	return res, nil
}

func (r *Runner) ingest(ctx context.Context, res *Result, opts Options, hooks observability.PipelineHooks) error {
	start := time.Now()
	g, err := Ingest(opts)
	res.Stats.IngestTime = time.Since(start)
	if err != nil {
		hooks.OnIngestComplete(ctx, 0, 0, res.Stats.IngestTime, err)
		return err
	}
	res.Graph = g
	res.Stats.NodeCount = g.NodeCount()
	res.Stats.EdgeCount = g.EdgeCount()
	hooks.OnIngestComplete(ctx, res.Stats.NodeCount, res.Stats.EdgeCount, res.Stats.IngestTime, nil)
	return nil
}

func (r *Runner) layout(ctx context.Context, res *Result, opts Options, hooks observability.PipelineHooks) error {
	hooks.OnLayoutStart(ctx, res.Graph.NodeCount())
	start := time.Now()
	l, err := Layout(res.Graph, opts)
	res.Stats.LayoutTime = time.Since(start)
	hooks.OnLayoutComplete(ctx, len(l.Depths), res.Stats.LayoutTime, err)
	if err != nil {
		return err
	}
	res.Layout = l
	res.Stats.DepthCount = len(l.Depths)
	res.Stats.Skipped = l.Skipped
	return nil
}

func (r *Runner) render(ctx context.Context, res *Result, opts Options, hooks observability.PipelineHooks) error {
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	artifacts, hits, err := r.cachedRender(ctx, res.RecordsHash, res.Graph, res.Layout, opts)
	res.Stats.RenderTime = time.Since(start)
	hooks.OnRenderComplete(ctx, opts.Formats, res.Stats.RenderTime, err)
	if err != nil {
		return err
	}
	res.Artifacts = artifacts
	res.CacheInfo = CacheInfo{Hits: hits, RenderHit: len(hits) == len(opts.Formats)}
	return nil
}

// cachedRender serves each format in opts.Formats from the cache when it
// can, draws the rest in one Render call and stores them. It returns the
// artifacts and the formats that were cache hits. Cache failures are logged
// and treated as misses.
func (r *Runner) cachedRender(ctx context.Context, recordsHash string, g *flow.Graph, l flowchart.Layout, opts Options) (map[string][]byte, []string, error) {
	hooks := observability.Cache()
	key := func(format string) string {
		return r.Keyer.ArtifactKey(recordsHash, opts.ArtifactKeyOpts(format))
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	var hits, todo []string
	for _, format := range opts.Formats {
		if opts.Refresh {
			todo = append(todo, format)
			continue
		}
		data, hit, err := r.Cache.Get(ctx, key(format))
		switch {
		case err != nil:
			r.Logger.Debug("cache read failed", "format", format, "error", err)
			fallthrough
		case !hit:
			hooks.OnCacheMiss(ctx, artifactKeyType)
			todo = append(todo, format)
		default:
			hooks.OnCacheHit(ctx, artifactKeyType)
			artifacts[format] = data
			hits = append(hits, format)
		}
	}
	if len(todo) == 0 {
		return artifacts, hits, nil
	}

	drawOpts := opts
	drawOpts.Formats = todo
	drawn, err := Render(ctx, g, l, drawOpts)
	if err != nil {
		return nil, nil, err
	}
	for format, data := range drawn {
		artifacts[format] = data
		if err := r.Cache.Set(ctx, key(format), data, cache.DefaultTTL); err != nil {
			r.Logger.Warn("cache write failed", "format", format, "error", err)
			continue
		}
		hooks.OnCacheSet(ctx, artifactKeyType, len(data))
	}
	return artifacts, hits, nil
}

// Close closes the cache.
func (r *Runner) Close() error {
	return r.Cache.Close()
}
