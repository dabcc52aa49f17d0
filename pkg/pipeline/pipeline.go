// Package pipeline provides the render pipeline for flowviz.
//
// This package implements the complete ingest → layout → render pipeline
// used by the CLI and the HTTP server. By centralizing this logic, both
// entry points validate, cache and report the same way.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Ingest: Read tab-separated node records into a [flow.Graph]
//  2. Layout: Assign column positions with [flowchart.Chart]
//  3. Render: Paint and serialize each requested format
//
// Rendered artifacts are cached per format, keyed by the hash of the input
// records and of the effective configuration.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Records: data,
//	    Header:  true,
//	    Formats: []string{"svg", "png"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	g, err := pipeline.Ingest(opts)
//	l, err := pipeline.Layout(g, opts)
//	artifacts, err := pipeline.Render(ctx, g, l, opts)
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/flowviz/pkg/cache"
	"github.com/matzehuels/flowviz/pkg/errors"
	"github.com/matzehuels/flowviz/pkg/flow"
	"github.com/matzehuels/flowviz/pkg/render/flowchart"
	"github.com/matzehuels/flowviz/pkg/style"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJPEG = "jpeg"
	FormatPDF  = "pdf"
	FormatEPS  = "eps"
	FormatDOT  = "dot"
	FormatJSON = "json"
)

// Engine constants select who draws SVG-based formats.
const (
	// EngineNative paints with the built-in canvas.
	EngineNative = "native"
	// EngineGraphviz renders the pinned-position DOT export with neato.
	EngineGraphviz = "graphviz"
)

// DefaultFormat is rendered when no format is requested.
const DefaultFormat = FormatSVG

// formatOrder lists the supported formats for messages and help text.
var formatOrder = []string{FormatSVG, FormatPNG, FormatJPEG, FormatPDF, FormatEPS, FormatDOT, FormatJSON}

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatJPEG: true,
	FormatPDF:  true,
	FormatEPS:  true,
	FormatDOT:  true,
	FormatJSON: true,
}

// ValidEngines is the set of supported engines.
var ValidEngines = map[string]bool{
	EngineNative:   true,
	EngineGraphviz: true,
}

// contentTypes maps formats to HTTP content types.
var contentTypes = map[string]string{
	FormatSVG:  "image/svg+xml",
	FormatPNG:  "image/png",
	FormatJPEG: "image/jpeg",
	FormatPDF:  "application/pdf",
	FormatEPS:  "application/postscript",
	FormatDOT:  "text/vnd.graphviz",
	FormatJSON: "application/json",
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
type Options struct {
	// Records is the tab-separated record stream.
	Records []byte `json:"-"`
	// Header skips the first line of Records.
	Header bool `json:"header,omitempty"`
	// Legacy keeps re-declared nodes in every layer they were declared in.
	Legacy bool `json:"legacy,omitempty"`

	Formats []string `json:"formats,omitempty"`
	Engine  string   `json:"engine,omitempty"`
	// Config is the drawing configuration; nil uses style.Default().
	Config *style.Config `json:"config,omitempty"`
	// EmbedFont embeds the label font in SVG output.
	EmbedFont   bool `json:"embed_font,omitempty"`
	JPEGQuality int  `json:"jpeg_quality,omitempty"`
	// Refresh skips cache reads; results are still written.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	cfg        style.Config
	configHash string
	validated  bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// ID identifies the run in logs and response headers.
	ID uuid.UUID

	// Graph is the ingested graph, positioned by the layout stage.
	Graph *flow.Graph

	// Layout is the result of the position pass.
	Layout flowchart.Layout

	// RecordsHash is the content hash of the input records.
	RecordsHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which artifacts came from the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	DepthCount int
	Skipped    []int
	IngestTime time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for the render stage.
type CacheInfo struct {
	Hits      []string // Formats served from cache
	RenderHit bool     // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, strings.Join(formatOrder, ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateEngine checks that an engine is valid.
func ValidateEngine(engine string) error {
	if !ValidEngines[engine] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid engine: %q (must be one of: native, graphviz)", engine)
	}
	return nil
}

// SupportedFormats returns the supported formats in display order.
func SupportedFormats() []string { return slices.Clone(formatOrder) }

// ContentType returns the HTTP content type of a format.
func ContentType(format string) string {
	if ct, ok := contentTypes[format]; ok {
		return ct
	}
	return "application/octet-stream"
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the options, applies defaults and resolves
// the effective (validated and scaled) configuration.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	o.Formats = dedupe(o.Formats)
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Engine == "" {
		o.Engine = EngineNative
	}
	if err := ValidateEngine(o.Engine); err != nil {
		return err
	}

	cfg := style.Default()
	if o.Config != nil {
		cfg = *o.Config
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	o.cfg = cfg.Scaled()

	h, err := cache.HashJSON(o.cfg)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "hash config")
	}
	o.configHash = h

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// EffectiveConfig returns the configuration the pipeline draws with. It is
// only meaningful after ValidateAndSetDefaults.
func (o *Options) EffectiveConfig() style.Config { return o.cfg }

// ArtifactKeyOpts returns cache key options for one rendered format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:     format,
		ConfigHash: o.configHash,
		Header:     o.Header,
		Engine:     o.Engine,
		Legacy:     o.Legacy,
	}
}

// UsesGraphviz reports whether SVG-based formats are drawn by Graphviz.
func (o *Options) UsesGraphviz() bool { return o.Engine == EngineGraphviz }

func dedupe(formats []string) []string {
	out := make([]string, 0, len(formats))
	for _, f := range formats {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "jpg" {
			f = FormatJPEG
		}
		if !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}
