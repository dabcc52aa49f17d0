package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"image/color"

	"github.com/matzehuels/flowviz/pkg/errors"
	"github.com/matzehuels/flowviz/pkg/flow"
	"github.com/matzehuels/flowviz/pkg/render"
	"github.com/matzehuels/flowviz/pkg/render/canvas"
	"github.com/matzehuels/flowviz/pkg/render/flowchart"
	"github.com/matzehuels/flowviz/pkg/render/nodelink"
	"github.com/matzehuels/flowviz/pkg/style"
)

// Render generates output artifacts in the requested formats. g must have
// been laid out with l. opts must have been validated.
func Render(ctx context.Context, g *flow.Graph, l flowchart.Layout, opts Options) (map[string][]byte, error) {
	r := &renderer{ctx: ctx, g: g, l: l, opts: opts, chart: newChart(opts)}
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := r.render(format)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, errors.WithStage(errors.StageSerialize, err))
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// renderer draws one graph into several formats, sharing the SVG document
// between the formats converted from it.
type renderer struct {
	ctx   context.Context
	g     *flow.Graph
	l     flowchart.Layout
	opts  Options
	chart *flowchart.Chart
	svg   []byte
}

func (r *renderer) render(format string) ([]byte, error) {
	switch format {
	case FormatSVG:
		return r.svgDocument()
	case FormatPDF:
		svg, err := r.svgDocument()
		if err != nil {
			return nil, err
		}
		return render.ToPDF(r.ctx, svg)
	case FormatEPS:
		svg, err := r.svgDocument()
		if err != nil {
			return nil, err
		}
		return render.ToEPS(r.ctx, svg)
	case FormatPNG, FormatJPEG:
		return r.raster(format)
	case FormatDOT:
		return []byte(r.dot()), nil
	case FormatJSON:
		return r.json()
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported format: %s", format)
	}
}

func (r *renderer) svgDocument() ([]byte, error) {
	if r.svg != nil {
		return r.svg, nil
	}
	if r.opts.UsesGraphviz() {
		data, err := nodelink.RenderSVG(r.ctx, r.dot())
		if err != nil {
			return nil, err
		}
		r.svg = data
		return data, nil
	}

	cfg := r.opts.cfg
	svgOpts := []canvas.SVGOption{canvas.WithFontFamily(cfg.FontFamily)}
	if r.opts.EmbedFont {
		svgOpts = append(svgOpts, canvas.WithEmbeddedFont())
	}
	bg, err := background(cfg, nil)
	if err != nil {
		return nil, err
	}
	if bg != nil {
		svgOpts = append(svgOpts, canvas.WithBackground(bg))
	}

	doc, err := canvas.NewSVG(cfg.Width, cfg.Height, svgOpts...)
	if err != nil {
		return nil, err
	}
	if _, err := r.chart.Paint(r.g, r.l, doc); err != nil {
		return nil, err
	}
	r.svg = doc.Bytes()
	return r.svg, nil
}

func (r *renderer) raster(format string) ([]byte, error) {
	cfg := r.opts.cfg
	var fallback color.Color
	if format == FormatJPEG {
		fallback = color.White
	}
	bg, err := background(cfg, fallback)
	if err != nil {
		return nil, err
	}
	var rasterOpts []canvas.RasterOption
	if bg != nil {
		rasterOpts = append(rasterOpts, canvas.WithRasterBackground(bg))
	}

	img, err := canvas.NewRaster(cfg.Width, cfg.Height, rasterOpts...)
	if err != nil {
		return nil, err
	}
	defer img.Close()
	if _, err := r.chart.Paint(r.g, r.l, img); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if format == FormatJPEG {
		err = img.EncodeJPEG(&buf, r.opts.JPEGQuality)
	} else {
		err = img.EncodePNG(&buf)
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *renderer) dot() string {
	return nodelink.ToDOT(r.g, r.l, r.opts.cfg, nodelink.Options{})
}

func (r *renderer) json() ([]byte, error) {
	rec := canvas.NewRecorder()
	edges, err := r.chart.Paint(r.g, r.l, rec)
	if err != nil {
		return nil, err
	}
	return flowchart.RenderJSON(r.g, r.l, r.opts.cfg, flowchart.WithJSONEdges(edges), flowchart.WithJSONPaths())
}

// background resolves cfg.Background, or fallback when it is empty.
func background(cfg style.Config, fallback color.Color) (color.Color, error) {
	if cfg.Background == "" {
		return fallback, nil
	}
	c, err := style.ParseColor(cfg.Background)
	if err != nil {
		return nil, err
	}
	return c, nil
}
