package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"image/color"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/flowviz/pkg/flow"
	"github.com/matzehuels/flowviz/pkg/render"
	"github.com/matzehuels/flowviz/pkg/render/flowchart"
	"github.com/matzehuels/flowviz/pkg/style"
)

// pointsPerInch converts pixel sizes into Graphviz node sizes.
const pointsPerInch = 72

// Options configures DOT export.
type Options struct {
	// Detailed adds the node depth to each label.
	Detailed bool
}

// ToDOT converts a laid-out flow graph to Graphviz DOT.
//
// Every placed node is pinned at its computed position with pos="x,y!" so
// that neato keeps the flowviz layout instead of computing its own. The y
// axis is flipped because Graphviz measures upward. Only the connectors
// the flow chart would draw are emitted.
func ToDOT(g *flow.Graph, l flowchart.Layout, cfg style.Config, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  layout=neato;\n")
	fmt.Fprintf(&buf, "  inputscale=%d;\n", pointsPerInch)
	buf.WriteString("  splines=curved;\n")
	buf.WriteString("  overlap=true;\n")
	if cfg.Background != "" {
		fmt.Fprintf(&buf, "  bgcolor=%q;\n", cfg.Background)
	} else {
		buf.WriteString("  bgcolor=\"transparent\";\n")
	}
	if cfg.Rotate {
		buf.WriteString("  rotate=90;\n")
	}
	fmt.Fprintf(&buf, "  node [shape=box, style=\"rounded,filled\", fixedsize=true, fontname=%q, fontcolor=%q];\n",
		cfg.FontFamily, cfg.FontColor)
	buf.WriteString("\n")

	for _, d := range l.Depths {
		for _, i := range g.Layer(d) {
			n := g.Node(i)
			fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(nodeAttrs(n, cfg, opts), ", "))
		}
	}

	buf.WriteString("\n")
	for _, e := range flowchart.NewRouter(cfg, nil).Edges(g, l) {
		from, to := g.Node(e.From), g.Node(e.To)
		fmt.Fprintf(&buf, "  %q -> %q [color=%q, penwidth=%s, arrowhead=none];\n",
			from.ID, to.ID, hexAlpha(e.Style.Color), num(e.Style.Thickness))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(n *flow.Node, cfg style.Config, opts Options) []string {
	label := n.Label
	if opts.Detailed {
		label = fmt.Sprintf("%s\ndepth: %d", n.Label, n.Depth)
	}
	attrs := []string{
		fmt.Sprintf("label=%q", label),
		fmt.Sprintf("pos=\"%s,%s!\"", num(n.CenterX()), num(cfg.Height-n.CenterY())),
		fmt.Sprintf("width=%s", num(n.Width/pointsPerInch)),
		fmt.Sprintf("height=%s", num(n.Height/pointsPerInch)),
		fmt.Sprintf("fillcolor=%q", hexAlpha(n.Fill)),
	}
	if cfg.BorderWidth > 0 {
		attrs = append(attrs,
			fmt.Sprintf("color=%q", hexAlpha(n.Border)),
			fmt.Sprintf("penwidth=%s", num(cfg.BorderWidth)))
	} else {
		attrs = append(attrs, "penwidth=0")
	}
	return attrs
}

// hexAlpha formats c as "#rrggbbaa", the Graphviz form with opacity.
func hexAlpha(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// RenderSVG renders a DOT graph to SVG using Graphviz's neato engine.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}
