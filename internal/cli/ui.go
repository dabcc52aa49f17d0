package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/flowviz/pkg/errors"
	"github.com/matzehuels/flowviz/pkg/pipeline"
)

// =============================================================================
// Palette
// =============================================================================

var (
	colorAccent = lipgloss.Color("36")  // teal
	colorOK     = lipgloss.Color("35")  // green
	colorWarn   = lipgloss.Color("220") // amber
	colorFail   = lipgloss.Color("167") // soft red
	colorMuted  = lipgloss.Color("245") // gray
	colorFaint  = lipgloss.Color("240") // dim gray
	colorValue  = lipgloss.Color("255") // white
)

var (
	// StyleHighlight marks values the user should act on, such as URLs.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorAccent)

	// StyleDim is used for secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorFaint)

	// StyleValue is used for file paths and other data.
	StyleValue = lipgloss.NewStyle().Foreground(colorValue)

	// StyleWarning is used for warning text.
	StyleWarning = lipgloss.NewStyle().Foreground(colorWarn)
)

var (
	styleOK     = lipgloss.NewStyle().Foreground(colorOK)
	styleWarn   = lipgloss.NewStyle().Foreground(colorWarn)
	styleFail   = lipgloss.NewStyle().Foreground(colorFail)
	styleInfo   = lipgloss.NewStyle().Foreground(colorMuted)
	styleKey    = lipgloss.NewStyle().Foreground(colorMuted).Width(12)
	styleCached = lipgloss.NewStyle().Foreground(colorOK)
)

const (
	glyphOK    = "✓"
	glyphFail  = "✗"
	glyphWarn  = "!"
	glyphInfo  = "›"
	glyphArrow = "→"
	sep        = " · "
)

// uiOut receives status output.
var uiOut io.Writer = os.Stdout

// =============================================================================
// Status lines
// =============================================================================

func statusLine(w io.Writer, glyph lipgloss.Style, mark, msg string) {
	fmt.Fprintln(w, glyph.Render(mark)+" "+msg)
}

func printSuccess(format string, args ...any) {
	statusLine(uiOut, styleOK, glyphOK, fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	statusLine(uiOut, styleWarn, glyphWarn, StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	statusLine(uiOut, styleInfo, glyphInfo, fmt.Sprintf(format, args...))
}

// printDetail prints an indented secondary line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(uiOut, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

func printKeyValue(key, value string) {
	fmt.Fprintln(uiOut, styleKey.Render(key)+" "+StyleValue.Render(value))
}

// PrintError reports err on w. Structured errors show their code and, when
// known, the stage that raised them.
func PrintError(w io.Writer, err error) {
	statusLine(w, styleFail, glyphFail, errors.UserMessage(err))

	var tags []string
	if code := errors.GetCode(err); code != "" {
		tags = append(tags, string(code))
	}
	if stage := errors.StageOf(err); stage != "" {
		tags = append(tags, "stage "+string(stage))
	}
	if len(tags) > 0 {
		fmt.Fprintln(w, "  "+StyleDim.Render(strings.Join(tags, sep)))
	}
}

// =============================================================================
// Render output
// =============================================================================

// printArtifact prints one written output file with its size.
func printArtifact(path string, size int) {
	fmt.Fprintln(uiOut, "  "+StyleDim.Render(glyphArrow)+" "+StyleValue.Render(path)+" "+StyleDim.Render("("+formatBytes(size)+")"))
}

// printSummary prints the graph statistics of a run and how many of its
// artifacts came from the cache.
func printSummary(s pipeline.Stats, c pipeline.CacheInfo, formats int) {
	parts := []string{
		fmt.Sprintf("%d nodes", s.NodeCount),
		fmt.Sprintf("%d edges", s.EdgeCount),
		fmt.Sprintf("%d depths", s.DepthCount),
	}
	line := "  " + StyleDim.Render(strings.Join(parts, sep)) + StyleDim.Render(sep)
	switch {
	case c.RenderHit:
		line += styleCached.Render("cached")
	case len(c.Hits) > 0:
		line += styleCached.Render(fmt.Sprintf("%d/%d cached", len(c.Hits), formats))
	default:
		line += StyleDim.Render("fresh")
	}
	fmt.Fprintln(uiOut, line)
}

// formatBytes renders n as a short human-readable size.
func formatBytes(n int) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := unit, 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGT"[exp])
}
