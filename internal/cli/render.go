package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flowviz/pkg/pipeline"
)

// stdoutPath selects standard output as the render destination.
const stdoutPath = "-"

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output    string   // output file path (or base path for multiple outputs)
	formats   []string // output formats
	config    string   // TOML or YAML configuration file
	width     float64  // canvas width in pixels
	height    float64  // canvas height in pixels
	rotate    bool     // rotate the diagram 90° clockwise
	dash      float64  // connector dash length
	scale     int      // pixel multiplier
	noHeader  bool     // first line is a record, not a header
	legacy    bool     // keep re-declared nodes in every layer
	engine    string   // native or graphviz
	embedFont bool     // embed the label font in SVG output
	noCache   bool     // bypass the artifact cache
	refresh   bool     // re-render and overwrite cached artifacts
}

// renderCommand creates the render command for drawing a records file.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{engine: pipeline.EngineNative}

	cmd := &cobra.Command{
		Use:   "render [records.tsv]",
		Short: "Render a records file to SVG, PNG, JPEG, PDF, EPS, DOT or JSON",
		Long: `Render a tab-separated records file as a layered flow diagram.

Each line declares one node: id, downstream ids, upstream ids, depth,
label, fill color and border color. Lists are separated by ';' and '-'
stands for an empty list.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			return c.runRender(cmd.Context(), cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format), base path (multiple), or - for stdout")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): "+strings.Join(pipeline.SupportedFormats(), ", ")+" (comma-separated, default svg)")
	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "configuration file (.toml, .yaml)")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "canvas width in pixels")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "canvas height in pixels")
	cmd.Flags().BoolVar(&opts.rotate, "rotate", false, "rotate the diagram 90° clockwise")
	cmd.Flags().Float64Var(&opts.dash, "dash", 0, "connector dash length (0 draws solid curves)")
	cmd.Flags().IntVar(&opts.scale, "scale", 0, "multiply every pixel value")
	cmd.Flags().BoolVar(&opts.noHeader, "no-header", false, "treat the first line as a record")
	cmd.Flags().BoolVar(&opts.legacy, "legacy-layers", false, "keep re-declared nodes in every layer they were declared in")
	cmd.Flags().StringVar(&opts.engine, "engine", opts.engine, "SVG engine: native, graphviz")
	cmd.Flags().BoolVar(&opts.embedFont, "embed-font", false, "embed the label font in SVG output")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached artifacts")
	registerRenderCompletions(cmd)

	return cmd
}

// runRender reads input, renders every requested format and writes the
// artifacts next to it (or to --output).
func (c *CLI) runRender(ctx context.Context, cmd *cobra.Command, input string, opts *renderOpts) error {
	cfg, err := c.loadConfig(opts.config)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("width") {
		cfg.Width = opts.width
	}
	if flags.Changed("height") {
		cfg.Height = opts.height
	}
	if flags.Changed("rotate") {
		cfg.Rotate = opts.rotate
	}
	if flags.Changed("dash") {
		cfg.Dash = opts.dash
	}
	if flags.Changed("scale") {
		cfg.Scale = opts.scale
	}

	popts := pipeline.Options{
		Header:    !opts.noHeader,
		Legacy:    opts.legacy,
		Formats:   opts.formats,
		Engine:    opts.engine,
		Config:    &cfg,
		EmbedFont: opts.embedFont,
		Refresh:   opts.refresh,
		Logger:    c.Logger,
	}
	if err := popts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	if opts.output == stdoutPath && len(popts.Formats) > 1 {
		return fmt.Errorf("stdout output takes a single format, got %d", len(popts.Formats))
	}

	popts.Records, err = os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("read records: %w", err)
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	result, err := runner.Execute(ctx, popts)
	if err != nil {
		return err
	}
	prog.done("rendered", "input", input, "id", result.ID.String())

	if opts.output == stdoutPath {
		_, err := os.Stdout.Write(result.Artifacts[popts.Formats[0]])
		return err
	}

	printSuccess("Rendered %s", input)
	printSummary(result.Stats, result.CacheInfo, len(popts.Formats))
	if len(result.Stats.Skipped) > 0 {
		printWarning("Depths after a gap were not drawn: %v", result.Stats.Skipped)
	}

	paths := outputPaths(opts.output, input, popts.Formats)
	for _, format := range popts.Formats {
		if err := writeFile(paths[format], result.Artifacts[format]); err != nil {
			return err
		}
		printArtifact(paths[format], len(result.Artifacts[format]))
	}
	return nil
}

// outputPaths maps each format to its destination. A single format is
// written to output as given; several formats share output as base path.
func outputPaths(output, input string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .pdf, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

func writeFile(path string, data []byte) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	if _, err := out.Write(data); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// nopCloser wraps an io.Writer with a no-op Close method.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty or "-", it returns os.Stdout wrapped in nopCloser.
// Otherwise, it creates the file at path, overwriting if it exists.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == stdoutPath {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
