package pipeline

import (
	"bytes"

	"github.com/matzehuels/flowviz/pkg/flow"
	flowio "github.com/matzehuels/flowviz/pkg/io"
)

// Ingest reads opts.Records into a new graph.
func Ingest(opts Options) (*flow.Graph, error) {
	var ro []flowio.ReadOption
	if opts.Header {
		ro = append(ro, flowio.WithHeader())
	}
	if opts.Legacy {
		ro = append(ro, flowio.WithGraphOptions(flow.WithLegacyLayers()))
	}
	return flowio.ReadTSV(bytes.NewReader(opts.Records), ro...)
}
