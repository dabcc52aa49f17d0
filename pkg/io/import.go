package io

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/matzehuels/flowviz/pkg/errors"
	"github.com/matzehuels/flowviz/pkg/flow"
	"github.com/matzehuels/flowviz/pkg/style"
)

// Field layout of a record line.
const (
	fieldID = iota
	fieldDownstream
	fieldUpstream
	fieldDepth
	fieldLabel
	fieldFill
	fieldBorder
	fieldCount
)

// Separators of the record format.
const (
	FieldSeparator = "\t"
	ListSeparator  = ";"
	EmptyList      = "-"
)

// maxLineSize bounds a single record line.
const maxLineSize = 1 << 20

// ReadOption configures [ReadTSV].
type ReadOption func(*reader)

type reader struct {
	header    bool
	graphOpts []flow.Option
}

// WithHeader skips the first line of the input.
func WithHeader() ReadOption { return func(r *reader) { r.header = true } }

// WithGraphOptions passes options to the graph ReadTSV creates.
func WithGraphOptions(opts ...flow.Option) ReadOption {
	return func(r *reader) { r.graphOpts = append(r.graphOpts, opts...) }
}

// ReadTSV decodes tab-separated node records from r into a graph.
//
// Each non-blank line declares one node:
//
//	id <TAB> downstream <TAB> upstream <TAB> depth <TAB> label <TAB> fill <TAB> border
//
// The neighbour lists are ';'-separated identifiers, or "-" for none. An
// upstream column other than "-" replaces the node's upstream list. Colors
// are "#RRGGBB" or "#RRGGBBAA". Fields after the seventh are ignored.
//
// ReadTSV stops at the first malformed line and returns an
// ErrCodeInvalidRecord error tagged with the ingest stage whose message
// carries the 1-based line number. ReadTSV does not close r.
func ReadTSV(r io.Reader, opts ...ReadOption) (*flow.Graph, error) {
	cfg := reader{}
	for _, opt := range opts {
		opt(&cfg)
	}

	g := flow.New(cfg.graphOpts...)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	line := 0
	for sc.Scan() {
		line++
		if cfg.header && line == 1 {
			continue
		}
		text := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}
		rec, err := ParseLine(text)
		if err != nil {
			return nil, lineError(line, err)
		}
		if _, err := g.Ingest(rec); err != nil {
			return nil, lineError(line, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.WithStage(errors.StageIngest, errors.Wrap(errors.ErrCodeInvalidInput, err, "read records"))
	}
	return g, nil
}

// ImportTSV reads the records file at path. See [ReadTSV].
func ImportTSV(path string, opts ...ReadOption) (*flow.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()
	return ReadTSV(f, opts...)
}

// ParseLine decodes one record line.
func ParseLine(line string) (flow.Record, error) {
	fields := strings.Split(line, FieldSeparator)
	if len(fields) < fieldCount {
		return flow.Record{}, errors.New(errors.ErrCodeInvalidRecord, "want %d tab-separated fields, got %d", fieldCount, len(fields))
	}

	id := strings.TrimSpace(fields[fieldID])
	if err := errors.ValidateNodeID(id); err != nil {
		return flow.Record{}, err
	}

	down, err := parseList(fields[fieldDownstream])
	if err != nil {
		return flow.Record{}, err
	}
	var up []string
	if strings.TrimSpace(fields[fieldUpstream]) != EmptyList {
		if up, err = parseList(fields[fieldUpstream]); err != nil {
			return flow.Record{}, err
		}
		if up == nil {
			up = []string{}
		}
	}

	depth, err := strconv.Atoi(strings.TrimSpace(fields[fieldDepth]))
	if err != nil {
		return flow.Record{}, errors.New(errors.ErrCodeInvalidRecord, "depth %q is not an integer", fields[fieldDepth])
	}
	if depth < 0 {
		return flow.Record{}, errors.New(errors.ErrCodeInvalidRecord, "depth %d is negative", depth)
	}

	label := fields[fieldLabel]
	if err := errors.ValidateLabel(label); err != nil {
		return flow.Record{}, err
	}

	fill, err := style.ParseColor(fields[fieldFill])
	if err != nil {
		return flow.Record{}, errors.New(errors.ErrCodeInvalidRecord, "fill color: %s", errors.UserMessage(err))
	}
	border, err := style.ParseColor(fields[fieldBorder])
	if err != nil {
		return flow.Record{}, errors.New(errors.ErrCodeInvalidRecord, "border color: %s", errors.UserMessage(err))
	}

	return flow.Record{
		ID:         id,
		Downstream: down,
		Upstream:   up,
		Depth:      depth,
		Label:      label,
		Fill:       fill,
		Border:     border,
	}, nil
}

// parseList splits a neighbour list. A "-" entry ends the list; empty
// entries are skipped.
func parseList(s string) ([]string, error) {
	var ids []string
	for _, part := range strings.Split(s, ListSeparator) {
		id := strings.TrimSpace(part)
		if id == EmptyList {
			break
		}
		if id == "" {
			continue
		}
		if err := errors.ValidateNodeID(id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// lineError tags err with the ingest stage and the line it was found on.
func lineError(line int, err error) error {
	if errors.GetCode(err) != "" {
		return errors.AtStage(errors.StageIngest, errors.ErrCodeInvalidRecord, "line %d: %s", line, errors.UserMessage(err))
	}
	e := errors.AtStage(errors.StageIngest, errors.ErrCodeInvalidRecord, "line %d", line)
	e.Cause = err
	return e
}
