// Package io reads flow diagram records.
//
// # Overview
//
// Records are tab-separated lines, one per declared node:
//
//	id      downstream  upstream  depth  label  fill       border
//	crude   gas;fuel    -         0      Crude  #C80000    #C80000
//	gas     -           -         1      Gas    #C8000080  #000000
//
// Columns:
//   - id: unique identifier, no tabs, no ';', not "-"
//   - downstream: ';'-separated identifiers this node flows into, or "-"
//   - upstream: ';'-separated identifiers replacing the node's upstream
//     list, or "-" to keep the list built from other records
//   - depth: non-negative integer column
//   - label: display text, may be empty
//   - fill, border: "#RRGGBB" or "#RRGGBBAA"
//
// Identifiers named only as neighbours become depth 0 nodes until their own
// line is read. A node declared twice keeps the last line's attributes.
//
// # Import
//
// Use [ImportTSV] to read a file, or [ReadTSV] for any io.Reader:
//
//	g, err := io.ImportTSV("refinery.tsv", io.WithHeader())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Blank lines are skipped. The first malformed line aborts the read with an
// INVALID_RECORD error tagged with the ingest stage and naming the line:
//
//	INVALID_RECORD [ingest]: line 4: depth "two" is not an integer
//
// # Concurrency
//
// Each call builds an independent graph; the functions are safe to call
// concurrently.
package io
