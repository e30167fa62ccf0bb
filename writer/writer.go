// Package writer implements the pluggable output sinks: a generic XML
// round-trip writer, a DAMSON-alias tabular writer, and a DOT graph
// writer. All three consume one top-level Population's already-split
// sub-Populations at a time, in ascending sub-index order; none of them
// are ever called concurrently.
package writer

import "github.com/emer/spinesplit/model"

// Writer is the sink a driver feeds split results into, one parent
// Population at a time.
type Writer interface {
	// WritePopulation emits one top-level Population's sub-populations,
	// already produced by split.SplitPopulation in ascending sub-index
	// order.
	WritePopulation(parent *model.Population, subs []*model.Population) error

	// Close flushes and releases the writer's output file(s).
	Close() error
}
