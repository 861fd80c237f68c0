// Package warehouse defines the load-side contract of the pipeline: an
// all-or-nothing writer that persists a transform result into the relational
// warehouse.
package warehouse

import (
	"context"

	"github.com/frahmantamala/flowcase-warehouse/internal/transform"
)

// DropCounts tallies row-level drops per entity type for the run summary.
// A non-empty map is not an error; fatal conditions surface through the
// Load error instead.
type DropCounts map[string]int

func (d DropCounts) Total() int {
	total := 0
	for _, n := range d {
		total += n
	}
	return total
}

type Loader interface {
	// Load writes every entity type inside one transaction, parents before
	// children. On error nothing is durable.
	Load(ctx context.Context, data *transform.Result) (DropCounts, error)
}
