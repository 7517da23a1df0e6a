// Package repositories contains the persistence adapters the investigation
// engine drives. The adapters are intentionally dumb: all rules about state
// transitions live in the engine, the SQL guards here (monotonic upserts,
// uniqueness) are the correctness backstop under concurrency.
package repositories

import (
	"github.com/mkarvon/sleuthline/internal/errors"
)

// ErrNotFound is returned when the requested record does not exist.
var ErrNotFound = errors.NewSentinel("not found")
