package results

import (
	"context"
	"time"
)

// BenchmarkRecord is one trial's outcome: which backend, at which sampling
// frequency, and how long the write and read phases took. Records are
// appended, never mutated.
type BenchmarkRecord struct {
	Backend   string
	Frequency int
	WriteTime time.Duration
	ReadTime  time.Duration
}

// Recorder defines the core domain interface
type Recorder interface {
	Record(ctx context.Context, rec *BenchmarkRecord) error
	Close() error
}

// Repository persists benchmark records
type Repository interface {
	Record(rec *BenchmarkRecord) error
	Close() error
}
