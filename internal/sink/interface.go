// Package sink defines the narrow contract shared by the time-series
// storage backends under comparison: write a payload at a timestamp with
// optional labels, and range-query records back in timestamp order.
package sink

import (
	"context"

	"codeberg.org/mutker/sensorbench/internal/timeunit"
)

// WriteRequest carries one record to a sink. Timestamp and Step are
// expressed in the sink's native unit. Step is the implied spacing between
// consecutive samples in the payload; sinks that store one value per sample
// use it to assign per-sample timestamps, payload-per-record sinks ignore
// it. Labels are metadata, not part of the payload; sinks without label
// support drop them.
type WriteRequest struct {
	Entry     string
	Timestamp int64
	Step      int64
	Payload   []byte
	Labels    map[string]string
}

// Record is one result of a range query.
type Record struct {
	Timestamp int64
	Payload   []byte
	Labels    map[string]string
}

// Sink is a time-series storage backend. Query returns records with
// timestamps in [start, stop], both bounds inclusive, ordered by timestamp.
// Faults are propagated unchanged; implementations never retry.
type Sink interface {
	Name() string
	Unit() timeunit.Unit
	Write(ctx context.Context, req WriteRequest) error
	Query(ctx context.Context, entry string, start, stop int64) ([]Record, error)
	Close() error
}
