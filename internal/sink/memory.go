package sink

import (
	"context"
	"sort"
	"sync"

	"codeberg.org/mutker/sensorbench/internal/errors"
	"codeberg.org/mutker/sensorbench/internal/timeunit"
)

// Memory is an in-process sink with the same range semantics as the real
// backends. It backs harness tests and dry runs.
type Memory struct {
	unit timeunit.Unit

	mu      sync.Mutex
	entries map[string][]Record
	closed  bool
}

func NewMemory(unit timeunit.Unit) *Memory {
	return &Memory{
		unit:    unit,
		entries: make(map[string][]Record),
	}
}

func (m *Memory) Name() string {
	return "memory"
}

func (m *Memory) Unit() timeunit.Unit {
	return m.unit
}

func (m *Memory) Write(_ context.Context, req WriteRequest) error {
	errFactory := errors.New()

	if req.Entry == "" {
		return errFactory.WithMessage(ErrInvalidRequest, "empty entry name")
	}
	if len(req.Payload) == 0 {
		return errFactory.WithMessage(ErrInvalidRequest, "empty payload")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return errFactory.WithMessage(ErrWriteFailed, "sink closed")
	}

	rec := Record{
		Timestamp: req.Timestamp,
		Payload:   append([]byte(nil), req.Payload...),
	}
	if req.Labels != nil {
		rec.Labels = make(map[string]string, len(req.Labels))
		for k, v := range req.Labels {
			rec.Labels[k] = v
		}
	}

	records := append(m.entries[req.Entry], rec)
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp < records[j].Timestamp
	})
	m.entries[req.Entry] = records

	return nil
}

func (m *Memory) Query(_ context.Context, entry string, start, stop int64) ([]Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		errFactory := errors.New()
		return nil, errFactory.WithMessage(ErrQueryFailed, "sink closed")
	}

	var out []Record
	for _, rec := range m.entries[entry] {
		if rec.Timestamp < start || rec.Timestamp > stop {
			continue
		}
		out = append(out, Record{
			Timestamp: rec.Timestamp,
			Payload:   append([]byte(nil), rec.Payload...),
			Labels:    rec.Labels,
		})
	}

	return out, nil
}

func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true

	return nil
}
