package signal

import "codeberg.org/mutker/sensorbench/internal/errors"

const (
	// Parameter errors
	ErrInvalidFrequency  = errors.ErrorCode("signal_invalid_frequency")
	ErrInvalidDuration   = errors.ErrorCode("signal_invalid_duration")
	ErrInvalidChunkCount = errors.ErrorCode("signal_invalid_chunk_count")

	// Metric errors
	ErrEmptySignal = errors.ErrorCode("signal_empty_signal")
)
