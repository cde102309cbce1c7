package sink

import "codeberg.org/mutker/sensorbench/internal/errors"

const (
	// Connection errors
	ErrConnectFailed = errors.ErrorCode("sink_connect_failed")
	ErrCloseFailed   = errors.ErrorCode("sink_close_failed")

	// Operation errors
	ErrWriteFailed = errors.ErrorCode("sink_write_failed")
	ErrQueryFailed = errors.ErrorCode("sink_query_failed")

	// Request errors
	ErrInvalidRequest = errors.ErrorCode("sink_invalid_request")
)
