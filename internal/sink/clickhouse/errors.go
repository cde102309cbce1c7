package clickhouse

import "codeberg.org/mutker/sensorbench/internal/errors"

const (
	ErrInvalidConfig = errors.ErrorCode("clickhouse_invalid_config")
)
