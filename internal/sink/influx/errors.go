package influx

import "codeberg.org/mutker/sensorbench/internal/errors"

const (
	ErrInvalidConfig = errors.ErrorCode("influx_invalid_config")
)
