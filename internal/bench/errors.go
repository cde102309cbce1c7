package bench

import "codeberg.org/mutker/sensorbench/internal/errors"

const (
	// Configuration errors
	ErrInvalidConfig = errors.ErrorCode("bench_invalid_config")
	ErrNoTargets     = errors.ErrorCode("bench_no_targets")

	// Trial errors
	ErrVerificationFailure = errors.ErrVerificationFailure
)
