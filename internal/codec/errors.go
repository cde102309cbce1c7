package codec

import "codeberg.org/mutker/sensorbench/internal/errors"

const (
	ErrMalformedPayload = errors.ErrMalformedPayload
)
