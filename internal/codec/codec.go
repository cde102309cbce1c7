// Package codec packs float32 sample sequences into the wire payload stored
// by payload-oriented sinks: big-endian IEEE-754 32-bit floats, one sample
// per four bytes, in original order. Non-finite samples are representable in
// the format and pass through unchanged.
package codec

import (
	"encoding/binary"
	"math"

	"codeberg.org/mutker/sensorbench/internal/errors"
)

// SampleWidth is the encoded size of a single sample in bytes.
const SampleWidth = 4

// Pack serializes a signal into its binary payload.
// len(Pack(s)) == SampleWidth * len(s).
func Pack(signal []float32) []byte {
	payload := make([]byte, len(signal)*SampleWidth)
	for i, sample := range signal {
		binary.BigEndian.PutUint32(payload[i*SampleWidth:], math.Float32bits(sample))
	}

	return payload
}

// Unpack is the exact inverse of Pack: bit-for-bit in the float32 domain.
// A payload whose length is not a multiple of SampleWidth is rejected,
// never truncated.
func Unpack(payload []byte) ([]float32, error) {
	if len(payload)%SampleWidth != 0 {
		errFactory := errors.New()
		return nil, errFactory.WithData(ErrMalformedPayload, struct {
			Length int
		}{
			Length: len(payload),
		})
	}

	signal := make([]float32, len(payload)/SampleWidth)
	for i := range signal {
		signal[i] = math.Float32frombits(binary.BigEndian.Uint32(payload[i*SampleWidth:]))
	}

	return signal, nil
}
