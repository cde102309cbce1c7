// Package signal generates synthetic sensor waveforms and derives the scalar
// descriptors used as index labels by the storage backends.
package signal

import (
	"math"
	"math/rand"

	"codeberg.org/mutker/sensorbench/internal/errors"
)

const (
	// Shape of the synthetic waveform: a 10 Hz sine with additive
	// standard-normal noise scaled by 0.5.
	sineFrequency  = 10.0
	noiseAmplitude = 0.5
)

// Generate produces a waveform of frequency*duration samples, evenly spaced
// over [0, duration] inclusive of both endpoints (spacing duration/(n-1)).
// The noise term draws from rng, so generation is deterministic under a
// fixed seed. The sample count truncates toward zero for fractional
// frequency*duration products.
func Generate(rng *rand.Rand, frequency int, duration float64) ([]float32, error) {
	errFactory := errors.New()

	if frequency <= 0 {
		return nil, errFactory.WithData(ErrInvalidFrequency, frequency)
	}
	if duration <= 0 {
		return nil, errFactory.WithData(ErrInvalidDuration, duration)
	}

	n := int(float64(frequency) * duration)
	if n <= 0 {
		return nil, errFactory.WithData(ErrInvalidDuration, duration)
	}

	signal := make([]float32, n)
	for i := range signal {
		var t float64
		if n > 1 {
			t = duration * float64(i) / float64(n-1)
		}
		signal[i] = float32(math.Sin(2*math.Pi*sineFrequency*t) + noiseAmplitude*rng.NormFloat64())
	}

	return signal, nil
}

// Split divides a signal into equal-sized chunks; the last chunk
// absorbs any remainder. The chunks share the signal's backing array.
func Split(signal []float32, chunks int) ([][]float32, error) {
	errFactory := errors.New()

	if chunks <= 0 {
		return nil, errFactory.WithData(ErrInvalidChunkCount, chunks)
	}

	size := len(signal) / chunks
	if size == 0 {
		return nil, errFactory.WithData(ErrInvalidChunkCount, struct {
			Samples int
			Chunks  int
		}{
			Samples: len(signal),
			Chunks:  chunks,
		})
	}

	out := make([][]float32, chunks)
	for i := 0; i < chunks; i++ {
		start := i * size
		end := start + size
		if i == chunks-1 {
			end = len(signal)
		}
		out[i] = signal[start:end]
	}

	return out, nil
}
