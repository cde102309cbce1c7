package signal

import (
	"strconv"

	"codeberg.org/mutker/sensorbench/internal/errors"
	"github.com/chewxy/math32"
)

// Binarization thresholds for index labels.
const (
	HighRMS         float32 = 1.0
	HighPeakToPeak  float32 = 5.0
	HighCrestFactor float32 = 3.0
)

// SignalMetrics holds the scalar descriptors of a waveform segment.
type SignalMetrics struct {
	RMS         float32
	PeakToPeak  float32
	CrestFactor float32
}

// Metrics computes the RMS, peak-to-peak, and crest factor of a signal
// segment. Crest factor follows IEEE division: an all-zero segment yields
// NaN (0/0), and a zero-RMS segment with non-zero peak yields +Inf. Neither
// is an error.
func Metrics(signal []float32) (SignalMetrics, error) {
	if len(signal) == 0 {
		errFactory := errors.New()
		return SignalMetrics{}, errFactory.New(ErrEmptySignal)
	}

	var sumSquares float32
	minVal, maxVal := signal[0], signal[0]
	var maxAbs float32

	for _, v := range signal {
		sumSquares += v * v
		minVal = math32.Min(minVal, v)
		maxVal = math32.Max(maxVal, v)
		maxAbs = math32.Max(maxAbs, math32.Abs(v))
	}

	rms := math32.Sqrt(sumSquares / float32(len(signal)))

	return SignalMetrics{
		RMS:         rms,
		PeakToPeak:  maxVal - minVal,
		CrestFactor: maxAbs / rms,
	}, nil
}

// Labels returns the binarized "high"/"low" classification of each metric,
// keyed by metric name, for sinks that index writes by label.
func (m SignalMetrics) Labels() map[string]string {
	return map[string]string{
		"rms":          binarize(m.RMS, HighRMS),
		"peak_to_peak": binarize(m.PeakToPeak, HighPeakToPeak),
		"crest_factor": binarize(m.CrestFactor, HighCrestFactor),
	}
}

// RawLabels returns the unclassified metric values as strings.
func (m SignalMetrics) RawLabels() map[string]string {
	return map[string]string{
		"rms":          formatMetric(m.RMS),
		"peak_to_peak": formatMetric(m.PeakToPeak),
		"crest_factor": formatMetric(m.CrestFactor),
	}
}

func binarize(value, threshold float32) string {
	if value > threshold {
		return "high"
	}

	return "low"
}

func formatMetric(value float32) string {
	return strconv.FormatFloat(float64(value), 'g', -1, 32)
}
