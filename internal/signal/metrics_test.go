package signal_test

import (
	"testing"

	"codeberg.org/mutker/sensorbench/internal/errors"
	"codeberg.org/mutker/sensorbench/internal/signal"
	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsConstantSignal(t *testing.T) {
	m, err := signal.Metrics([]float32{1, 1, 1, 1})
	require.NoError(t, err)

	assert.Equal(t, float32(1), m.RMS)
	assert.Equal(t, float32(0), m.PeakToPeak)
	assert.Equal(t, float32(1), m.CrestFactor)
}

func TestMetricsMixedSign(t *testing.T) {
	m, err := signal.Metrics([]float32{-2, 0, 2, 0})
	require.NoError(t, err)

	assert.InDelta(t, 1.4142, m.RMS, 1e-4)
	assert.Equal(t, float32(4), m.PeakToPeak)
	assert.InDelta(t, 1.4142, m.CrestFactor, 1e-4)
}

func TestMetricsZeroSignal(t *testing.T) {
	// Zero-RMS policy: crest factor follows IEEE division, so an all-zero
	// segment yields NaN (0/0) rather than an error.
	m, err := signal.Metrics([]float32{0, 0, 0})
	require.NoError(t, err)

	assert.Equal(t, float32(0), m.RMS)
	assert.Equal(t, float32(0), m.PeakToPeak)
	assert.True(t, math32.IsNaN(m.CrestFactor))
}

func TestMetricsEmptySignal(t *testing.T) {
	_, err := signal.Metrics(nil)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, signal.ErrEmptySignal))
}

func TestLabels(t *testing.T) {
	tests := []struct {
		name    string
		metrics signal.SignalMetrics
		want    map[string]string
	}{
		{
			name:    "all low",
			metrics: signal.SignalMetrics{RMS: 0.5, PeakToPeak: 2, CrestFactor: 1.5},
			want: map[string]string{
				"rms":          "low",
				"peak_to_peak": "low",
				"crest_factor": "low",
			},
		},
		{
			name:    "all high",
			metrics: signal.SignalMetrics{RMS: 1.1, PeakToPeak: 5.5, CrestFactor: 3.5},
			want: map[string]string{
				"rms":          "high",
				"peak_to_peak": "high",
				"crest_factor": "high",
			},
		},
		{
			name:    "thresholds are exclusive",
			metrics: signal.SignalMetrics{RMS: 1.0, PeakToPeak: 5.0, CrestFactor: 3.0},
			want: map[string]string{
				"rms":          "low",
				"peak_to_peak": "low",
				"crest_factor": "low",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.metrics.Labels())
		})
	}
}

func TestRawLabels(t *testing.T) {
	m := signal.SignalMetrics{RMS: 1.5, PeakToPeak: 4, CrestFactor: 2}

	labels := m.RawLabels()
	assert.Equal(t, "1.5", labels["rms"])
	assert.Equal(t, "4", labels["peak_to_peak"])
	assert.Equal(t, "2", labels["crest_factor"])
}
