package results

import (
	"fmt"
	"sort"
	"strings"

	"codeberg.org/mutker/sensorbench/internal/errors"
	"github.com/guptarohit/asciigraph"
)

const chartHeight = 12

// Render draws one ASCII chart per timing metric, one series per backend
// over the swept frequencies in ascending order. Repeated runs of the same
// backend/frequency pair are averaged.
func Render(records []*BenchmarkRecord) (string, error) {
	if len(records) == 0 {
		errFactory := errors.New()
		return "", errFactory.New(ErrNoData)
	}

	backends := backendOrder(records)
	frequencies := frequencyOrder(records)

	var b strings.Builder
	writeSeries := averagedSeries(records, backends, frequencies, func(r *BenchmarkRecord) float64 {
		return r.WriteTime.Seconds()
	})
	readSeries := averagedSeries(records, backends, frequencies, func(r *BenchmarkRecord) float64 {
		return r.ReadTime.Seconds()
	})

	b.WriteString(asciigraph.PlotMany(writeSeries,
		asciigraph.Height(chartHeight),
		asciigraph.Caption("Write Time (s)")))
	b.WriteString("\n\n")
	b.WriteString(asciigraph.PlotMany(readSeries,
		asciigraph.Height(chartHeight),
		asciigraph.Caption("Read Time (s)")))
	b.WriteString("\n\n")

	for i, backend := range backends {
		fmt.Fprintf(&b, "series %d: %s\n", i+1, backend)
	}
	b.WriteString("frequencies (Hz):")
	for _, frequency := range frequencies {
		fmt.Fprintf(&b, " %d", frequency)
	}
	b.WriteString("\n")

	return b.String(), nil
}

// backendOrder preserves first-appearance order so the legend matches the
// run configuration.
func backendOrder(records []*BenchmarkRecord) []string {
	seen := make(map[string]bool)
	var backends []string
	for _, rec := range records {
		if !seen[rec.Backend] {
			seen[rec.Backend] = true
			backends = append(backends, rec.Backend)
		}
	}

	return backends
}

func frequencyOrder(records []*BenchmarkRecord) []int {
	seen := make(map[int]bool)
	var frequencies []int
	for _, rec := range records {
		if !seen[rec.Frequency] {
			seen[rec.Frequency] = true
			frequencies = append(frequencies, rec.Frequency)
		}
	}
	sort.Ints(frequencies)

	return frequencies
}

func averagedSeries(
	records []*BenchmarkRecord,
	backends []string,
	frequencies []int,
	value func(*BenchmarkRecord) float64,
) [][]float64 {
	type key struct {
		backend   string
		frequency int
	}

	sums := make(map[key]float64)
	counts := make(map[key]int)
	for _, rec := range records {
		k := key{rec.Backend, rec.Frequency}
		sums[k] += value(rec)
		counts[k]++
	}

	series := make([][]float64, len(backends))
	for i, backend := range backends {
		series[i] = make([]float64, len(frequencies))
		for j, frequency := range frequencies {
			k := key{backend, frequency}
			if counts[k] > 0 {
				series[i][j] = sums[k] / float64(counts[k])
			}
		}
	}

	return series
}
