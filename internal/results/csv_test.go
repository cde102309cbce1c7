package results_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"codeberg.org/mutker/sensorbench/internal/errors"
	"codeberg.org/mutker/sensorbench/internal/results"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRecords() []*results.BenchmarkRecord {
	return []*results.BenchmarkRecord{
		{Backend: "influxdb", Frequency: 1000, WriteTime: 1500 * time.Millisecond, ReadTime: 250 * time.Millisecond},
		{Backend: "clickhouse", Frequency: 2000, WriteTime: 750 * time.Millisecond, ReadTime: 125 * time.Millisecond},
	}
}

func TestServiceCSVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")
	cfg := results.DefaultConfig()
	cfg.CSVPath = path

	recorder, err := results.NewService(cfg)
	require.NoError(t, err)

	ctx := context.Background()
	for _, rec := range testRecords() {
		require.NoError(t, recorder.Record(ctx, rec))
	}
	require.NoError(t, recorder.Close())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Database,Frequency (Hz),Write Time (s),Read Time (s)", lines[0])
	assert.Equal(t, "influxdb,1000,1.5,0.25", lines[1])
	assert.Equal(t, "clickhouse,2000,0.75,0.125", lines[2])

	records, err := results.ReadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, testRecords(), records)
}

func TestServiceDisabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")
	cfg := results.DefaultConfig()
	cfg.CSVPath = path
	cfg.Enabled = false

	recorder, err := results.NewService(cfg)
	require.NoError(t, err)

	require.NoError(t, recorder.Record(context.Background(), testRecords()[0]))
	require.NoError(t, recorder.Close())

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "disabled recorder must not touch the filesystem")
}

func TestServiceNilRecord(t *testing.T) {
	cfg := results.DefaultConfig()
	cfg.CSVPath = filepath.Join(t.TempDir(), "results.csv")

	recorder, err := results.NewService(cfg)
	require.NoError(t, err)
	defer recorder.Close()

	err = recorder.Record(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, results.ErrInvalidRecord))
}

func TestServiceInvalidConfig(t *testing.T) {
	cfg := results.DefaultConfig()
	cfg.CSVPath = ""

	_, err := results.NewService(cfg)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, results.ErrInvalidCSVPath))
}

func TestReadCSVMissingFile(t *testing.T) {
	_, err := results.ReadCSV(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, results.ErrCSVAccess))
}

func TestReadCSVMalformedRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	content := "Database,Frequency (Hz),Write Time (s),Read Time (s)\ninfluxdb,not-a-number,0.1,0.2\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := results.ReadCSV(path)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, results.ErrCSVAccess))
}
