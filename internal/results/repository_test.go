package results_test

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"codeberg.org/mutker/sensorbench/internal/errors"
	"codeberg.org/mutker/sensorbench/internal/results"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func repositoryConfig(t *testing.T) results.Config {
	t.Helper()

	cfg := results.DefaultConfig()
	cfg.CSVPath = filepath.Join(t.TempDir(), "results.csv")
	cfg.DBPath = filepath.Join(t.TempDir(), "results.db")
	cfg.BatchTimeout = 60 // keep the flusher ticker out of short tests

	return cfg
}

func countRows(t *testing.T, path string) int {
	t.Helper()

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM benchmark_results").Scan(&count))

	return count
}

func TestRepositoryRoundTrip(t *testing.T) {
	cfg := repositoryConfig(t)
	cfg.BatchSize = 2

	repo, err := results.NewRepository(cfg)
	require.NoError(t, err)

	records := []*results.BenchmarkRecord{
		{Backend: "influxdb", Frequency: 1000, WriteTime: time.Second, ReadTime: 100 * time.Millisecond},
		{Backend: "clickhouse", Frequency: 1000, WriteTime: 2 * time.Second, ReadTime: 200 * time.Millisecond},
		{Backend: "memory", Frequency: 2000, WriteTime: time.Millisecond, ReadTime: time.Millisecond},
	}
	for _, rec := range records {
		require.NoError(t, repo.Record(rec))
	}

	// The third record is still buffered; Close flushes it.
	require.NoError(t, repo.Close())
	assert.Equal(t, 3, countRows(t, cfg.DBPath))
}

func TestRepositoryUnbatched(t *testing.T) {
	cfg := repositoryConfig(t)
	cfg.BatchSize = 0

	repo, err := results.NewRepository(cfg)
	require.NoError(t, err)

	require.NoError(t, repo.Record(&results.BenchmarkRecord{
		Backend:   "memory",
		Frequency: 1000,
		WriteTime: time.Millisecond,
		ReadTime:  time.Millisecond,
	}))

	// Unbatched records hit the database immediately.
	assert.Equal(t, 1, countRows(t, cfg.DBPath))
	require.NoError(t, repo.Close())
}

func TestRepositoryPersistedValues(t *testing.T) {
	cfg := repositoryConfig(t)
	cfg.BatchSize = 0

	repo, err := results.NewRepository(cfg)
	require.NoError(t, err)
	require.NoError(t, repo.Record(&results.BenchmarkRecord{
		Backend:   "influxdb",
		Frequency: 5000,
		WriteTime: 1500 * time.Millisecond,
		ReadTime:  250 * time.Millisecond,
	}))
	require.NoError(t, repo.Close())

	db, err := sql.Open("sqlite3", cfg.DBPath)
	require.NoError(t, err)
	defer db.Close()

	var (
		backend      string
		frequency    int64
		writeSeconds float64
		readSeconds  float64
	)
	require.NoError(t, db.QueryRow(
		"SELECT backend, frequency, write_seconds, read_seconds FROM benchmark_results",
	).Scan(&backend, &frequency, &writeSeconds, &readSeconds))
	assert.Equal(t, "influxdb", backend)
	assert.Equal(t, int64(5000), frequency)
	assert.InDelta(t, 1.5, writeSeconds, 1e-9)
	assert.InDelta(t, 0.25, readSeconds, 1e-9)
}

func TestRepositoryRequiresPath(t *testing.T) {
	cfg := results.DefaultConfig()

	_, err := results.NewRepository(cfg)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, results.ErrInvalidConfig))
}

func TestSchemaVersioning(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.db")
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	version, err := results.GetSchemaVersion(db)
	require.NoError(t, err)
	assert.Equal(t, 0, version, "fresh database reports version 0")

	require.NoError(t, results.InitSchema(db))

	version, err = results.GetSchemaVersion(db)
	require.NoError(t, err)
	assert.Equal(t, results.SchemaVersion, version)
}
