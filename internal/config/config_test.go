package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"codeberg.org/mutker/sensorbench/internal/config"
	"codeberg.org/mutker/sensorbench/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setArgs replaces os.Args for the duration of the test so Load parses a
// known command line.
func setArgs(t *testing.T, args ...string) {
	t.Helper()

	old := os.Args
	os.Args = append([]string{"sensorbench"}, args...)
	t.Cleanup(func() { os.Args = old })
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "sensorbench.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestLoadDefaults(t *testing.T) {
	setArgs(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, []string{config.BackendInfluxDB, config.BackendClickHouse}, cfg.Backends)
	assert.Equal(t, []int{1000, 2000, 5000, 10000}, cfg.Frequencies)
	assert.Equal(t, 1, cfg.Duration)
	assert.Equal(t, 1, cfg.Runs)
	assert.Equal(t, 1, cfg.Delay)
	assert.Equal(t, "sensor_readings", cfg.Entry)
	assert.Equal(t, "benchmark_results.csv", cfg.CSVPath)
	assert.False(t, cfg.History)
	assert.True(t, cfg.Plot)
	assert.Equal(t, config.DefaultLogLevel, cfg.LogLevel)

	assert.Equal(t, "http://localhost:8086", cfg.Influx.URL)
	assert.Equal(t, "sensor_data", cfg.Influx.Bucket)
	assert.Equal(t, "localhost:9000", cfg.ClickHouse.Addr)
	assert.Equal(t, "sensor_readings", cfg.ClickHouse.Table)
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfigFile(t, `
backends = ["memory"]
frequencies = [500, 1500]
duration = 2
runs = 3
seed = 42
history = true
database = "results.db"
log_level = "debug"

[influx]
url = "http://influx.example:8086"
token = "secret"
org = "lab"
bucket = "vibration"

[clickhouse]
addr = "ch.example:9000"
database = "bench"
`)
	t.Setenv("SENSORBENCH_CONFIG", path)
	setArgs(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, []string{config.BackendMemory}, cfg.Backends)
	assert.Equal(t, []int{500, 1500}, cfg.Frequencies)
	assert.Equal(t, 2, cfg.Duration)
	assert.Equal(t, 3, cfg.Runs)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.True(t, cfg.History)
	assert.Equal(t, "results.db", cfg.Database)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "http://influx.example:8086", cfg.Influx.URL)
	assert.Equal(t, "secret", cfg.Influx.Token)
	assert.Equal(t, "vibration", cfg.Influx.Bucket)
	assert.Equal(t, "ch.example:9000", cfg.ClickHouse.Addr)
	assert.Equal(t, "bench", cfg.ClickHouse.Database)
}

func TestLoadFlagsOverrideFile(t *testing.T) {
	path := writeConfigFile(t, `
frequencies = [500]
runs = 2
`)
	t.Setenv("SENSORBENCH_CONFIG", path)
	setArgs(t,
		"--backends=memory",
		"--frequencies=100,200",
		"--runs=5",
		"--csv=override.csv",
		"--log-level=error",
	)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, []string{config.BackendMemory}, cfg.Backends)
	assert.Equal(t, []int{100, 200}, cfg.Frequencies)
	assert.Equal(t, 5, cfg.Runs)
	assert.Equal(t, "override.csv", cfg.CSVPath)
	assert.Equal(t, "error", cfg.LogLevel)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	t.Setenv("SENSORBENCH_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))
	setArgs(t)

	_, err := config.Load()
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrReadConfig))
}

func TestLoadMalformedFile(t *testing.T) {
	path := writeConfigFile(t, "frequencies = [500\n")
	t.Setenv("SENSORBENCH_CONFIG", path)
	setArgs(t)

	_, err := config.Load()
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrReadConfig))
}

func TestLoadInvalidLogLevel(t *testing.T) {
	path := writeConfigFile(t, `log_level = "loud"`)
	t.Setenv("SENSORBENCH_CONFIG", path)
	setArgs(t)

	_, err := config.Load()
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrInvalidLogLevel))
}

func TestLoadInvalidBackend(t *testing.T) {
	setArgs(t, "--backends=postgres")

	_, err := config.Load()
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrInvalidConfig))
}

func TestLoadHistoryRequiresDatabase(t *testing.T) {
	setArgs(t, "--history")

	_, err := config.Load()
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrInvalidConfig))
}

func TestLogLevelIsValid(t *testing.T) {
	for _, level := range []config.LogLevel{"debug", "info", "warning", "error"} {
		assert.True(t, level.IsValid(), string(level))
	}
	for _, level := range []config.LogLevel{"", "trace", "DEBUG", "warn"} {
		assert.False(t, level.IsValid(), string(level))
	}
}
