package results

import "codeberg.org/mutker/sensorbench/internal/errors"

const (
	defaultDirPerm      = 0o755
	defaultCSVPath      = "benchmark_results.csv"
	defaultBatchSize    = 32
	defaultBatchTimeout = 5
)

type Config struct {
	CSVPath      string
	DBPath       string // empty disables the sqlite repository
	BatchSize    int
	BatchTimeout int // seconds
	Enabled      bool
}

func DefaultConfig() Config {
	return Config{
		CSVPath:      defaultCSVPath,
		BatchSize:    defaultBatchSize,
		BatchTimeout: defaultBatchTimeout,
		Enabled:      true,
	}
}

func (c Config) Validate() error {
	errFactory := errors.New()

	if c.Enabled && c.CSVPath == "" {
		return errFactory.New(ErrInvalidCSVPath)
	}
	if c.BatchSize < 0 || c.BatchTimeout < 0 {
		return errFactory.New(ErrInvalidConfig)
	}

	return nil
}
