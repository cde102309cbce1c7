package bench

import "codeberg.org/mutker/sensorbench/internal/errors"

const (
	defaultEntry    = "sensor_readings"
	defaultDuration = 1
	defaultRuns     = 1
	defaultDelay    = 1
)

type Config struct {
	Frequencies []int
	Duration    int // seconds per trial signal
	Runs        int // repetitions per backend and frequency
	Delay       int // seconds between trials
	Entry       string
}

func DefaultConfig() Config {
	return Config{
		Frequencies: []int{1000, 2000, 5000, 10000},
		Duration:    defaultDuration,
		Runs:        defaultRuns,
		Delay:       defaultDelay,
		Entry:       defaultEntry,
	}
}

func (c Config) Validate() error {
	errFactory := errors.New()

	if len(c.Frequencies) == 0 {
		return errFactory.WithMessage(ErrInvalidConfig, "no frequencies configured")
	}
	for _, frequency := range c.Frequencies {
		if frequency <= 0 {
			return errFactory.WithData(ErrInvalidConfig, frequency)
		}
	}
	if c.Duration <= 0 || c.Runs <= 0 || c.Delay < 0 {
		return errFactory.New(ErrInvalidConfig)
	}
	if c.Entry == "" {
		return errFactory.WithMessage(ErrInvalidConfig, "empty entry name")
	}

	return nil
}
