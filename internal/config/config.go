package config

import (
	"os"
	"strings"

	"codeberg.org/mutker/sensorbench/internal/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const DefaultLogLevel = "info"

// LogLevel represents valid logging levels
type LogLevel string

const (
	LogLevelDebug   LogLevel = "debug"
	LogLevelInfo    LogLevel = "info"
	LogLevelWarning LogLevel = "warning"
	LogLevelError   LogLevel = "error"
)

// IsValid returns whether the log level is valid
func (l LogLevel) IsValid() bool {
	switch l {
	case LogLevelDebug, LogLevelInfo, LogLevelWarning, LogLevelError:
		return true
	default:
		return false
	}
}

// Known backend names
const (
	BackendInfluxDB   = "influxdb"
	BackendClickHouse = "clickhouse"
	BackendMemory     = "memory"
)

type InfluxConfig struct {
	URL    string `mapstructure:"url"`
	Token  string `mapstructure:"token"`
	Org    string `mapstructure:"org"`
	Bucket string `mapstructure:"bucket"`
}

type ClickHouseConfig struct {
	Addr     string `mapstructure:"addr"`
	Database string `mapstructure:"database"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Table    string `mapstructure:"table"`
}

type Config struct {
	Backends    []string `mapstructure:"backends"`
	Frequencies []int    `mapstructure:"frequencies"`
	Duration    int      `mapstructure:"duration"`
	Runs        int      `mapstructure:"runs"`
	Delay       int      `mapstructure:"delay"`
	Entry       string   `mapstructure:"entry"`
	Seed        int64    `mapstructure:"seed"`

	CSVPath  string `mapstructure:"csv_path"`
	Database string `mapstructure:"database"`
	History  bool   `mapstructure:"history"`
	Plot     bool   `mapstructure:"plot"`

	LogLevel string `mapstructure:"log_level"`
	Debug    bool   `mapstructure:"debug"`
	Verbose  bool   `mapstructure:"verbose"`

	Influx     InfluxConfig     `mapstructure:"influx"`
	ClickHouse ClickHouseConfig `mapstructure:"clickhouse"`
}

func Load() (*Config, error) {
	errFactory := errors.New()

	fs := pflag.NewFlagSet("sensorbench", pflag.ContinueOnError)
	fs.String("config", "", "Path to config file")
	fs.StringSlice("backends", nil, "Backends to benchmark (influxdb, clickhouse, memory)")
	fs.IntSlice("frequencies", nil, "Sampling frequencies to sweep (Hz)")
	fs.Int("duration", 0, "Signal duration per trial in seconds")
	fs.Int("runs", 0, "Repetitions per backend and frequency")
	fs.Int("delay", 0, "Delay between trials in seconds")
	fs.Int64("seed", 0, "Random seed (0 seeds from the current time)")
	fs.String("csv", "", "Path to the results CSV file")
	fs.String("database", "", "Path to the results database")
	fs.Bool("history", false, "Also record results to the database")
	fs.Bool("plot", true, "Render comparison charts after the run")
	fs.String("log-level", "", "Log level (debug, info, warning, error)")
	fs.Bool("debug", false, "Enable debugging mode")
	fs.Bool("verbose", false, "Enable verbose logging")

	if err := fs.Parse(os.Args[1:]); err != nil {
		return nil, errFactory.Wrap(errors.ErrBindFlags, err)
	}

	v := viper.New()
	setDefaults(v)

	// Load configuration from file
	v.SetConfigName("sensorbench")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc")

	explicitFile := false
	if path, err := fs.GetString("config"); err == nil && path != "" {
		v.SetConfigFile(path)
		explicitFile = true
	} else if path := os.Getenv("SENSORBENCH_CONFIG"); path != "" {
		v.SetConfigFile(path)
		explicitFile = true
	}

	v.SetEnvPrefix("SENSORBENCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicitFile || !errors.As(err, &notFound) {
			return nil, errFactory.Wrap(errors.ErrReadConfig, err)
		}
	}

	// Override config file values with command line flags
	applyFlags(v, fs)

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, errFactory.Wrap(errors.ErrInvalidConfig, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	config.applyLogLevel()

	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("backends", []string{BackendInfluxDB, BackendClickHouse})
	v.SetDefault("frequencies", []int{1000, 2000, 5000, 10000})
	v.SetDefault("duration", 1)
	v.SetDefault("runs", 1)
	v.SetDefault("delay", 1)
	v.SetDefault("entry", "sensor_readings")
	v.SetDefault("seed", 0)
	v.SetDefault("csv_path", "benchmark_results.csv")
	v.SetDefault("database", "")
	v.SetDefault("history", false)
	v.SetDefault("plot", true)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("debug", false)
	v.SetDefault("verbose", false)

	v.SetDefault("influx.url", "http://localhost:8086")
	v.SetDefault("influx.token", "my-token")
	v.SetDefault("influx.org", "my-org")
	v.SetDefault("influx.bucket", "sensor_data")

	v.SetDefault("clickhouse.addr", "localhost:9000")
	v.SetDefault("clickhouse.database", "default")
	v.SetDefault("clickhouse.username", "default")
	v.SetDefault("clickhouse.password", "")
	v.SetDefault("clickhouse.table", "sensor_readings")
}

// applyFlags copies only flags the user actually set, so file and env
// values survive unless overridden.
func applyFlags(v *viper.Viper, fs *pflag.FlagSet) {
	fs.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "config":
			// Handled before reading the config file
		case "backends":
			if val, err := fs.GetStringSlice(f.Name); err == nil {
				v.Set("backends", val)
			}
		case "frequencies":
			if val, err := fs.GetIntSlice(f.Name); err == nil {
				v.Set("frequencies", val)
			}
		case "csv":
			v.Set("csv_path", f.Value.String())
		case "log-level":
			v.Set("log_level", f.Value.String())
		default:
			v.Set(f.Name, f.Value.String())
		}
	})
}

func (c *Config) Validate() error {
	errFactory := errors.New()

	if len(c.Backends) == 0 {
		return errFactory.WithMessage(errors.ErrInvalidConfig, "no backends configured")
	}
	for _, backend := range c.Backends {
		switch backend {
		case BackendInfluxDB, BackendClickHouse, BackendMemory:
		default:
			return errFactory.WithData(errors.ErrInvalidConfig, struct {
				Backend string
			}{
				Backend: backend,
			})
		}
	}

	if len(c.Frequencies) == 0 {
		return errFactory.WithMessage(errors.ErrInvalidConfig, "no frequencies configured")
	}
	for _, frequency := range c.Frequencies {
		if frequency <= 0 {
			return errFactory.WithData(errors.ErrInvalidConfig, frequency)
		}
	}

	if c.Duration <= 0 || c.Runs <= 0 || c.Delay < 0 {
		return errFactory.WithMessage(errors.ErrInvalidConfig, "invalid duration, runs, or delay")
	}
	if c.Entry == "" {
		return errFactory.WithMessage(errors.ErrInvalidConfig, "empty entry name")
	}
	if c.CSVPath == "" {
		return errFactory.WithMessage(errors.ErrInvalidConfig, "empty csv path")
	}
	if c.History && c.Database == "" {
		return errFactory.WithMessage(errors.ErrInvalidConfig, "history enabled without a database path")
	}

	if !LogLevel(c.LogLevel).IsValid() {
		return errFactory.WithData(errors.ErrInvalidLogLevel, c.LogLevel)
	}

	return nil
}

func (c *Config) applyLogLevel() {
	switch {
	case c.Debug:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case c.Verbose:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	default:
		switch LogLevel(c.LogLevel) {
		case LogLevelDebug:
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		case LogLevelInfo:
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
		case LogLevelWarning:
			zerolog.SetGlobalLevel(zerolog.WarnLevel)
		case LogLevelError:
			zerolog.SetGlobalLevel(zerolog.ErrorLevel)
		}
	}
}
