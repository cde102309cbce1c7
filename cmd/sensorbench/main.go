package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"codeberg.org/mutker/sensorbench/internal/bench"
	"codeberg.org/mutker/sensorbench/internal/config"
	"codeberg.org/mutker/sensorbench/internal/errors"
	"codeberg.org/mutker/sensorbench/internal/logger"
	"codeberg.org/mutker/sensorbench/internal/results"
	"codeberg.org/mutker/sensorbench/internal/sink"
	"codeberg.org/mutker/sensorbench/internal/sink/clickhouse"
	"codeberg.org/mutker/sensorbench/internal/sink/influx"
	"codeberg.org/mutker/sensorbench/internal/timeunit"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Debug, cfg.Verbose, logger.IsService())
	logger.Debug().Msg("Config loaded")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go handleSignals(cancel)

	if err := run(ctx, cfg); err != nil {
		logger.Error().Err(err).Msg("benchmark run failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	recorder, err := results.NewService(results.Config{
		CSVPath:      cfg.CSVPath,
		DBPath:       databasePath(cfg),
		BatchSize:    results.DefaultConfig().BatchSize,
		BatchTimeout: results.DefaultConfig().BatchTimeout,
		Enabled:      true,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := recorder.Close(); err != nil {
			logger.Error().Err(err).Msg("failed to close results recorder")
		}
	}()

	targets, err := buildTargets(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		for _, target := range targets {
			if err := target.Sink.Close(); err != nil {
				logger.Error().Err(err).Str("backend", target.Sink.Name()).Msg("failed to close sink")
			}
		}
	}()

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Debug().Int64("seed", seed).Msg("Seeding signal generator")
	rng := rand.New(rand.NewSource(seed))

	runner, err := bench.NewRunner(bench.Config{
		Frequencies: cfg.Frequencies,
		Duration:    cfg.Duration,
		Runs:        cfg.Runs,
		Delay:       cfg.Delay,
		Entry:       cfg.Entry,
	}, targets, recorder, rng)
	if err != nil {
		return err
	}

	if err := runner.Run(ctx); err != nil {
		return err
	}

	if cfg.Plot {
		return renderResults(cfg.CSVPath)
	}

	return nil
}

func buildTargets(ctx context.Context, cfg *config.Config) ([]bench.Target, error) {
	errFactory := errors.New()

	var targets []bench.Target
	for _, backend := range cfg.Backends {
		switch backend {
		case config.BackendInfluxDB:
			s, err := influx.New(ctx, influx.Config{
				URL:    cfg.Influx.URL,
				Token:  cfg.Influx.Token,
				Org:    cfg.Influx.Org,
				Bucket: cfg.Influx.Bucket,
			})
			if err != nil {
				closeTargets(targets)
				return nil, err
			}
			targets = append(targets, bench.Target{Sink: s})
		case config.BackendClickHouse:
			s, err := clickhouse.New(ctx, clickhouse.Config{
				Addr:     cfg.ClickHouse.Addr,
				Database: cfg.ClickHouse.Database,
				Username: cfg.ClickHouse.Username,
				Password: cfg.ClickHouse.Password,
				Table:    cfg.ClickHouse.Table,
			})
			if err != nil {
				closeTargets(targets)
				return nil, err
			}
			targets = append(targets, bench.Target{Sink: s, Chunked: true})
		case config.BackendMemory:
			targets = append(targets, bench.Target{
				Sink:    sink.NewMemory(timeunit.Microsecond),
				Chunked: true,
			})
		default:
			closeTargets(targets)
			return nil, errFactory.WithData(errors.ErrInvalidConfig, backend)
		}
	}

	return targets, nil
}

func closeTargets(targets []bench.Target) {
	for _, target := range targets {
		if err := target.Sink.Close(); err != nil {
			logger.Error().Err(err).Str("backend", target.Sink.Name()).Msg("failed to close sink")
		}
	}
}

func renderResults(csvPath string) error {
	records, err := results.ReadCSV(csvPath)
	if err != nil {
		return err
	}

	charts, err := results.Render(records)
	if err != nil {
		return err
	}
	fmt.Println(charts)

	return nil
}

func handleSignals(cancel context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	logger.Info().Msg("Received termination signal.")
	cancel()
}

func databasePath(cfg *config.Config) string {
	if !cfg.History {
		return ""
	}

	return cfg.Database
}
