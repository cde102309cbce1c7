// Package results persists benchmark records and renders timing
// comparisons. Every record lands in the CSV file; the sqlite repository is
// an optional second destination for runs that should survive ad-hoc CSV
// handling.
package results

import (
	"context"

	"codeberg.org/mutker/sensorbench/internal/errors"
	"codeberg.org/mutker/sensorbench/internal/logger"
)

type service struct {
	csv  *csvWriter
	repo Repository
	cfg  Config
}

// No-op implementation
type noopRecorder struct{}

func NewService(cfg Config) (Recorder, error) {
	errFactory := errors.New()

	if err := cfg.Validate(); err != nil {
		return nil, errFactory.Wrap(ErrInvalidConfig, err)
	}

	// If recording is disabled, return a no-op recorder
	if !cfg.Enabled {
		logger.Debug().Msg("Results recording disabled, using no-op recorder")
		return &noopRecorder{}, nil
	}

	csv, err := newCSVWriter(cfg.CSVPath)
	if err != nil {
		return nil, err
	}

	var repo Repository
	if cfg.DBPath != "" {
		repo, err = NewRepository(cfg)
		if err != nil {
			csv.Close()
			return nil, err
		}
	}

	logger.Debug().
		Str("csv_path", cfg.CSVPath).
		Str("db_path", cfg.DBPath).
		Msg("Results recorder initialized")

	return &service{
		csv:  csv,
		repo: repo,
		cfg:  cfg,
	}, nil
}

func (s *service) Record(ctx context.Context, rec *BenchmarkRecord) error {
	errFactory := errors.New()

	if rec == nil {
		return errFactory.New(ErrInvalidRecord)
	}

	select {
	case <-ctx.Done():
		return errFactory.Wrap(ErrOperationTimeout, ctx.Err())
	default:
	}

	if err := s.csv.Append(rec); err != nil {
		return err
	}
	if s.repo != nil {
		if err := s.repo.Record(rec); err != nil {
			return err
		}
	}

	return nil
}

func (s *service) Close() error {
	errFactory := errors.New()

	if err := s.csv.Close(); err != nil {
		return errFactory.Wrap(ErrServiceShutdown, err)
	}
	if s.repo != nil {
		if err := s.repo.Close(); err != nil {
			return errFactory.Wrap(ErrServiceShutdown, err)
		}
	}

	return nil
}

// No-op implementation
func (*noopRecorder) Record(_ context.Context, _ *BenchmarkRecord) error {
	return nil
}

func (*noopRecorder) Close() error {
	return nil
}
