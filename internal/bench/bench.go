// Package bench runs write/read round trips against each configured sink
// and records the timings. A trial generates a signal, writes it (chunked
// or whole), reads the same time range back, and asserts bitwise equality
// before recording. Any sink fault or verification mismatch aborts the run;
// nothing is retried, since masking a fault would invalidate the
// measurement.
package bench

import (
	"context"
	"math"
	"math/rand"
	"time"

	"codeberg.org/mutker/sensorbench/internal/codec"
	"codeberg.org/mutker/sensorbench/internal/errors"
	"codeberg.org/mutker/sensorbench/internal/logger"
	"codeberg.org/mutker/sensorbench/internal/results"
	"codeberg.org/mutker/sensorbench/internal/signal"
	"codeberg.org/mutker/sensorbench/internal/sink"
	"codeberg.org/mutker/sensorbench/internal/timeunit"
)

// Target pairs a sink with its write policy. Chunked targets get the signal
// split into one chunk per second of duration, each written as a separate
// record; unchunked targets get the whole signal in one write.
type Target struct {
	Sink    sink.Sink
	Chunked bool
}

type Runner struct {
	cfg      Config
	targets  []Target
	recorder results.Recorder
	rng      *rand.Rand
}

func NewRunner(cfg Config, targets []Target, recorder results.Recorder, rng *rand.Rand) (*Runner, error) {
	errFactory := errors.New()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(targets) == 0 {
		return nil, errFactory.New(ErrNoTargets)
	}
	if recorder == nil || rng == nil {
		return nil, errFactory.New(ErrInvalidConfig)
	}

	return &Runner{
		cfg:      cfg,
		targets:  targets,
		recorder: recorder,
		rng:      rng,
	}, nil
}

// Run sweeps every frequency, repeating each cfg.Runs times per target.
// Trials execute strictly sequentially; the context is only checked between
// trials, so cancellation never truncates a measurement.
func (r *Runner) Run(ctx context.Context) error {
	total := len(r.cfg.Frequencies) * r.cfg.Runs * len(r.targets)
	done := 0

	for _, frequency := range r.cfg.Frequencies {
		for run := 0; run < r.cfg.Runs; run++ {
			for _, target := range r.targets {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}

				logger.Info().
					Str("backend", target.Sink.Name()).
					Int("frequency", frequency).
					Int("run", run+1).
					Int("of", r.cfg.Runs).
					Msg("Running trial")

				if err := r.runTrial(ctx, target, frequency); err != nil {
					return err
				}
				done++
				logger.Debug().Int("done", done).Int("total", total).Msg("Trial complete")

				if err := r.sleep(ctx); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

func (r *Runner) runTrial(ctx context.Context, target Target, frequency int) error {
	unit := target.Sink.Unit()
	step := timeunit.Step(unit, frequency)
	startTime := timeunit.Now(unit)

	generated, err := signal.Generate(r.rng, frequency, float64(r.cfg.Duration))
	if err != nil {
		return err
	}

	chunks := [][]float32{generated}
	if target.Chunked {
		chunks, err = signal.Split(generated, r.cfg.Duration)
		if err != nil {
			return err
		}
	}

	// Let the wall clock pass the signal's nominal range so the trial's
	// timestamps stay distinguishable from the next one.
	if err := sleepCtx(ctx, time.Duration(r.cfg.Duration)*time.Second); err != nil {
		return err
	}

	timestamp := startTime
	startWrite := time.Now()
	for _, chunk := range chunks {
		metrics, err := signal.Metrics(chunk)
		if err != nil {
			return err
		}

		if err := target.Sink.Write(ctx, sink.WriteRequest{
			Entry:     r.cfg.Entry,
			Timestamp: timestamp,
			Step:      step,
			Payload:   codec.Pack(chunk),
			Labels:    metrics.Labels(),
		}); err != nil {
			return err
		}
		timestamp += int64(len(chunk)) * step
	}
	writeTime := time.Since(startWrite)

	endTime := timeunit.Now(unit)

	// One step of guard margin on each side avoids boundary exclusion in
	// the backend's range semantics.
	startRead := time.Now()
	records, err := target.Sink.Query(ctx, r.cfg.Entry, startTime-step, endTime+step)
	readTime := time.Since(startRead)
	if err != nil {
		return err
	}

	reconstructed := make([]float32, 0, len(generated))
	for _, rec := range records {
		values, err := codec.Unpack(rec.Payload)
		if err != nil {
			return err
		}
		reconstructed = append(reconstructed, values...)
	}

	if err := verify(generated, reconstructed); err != nil {
		return err
	}

	return r.recorder.Record(ctx, &results.BenchmarkRecord{
		Backend:   target.Sink.Name(),
		Frequency: frequency,
		WriteTime: writeTime,
		ReadTime:  readTime,
	})
}

// verify asserts element-wise bitwise equality in float32. A mismatch is a
// correctness defect in the sink or codec, fatal for the trial.
func verify(want, got []float32) error {
	errFactory := errors.New()

	if len(want) != len(got) {
		return errFactory.WithData(ErrVerificationFailure, struct {
			Written int
			Read    int
		}{
			Written: len(want),
			Read:    len(got),
		})
	}

	for i := range want {
		if math.Float32bits(want[i]) != math.Float32bits(got[i]) {
			return errFactory.WithData(ErrVerificationFailure, struct {
				Index   int
				Written float32
				Read    float32
			}{
				Index:   i,
				Written: want[i],
				Read:    got[i],
			})
		}
	}

	return nil
}

func (r *Runner) sleep(ctx context.Context) error {
	return sleepCtx(ctx, time.Duration(r.cfg.Delay)*time.Second)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
