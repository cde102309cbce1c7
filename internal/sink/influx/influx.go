// Package influx implements the sink contract on InfluxDB. The packed
// payload is expanded into one point per sample on write (measurement named
// by the entry, field "value") and re-packed into a single payload on
// query, so the codec round-trips inside the sink. Labels are dropped:
// attaching them as tags would split the series per label value. Native
// unit is nanoseconds.
package influx

import (
	"context"
	"fmt"
	"time"

	"codeberg.org/mutker/sensorbench/internal/codec"
	"codeberg.org/mutker/sensorbench/internal/errors"
	"codeberg.org/mutker/sensorbench/internal/logger"
	"codeberg.org/mutker/sensorbench/internal/sink"
	"codeberg.org/mutker/sensorbench/internal/timeunit"
	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

type Config struct {
	URL    string
	Token  string
	Org    string
	Bucket string
}

func (c Config) Validate() error {
	errFactory := errors.New()

	if c.URL == "" {
		return errFactory.WithMessage(ErrInvalidConfig, "missing url")
	}
	if c.Org == "" || c.Bucket == "" {
		return errFactory.WithMessage(ErrInvalidConfig, "missing org or bucket")
	}

	return nil
}

type Sink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	queryAPI api.QueryAPI
	cfg      Config
}

// New connects to InfluxDB and verifies the connection. The blocking write
// API is used so that backend faults surface on the write call instead of
// disappearing into an async buffer.
func New(ctx context.Context, cfg Config) (*Sink, error) {
	errFactory := errors.New()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client := influxdb2.NewClientWithOptions(cfg.URL, cfg.Token, influxdb2.DefaultOptions())

	ok, err := client.Ping(ctx)
	if err != nil {
		client.Close()
		return nil, errFactory.Wrap(sink.ErrConnectFailed, err)
	}
	if !ok {
		client.Close()
		return nil, errFactory.WithMessage(sink.ErrConnectFailed, "ping returned not ready")
	}

	logger.Debug().Str("url", cfg.URL).Str("bucket", cfg.Bucket).Msg("Connected to InfluxDB")

	return &Sink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.Org, cfg.Bucket),
		queryAPI: client.QueryAPI(cfg.Org),
		cfg:      cfg,
	}, nil
}

func (s *Sink) Name() string {
	return "influxdb"
}

func (s *Sink) Unit() timeunit.Unit {
	return timeunit.Nanosecond
}

func (s *Sink) Write(ctx context.Context, req sink.WriteRequest) error {
	errFactory := errors.New()

	samples, err := codec.Unpack(req.Payload)
	if err != nil {
		return err
	}

	points := make([]*write.Point, len(samples))
	timestamp := req.Timestamp
	for i, value := range samples {
		points[i] = influxdb2.NewPointWithMeasurement(req.Entry).
			AddField("value", float64(value)).
			SetTime(time.Unix(0, timestamp))
		timestamp += req.Step
	}

	if err := s.writeAPI.WritePoint(ctx, points...); err != nil {
		return errFactory.Wrap(sink.ErrWriteFailed, err)
	}

	return nil
}

func (s *Sink) Query(ctx context.Context, entry string, start, stop int64) ([]sink.Record, error) {
	errFactory := errors.New()

	flux := fmt.Sprintf(`from(bucket: %q)
  |> range(start: %s, stop: %s)
  |> filter(fn: (r) => r._measurement == %q)
  |> sort(columns: ["_time"])
  |> keep(columns: ["_time", "_value"])`,
		s.cfg.Bucket,
		timeunit.ToRFC3339(start, timeunit.Nanosecond),
		timeunit.ToRFC3339(stop, timeunit.Nanosecond),
		entry,
	)

	result, err := s.queryAPI.Query(ctx, flux)
	if err != nil {
		return nil, errFactory.Wrap(sink.ErrQueryFailed, err)
	}

	var values []float32
	var first int64
	for result.Next() {
		value, ok := result.Record().Value().(float64)
		if !ok {
			return nil, errFactory.WithData(sink.ErrQueryFailed, struct {
				Value any
			}{
				Value: result.Record().Value(),
			})
		}
		if len(values) == 0 {
			first = result.Record().Time().UnixNano()
		}
		values = append(values, float32(value))
	}
	if err := result.Err(); err != nil {
		return nil, errFactory.Wrap(sink.ErrQueryFailed, err)
	}

	if len(values) == 0 {
		return nil, nil
	}

	return []sink.Record{{
		Timestamp: first,
		Payload:   codec.Pack(values),
	}}, nil
}

func (s *Sink) Close() error {
	s.client.Close()

	return nil
}
