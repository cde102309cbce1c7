// Package clickhouse implements the sink contract on ClickHouse. Each write
// stores the packed payload whole, as one MergeTree row keyed by entry and
// timestamp, with labels in a Map column. Native unit is microseconds.
package clickhouse

import (
	"context"
	"fmt"
	"time"

	"codeberg.org/mutker/sensorbench/internal/errors"
	"codeberg.org/mutker/sensorbench/internal/logger"
	"codeberg.org/mutker/sensorbench/internal/sink"
	"codeberg.org/mutker/sensorbench/internal/timeunit"
	ch "github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

const (
	defaultTable = "sensor_readings"
	dialTimeout  = 5 * time.Second
)

type Config struct {
	Addr     string
	Database string
	Username string
	Password string
	Table    string
}

func (c Config) Validate() error {
	if c.Addr == "" {
		errFactory := errors.New()
		return errFactory.WithMessage(ErrInvalidConfig, "missing addr")
	}

	return nil
}

type Sink struct {
	conn  driver.Conn
	table string
}

// New connects to ClickHouse, verifies the connection, and creates the
// readings table if it does not exist.
func New(ctx context.Context, cfg Config) (*Sink, error) {
	errFactory := errors.New()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Table == "" {
		cfg.Table = defaultTable
	}

	conn, err := ch.Open(&ch.Options{
		Addr: []string{cfg.Addr},
		Auth: ch.Auth{
			Database: cfg.Database,
			Username: cfg.Username,
			Password: cfg.Password,
		},
		Settings: ch.Settings{
			"max_execution_time": 60,
		},
		DialTimeout: dialTimeout,
		Compression: &ch.Compression{
			Method: ch.CompressionLZ4,
		},
	})
	if err != nil {
		return nil, errFactory.Wrap(sink.ErrConnectFailed, err)
	}

	if err := conn.Ping(ctx); err != nil {
		conn.Close()
		return nil, errFactory.Wrap(sink.ErrConnectFailed, err)
	}

	s := &Sink{conn: conn, table: cfg.Table}
	if err := s.initSchema(ctx); err != nil {
		conn.Close()
		return nil, err
	}

	logger.Debug().Str("addr", cfg.Addr).Str("table", cfg.Table).Msg("Connected to ClickHouse")

	return s, nil
}

func (s *Sink) initSchema(ctx context.Context) error {
	ddl := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			entry String,
			timestamp Int64,
			payload String,
			labels Map(String, String)
		) ENGINE = MergeTree()
		ORDER BY (entry, timestamp)
	`, s.table)

	if err := s.conn.Exec(ctx, ddl); err != nil {
		errFactory := errors.New()
		return errFactory.Wrap(sink.ErrConnectFailed, err)
	}

	return nil
}

func (s *Sink) Name() string {
	return "clickhouse"
}

func (s *Sink) Unit() timeunit.Unit {
	return timeunit.Microsecond
}

func (s *Sink) Write(ctx context.Context, req sink.WriteRequest) error {
	labels := req.Labels
	if labels == nil {
		labels = map[string]string{}
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (entry, timestamp, payload, labels)
		VALUES (?, ?, ?, ?)
	`, s.table)

	if err := s.conn.Exec(ctx, query, req.Entry, req.Timestamp, string(req.Payload), labels); err != nil {
		errFactory := errors.New()
		return errFactory.Wrap(sink.ErrWriteFailed, err)
	}

	return nil
}

func (s *Sink) Query(ctx context.Context, entry string, start, stop int64) ([]sink.Record, error) {
	errFactory := errors.New()

	query := fmt.Sprintf(`
		SELECT timestamp, payload, labels
		FROM %s
		WHERE entry = ? AND timestamp >= ? AND timestamp <= ?
		ORDER BY timestamp
	`, s.table)

	rows, err := s.conn.Query(ctx, query, entry, start, stop)
	if err != nil {
		return nil, errFactory.Wrap(sink.ErrQueryFailed, err)
	}
	defer rows.Close()

	var records []sink.Record
	for rows.Next() {
		var (
			timestamp int64
			payload   string
			labels    map[string]string
		)
		if err := rows.Scan(&timestamp, &payload, &labels); err != nil {
			return nil, errFactory.Wrap(sink.ErrQueryFailed, err)
		}
		records = append(records, sink.Record{
			Timestamp: timestamp,
			Payload:   []byte(payload),
			Labels:    labels,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, errFactory.Wrap(sink.ErrQueryFailed, err)
	}

	return records, nil
}

func (s *Sink) Close() error {
	if err := s.conn.Close(); err != nil {
		errFactory := errors.New()
		return errFactory.Wrap(sink.ErrCloseFailed, err)
	}

	return nil
}
