package results

import (
	"encoding/csv"
	"os"
	"strconv"
	"sync"
	"time"

	"codeberg.org/mutker/sensorbench/internal/errors"
)

// csvHeader matches the column layout consumed by downstream tooling.
var csvHeader = []string{"Database", "Frequency (Hz)", "Write Time (s)", "Read Time (s)"}

type csvWriter struct {
	mu   sync.Mutex
	file *os.File
	w    *csv.Writer
}

// newCSVWriter truncates the file at path and writes the header row.
func newCSVWriter(path string) (*csvWriter, error) {
	errFactory := errors.New()

	file, err := os.Create(path)
	if err != nil {
		return nil, errFactory.Wrap(ErrCSVAccess, err)
	}

	w := csv.NewWriter(file)
	if err := w.Write(csvHeader); err != nil {
		file.Close()
		return nil, errFactory.Wrap(ErrCSVAccess, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		file.Close()
		return nil, errFactory.Wrap(ErrCSVAccess, err)
	}

	return &csvWriter{file: file, w: w}, nil
}

// Append writes one record row and flushes, so partial runs still leave a
// usable file behind.
func (c *csvWriter) Append(rec *BenchmarkRecord) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	errFactory := errors.New()

	row := []string{
		rec.Backend,
		strconv.Itoa(rec.Frequency),
		formatSeconds(rec.WriteTime),
		formatSeconds(rec.ReadTime),
	}
	if err := c.w.Write(row); err != nil {
		return errFactory.Wrap(ErrCSVAccess, err)
	}
	c.w.Flush()
	if err := c.w.Error(); err != nil {
		return errFactory.Wrap(ErrCSVAccess, err)
	}

	return nil
}

func (c *csvWriter) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.w.Flush()
	if err := c.file.Close(); err != nil {
		errFactory := errors.New()
		return errFactory.Wrap(ErrCSVAccess, err)
	}

	return nil
}

// ReadCSV loads benchmark records back from a results file.
func ReadCSV(path string) ([]*BenchmarkRecord, error) {
	errFactory := errors.New()

	file, err := os.Open(path)
	if err != nil {
		return nil, errFactory.Wrap(ErrCSVAccess, err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, errFactory.Wrap(ErrCSVAccess, err)
	}
	if len(rows) == 0 {
		return nil, errFactory.WithMessage(ErrCSVAccess, "missing header row")
	}

	records := make([]*BenchmarkRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) != len(csvHeader) {
			return nil, errFactory.WithData(ErrCSVAccess, struct {
				Columns int
			}{
				Columns: len(row),
			})
		}

		frequency, err := strconv.Atoi(row[1])
		if err != nil {
			return nil, errFactory.Wrap(ErrCSVAccess, err)
		}
		writeTime, err := parseSeconds(row[2])
		if err != nil {
			return nil, errFactory.Wrap(ErrCSVAccess, err)
		}
		readTime, err := parseSeconds(row[3])
		if err != nil {
			return nil, errFactory.Wrap(ErrCSVAccess, err)
		}

		records = append(records, &BenchmarkRecord{
			Backend:   row[0],
			Frequency: frequency,
			WriteTime: writeTime,
			ReadTime:  readTime,
		})
	}

	return records, nil
}

func formatSeconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', -1, 64)
}

func parseSeconds(s string) (time.Duration, error) {
	seconds, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}

	return time.Duration(seconds * float64(time.Second)), nil
}
