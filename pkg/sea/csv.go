package sea

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"time"
)

// CSVOptions holds options for loading a frame from CSV
type CSVOptions struct {
	TimeFormat string // time layout for the first column (default: RFC3339)
	Delimiter  rune   // field delimiter (default: ',')
}

// DefaultCSVOptions returns the default CSV loading options
func DefaultCSVOptions() *CSVOptions {
	return &CSVOptions{
		TimeFormat: time.RFC3339,
		Delimiter:  ',',
	}
}

// LoadCSV loads a frame from a CSV file. The first column must be the time
// index; every other column is numeric. See LoadCSVFromReader.
func LoadCSV(filename string, opts *CSVOptions) (*Frame, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return LoadCSVFromReader(file, opts)
}

// LoadCSVFromReader loads a frame from CSV content. The header row names the
// columns; the first column holds timestamps (the configured layout, or Unix
// seconds), the remaining columns hold float64 values with empty cells read
// as NaN. Rows are sorted by timestamp before the frame is built.
func LoadCSVFromReader(r io.Reader, opts *CSVOptions) (*Frame, error) {
	if opts == nil {
		opts = DefaultCSVOptions()
	}

	reader := csv.NewReader(r)
	reader.Comma = opts.Delimiter
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("CSV must have a time column and at least one value column, got %d columns", len(header))
	}

	type row struct {
		t      time.Time
		values []float64
	}
	var rows []row

	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV line %d: %w", line, err)
		}
		if len(record) != len(header) {
			return nil, fmt.Errorf("CSV line %d has %d fields, expected %d", line, len(record), len(header))
		}

		t, err := parseTimestamp(record[0], opts.TimeFormat)
		if err != nil {
			return nil, fmt.Errorf("CSV line %d: %w", line, err)
		}

		values := make([]float64, len(record)-1)
		for i, field := range record[1:] {
			if field == "" {
				values[i] = math.NaN()
				continue
			}
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("CSV line %d, column %q: %w", line, header[i+1], err)
			}
			values[i] = v
		}

		rows = append(rows, row{t: t, values: values})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].t.Before(rows[j].t)
	})

	times := make([]time.Time, len(rows))
	for i, r := range rows {
		times[i] = r.t
	}

	frame, err := NewFrame(times)
	if err != nil {
		return nil, err
	}
	for i, name := range header[1:] {
		values := make([]float64, len(rows))
		for j, r := range rows {
			values[j] = r.values[i]
		}
		if err := frame.AddColumn(name, values); err != nil {
			return nil, err
		}
	}
	return frame, nil
}

func parseTimestamp(field, layout string) (time.Time, error) {
	if t, err := time.Parse(layout, field); err == nil {
		return t, nil
	}
	// Fall back to Unix seconds
	if secs, err := strconv.ParseFloat(field, 64); err == nil {
		whole, frac := math.Modf(secs)
		return time.Unix(int64(whole), int64(frac*1e9)).UTC(), nil
	}
	return time.Time{}, fmt.Errorf("cannot parse timestamp %q", field)
}
