package sea

import (
	"testing"
	"time"
)

func testTimes(start time.Time, step time.Duration, n int) []time.Time {
	times := make([]time.Time, n)
	for i := range times {
		times[i] = start.Add(time.Duration(i) * step)
	}
	return times
}

func TestNewFrameRejectsUnsortedIndex(t *testing.T) {
	times := []time.Time{
		time.Date(2025, 1, 1, 12, 1, 0, 0, time.UTC),
		time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
	}

	if _, err := NewFrame(times); err == nil {
		t.Error("Expected error for descending time index, got nil")
	}
}

func TestFrameAddColumn(t *testing.T) {
	start := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	f, err := NewFrame(testTimes(start, time.Minute, 3))
	if err != nil {
		t.Fatalf("NewFrame failed: %v", err)
	}

	if err := f.AddColumn("v", []float64{1, 2, 3}); err != nil {
		t.Fatalf("AddColumn failed: %v", err)
	}

	if err := f.AddColumn("w", []float64{1, 2}); err == nil {
		t.Error("Expected error for length mismatch, got nil")
	}

	if err := f.AddColumn("v", []float64{4, 5, 6}); err == nil {
		t.Error("Expected error for duplicate column, got nil")
	}

	if _, err := f.Column("missing"); err == nil {
		t.Error("Expected error for missing column, got nil")
	}
}

func TestFrameSliceInclusive(t *testing.T) {
	start := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	f, err := NewFrame(testTimes(start, time.Minute, 5))
	if err != nil {
		t.Fatalf("NewFrame failed: %v", err)
	}
	if err := f.AddColumn("v", []float64{0, 1, 2, 3, 4}); err != nil {
		t.Fatalf("AddColumn failed: %v", err)
	}

	tests := []struct {
		name     string
		from, to time.Time
		want     []float64
	}{
		{"both endpoints on rows", start.Add(time.Minute), start.Add(3 * time.Minute), []float64{1, 2, 3}},
		{"endpoints between rows", start.Add(30 * time.Second), start.Add(150 * time.Second), []float64{1, 2}},
		{"full range", start, start.Add(4 * time.Minute), []float64{0, 1, 2, 3, 4}},
		{"single row", start.Add(2 * time.Minute), start.Add(2 * time.Minute), []float64{2}},
		{"empty window before data", start.Add(-2 * time.Hour), start.Add(-time.Hour), nil},
		{"empty window after data", start.Add(time.Hour), start.Add(2 * time.Hour), nil},
		{"inverted range", start.Add(3 * time.Minute), start.Add(time.Minute), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			window := f.Slice(tt.from, tt.to)

			if window.Len() != len(tt.want) {
				t.Fatalf("Expected %d rows, got %d", len(tt.want), window.Len())
			}

			if len(tt.want) == 0 {
				return
			}
			values, err := window.Column("v")
			if err != nil {
				t.Fatalf("Column failed: %v", err)
			}
			for i, want := range tt.want {
				if values[i] != want {
					t.Errorf("Row %d: expected %v, got %v", i, want, values[i])
				}
			}
		})
	}
}

func TestFrameSliceSharesStorage(t *testing.T) {
	start := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	f, _ := NewFrame(testTimes(start, time.Minute, 3))
	_ = f.AddColumn("v", []float64{1, 2, 3})

	window := f.Slice(start, start.Add(2*time.Minute))
	values, _ := window.Column("v")
	values[0] = 100

	parent, _ := f.Column("v")
	if parent[0] != 100 {
		t.Error("Slice should be a view over the parent frame's storage")
	}
}

func TestFrameFromSeries(t *testing.T) {
	start := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	f, err := FrameFromSeries(testTimes(start, time.Minute, 3), []float64{1, 2, 3})
	if err != nil {
		t.Fatalf("FrameFromSeries failed: %v", err)
	}

	cols := f.Columns()
	if len(cols) != 1 || cols[0] != "data" {
		t.Errorf("Expected single column 'data', got %v", cols)
	}
}
