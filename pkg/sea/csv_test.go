package sea

import (
	"math"
	"strings"
	"testing"
	"time"
)

func TestLoadCSVFromReader(t *testing.T) {
	csvData := `time,v,y
2025-01-01T12:02:00Z,3,6
2025-01-01T12:00:00Z,1,1
2025-01-01T12:01:00Z,,1
`

	f, err := LoadCSVFromReader(strings.NewReader(csvData), nil)
	if err != nil {
		t.Fatalf("LoadCSVFromReader failed: %v", err)
	}

	if f.Len() != 3 {
		t.Fatalf("Expected 3 rows, got %d", f.Len())
	}

	// Rows are sorted by timestamp on load
	wantFirst := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	if !f.Times()[0].Equal(wantFirst) {
		t.Errorf("Expected first timestamp %v, got %v", wantFirst, f.Times()[0])
	}

	v, err := f.Column("v")
	if err != nil {
		t.Fatalf("Column failed: %v", err)
	}
	if v[0] != 1 || !math.IsNaN(v[1]) || v[2] != 3 {
		t.Errorf("Expected [1, NaN, 3], got %v", v)
	}

	y, err := f.Column("y")
	if err != nil {
		t.Fatalf("Column failed: %v", err)
	}
	if y[0] != 1 || y[1] != 1 || y[2] != 6 {
		t.Errorf("Expected [1, 1, 6], got %v", y)
	}
}

func TestLoadCSVFromReaderUnixTimestamps(t *testing.T) {
	csvData := "time,v\n1735732800,10\n1735732860,20\n"

	f, err := LoadCSVFromReader(strings.NewReader(csvData), nil)
	if err != nil {
		t.Fatalf("LoadCSVFromReader failed: %v", err)
	}
	if f.Len() != 2 {
		t.Fatalf("Expected 2 rows, got %d", f.Len())
	}
	if got := f.Times()[1].Sub(f.Times()[0]); got != time.Minute {
		t.Errorf("Expected one minute between rows, got %v", got)
	}
}

func TestLoadCSVFromReaderErrors(t *testing.T) {
	tests := []struct {
		name string
		csv  string
	}{
		{"no value columns", "time\n2025-01-01T12:00:00Z\n"},
		{"bad timestamp", "time,v\nnot-a-time,1\n"},
		{"bad value", "time,v\n2025-01-01T12:00:00Z,abc\n"},
		{"field count mismatch", "time,v\n2025-01-01T12:00:00Z,1,2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadCSVFromReader(strings.NewReader(tt.csv), nil); err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}
}
