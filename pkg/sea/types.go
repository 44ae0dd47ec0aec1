package sea

import (
	"fmt"
	"log/slog"
	"time"
)

// Event is a single occurrence under analysis, bounded by three epochs.
// Phase 1 runs from Start to Epoch, phase 2 from Epoch to End.
// Start <= Epoch <= End is a caller contract and is not validated here.
type Event struct {
	Start time.Time `json:"start"`
	Epoch time.Time `json:"epoch"`
	End   time.Time `json:"end"`
}

// ZipEvents builds an event list from three equal-length timestamp slices
// (starts, epochs, ends), the layout analysis inputs usually arrive in.
func ZipEvents(starts, epochs, ends []time.Time) ([]Event, error) {
	if len(starts) != len(epochs) || len(epochs) != len(ends) {
		return nil, fmt.Errorf("event slices must have equal length: got %d starts, %d epochs, %d ends",
			len(starts), len(epochs), len(ends))
	}

	events := make([]Event, len(starts))
	for i := range starts {
		events[i] = Event{Start: starts[i], Epoch: epochs[i], End: ends[i]}
	}
	return events, nil
}

// Mode identifies the binning mode of an analysis
type Mode string

const (
	OneDimensional Mode = "1d"
	TwoDimensional Mode = "2d"
)

// YDimensions defines the binning of the second dimension for a 2D analysis:
// edges run from Min to Max in steps of Spacing. The final bin may be
// narrower than Spacing when (Max-Min) is not a multiple of it.
type YDimensions struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Spacing float64 `json:"spacing"`
}

// Options configures a normalized superposed epoch analysis
type Options struct {
	// XDimensions holds the requested edge counts for [phase 1, phase 2].
	// A phase with edge count n produces n-1 normalized-time bins.
	XDimensions [2]int `json:"x_dimensions"`

	// Cols selects the frame columns to analyze. Empty means all columns
	// (minus the y column in 2D mode).
	Cols []string `json:"cols,omitempty"`

	// Statistics are the reducers to compute per bin, in order.
	// Empty means DefaultStatistics().
	Statistics []Statistic `json:"-"`

	// YCol and YDimensions together enable 2D mode. Either one alone is
	// ignored and the analysis runs in 1D mode.
	YCol        string       `json:"y_col,omitempty"`
	YDimensions *YDimensions `json:"y_dimensions,omitempty"`

	// ReturnPooled attaches the pooled per-phase sample sets to the result
	// for caller-side diagnostics. When false they are dropped after
	// aggregation.
	ReturnPooled bool `json:"return_pooled,omitempty"`

	// Logger receives per-event skip diagnostics. Nil means slog.Default().
	Logger *slog.Logger `json:"-"`
}

// Mode resolves the binning mode once from the presence of both 2D fields
func (o Options) Mode() Mode {
	if o.YCol != "" && o.YDimensions != nil {
		return TwoDimensional
	}
	return OneDimensional
}

// YMeta describes the second-dimension binning of a 2D analysis
type YMeta struct {
	Min     float64   `json:"min"`
	Max     float64   `json:"max"`
	Spacing float64   `json:"bin"`
	Edges   []float64 `json:"edges"`
}

// Meta is the metadata record returned alongside the result table
type Meta struct {
	Cols       []string    `json:"sea_cols"`
	Statistics []Statistic `json:"stats"`
	Y          *YMeta      `json:"y_meta,omitempty"`
}

// PooledPhase is the combined normalized sample set of one phase across all
// events. Per-event identity is discarded: statistics are computed across
// events, not within one.
type PooledPhase struct {
	TNorm   []float64            `json:"t_norm"`
	Columns map[string][]float64 `json:"columns"`
}

// Len returns the number of pooled samples
func (p *PooledPhase) Len() int {
	return len(p.TNorm)
}

// Result is the output of one analysis: the indexed statistic table, its
// metadata, and optionally the pooled phase samples that produced it.
type Result struct {
	Table *Table `json:"table"`
	Meta  Meta   `json:"meta"`

	// Phase1 and Phase2 are only populated when Options.ReturnPooled is set
	Phase1 *PooledPhase `json:"phase1,omitempty"`
	Phase2 *PooledPhase `json:"phase2,omitempty"`
}
