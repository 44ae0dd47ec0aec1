// Package sea implements a 1D and 2D normalized superposed epoch analysis
// of time-indexed tabular data.
//
// Each event is separated into two phases by three epochs t0, t1, t2
// (start, epoch, end): phase 1 runs t0->t1 and phase 2 runs t1->t2. Each
// phase's elapsed time is normalized to [0, 1] per event, all events'
// samples are pooled per phase, and per-bin statistics are computed over
// the pooled samples on a common normalized-time grid — optionally
// cross-binned against a second numeric column for a 2D analysis.
//
// The result is a single table indexed by the combined normalized-time axis
// (phase 1 on negative labels, phase 2 on 0, 1, 2, ...) plus a metadata
// record describing the analyzed columns, statistics, and 2D binning.
package sea

import (
	"fmt"
	"log/slog"
	"slices"
)

// Analyze runs the normalized superposed epoch analysis of the frame over
// the given events. It either returns a complete result or an error, never
// a partially filled table; events without data in a phase are skipped with
// a warning and do not abort the run.
func Analyze(data *Frame, events []Event, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mode := opts.Mode()

	cols, err := resolveCols(data, opts, mode)
	if err != nil {
		return nil, err
	}

	statistics := opts.Statistics
	if len(statistics) == 0 {
		statistics = DefaultStatistics()
	}
	if err := validateStatistics(statistics); err != nil {
		return nil, err
	}

	grid, err := buildGrid(opts.XDimensions, opts.YDimensions, mode)
	if err != nil {
		return nil, err
	}

	// Pooled sets carry the analyzed columns plus, in 2D mode, the y column.
	// The y column may itself be analyzed; it must still pool exactly once.
	pooledCols := cols
	if mode == TwoDimensional && !slices.Contains(cols, opts.YCol) {
		pooledCols = append(append([]string{}, cols...), opts.YCol)
	}
	// Surface missing columns before any per-event work
	if _, err := data.Select(pooledCols); err != nil {
		return nil, err
	}

	phase1Windows, phase2Windows := splitEvents(data, events, logger)
	if len(phase1Windows) == 0 {
		return nil, fmt.Errorf("no event has data in both phases")
	}

	p1, err := pool(phase1Windows, pooledCols)
	if err != nil {
		return nil, err
	}
	p2, err := pool(phase2Windows, pooledCols)
	if err != nil {
		return nil, err
	}

	table := newTable(grid.Axis)
	if mode == TwoDimensional {
		err = aggregate2D(table, p1, p2, grid, cols, statistics, opts.YCol)
	} else {
		err = aggregate1D(table, p1, p2, grid, cols, statistics)
	}
	if err != nil {
		return nil, err
	}

	result := &Result{
		Table: table,
		Meta:  buildMeta(cols, statistics, grid, opts, mode),
	}
	if opts.ReturnPooled {
		result.Phase1 = p1
		result.Phase2 = p2
	}
	return result, nil
}

// resolveCols decides which frame columns are analyzed: the explicit subset
// when given, otherwise every column — minus the y column in 2D mode, which
// is a binning axis rather than an analyzed value.
func resolveCols(data *Frame, opts Options, mode Mode) ([]string, error) {
	if len(opts.Cols) > 0 {
		for _, name := range opts.Cols {
			if _, err := data.Column(name); err != nil {
				return nil, err
			}
		}
		return opts.Cols, nil
	}

	var cols []string
	for _, name := range data.Columns() {
		if mode == TwoDimensional && name == opts.YCol {
			continue
		}
		cols = append(cols, name)
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("frame has no columns to analyze")
	}
	return cols, nil
}

// aggregate1D fills the table with one column per (data column, statistic),
// phase-1 values followed by phase-2 values.
func aggregate1D(table *Table, p1, p2 *PooledPhase, grid *BinGrid, cols []string, statistics []Statistic) error {
	b1 := newBinning(p1.TNorm, grid.X1Edges)
	b2 := newBinning(p2.TNorm, grid.X2Edges)

	for _, s := range statistics {
		for _, col := range cols {
			v1 := b1.reduce(p1.Columns[col], s)
			v2 := b2.reduce(p2.Columns[col], s)
			table.addColumn(col+"_"+s.Name, concat(v1, v2))
		}
	}
	return nil
}

// aggregate2D fills the table with one column per (data column, statistic,
// y-bin), the y-bin index zero-padded to three digits.
func aggregate2D(table *Table, p1, p2 *PooledPhase, grid *BinGrid, cols []string, statistics []Statistic, yCol string) error {
	y1, ok := p1.Columns[yCol]
	if !ok {
		return fmt.Errorf("column %q not found in pooled phase 1", yCol)
	}
	y2, ok := p2.Columns[yCol]
	if !ok {
		return fmt.Errorf("column %q not found in pooled phase 2", yCol)
	}

	b1 := newBinning2D(p1.TNorm, y1, grid.X1Edges, grid.YEdges)
	b2 := newBinning2D(p2.TNorm, y2, grid.X2Edges, grid.YEdges)

	for _, s := range statistics {
		for _, col := range cols {
			m1 := b1.reduce(p1.Columns[col], s)
			m2 := b2.reduce(p2.Columns[col], s)

			for j := 0; j < grid.YBins(); j++ {
				v1 := make([]float64, grid.X1Bins())
				for i := range v1 {
					v1[i] = m1[i][j]
				}
				v2 := make([]float64, grid.X2Bins())
				for i := range v2 {
					v2[i] = m2[i][j]
				}
				name := fmt.Sprintf("%s_%s_%03d", col, s.Name, j)
				table.addColumn(name, concat(v1, v2))
			}
		}
	}
	return nil
}

func buildMeta(cols []string, statistics []Statistic, grid *BinGrid, opts Options, mode Mode) Meta {
	meta := Meta{
		Cols:       cols,
		Statistics: statistics,
	}
	if mode == TwoDimensional {
		meta.Y = &YMeta{
			Min:     opts.YDimensions.Min,
			Max:     opts.YDimensions.Max,
			Spacing: opts.YDimensions.Spacing,
			Edges:   grid.YEdges,
		}
	}
	return meta
}

func concat(a, b []float64) []float64 {
	out := make([]float64, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}
