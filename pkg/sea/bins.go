package sea

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// BinGrid holds the bin edges for both phases (and, in 2D mode, the second
// dimension) plus the combined normalized-time axis of the result table.
type BinGrid struct {
	X1Edges []float64
	X2Edges []float64
	YEdges  []float64 // nil in 1D mode

	// Axis is the row index of the result table: phase-1 bin labels
	// (negative, adjacent to the epoch) followed by phase-2 labels
	// (0, 1, 2, ...).
	Axis []float64
}

// X1Bins returns the number of phase-1 bins
func (g *BinGrid) X1Bins() int { return len(g.X1Edges) - 1 }

// X2Bins returns the number of phase-2 bins
func (g *BinGrid) X2Bins() int { return len(g.X2Edges) - 1 }

// YBins returns the number of second-dimension bins (0 in 1D mode)
func (g *BinGrid) YBins() int {
	if g.YEdges == nil {
		return 0
	}
	return len(g.YEdges) - 1
}

// buildGrid constructs the bin edges from the requested dimensions. The
// XDimensions values are edge counts: a phase with edge count n yields n-1
// bins, and the axis labels use the spacing 1/n. Both quirks are load-bearing
// for downstream consumers and are kept exactly.
func buildGrid(xDims [2]int, y *YDimensions, mode Mode) (*BinGrid, error) {
	if xDims[0] < 2 || xDims[1] < 2 {
		return nil, fmt.Errorf("x dimensions must both be at least 2 edges, got %v", xDims)
	}

	grid := &BinGrid{
		X1Edges: linspace01(xDims[0]),
		X2Edges: linspace01(xDims[1]),
	}

	if mode == TwoDimensional {
		if y.Spacing <= 0 {
			return nil, fmt.Errorf("y spacing must be positive, got %v", y.Spacing)
		}
		grid.YEdges = arange(y.Min, y.Max+y.Spacing, y.Spacing)
		if len(grid.YEdges) < 2 {
			return nil, fmt.Errorf("y dimensions [%v, %v, %v] produce no bins", y.Min, y.Max, y.Spacing)
		}
	}

	x1Spacing := 1 / float64(xDims[0])
	x2Spacing := 1 / float64(xDims[1])
	grid.Axis = combinedAxis(grid.X1Edges, grid.X2Edges, x1Spacing, x2Spacing)

	return grid, nil
}

// linspace01 returns n evenly spaced edges over [0, 1]
func linspace01(n int) []float64 {
	return floats.Span(make([]float64, n), 0, 1)
}

// arange returns values start, start+step, ... strictly below stop, with the
// count fixed up front as ceil((stop-start)/step). Floating-point rounding in
// that division can truncate the final value; downstream edge counts depend
// on exactly this convention.
func arange(start, stop, step float64) []float64 {
	span := (stop - start) / step
	if span <= 0 || math.IsInf(span, 0) || math.IsNaN(span) {
		return nil
	}
	n := int(math.Ceil(span))

	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}

// combinedAxis maps phase-1 bin left edges onto labels ending just below
// zero and phase-2 left edges onto 0, 1, 2, ... This is a labeling
// convention for the output index, not a renormalization: with edge count n
// the spacing divisor is 1/n while the bins are 1/(n-1) wide, so phase-1
// labels are generally not integers.
func combinedAxis(x1Edges, x2Edges []float64, x1Spacing, x2Spacing float64) []float64 {
	x1Bins := x1Edges[:len(x1Edges)-1]
	x2Bins := x2Edges[:len(x2Edges)-1]
	x1Max := x1Bins[len(x1Bins)-1]

	axis := make([]float64, 0, len(x1Bins)+len(x2Bins))
	for _, b := range x1Bins {
		axis = append(axis, (b-x1Max-x1Spacing)/x1Spacing)
	}
	for _, b := range x2Bins {
		axis = append(axis, b/x2Spacing)
	}
	return axis
}
