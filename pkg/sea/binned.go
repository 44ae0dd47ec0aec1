package sea

import (
	"sort"
)

// binning assigns pooled samples to bins along one axis. Bins are
// left-closed, right-open, except the final bin which is closed on both
// ends. Samples outside the edge range — including non-finite normalized
// times from degenerate phases — get no bin and are silently excluded.
type binning struct {
	index []int // per-sample bin index, -1 when outside every bin
	nbins int
}

func newBinning(x []float64, edges []float64) *binning {
	b := &binning{
		index: make([]int, len(x)),
		nbins: len(edges) - 1,
	}
	for i, v := range x {
		b.index[i] = binIndex(v, edges)
	}
	return b
}

// binIndex finds the bin for x, or -1 when x falls outside [first, last].
// NaN fails both range comparisons and lands outside.
func binIndex(x float64, edges []float64) int {
	last := len(edges) - 1
	if !(x >= edges[0] && x <= edges[last]) {
		return -1
	}
	if x == edges[last] {
		return last - 1
	}

	i := sort.SearchFloat64s(edges, x)
	if i < len(edges) && edges[i] == x {
		return i
	}
	return i - 1
}

// reduce applies one statistic to a column's values per bin, returning one
// scalar per bin. The count statistic counts samples; value statistics see
// the (possibly empty, possibly NaN-carrying) values landing in each bin.
func (b *binning) reduce(values []float64, s Statistic) []float64 {
	if s.Kind == KindCount {
		counts := make([]float64, b.nbins)
		for _, bin := range b.index {
			if bin >= 0 {
				counts[bin]++
			}
		}
		return counts
	}

	groups := make([][]float64, b.nbins)
	for i, bin := range b.index {
		if bin >= 0 {
			groups[bin] = append(groups[bin], values[i])
		}
	}

	out := make([]float64, b.nbins)
	for bin, group := range groups {
		out[bin] = s.Fn(group)
	}
	return out
}

// binning2D assigns pooled samples jointly to (time-bin, y-bin) cells with
// the same edge tie-break as the 1D case on both axes.
type binning2D struct {
	xIndex []int
	yIndex []int
	nx     int
	ny     int
}

func newBinning2D(x, y []float64, xEdges, yEdges []float64) *binning2D {
	b := &binning2D{
		xIndex: make([]int, len(x)),
		yIndex: make([]int, len(y)),
		nx:     len(xEdges) - 1,
		ny:     len(yEdges) - 1,
	}
	for i := range x {
		b.xIndex[i] = binIndex(x[i], xEdges)
		b.yIndex[i] = binIndex(y[i], yEdges)
	}
	return b
}

// reduce applies one statistic per cell, returning a [nx][ny] matrix with
// exactly one value per cell.
func (b *binning2D) reduce(values []float64, s Statistic) [][]float64 {
	out := make([][]float64, b.nx)
	for i := range out {
		out[i] = make([]float64, b.ny)
	}

	if s.Kind == KindCount {
		for i := range b.xIndex {
			xi, yi := b.xIndex[i], b.yIndex[i]
			if xi >= 0 && yi >= 0 {
				out[xi][yi]++
			}
		}
		return out
	}

	groups := make([][][]float64, b.nx)
	for i := range groups {
		groups[i] = make([][]float64, b.ny)
	}
	for i := range b.xIndex {
		xi, yi := b.xIndex[i], b.yIndex[i]
		if xi >= 0 && yi >= 0 {
			groups[xi][yi] = append(groups[xi][yi], values[i])
		}
	}

	for xi := range groups {
		for yi := range groups[xi] {
			out[xi][yi] = s.Fn(groups[xi][yi])
		}
	}
	return out
}
