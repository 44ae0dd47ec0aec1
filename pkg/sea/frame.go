package sea

import (
	"fmt"
	"sort"
	"time"
)

// Frame is an ordered-by-time table: an ascending timestamp index with named
// float64 columns. It is the tabular input to the analysis; slicing produces
// views that share the underlying arrays.
type Frame struct {
	times []time.Time
	order []string
	cols  map[string][]float64
}

// NewFrame creates a frame over an ascending time index. Columns are added
// with AddColumn and keep their insertion order.
func NewFrame(times []time.Time) (*Frame, error) {
	for i := 1; i < len(times); i++ {
		if times[i].Before(times[i-1]) {
			return nil, fmt.Errorf("time index must be ascending: index %d (%s) is before index %d (%s)",
				i, times[i].Format(time.RFC3339), i-1, times[i-1].Format(time.RFC3339))
		}
	}

	return &Frame{
		times: times,
		cols:  make(map[string][]float64),
	}, nil
}

// FrameFromSeries wraps a single series as a one-column frame named "data"
func FrameFromSeries(times []time.Time, values []float64) (*Frame, error) {
	f, err := NewFrame(times)
	if err != nil {
		return nil, err
	}
	if err := f.AddColumn("data", values); err != nil {
		return nil, err
	}
	return f, nil
}

// AddColumn adds a named column. The value slice must match the index length.
func (f *Frame) AddColumn(name string, values []float64) error {
	if len(values) != len(f.times) {
		return fmt.Errorf("column %q has %d values for %d timestamps", name, len(values), len(f.times))
	}
	if _, exists := f.cols[name]; exists {
		return fmt.Errorf("column %q already exists", name)
	}

	f.order = append(f.order, name)
	f.cols[name] = values
	return nil
}

// Len returns the number of rows
func (f *Frame) Len() int {
	return len(f.times)
}

// Times returns the time index
func (f *Frame) Times() []time.Time {
	return f.times
}

// Columns returns the column names in insertion order
func (f *Frame) Columns() []string {
	return f.order
}

// Column returns the values of a named column. A missing column is a fatal
// lookup failure surfaced to the caller.
func (f *Frame) Column(name string) ([]float64, error) {
	values, ok := f.cols[name]
	if !ok {
		return nil, fmt.Errorf("column %q not found in frame", name)
	}
	return values, nil
}

// Slice returns the view of the frame with timestamps in [from, to], both
// endpoints inclusive. The view shares storage with the parent frame; an
// empty window is a valid, detectable state.
func (f *Frame) Slice(from, to time.Time) *Frame {
	lo := sort.Search(len(f.times), func(i int) bool {
		return !f.times[i].Before(from)
	})
	hi := sort.Search(len(f.times), func(i int) bool {
		return f.times[i].After(to)
	})
	if lo > hi {
		lo = hi
	}

	view := &Frame{
		times: f.times[lo:hi],
		order: f.order,
		cols:  make(map[string][]float64, len(f.cols)),
	}
	for name, values := range f.cols {
		view.cols[name] = values[lo:hi]
	}
	return view
}

// Select returns a view restricted to the named columns, in the given order
func (f *Frame) Select(names []string) (*Frame, error) {
	view := &Frame{
		times: f.times,
		cols:  make(map[string][]float64, len(names)),
	}
	for _, name := range names {
		values, err := f.Column(name)
		if err != nil {
			return nil, err
		}
		view.order = append(view.order, name)
		view.cols[name] = values
	}
	return view, nil
}
