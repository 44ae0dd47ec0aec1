package sea

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// ReducerFunc maps the values landing in one bin to a single summary scalar.
// It may receive an empty slice for an empty bin and NaN entries for missing
// samples; what it does with them is its own contract.
type ReducerFunc func(values []float64) float64

// StatKind separates value reducers from the count statistic, which counts
// samples per bin instead of reducing column values.
type StatKind string

const (
	KindValue StatKind = "value"
	KindCount StatKind = "count"
)

// Statistic is a named reducer applied per bin
type Statistic struct {
	Name string
	Kind StatKind
	Fn   ReducerFunc
}

// MarshalJSON encodes the statistic as its bare name, matching the result
// metadata format
func (s Statistic) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Name)
}

// UnmarshalJSON decodes a statistic name, rebinding builtin reducers.
// Custom names decode as value statistics without a reducer.
func (s *Statistic) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	if resolved, err := resolveStatistic(name); err == nil {
		*s = resolved
		return nil
	}
	*s = Statistic{Name: name, Kind: KindValue}
	return nil
}

// Builtin statistic names
const (
	StatMean   = "mean"
	StatMedian = "median"
	StatLowQ   = "lowq"
	StatUpQ    = "upq"
	StatCount  = "cnt"
)

// DefaultStatistics returns the default statistic set: NaN-tolerant mean,
// median, lower and upper quartile, and the per-bin sample count.
func DefaultStatistics() []Statistic {
	return []Statistic{
		{Name: StatMean, Kind: KindValue, Fn: NaNMean},
		{Name: StatMedian, Kind: KindValue, Fn: NaNMedian},
		{Name: StatLowQ, Kind: KindValue, Fn: NaNPercentileFunc(25)},
		{Name: StatUpQ, Kind: KindValue, Fn: NaNPercentileFunc(75)},
		{Name: StatCount, Kind: KindCount},
	}
}

// ResolveStatistics resolves statistic names to builtin reducers, once, at
// setup. Unknown names are fatal and surface the offending name. An empty
// list resolves to DefaultStatistics().
func ResolveStatistics(names []string) ([]Statistic, error) {
	if len(names) == 0 {
		return DefaultStatistics(), nil
	}

	resolved := make([]Statistic, 0, len(names))
	for _, name := range names {
		s, err := resolveStatistic(name)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, s)
	}
	return resolved, nil
}

func resolveStatistic(name string) (Statistic, error) {
	switch name {
	case StatMean:
		return Statistic{Name: name, Kind: KindValue, Fn: NaNMean}, nil
	case StatMedian:
		return Statistic{Name: name, Kind: KindValue, Fn: NaNMedian}, nil
	case StatLowQ:
		return Statistic{Name: name, Kind: KindValue, Fn: NaNPercentileFunc(25)}, nil
	case StatUpQ:
		return Statistic{Name: name, Kind: KindValue, Fn: NaNPercentileFunc(75)}, nil
	case StatCount:
		return Statistic{Name: name, Kind: KindCount}, nil
	default:
		return Statistic{}, fmt.Errorf("unknown statistic %q", name)
	}
}

// CustomStatistic wraps a user-supplied reducer under a name
func CustomStatistic(name string, fn ReducerFunc) Statistic {
	return Statistic{Name: name, Kind: KindValue, Fn: fn}
}

func validateStatistics(statistics []Statistic) error {
	for _, s := range statistics {
		if s.Name == "" {
			return fmt.Errorf("statistic with empty name")
		}
		if s.Kind != KindCount && s.Fn == nil {
			return fmt.Errorf("statistic %q has no reducer function", s.Name)
		}
	}
	return nil
}

// dropNaN returns a copy of values with NaN entries removed
func dropNaN(values []float64) []float64 {
	kept := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			kept = append(kept, v)
		}
	}
	return kept
}

// NaNMean is the arithmetic mean ignoring NaN entries. An empty or all-NaN
// bin yields NaN.
func NaNMean(values []float64) float64 {
	v := dropNaN(values)
	if len(v) == 0 {
		return math.NaN()
	}
	return stat.Mean(v, nil)
}

// NaNMedian is the median ignoring NaN entries
func NaNMedian(values []float64) float64 {
	return nanPercentile(values, 50)
}

// NaNPercentileFunc returns a reducer computing the pct-th percentile of the
// non-NaN entries, using linear interpolation between closest ranks.
func NaNPercentileFunc(pct float64) ReducerFunc {
	return func(values []float64) float64 {
		return nanPercentile(values, pct)
	}
}

// nanPercentile interpolates linearly between the two closest ranks, the
// convention the sorted rank position is pct/100*(n-1). gonum's
// stat.Quantile kinds interpolate the empirical CDF differently, so the rank
// arithmetic lives here and gonum covers the mean.
func nanPercentile(values []float64, pct float64) float64 {
	v := dropNaN(values)
	if len(v) == 0 {
		return math.NaN()
	}
	sort.Float64s(v)

	rank := pct / 100 * float64(len(v)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return v[lo]
	}
	frac := rank - float64(lo)
	return v[lo] + (v[hi]-v[lo])*frac
}
