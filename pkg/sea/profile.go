package sea

import (
	"math"

	"github.com/montanaflynn/stats"
)

// ColumnProfile is a descriptive summary of one frame column, used for
// pre-analysis diagnostics (data-quality checks before committing to a run).
type ColumnProfile struct {
	Column  string  `json:"column"`
	Count   int     `json:"count"`    // non-NaN samples
	Missing int     `json:"missing"`  // NaN samples
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Mean    float64 `json:"mean"`
	StdDev  float64 `json:"std_dev"`
}

// ProfileFrame summarizes the named columns (all columns when names is
// empty). Columns with no finite samples report NaN summary values.
func ProfileFrame(f *Frame, names []string) ([]ColumnProfile, error) {
	if len(names) == 0 {
		names = f.Columns()
	}

	profiles := make([]ColumnProfile, 0, len(names))
	for _, name := range names {
		values, err := f.Column(name)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profileColumn(name, values))
	}
	return profiles, nil
}

func profileColumn(name string, values []float64) ColumnProfile {
	kept := dropNaN(values)

	profile := ColumnProfile{
		Column:  name,
		Count:   len(kept),
		Missing: len(values) - len(kept),
		Min:     math.NaN(),
		Max:     math.NaN(),
		Mean:    math.NaN(),
		StdDev:  math.NaN(),
	}
	if len(kept) == 0 {
		return profile
	}

	data := stats.Float64Data(kept)
	if v, err := data.Min(); err == nil {
		profile.Min = v
	}
	if v, err := data.Max(); err == nil {
		profile.Max = v
	}
	if v, err := data.Mean(); err == nil {
		profile.Mean = v
	}
	if v, err := data.StandardDeviation(); err == nil {
		profile.StdDev = v
	}
	return profile
}
