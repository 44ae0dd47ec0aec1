package sea

import (
	"encoding/json"
	"math"
)

// JSON cannot represent NaN, but empty bins legitimately reduce to NaN.
// Tables and profiles cross JSON boundaries (workflow payloads, HTTP
// responses), so NaN round-trips as null.

func floatsToJSON(values []float64) []*float64 {
	out := make([]*float64, len(values))
	for i := range values {
		if math.IsNaN(values[i]) {
			continue
		}
		v := values[i]
		out[i] = &v
	}
	return out
}

func floatsFromJSON(values []*float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		if v == nil {
			out[i] = math.NaN()
			continue
		}
		out[i] = *v
	}
	return out
}

type tableJSON struct {
	Index   []float64             `json:"t_norm"`
	Names   []string              `json:"columns"`
	Columns map[string][]*float64 `json:"values"`
}

// MarshalJSON encodes the table with NaN cells as null
func (t *Table) MarshalJSON() ([]byte, error) {
	encoded := tableJSON{
		Index:   t.Index,
		Names:   t.Names,
		Columns: make(map[string][]*float64, len(t.Columns)),
	}
	for name, values := range t.Columns {
		encoded.Columns[name] = floatsToJSON(values)
	}
	return json.Marshal(encoded)
}

// UnmarshalJSON decodes null cells back to NaN
func (t *Table) UnmarshalJSON(data []byte) error {
	var decoded tableJSON
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}

	t.Index = decoded.Index
	t.Names = decoded.Names
	t.Columns = make(map[string][]float64, len(decoded.Columns))
	for name, values := range decoded.Columns {
		t.Columns[name] = floatsFromJSON(values)
	}
	return nil
}

type columnProfileJSON struct {
	Column  string   `json:"column"`
	Count   int      `json:"count"`
	Missing int      `json:"missing"`
	Min     *float64 `json:"min"`
	Max     *float64 `json:"max"`
	Mean    *float64 `json:"mean"`
	StdDev  *float64 `json:"std_dev"`
}

// MarshalJSON encodes NaN summary values (all-missing columns) as null
func (p ColumnProfile) MarshalJSON() ([]byte, error) {
	fields := floatsToJSON([]float64{p.Min, p.Max, p.Mean, p.StdDev})
	return json.Marshal(columnProfileJSON{
		Column:  p.Column,
		Count:   p.Count,
		Missing: p.Missing,
		Min:     fields[0],
		Max:     fields[1],
		Mean:    fields[2],
		StdDev:  fields[3],
	})
}

// UnmarshalJSON decodes null summary values back to NaN
func (p *ColumnProfile) UnmarshalJSON(data []byte) error {
	var decoded columnProfileJSON
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}

	fields := floatsFromJSON([]*float64{decoded.Min, decoded.Max, decoded.Mean, decoded.StdDev})
	p.Column = decoded.Column
	p.Count = decoded.Count
	p.Missing = decoded.Missing
	p.Min = fields[0]
	p.Max = fields[1]
	p.Mean = fields[2]
	p.StdDev = fields[3]
	return nil
}
