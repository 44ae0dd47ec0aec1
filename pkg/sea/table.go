package sea

// Table is the assembled result: one row per combined normalized-time bin,
// one column per (data column, statistic[, y-bin]) combination. Column order
// follows assembly order so repeated runs produce identical tables.
type Table struct {
	Index   []float64            `json:"t_norm"`
	Names   []string             `json:"columns"`
	Columns map[string][]float64 `json:"values"`
}

func newTable(index []float64) *Table {
	return &Table{
		Index:   index,
		Columns: make(map[string][]float64),
	}
}

func (t *Table) addColumn(name string, values []float64) {
	if _, exists := t.Columns[name]; !exists {
		t.Names = append(t.Names, name)
	}
	t.Columns[name] = values
}

// Len returns the number of rows
func (t *Table) Len() int {
	return len(t.Index)
}

// Column returns a named column and whether it exists
func (t *Table) Column(name string) ([]float64, bool) {
	values, ok := t.Columns[name]
	return values, ok
}
