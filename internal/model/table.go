package model

import (
	"math"
	"sort"
	"time"
)

// AlignedTable is a dense daily view over series of heterogeneous native
// frequency. The calendar is contiguous; every column has exactly one
// slot per calendar day. Missing values are NaN, never zero: a column is
// NaN before its series' first observation and after forward-fill every
// later slot carries the most recent observed value.
type AlignedTable struct {
	Calendar []time.Time
	Columns  map[string][]float64
}

// HasColumn reports whether a series made it into the table.
func (t *AlignedTable) HasColumn(id string) bool {
	_, ok := t.Columns[id]
	return ok
}

// ColumnIDs returns the column names in lexical order, so that callers
// iterating the table are deterministic.
func (t *AlignedTable) ColumnIDs() []string {
	ids := make([]string, 0, len(t.Columns))
	for id := range t.Columns {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Value returns the cell for (id, row), or NaN when the column does not
// exist or the row is out of range.
func (t *AlignedTable) Value(id string, row int) float64 {
	col, ok := t.Columns[id]
	if !ok || row < 0 || row >= len(col) {
		return math.NaN()
	}
	return col[row]
}

// LastValidRow returns the index of the latest calendar day for which the
// column holds a value, or -1 when the column is absent or all-NaN.
func (t *AlignedTable) LastValidRow(id string) int {
	col, ok := t.Columns[id]
	if !ok {
		return -1
	}
	for i := len(col) - 1; i >= 0; i-- {
		if !math.IsNaN(col[i]) {
			return i
		}
	}
	return -1
}
