package series

import (
	"errors"
	"log"
	"math"
	"time"

	"MacroRadar/internal/model"
)

// Align resamples every series in the store onto a contiguous daily
// calendar spanning [start, end] and forward-fills gaps: a value holds
// until a newer observation appears. Days before a series' first
// observation stay NaN, never zero. A series with no observations in
// range is omitted from the table rather than failing the whole build;
// downstream code treats a missing column as "entity out of scope".
func Align(store *Store, start, end time.Time) (*model.AlignedTable, error) {
	start, end = model.Day(start), model.Day(end)
	if end.Before(start) {
		return nil, errors.New("align: end date before start date")
	}

	days := int(end.Sub(start).Hours()/24) + 1
	calendar := make([]time.Time, days)
	for i := range calendar {
		calendar[i] = start.AddDate(0, 0, i)
	}

	table := &model.AlignedTable{
		Calendar: calendar,
		Columns:  make(map[string][]float64),
	}

	for _, id := range store.IDs() {
		ts, _ := store.Get(id)
		col, ok := reindex(ts, calendar)
		if !ok {
			log.Printf("[WARN] series %s has no observations in range, omitted", id)
			continue
		}
		table.Columns[id] = col
	}
	return table, nil
}

// reindex maps one series onto the calendar with forward fill. Returns
// false when no observation falls at or before the calendar end.
func reindex(ts *model.TimeSeries, calendar []time.Time) ([]float64, bool) {
	col := make([]float64, len(calendar))
	last := math.NaN()
	seen := false
	next := 0
	for i, day := range calendar {
		for next < len(ts.Observations) && !ts.Observations[next].Date.After(day) {
			last = ts.Observations[next].Value
			seen = true
			next++
		}
		col[i] = last
	}
	return col, seen
}
