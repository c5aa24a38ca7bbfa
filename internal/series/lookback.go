package series

import (
	"sort"
	"time"

	"MacroRadar/internal/model"
)

// AsOf returns the index of the latest calendar day <= day. It never
// looks forward: a reference date before the calendar start yields
// ok=false and the caller must treat the dependent computation as
// degraded, not as zero.
func AsOf(t *model.AlignedTable, day time.Time) (int, bool) {
	day = model.Day(day)
	n := len(t.Calendar)
	if n == 0 || t.Calendar[0].After(day) {
		return 0, false
	}
	// First index strictly after day; the answer is the one before it.
	i := sort.Search(n, func(i int) bool { return t.Calendar[i].After(day) })
	return i - 1, true
}

// Resolve returns the index of the latest calendar day <= day-offset,
// for "N calendar days ago" semantics. Weekends, holidays and reporting
// gaps are tolerated because the answer snaps backwards to the nearest
// available day. ok=false means the offset exceeds the available
// history.
func Resolve(t *model.AlignedTable, day time.Time, offsetDays int) (int, bool) {
	return AsOf(t, model.Day(day).AddDate(0, 0, -offsetDays))
}
