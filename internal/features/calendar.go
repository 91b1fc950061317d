// Package features derives calendar, duration and SLA columns on the
// merged table. Every derived field is either computed from non-nil inputs
// or left nil; no row is ever filtered out here.
package features

import (
	"time"

	"orderqa/internal/model"
)

// Calendar splits a purchase timestamp into year, month (1-12), weekday
// (0=Monday .. 6=Sunday) and hour (0-23). A nil timestamp yields four nils.
// Pure function: same input, same output, no hidden state.
func Calendar(ts *time.Time) (year, month, weekday, hour *int) {
	if ts == nil {
		return nil, nil, nil, nil
	}
	y := ts.Year()
	m := int(ts.Month())
	wd := (int(ts.Weekday()) + 6) % 7 // time.Weekday starts at Sunday
	h := ts.Hour()
	return &y, &m, &wd, &h
}

// ExtractCalendar fills the calendar fields of every merged row from its
// purchase timestamp.
func ExtractCalendar(rows []model.Merged) {
	for i := range rows {
		rows[i].Year, rows[i].Month, rows[i].Weekday, rows[i].Hour = Calendar(rows[i].PurchaseTS)
	}
}
