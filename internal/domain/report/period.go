// Package report holds the order reporting engine: window resolution,
// line economics, aggregation, period comparison, list filtering and
// report export. Everything here is a pure function of its inputs except
// OrderBook and StatsMemo, which carry the in-memory snapshot state.
package report

import (
	"time"

	"github.com/sangkips/farmstore-admin/internal/domain/enum"
)

// Window is an inclusive [Start, End] range of instants.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls inside the window, bounds included.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Duration returns End - Start.
func (w Window) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// IsEmpty reports whether the window has collapsed to a single instant.
func (w Window) IsEmpty() bool {
	return w.Start.Equal(w.End)
}

// Resolve computes the window for kind relative to now. Calendar
// boundaries are taken in now's location. For the custom kind, start and
// end are calendar dates; if either is missing the window collapses to
// [now, now].
func Resolve(kind enum.PeriodKind, now time.Time, start, end *time.Time) Window {
	loc := now.Location()
	y, m, d := now.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, loc)

	switch kind {
	case enum.PeriodWeekly:
		return Window{Start: midnight.AddDate(0, 0, -6), End: now}
	case enum.PeriodMonthly:
		return Window{Start: time.Date(y, m, 1, 0, 0, 0, 0, loc), End: now}
	case enum.PeriodYearly:
		return Window{Start: time.Date(y, time.January, 1, 0, 0, 0, 0, loc), End: now}
	case enum.PeriodCustom:
		if start == nil || end == nil {
			return Window{Start: now, End: now}
		}
		return Window{Start: startOfDate(*start, loc), End: endOfDate(*end, loc)}
	default:
		return Window{Start: midnight, End: now}
	}
}

// Previous derives the comparison window that precedes current. Monthly
// and yearly compare against the full previous calendar unit; every other
// kind uses a window of the same duration ending 1ms before current.Start.
func Previous(kind enum.PeriodKind, current Window) Window {
	loc := current.Start.Location()
	y, m, _ := current.Start.Date()

	switch kind {
	case enum.PeriodMonthly:
		thisMonth := time.Date(y, m, 1, 0, 0, 0, 0, loc)
		return Window{
			Start: thisMonth.AddDate(0, -1, 0),
			End:   thisMonth.Add(-time.Millisecond),
		}
	case enum.PeriodYearly:
		thisYear := time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
		return Window{
			Start: thisYear.AddDate(-1, 0, 0),
			End:   thisYear.Add(-time.Millisecond),
		}
	default:
		end := current.Start.Add(-time.Millisecond)
		return Window{Start: end.Add(-current.Duration()), End: end}
	}
}

// Label returns the human readable name of a resolved window.
func Label(kind enum.PeriodKind, w Window) string {
	switch kind {
	case enum.PeriodDaily:
		return "Today"
	case enum.PeriodWeekly:
		return "Last 7 Days"
	case enum.PeriodMonthly:
		return "This Month"
	case enum.PeriodYearly:
		return "This Year"
	default:
		return w.Start.Format(dateLayout) + " to " + w.End.Format(dateLayout)
	}
}

func startOfDate(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

func endOfDate(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), loc)
}
