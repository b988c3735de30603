package schedule

import (
	"time"

	"github.com/Tiliavir/campus-timetable/internal/model"
	"github.com/Tiliavir/campus-timetable/internal/timecalc"
)

// DefaultHorizon is the reminder look-ahead.
const DefaultHorizon = 15 * time.Minute

// Upcoming returns the entries on now's weekday whose start lies in
// [now, now+horizon], in schedule order. Classes already in progress are
// excluded. Only today's entries are considered, so a query at 23:55 never
// sees classes of the following day.
func Upcoming(entries []model.Entry, now time.Time, horizon time.Duration) []model.Entry {
	today := model.WeekdayOf(now)
	from := timecalc.SinceMidnight(now)
	to := from + horizon

	out := []model.Entry{}
	for _, e := range entries {
		if e.Weekday != today {
			continue
		}
		start := e.Start.Duration()
		if start >= from && start <= to {
			out = append(out, e)
		}
	}
	return out
}

// OnDay returns the instant at clock c on day within the ISO week of ref,
// in ref's location. It turns a "weekday HH:MM" query into a concrete time.
func OnDay(ref time.Time, day model.Weekday, c timecalc.Clock) time.Time {
	monday, _ := timecalc.WeekRange(ref)
	return timecalc.At(monday.AddDate(0, 0, day.Offset()), c)
}

// SameTimeOn returns ref's wall-clock time on day within ref's ISO week.
func SameTimeOn(ref time.Time, day model.Weekday) time.Time {
	d := OnDay(ref, day, 0)
	return time.Date(d.Year(), d.Month(), d.Day(), ref.Hour(), ref.Minute(), ref.Second(), ref.Nanosecond(), ref.Location())
}
