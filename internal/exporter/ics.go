package exporter

import (
	"fmt"
	"io"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"github.com/Tiliavir/campus-timetable/internal/model"
	"github.com/Tiliavir/campus-timetable/internal/timecalc"
)

// uidNamespace scopes the name-based event UIDs to this tool, so re-exporting
// the same week yields the same UIDs and calendar apps update instead of
// duplicating.
var uidNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/Tiliavir/campus-timetable"))

// Occurrence is an entry placed on a concrete date.
type Occurrence struct {
	Entry model.Entry
	Start time.Time
	End   time.Time
}

// WeekOccurrences places every entry on its date within the ISO week that
// contains week, in week's location.
func WeekOccurrences(entries []model.Entry, week time.Time) []Occurrence {
	monday, _ := timecalc.WeekRange(week)
	out := make([]Occurrence, 0, len(entries))
	for _, e := range entries {
		day := monday.AddDate(0, 0, e.Weekday.Offset())
		out = append(out, Occurrence{
			Entry: e,
			Start: timecalc.At(day, e.Start),
			End:   timecalc.At(day, e.End),
		})
	}
	return out
}

// GenerateICS writes one event per entry for the week containing week.
// Each course appears once; recurrence rules are not emitted.
func GenerateICS(w io.Writer, entries []model.Entry, week time.Time) error {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//campus-timetable//ctt//ZH")
	cal.SetXWRCalName(fmt.Sprintf("课程表 %s", timecalc.ISOWeekLabel(week)))

	now := time.Now()
	for _, o := range WeekOccurrences(entries, week) {
		key := fmt.Sprintf("%s|%s|%s", o.Entry.Name, o.Entry.Room, o.Start.Format(time.RFC3339))
		event := cal.AddEvent(uuid.NewSHA1(uidNamespace, []byte(key)).String())
		event.SetCreatedTime(now)
		event.SetDtStampTime(now)
		event.SetModifiedAt(now)
		event.SetStartAt(o.Start)
		event.SetEndAt(o.End)
		event.SetSummary(o.Entry.Name)
		event.SetLocation(o.Entry.Room)
		event.SetDescription(fmt.Sprintf("任课老师: %s", o.Entry.Instructor))
	}

	return cal.SerializeTo(w)
}
