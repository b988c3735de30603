package msgraph

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/Tiliavir/campus-timetable/internal/model"
	"github.com/Tiliavir/campus-timetable/internal/schedule"
	"github.com/Tiliavir/campus-timetable/internal/timecalc"
)

// Unspecified fills a room or instructor the calendar event does not carry,
// so the imported entry still satisfies the all-fields-required rule.
const Unspecified = "未指定"

// SyncResult holds counters for a sync operation.
type SyncResult struct {
	Imported  int
	Skipped   int
	Conflicts int
	Errors    int
}

// SyncOptions configures a sync run.
type SyncOptions struct {
	// Timezone is the IANA zone the events are interpreted in.
	Timezone string
	DryRun   bool
}

// parseGraphTime parses a Graph API dateTime string in the given timezone.
// Graph returns times like "2026-02-27T09:00:00.0000000" without a zone suffix
// when a Prefer: outlook.timezone header is set.
func parseGraphTime(dt string, loc *time.Location) (time.Time, error) {
	// Try RFC3339 first (includes timezone offset).
	if t, err := time.Parse(time.RFC3339, dt); err == nil {
		return t.In(loc), nil
	}
	// Try RFC3339Nano.
	if t, err := time.Parse(time.RFC3339Nano, dt); err == nil {
		return t.In(loc), nil
	}

	// Graph returns fractional seconds: "2026-02-27T09:00:00.0000000"
	for _, layout := range []string{
		"2006-01-02T15:04:05.0000000",
		"2006-01-02T15:04:05",
	} {
		if t, err := time.ParseInLocation(layout, dt, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse graph time %q", dt)
}

// shouldSkip returns true if the event should not be imported.
func shouldSkip(event CalendarEvent) bool {
	if event.IsCancelled {
		return true
	}
	if event.IsAllDay {
		return true
	}
	if event.Sensitivity == "private" {
		return true
	}
	if event.ShowAs == "free" {
		return true
	}
	if event.Start.DateTime == "" || event.End.DateTime == "" {
		return true
	}
	return false
}

func orUnspecified(s string) string {
	if s == "" {
		return Unspecified
	}
	return s
}

// MapEventToEntry converts a Graph CalendarEvent into a weekly course entry
// on the weekday the event starts.
func MapEventToEntry(event CalendarEvent, timezone string) (model.Entry, error) {
	loc := time.UTC
	if timezone != "" {
		l, err := time.LoadLocation(timezone)
		if err != nil {
			return model.Entry{}, fmt.Errorf("loading timezone: %w", err)
		}
		loc = l
	}

	if event.Subject == "" {
		return model.Entry{}, errors.New("event has no subject")
	}
	startTime, err := parseGraphTime(event.Start.DateTime, loc)
	if err != nil {
		return model.Entry{}, fmt.Errorf("parsing start time: %w", err)
	}
	endTime, err := parseGraphTime(event.End.DateTime, loc)
	if err != nil {
		return model.Entry{}, fmt.Errorf("parsing end time: %w", err)
	}
	if !timecalc.SameDay(startTime, endTime) {
		return model.Entry{}, fmt.Errorf("event spans midnight (%s to %s)",
			startTime.Format("2006-01-02 15:04"), endTime.Format("2006-01-02 15:04"))
	}

	return model.Entry{
		Name:       event.Subject,
		Weekday:    model.WeekdayOf(startTime),
		Start:      timecalc.ClockOf(startTime),
		End:        timecalc.ClockOf(endTime),
		Room:       orUnspecified(event.Location.DisplayName),
		Instructor: orUnspecified(event.Organizer.EmailAddress.Name),
	}, nil
}

func containsEntry(entries []model.Entry, e model.Entry) bool {
	for _, x := range entries {
		if x == e {
			return true
		}
	}
	return false
}

// SyncEvents maps events to entries and merges them into s through the
// conflict detector, checking the events against each other as well. An
// event identical to an entry already present is skipped, so repeated syncs
// are idempotent. Progress lines are written to out.
func SyncEvents(s *schedule.Schedule, events []CalendarEvent, opts SyncOptions, out io.Writer) SyncResult {
	var result SyncResult

	seen := s.Snapshot()
	var candidates []model.Entry
	for _, event := range events {
		if shouldSkip(event) {
			continue
		}

		entry, err := MapEventToEntry(event, opts.Timezone)
		if err != nil {
			fmt.Fprintf(out, "  ! Error mapping event %q: %v\n", event.Subject, err)
			result.Errors++
			continue
		}

		if containsEntry(seen, entry) {
			fmt.Fprintf(out, "  – Skipped:  %s (already exists)\n", entry.Name)
			result.Skipped++
			continue
		}
		seen = append(seen, entry)
		candidates = append(candidates, entry)
	}

	merged := schedule.Merge(s, candidates, schedule.MergeOptions{CrossCheck: true, DryRun: opts.DryRun})
	for _, e := range merged.Added {
		fmt.Fprintf(out, "  ✓ Imported: %s (%s %s–%s)\n", e.Name, e.Weekday, e.Start, e.End)
	}
	for _, r := range merged.Rejected {
		fmt.Fprintf(out, "  ✗ Conflict: %s overlaps %s\n", r.Entry.Name, r.With)
	}
	result.Imported = len(merged.Added)
	result.Conflicts = len(merged.Rejected)

	return result
}
