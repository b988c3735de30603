// Package schedule holds the in-memory course schedule and the consistency
// rules around it: conflict detection, batch merge and the upcoming-window
// query. Nothing here retains a schedule between calls; callers own it.
package schedule

import (
	"fmt"

	"github.com/Tiliavir/campus-timetable/internal/model"
)

// ConflictError is returned when an entry collides with one already scheduled.
type ConflictError struct {
	Candidate string
	With      string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("time conflict: %q overlaps %q", e.Candidate, e.With)
}

// Schedule is an ordered, append-only collection of entries. The zero value
// is an empty schedule ready to use. It is not safe for concurrent use.
type Schedule struct {
	entries []model.Entry
}

// New returns a schedule holding a copy of entries, in order.
func New(entries ...model.Entry) *Schedule {
	s := &Schedule{}
	s.entries = append(s.entries, entries...)
	return s
}

// Append stores e unconditionally. Run Check first to reject conflicts.
func (s *Schedule) Append(e model.Entry) {
	s.entries = append(s.entries, e)
}

// Add appends e unless it conflicts with an existing entry, in which case a
// *ConflictError names the first colliding entry.
func (s *Schedule) Add(e model.Entry) error {
	if c, ok := Check(e, s.entries).(ConflictWith); ok {
		return &ConflictError{Candidate: e.Name, With: c.Name}
	}
	s.Append(e)
	return nil
}

// Clear drops every entry.
func (s *Schedule) Clear() {
	s.entries = nil
}

// Len returns the number of entries.
func (s *Schedule) Len() int {
	return len(s.entries)
}

// Snapshot returns a copy of the entries in insertion order.
func (s *Schedule) Snapshot() []model.Entry {
	out := make([]model.Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Filter returns the entries scheduled on day, in insertion order.
func (s *Schedule) Filter(day model.Weekday) []model.Entry {
	return OnWeekday(s.entries, day)
}

// OnWeekday returns the entries of list scheduled on day.
func OnWeekday(list []model.Entry, day model.Weekday) []model.Entry {
	out := []model.Entry{}
	for _, e := range list {
		if e.Weekday == day {
			out = append(out, e)
		}
	}
	return out
}
