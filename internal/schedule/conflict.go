package schedule

import "github.com/Tiliavir/campus-timetable/internal/model"

// Outcome is the result of a conflict check: either NoConflict or ConflictWith.
type Outcome interface {
	outcome()
}

// NoConflict means the candidate fits into the schedule.
type NoConflict struct{}

// ConflictWith names the first existing entry the candidate overlaps.
type ConflictWith struct {
	Name string
}

func (NoConflict) outcome()   {}
func (ConflictWith) outcome() {}

// Check scans existing in storage order and reports the first entry on the
// candidate's weekday whose interval overlaps the candidate's. A candidate
// starting exactly when another entry ends does not conflict.
func Check(candidate model.Entry, existing []model.Entry) Outcome {
	for _, e := range existing {
		if candidate.Overlaps(e) {
			return ConflictWith{Name: e.Name}
		}
	}
	return NoConflict{}
}

// HasConflict is Check flattened to (name, true) on conflict and ("", false) otherwise.
func HasConflict(candidate model.Entry, existing []model.Entry) (string, bool) {
	if c, ok := Check(candidate, existing).(ConflictWith); ok {
		return c.Name, true
	}
	return "", false
}
