package model

import (
	"fmt"
	"time"

	"github.com/Tiliavir/campus-timetable/internal/timecalc"
)

// Weekday is one of the seven symbolic days 周一..周日. The zero value is invalid.
type Weekday int

const (
	Monday Weekday = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = [...]string{"", "周一", "周二", "周三", "周四", "周五", "周六", "周日"}

// Weekdays lists all valid weekdays from Monday to Sunday.
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// ParseWeekday accepts exactly one of the symbolic names. Numbers and
// abbreviations are rejected.
func ParseWeekday(s string) (Weekday, error) {
	for i := 1; i < len(weekdayNames); i++ {
		if weekdayNames[i] == s {
			return Weekday(i), nil
		}
	}
	return 0, fmt.Errorf("invalid weekday %q", s)
}

// WeekdayOf returns the symbolic weekday of t in t's own location.
func WeekdayOf(t time.Time) Weekday {
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7
	}
	return Weekday(wd)
}

// Valid reports whether d is one of the seven days.
func (d Weekday) Valid() bool {
	return d >= Monday && d <= Sunday
}

func (d Weekday) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Weekday(%d)", int(d))
	}
	return weekdayNames[d]
}

// Offset returns the number of days after Monday.
func (d Weekday) Offset() int {
	return int(d) - 1
}

// MarshalText implements encoding.TextMarshaler.
func (d Weekday) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("invalid weekday %d", int(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Weekday) UnmarshalText(b []byte) error {
	v, err := ParseWeekday(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// Entry is one weekly scheduled class occurrence.
type Entry struct {
	Name       string         `json:"name"`
	Weekday    Weekday        `json:"weekday"`
	Start      timecalc.Clock `json:"start"`
	End        timecalc.Clock `json:"end"`
	Room       string         `json:"room"`
	Instructor string         `json:"instructor"`
}

// Overlaps reports whether e and o share a weekday and their half-open
// [Start, End) intervals intersect. Touching boundaries do not overlap.
func (e Entry) Overlaps(o Entry) bool {
	return e.Weekday == o.Weekday && e.Start < o.End && e.End > o.Start
}
