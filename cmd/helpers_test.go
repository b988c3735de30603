package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/Tiliavir/campus-timetable/internal/csvio"
	"github.com/Tiliavir/campus-timetable/internal/model"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"schema", fmt.Errorf("loading: %w", &csvio.SchemaMismatchError{}), exitUser},
		{"weekday", &csvio.WeekdayError{Courses: []string{"高数"}}, exitUser},
		{"ingestion", &csvio.IngestionError{Err: errors.New("bad utf-8")}, exitUser},
		{"io", &fs.PathError{Op: "rename", Path: "x", Err: fs.ErrPermission}, exitStorage},
	}
	for _, tt := range tests {
		if got := exitCode(tt.err); got != tt.want {
			t.Errorf("%s: exitCode = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestParseDate(t *testing.T) {
	loc := time.FixedZone("CST", 8*3600)
	now := time.Date(2026, 3, 4, 10, 0, 0, 0, loc)

	got, err := parseDate("", now)
	if err != nil || !got.Equal(now) {
		t.Errorf("empty date = %v, %v; want now", got, err)
	}
	got, err = parseDate("2026-03-09", now)
	if err != nil || got.Day() != 9 || got.Location() != loc {
		t.Errorf("parseDate = %v, %v", got, err)
	}
	if _, err := parseDate("09.03.2026", now); err == nil {
		t.Error("expected error for wrong layout")
	}
}

func TestResolveMoment(t *testing.T) {
	loc := time.FixedZone("CST", 8*3600)
	// Wednesday
	now := time.Date(2026, 3, 4, 10, 25, 0, 0, loc)

	tests := []struct {
		at, weekday string
		want        time.Time
	}{
		{"", "", now},
		{"08:50", "", time.Date(2026, 3, 4, 8, 50, 0, 0, loc)},
		{"08:50", "周一", time.Date(2026, 3, 2, 8, 50, 0, 0, loc)},
		{"", "周日", time.Date(2026, 3, 8, 10, 25, 0, 0, loc)},
		{"", "周三", now},
	}
	for _, tt := range tests {
		got, err := resolveMoment(now, tt.at, tt.weekday)
		if err != nil {
			t.Errorf("resolveMoment(%q, %q): %v", tt.at, tt.weekday, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("resolveMoment(%q, %q) = %v, want %v", tt.at, tt.weekday, got, tt.want)
		}
		if model.WeekdayOf(got) != model.WeekdayOf(tt.want) {
			t.Errorf("weekday mismatch for %q", tt.weekday)
		}
	}

	if _, err := resolveMoment(now, "8:5", ""); err == nil {
		t.Error("expected clock error")
	}
	if _, err := resolveMoment(now, "", "Monday"); err == nil {
		t.Error("expected weekday error")
	}
}

func TestSyncRange(t *testing.T) {
	day := time.Date(2026, 3, 4, 15, 0, 0, 0, time.UTC)
	from, to := syncRange(day, false)
	if from.Day() != 4 || to.Day() != 4 || from.Hour() != 0 || to.Hour() != 23 {
		t.Errorf("day range = %v..%v", from, to)
	}
	from, to = syncRange(day, true)
	if from.Day() != 2 || to.Day() != 8 {
		t.Errorf("week range = %v..%v", from, to)
	}
}

func TestResolveMomentAcrossDSTChange(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Fatal(err)
	}
	// Friday; the following Sunday springs forward.
	now := time.Date(2026, 3, 27, 8, 50, 0, 0, loc)
	got, err := resolveMoment(now, "", "周日")
	if err != nil {
		t.Fatal(err)
	}
	if got.Hour() != 8 || got.Minute() != 50 || got.Day() != 29 {
		t.Errorf("resolveMoment = %v, want Sunday 08:50", got)
	}
}
