package cmd

import (
	"testing"
	"time"

	"github.com/Tiliavir/campus-timetable/internal/model"
	"github.com/Tiliavir/campus-timetable/internal/timecalc"
)

func TestFormatCountdown(t *testing.T) {
	tests := []struct {
		seconds int64
		want    string
	}{
		{0, "0s"},
		{30, "30s"},
		{59, "59s"},
		{60, "1m 0s"},
		{90, "1m 30s"},
		{3600, "1h 0m 0s"},
		{3661, "1h 1m 1s"},
		{7322, "2h 2m 2s"},
	}
	for _, tt := range tests {
		got := formatCountdown(tt.seconds)
		if got != tt.want {
			t.Errorf("formatCountdown(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func entry(name, start, end string) model.Entry {
	return model.Entry{
		Name:       name,
		Weekday:    model.Monday,
		Start:      timecalc.MustClock(start),
		End:        timecalc.MustClock(end),
		Room:       "A101",
		Instructor: "张老师",
	}
}

func TestDayStatus(t *testing.T) {
	today := []model.Entry{
		entry("物理", "14:00", "15:30"),
		entry("高数", "08:00", "09:40"),
		entry("英语", "10:00", "11:40"),
	}
	at := func(hhmm string) time.Time {
		return timecalc.At(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), timecalc.MustClock(hhmm))
	}

	tests := []struct {
		now           string
		current, next string
	}{
		{"07:00", "", "高数"},
		{"08:00", "高数", "英语"},
		{"09:40", "", "英语"},
		{"12:00", "", "物理"},
		{"15:00", "物理", ""},
		{"20:00", "", ""},
	}
	name := func(e *model.Entry) string {
		if e == nil {
			return ""
		}
		return e.Name
	}
	for _, tt := range tests {
		cur, next := dayStatus(today, at(tt.now))
		if name(cur) != tt.current || name(next) != tt.next {
			t.Errorf("dayStatus at %s = (%q, %q), want (%q, %q)", tt.now, name(cur), name(next), tt.current, tt.next)
		}
	}
}

func TestDayStatusOnDSTChange(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Fatal(err)
	}
	now := time.Date(2026, 3, 29, 8, 50, 0, 0, loc)
	morning := entry("高数", "09:00", "10:00")
	morning.Weekday = model.Sunday

	cur, next := dayStatus([]model.Entry{morning}, now)
	if cur != nil || next == nil || next.Name != "高数" {
		t.Errorf("dayStatus at 08:50 = (%v, %v), want next 高数", cur, next)
	}
}
