package timecalc_test

import (
	"errors"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/Tiliavir/campus-timetable/internal/timecalc"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		input string
		want  timecalc.Clock
	}{
		{"00:00", 0},
		{"08:00", 480},
		{"09:40", 580},
		{"23:59", 1439},
	}
	for _, tt := range tests {
		got, err := timecalc.ParseClock(tt.input)
		if err != nil {
			t.Errorf("ParseClock(%q) error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseClock(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestParseClockRejects(t *testing.T) {
	inputs := []string{
		"", "8:00", "08:0", "24:00", "25:00", "12:60", " 08:00", "08:00 ",
		"08.00", "8:00am", "08:00:00", "ab:cd", "０８:００",
	}
	for _, in := range inputs {
		_, err := timecalc.ParseClock(in)
		var fe *timecalc.FormatError
		if !errors.As(err, &fe) {
			t.Errorf("ParseClock(%q) error = %v, want *FormatError", in, err)
			continue
		}
		if fe.Input != in {
			t.Errorf("FormatError.Input = %q, want %q", fe.Input, in)
		}
	}
}

func TestClockString(t *testing.T) {
	tests := []struct {
		c    timecalc.Clock
		want string
	}{
		{0, "00:00"},
		{61, "01:01"},
		{1439, "23:59"},
	}
	for _, tt := range tests {
		if got := tt.c.String(); got != tt.want {
			t.Errorf("Clock(%d).String() = %q, want %q", tt.c, got, tt.want)
		}
	}
}

func TestClockOrdering(t *testing.T) {
	a := timecalc.MustClock("09:40")
	b := timecalc.MustClock("10:00")
	if !(a < b) || !(a <= a) || !(b > a) {
		t.Error("Clock values must compare like times of day")
	}
}

func TestClockText(t *testing.T) {
	var c timecalc.Clock
	if err := c.UnmarshalText([]byte("14:05")); err != nil {
		t.Fatalf("UnmarshalText: %v", err)
	}
	out, _ := c.MarshalText()
	if string(out) != "14:05" {
		t.Errorf("MarshalText = %q, want %q", out, "14:05")
	}
	if err := c.UnmarshalText([]byte("2:05")); err == nil {
		t.Error("UnmarshalText accepted a single-digit hour")
	}
}

func TestSinceMidnight(t *testing.T) {
	ts := time.Date(2026, 2, 27, 8, 50, 30, 0, time.UTC)
	want := 8*time.Hour + 50*time.Minute + 30*time.Second
	if got := timecalc.SinceMidnight(ts); got != want {
		t.Errorf("SinceMidnight = %v, want %v", got, want)
	}
	if got := timecalc.ClockOf(ts); got != timecalc.MustClock("08:50") {
		t.Errorf("ClockOf = %v, want 08:50", got)
	}

	// Clock reading, not elapsed time, across a DST change.
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatal(err)
	}
	spring := time.Date(2026, 3, 8, 9, 0, 0, 0, ny)
	if got := timecalc.SinceMidnight(spring); got != 9*time.Hour {
		t.Errorf("SinceMidnight on DST day = %v, want 9h", got)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds int64
		want    string
	}{
		{0, "0s"},
		{45, "45s"},
		{60, "1m"},
		{3600, "1h 0m"},
		{6000, "1h 40m"},
	}
	for _, tt := range tests {
		got := timecalc.FormatDuration(tt.seconds)
		if got != tt.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestWeekRange(t *testing.T) {
	// 2026-02-27 is a Friday (week 9).
	fri := time.Date(2026, 2, 27, 10, 0, 0, 0, time.UTC)
	monday, sunday := timecalc.WeekRange(fri)

	wantMonday := time.Date(2026, 2, 23, 0, 0, 0, 0, time.UTC)
	wantSunday := time.Date(2026, 3, 1, 23, 59, 59, 0, time.UTC)

	if !monday.Equal(wantMonday) {
		t.Errorf("WeekRange monday = %v, want %v", monday, wantMonday)
	}
	if !sunday.Equal(wantSunday) {
		t.Errorf("WeekRange sunday = %v, want %v", sunday, wantSunday)
	}
}

func TestISOWeekLabel(t *testing.T) {
	fri := time.Date(2026, 2, 27, 10, 0, 0, 0, time.UTC)
	if got := timecalc.ISOWeekLabel(fri); got != "2026-W09" {
		t.Errorf("ISOWeekLabel = %q, want %q", got, "2026-W09")
	}
}

func TestAt(t *testing.T) {
	day := time.Date(2026, 2, 23, 17, 0, 0, 0, time.UTC)
	got := timecalc.At(day, timecalc.MustClock("08:15"))
	want := time.Date(2026, 2, 23, 8, 15, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("At = %v, want %v", got, want)
	}
}

func TestSameDay(t *testing.T) {
	a := time.Date(2026, 2, 27, 10, 0, 0, 0, time.UTC)
	b := time.Date(2026, 2, 27, 23, 59, 59, 0, time.UTC)
	c := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)

	if !timecalc.SameDay(a, b) {
		t.Error("SameDay: expected same day for a and b")
	}
	if timecalc.SameDay(a, c) {
		t.Error("SameDay: expected different day for a and c")
	}
}
