package cmd

import (
	"testing"

	"github.com/Tiliavir/campus-timetable/internal/model"
)

func TestWeekLoad(t *testing.T) {
	fri := entry("体育", "14:00", "15:30")
	fri.Weekday = model.Friday
	backwards := entry("无效", "10:00", "09:00")

	loads := weekLoad([]model.Entry{
		entry("高数", "08:00", "09:40"),
		entry("英语", "10:00", "11:40"),
		backwards,
		fri,
	})
	if len(loads) != 7 || loads[0].Weekday != model.Monday || loads[6].Weekday != model.Sunday {
		t.Fatalf("loads should cover Monday to Sunday, got %+v", loads)
	}
	if loads[0].Courses != 3 || loads[0].Minutes != 200 {
		t.Errorf("Monday = %+v, want 3 courses, 200 minutes", loads[0])
	}
	if loads[4].Courses != 1 || loads[4].Minutes != 90 {
		t.Errorf("Friday = %+v, want 1 course, 90 minutes", loads[4])
	}
	if loads[2].Courses != 0 {
		t.Errorf("Wednesday = %+v, want empty", loads[2])
	}
}
