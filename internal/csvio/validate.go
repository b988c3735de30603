package csvio

import (
	"github.com/Tiliavir/campus-timetable/internal/model"
	"github.com/Tiliavir/campus-timetable/internal/timecalc"
)

// Column names of the course schema, in their required order.
const (
	ColName       = "课程名称"
	ColWeekday    = "星期"
	ColStart      = "开始时间"
	ColEnd        = "结束时间"
	ColRoom       = "教室"
	ColInstructor = "任课老师"
)

// Columns is the exact header every course table must carry.
var Columns = []string{ColName, ColWeekday, ColStart, ColEnd, ColRoom, ColInstructor}

const (
	idxName = iota
	idxWeekday
	idxStart
	idxEnd
	idxRoom
	idxInstructor
)

// Validate checks t against the course schema and converts its rows into
// candidate entries. Checks run in a fixed order and stop at the first
// failing category: header, empty cells, time format, weekday.
func Validate(t Table) ([]model.Entry, error) {
	if !sameColumns(t.Header, Columns) {
		return nil, &SchemaMismatchError{
			Required: append([]string(nil), Columns...),
			Actual:   append([]string(nil), t.Header...),
		}
	}

	var empty []string
	for i, col := range Columns {
		for _, row := range t.Rows {
			if row[i] == "" {
				empty = append(empty, col)
				break
			}
		}
	}
	if len(empty) > 0 {
		return nil, &MissingValuesError{Columns: empty}
	}

	var badStart, badEnd []string
	for _, row := range t.Rows {
		if _, err := timecalc.ParseClock(row[idxStart]); err != nil {
			badStart = append(badStart, row[idxName])
		}
	}
	for _, row := range t.Rows {
		if _, err := timecalc.ParseClock(row[idxEnd]); err != nil {
			badEnd = append(badEnd, row[idxName])
		}
	}
	if len(badStart)+len(badEnd) > 0 {
		return nil, &TimeFormatError{Courses: append(badStart, badEnd...)}
	}

	var badDay []string
	for _, row := range t.Rows {
		if _, err := model.ParseWeekday(row[idxWeekday]); err != nil {
			badDay = append(badDay, row[idxName])
		}
	}
	if len(badDay) > 0 {
		return nil, &WeekdayError{Courses: badDay}
	}

	entries := make([]model.Entry, 0, len(t.Rows))
	for _, row := range t.Rows {
		// Every field was checked above.
		day, _ := model.ParseWeekday(row[idxWeekday])
		start, _ := timecalc.ParseClock(row[idxStart])
		end, _ := timecalc.ParseClock(row[idxEnd])
		entries = append(entries, model.Entry{
			Name:       row[idxName],
			Weekday:    day,
			Start:      start,
			End:        end,
			Room:       row[idxRoom],
			Instructor: row[idxInstructor],
		})
	}
	return entries, nil
}

func sameColumns(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range want {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
