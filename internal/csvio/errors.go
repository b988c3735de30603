package csvio

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalid matches every validation error of this package via errors.Is.
var ErrInvalid = errors.New("invalid course table")

// IngestionError means the input could not be read as CSV at all.
type IngestionError struct {
	Err error
}

func (e *IngestionError) Error() string {
	return fmt.Sprintf("cannot read CSV: %v", e.Err)
}

func (e *IngestionError) Unwrap() error { return e.Err }

// SchemaMismatchError means the header is not exactly the course schema.
type SchemaMismatchError struct {
	Required []string
	Actual   []string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("CSV columns do not match: required [%s], got [%s]",
		strings.Join(e.Required, ","), strings.Join(e.Actual, ","))
}

func (e *SchemaMismatchError) Is(target error) bool { return target == ErrInvalid }

// MissingValuesError lists the columns that have at least one empty cell.
type MissingValuesError struct {
	Columns []string
}

func (e *MissingValuesError) Error() string {
	return fmt.Sprintf("empty values in columns: %s", strings.Join(e.Columns, ", "))
}

func (e *MissingValuesError) Is(target error) bool { return target == ErrInvalid }

// TimeFormatError lists the courses whose start or end is not strict HH:MM.
type TimeFormatError struct {
	Courses []string
}

func (e *TimeFormatError) Error() string {
	return fmt.Sprintf("invalid time format (want HH:MM) for courses: %s", strings.Join(e.Courses, ", "))
}

func (e *TimeFormatError) Is(target error) bool { return target == ErrInvalid }

// WeekdayError lists the courses whose weekday is not one of 周一..周日.
type WeekdayError struct {
	Courses []string
}

func (e *WeekdayError) Error() string {
	return fmt.Sprintf("invalid weekday for courses: %s", strings.Join(e.Courses, ", "))
}

func (e *WeekdayError) Is(target error) bool { return target == ErrInvalid }

// Message renders a validation or ingestion error for end users, naming the
// offending columns or courses. Other errors fall back to their own text.
func Message(err error) string {
	var (
		ie *IngestionError
		sm *SchemaMismatchError
		mv *MissingValuesError
		tf *TimeFormatError
		we *WeekdayError
	)
	switch {
	case errors.As(err, &sm):
		return fmt.Sprintf("CSV列名不匹配！要求：%s", strings.Join(sm.Required, "、"))
	case errors.As(err, &mv):
		return fmt.Sprintf("空值列：%s", strings.Join(mv.Columns, "、"))
	case errors.As(err, &tf):
		return fmt.Sprintf("时间格式错误：%s", strings.Join(tf.Courses, "、"))
	case errors.As(err, &we):
		return fmt.Sprintf("星期错误：%s", strings.Join(we.Courses, "、"))
	case errors.As(err, &ie):
		return fmt.Sprintf("读取失败：%v", ie.Err)
	default:
		return err.Error()
	}
}
