package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Tiliavir/campus-timetable/internal/csvio"
	"github.com/Tiliavir/campus-timetable/internal/model"
	"github.com/Tiliavir/campus-timetable/internal/schedule"
	"github.com/Tiliavir/campus-timetable/internal/storage"
	"github.com/Tiliavir/campus-timetable/internal/timecalc"
)

// Exit codes shared by all commands.
const (
	exitUser    = 1
	exitStorage = 2
)

// exitCode classifies err: bad course tables are the user's to fix,
// everything else is a storage or IO failure.
func exitCode(err error) int {
	var ie *csvio.IngestionError
	if errors.Is(err, csvio.ErrInvalid) || errors.As(err, &ie) {
		return exitUser
	}
	return exitStorage
}

func fail(code int, msg string) {
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(code)
}

func requireSchedule() string {
	if schedulePath == "" {
		fail(exitUser, "--schedule is required")
	}
	return schedulePath
}

func loadSchedule() *schedule.Schedule {
	s, err := storage.LoadSchedule(requireSchedule())
	if err != nil {
		fail(exitCode(err), csvio.Message(err))
	}
	return s
}

func saveSchedule(s *schedule.Schedule) {
	if err := storage.SaveSchedule(schedulePath, s.Snapshot()); err != nil {
		fail(exitStorage, err.Error())
	}
}

// writeOutput sends fn to stdout, or atomically to path when one is given.
func writeOutput(path string, fn func(io.Writer) error) error {
	if path == "" {
		return fn(os.Stdout)
	}
	return storage.WriteAtomic(path, fn)
}

// parseDate reads a YYYY-MM-DD flag in loc. Empty means today.
func parseDate(raw string, now time.Time) (time.Time, error) {
	if raw == "" {
		return now, nil
	}
	d, err := time.ParseInLocation("2006-01-02", raw, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", raw)
	}
	return d, nil
}

// resolveMoment turns the optional --at and --weekday flags into an instant
// in the current week. Without --at the current time of day is kept.
func resolveMoment(now time.Time, at, weekday string) (time.Time, error) {
	day := model.WeekdayOf(now)
	if weekday != "" {
		d, err := model.ParseWeekday(weekday)
		if err != nil {
			return time.Time{}, err
		}
		day = d
	}
	if at != "" {
		c, err := timecalc.ParseClock(at)
		if err != nil {
			return time.Time{}, err
		}
		return schedule.OnDay(now, day, c), nil
	}
	if day == model.WeekdayOf(now) {
		return now, nil
	}
	return schedule.SameTimeOn(now, day), nil
}
