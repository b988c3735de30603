package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/campus-timetable/internal/model"
	"github.com/Tiliavir/campus-timetable/internal/timecalc"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the class in progress and the next one today",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	now := time.Now().In(loc)
	s := loadSchedule()

	today := s.Filter(model.WeekdayOf(now))
	current, next := dayStatus(today, now)

	fmt.Printf("Today: %s, %d courses.\n", model.WeekdayOf(now), len(today))
	if current != nil {
		fmt.Println("In class:")
		fmt.Printf("  Course: %s\n", current.Name)
		fmt.Printf("  Room: %s\n", current.Room)
		fmt.Printf("  Until: %s\n", current.End)
	}
	if next == nil {
		fmt.Println("No more classes today.")
		return nil
	}
	wait := int64((next.Start.Duration() - timecalc.SinceMidnight(now)).Seconds())
	fmt.Println("Next:")
	fmt.Printf("  Course: %s\n", next.Name)
	fmt.Printf("  At: %s, %s\n", next.Start, next.Room)
	fmt.Printf("  Starts in: %s\n", formatCountdown(wait))
	return nil
}

// dayStatus picks the class running at now and the earliest class starting
// after it from one day's entries.
func dayStatus(today []model.Entry, now time.Time) (current, next *model.Entry) {
	at := timecalc.SinceMidnight(now)
	for i := range today {
		e := &today[i]
		start, end := e.Start.Duration(), e.End.Duration()
		switch {
		case start <= at && at < end:
			if current == nil {
				current = e
			}
		case start > at:
			if next == nil || e.Start < next.Start {
				next = e
			}
		}
	}
	return current, next
}

// formatCountdown formats seconds as "1h 2m 3s", dropping leading zero units.
func formatCountdown(seconds int64) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm %ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm %ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}
