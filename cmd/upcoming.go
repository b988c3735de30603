package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/campus-timetable/internal/materials"
	"github.com/Tiliavir/campus-timetable/internal/schedule"
	"github.com/Tiliavir/campus-timetable/internal/tui"
)

var (
	upcomingAt      string
	upcomingWeekday string
	upcomingHorizon time.Duration
)

var upcomingCmd = &cobra.Command{
	Use:   "upcoming",
	Short: "List classes starting soon, with study material",
	Args:  cobra.NoArgs,
	RunE:  runUpcoming,
}

func init() {
	upcomingCmd.Flags().StringVar(&upcomingAt, "at", "", "Pretend it is HH:MM")
	upcomingCmd.Flags().StringVar(&upcomingWeekday, "weekday", "", "Pretend it is this weekday of the current week")
	upcomingCmd.Flags().DurationVar(&upcomingHorizon, "horizon", 0, "Look-ahead window (default from config)")
}

func runUpcoming(cmd *cobra.Command, args []string) error {
	horizon := cfg.Horizon()
	if upcomingHorizon != 0 {
		horizon = upcomingHorizon
	}
	if horizon < 0 {
		fail(exitUser, "--horizon must not be negative")
	}

	now, err := resolveMoment(time.Now().In(loc), upcomingAt, upcomingWeekday)
	if err != nil {
		fail(exitUser, err.Error())
	}

	s := loadSchedule()
	up := schedule.Upcoming(s.Snapshot(), now, horizon)
	fmt.Println(tui.RenderUpcoming(up, horizon, materials.Default()))
	return nil
}
