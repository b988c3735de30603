package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/campus-timetable/internal/model"
	"github.com/Tiliavir/campus-timetable/internal/tui"
)

var listWeekday string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the schedule as a table",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVar(&listWeekday, "weekday", "", "Only show one weekday, 周一 to 周日")
}

func runList(cmd *cobra.Command, args []string) error {
	s := loadSchedule()

	entries := s.Snapshot()
	if listWeekday != "" {
		day, err := model.ParseWeekday(listWeekday)
		if err != nil {
			fail(exitUser, err.Error())
		}
		entries = s.Filter(day)
	}

	fmt.Println(tui.RenderTable(entries))
	return nil
}
