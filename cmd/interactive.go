package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Tiliavir/campus-timetable/internal/materials"
	"github.com/Tiliavir/campus-timetable/internal/model"
	"github.com/Tiliavir/campus-timetable/internal/schedule"
	"github.com/Tiliavir/campus-timetable/internal/storage"
	"github.com/Tiliavir/campus-timetable/internal/tui"
)

var interactiveCmd = &cobra.Command{
	Use:     "interactive",
	Aliases: []string{"i"},
	Short:   "Manage the schedule through interactive menus",
	Args:    cobra.NoArgs,
	RunE:    runInteractive,
}

func runInteractive(cmd *cobra.Command, args []string) error {
	sess := &tui.Session{
		Schedule: schedule.New(),
		Catalog:  materials.Default(),
		Location: loc,
		Horizon:  cfg.Horizon(),
		Accent:   cfg.AccentColor,
		Log:      log,
	}
	// Without --schedule the session keeps everything in memory.
	if schedulePath != "" {
		sess.Schedule = loadSchedule()
		sess.Save = func(entries []model.Entry) error {
			return storage.SaveSchedule(schedulePath, entries)
		}
	}
	return sess.Run()
}
