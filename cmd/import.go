package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/campus-timetable/internal/csvio"
	"github.com/Tiliavir/campus-timetable/internal/schedule"
	"github.com/Tiliavir/campus-timetable/internal/tui"
)

var (
	importDryRun     bool
	importCrossCheck bool
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Merge a course table into the schedule, skipping conflicts",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func init() {
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Report what would be imported without writing")
	importCmd.Flags().BoolVar(&importCrossCheck, "cross-check", false, "Also check rows of the file against each other")
}

func runImport(cmd *cobra.Command, args []string) error {
	s := loadSchedule()

	entries, err := csvio.Load(args[0])
	if err != nil {
		log.Warn().Err(err).Str("file", args[0]).Msg("import rejected")
		fail(exitCode(err), csvio.Message(err))
	}

	res := schedule.Merge(s, entries, schedule.MergeOptions{
		CrossCheck: importCrossCheck,
		DryRun:     importDryRun,
	})
	if !importDryRun && len(res.Added) > 0 {
		saveSchedule(s)
	}
	log.Info().
		Str("file", args[0]).
		Int("added", len(res.Added)).
		Int("rejected", len(res.Rejected)).
		Bool("dry_run", importDryRun).
		Msg("import finished")

	fmt.Println(tui.RenderMerge(res, importDryRun))
	return nil
}
