package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/campus-timetable/internal/csvio"
	"github.com/Tiliavir/campus-timetable/internal/schedule"
)

var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Validate a course table without importing it",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	entries, err := csvio.Load(args[0])
	if err != nil {
		fail(exitCode(err), csvio.Message(err))
	}

	// Overlaps inside the file are reported, not fatal.
	overlaps := schedule.Merge(schedule.New(), entries, schedule.MergeOptions{CrossCheck: true, DryRun: true})
	fmt.Printf("✓ %s: %d courses, all columns valid\n", args[0], len(entries))
	for _, r := range overlaps.Rejected {
		fmt.Printf("  ! %s %s %s-%s overlaps %s\n", r.Entry.Name, r.Entry.Weekday, r.Entry.Start, r.Entry.End, r.With)
	}
	return nil
}
