package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/campus-timetable/internal/exporter"
)

var (
	exportFormat string
	exportOut    string
	exportWeek   string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the schedule as csv, json, md or ics",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Output format: csv, json, md, ics")
	exportCmd.Flags().StringVarP(&exportOut, "output", "o", "", "Write to file instead of stdout")
	exportCmd.Flags().StringVar(&exportWeek, "week", "", "Any date (YYYY-MM-DD) in the week to place ics events in; defaults to this week")
}

func runExport(cmd *cobra.Command, args []string) error {
	f, err := exporter.ParseFormat(exportFormat)
	if err != nil {
		fail(exitUser, err.Error())
	}
	week, err := parseDate(exportWeek, time.Now().In(loc))
	if err != nil {
		fail(exitUser, err.Error())
	}

	entries := loadSchedule().Snapshot()
	err = writeOutput(exportOut, func(w io.Writer) error {
		return exporter.Write(w, f, entries, week)
	})
	if err != nil {
		fail(exitStorage, err.Error())
	}
	if exportOut != "" {
		fmt.Fprintf(os.Stderr, "Exported %d courses to %s\n", len(entries), exportOut)
	}
	return nil
}
