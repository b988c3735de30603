package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/campus-timetable/internal/model"
	"github.com/Tiliavir/campus-timetable/internal/timecalc"
)

var reportFormat string

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show the weekly class load per weekday",
	Args:  cobra.NoArgs,
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportFormat, "format", "md", "Output format: md, csv, json")
}

type dayLoad struct {
	Weekday model.Weekday `json:"weekday"`
	Courses int           `json:"courses"`
	Minutes int64         `json:"minutes"`
}

// weekLoad totals class count and time per weekday, Monday first. Entries
// whose end is not after their start count as zero minutes.
func weekLoad(entries []model.Entry) []dayLoad {
	loads := make([]dayLoad, len(model.Weekdays))
	for i, d := range model.Weekdays {
		loads[i].Weekday = d
	}
	for _, e := range entries {
		l := &loads[e.Weekday.Offset()]
		l.Courses++
		if e.End > e.Start {
			l.Minutes += int64(e.End - e.Start)
		}
	}
	return loads
}

func runReport(cmd *cobra.Command, args []string) error {
	label := timecalc.ISOWeekLabel(time.Now().In(loc))
	loads := weekLoad(loadSchedule().Snapshot())

	var total int64
	for _, l := range loads {
		total += l.Minutes
	}

	switch reportFormat {
	case "csv":
		fmt.Println("weekday,courses,duration_minutes")
		for _, l := range loads {
			fmt.Printf("%s,%d,%d\n", l.Weekday, l.Courses, l.Minutes)
		}
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		err := enc.Encode(struct {
			Week         string    `json:"week"`
			Days         []dayLoad `json:"days"`
			TotalMinutes int64     `json:"total_minutes"`
		}{label, loads, total})
		if err != nil {
			fail(exitStorage, err.Error())
		}
	default: // md
		fmt.Printf("Week %s\n", label)
		fmt.Println("--------------------------------")
		for _, l := range loads {
			fmt.Printf("%-6s%3d  %s\n", l.Weekday, l.Courses, timecalc.FormatDuration(l.Minutes*60))
		}
		fmt.Println("--------------------------------")
		fmt.Printf("%-8s%s\n", "Total", timecalc.FormatDuration(total*60))
	}
	return nil
}
