package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/campus-timetable/internal/msgraph"
	"github.com/Tiliavir/campus-timetable/internal/timecalc"
)

var (
	outlookSyncDate   string
	outlookSyncWeek   bool
	outlookSyncDryRun bool
)

var outlookCmd = &cobra.Command{
	Use:   "outlook",
	Short: "Outlook calendar integration",
}

var outlookSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Import Outlook calendar events as courses",
	Args:  cobra.NoArgs,
	RunE:  runOutlookSync,
}

func init() {
	outlookSyncCmd.Flags().StringVar(&outlookSyncDate, "date", "", "Sync a specific date (YYYY-MM-DD); defaults to today")
	outlookSyncCmd.Flags().BoolVar(&outlookSyncWeek, "week", false, "Sync the whole ISO week containing --date")
	outlookSyncCmd.Flags().BoolVar(&outlookSyncDryRun, "dry-run", false, "Print planned operations without writing")
	outlookCmd.AddCommand(outlookSyncCmd)
}

// syncRange returns the window of events to fetch around day.
func syncRange(day time.Time, week bool) (time.Time, time.Time) {
	if week {
		return timecalc.WeekRange(day)
	}
	return timecalc.StartOfDay(day), timecalc.EndOfDay(day)
}

func runOutlookSync(cmd *cobra.Command, args []string) error {
	day, err := parseDate(outlookSyncDate, time.Now().In(loc))
	if err != nil {
		fail(exitUser, err.Error())
	}
	from, to := syncRange(day, outlookSyncWeek)

	s := loadSchedule()

	dryTag := ""
	if outlookSyncDryRun {
		dryTag = " [dry-run]"
	}
	fmt.Printf("Syncing Outlook events (%s → %s)%s...\n",
		from.Format("2006-01-02"), to.Format("2006-01-02"), dryTag)
	fmt.Println()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	tok, oauthCfg, err := msgraph.Authenticate(ctx, cfg.Outlook.TenantID, cfg.Outlook.ClientID, os.Stdout, log)
	if err != nil {
		fail(exitUser, fmt.Sprintf("Authentication failed: %v", err))
	}

	client := msgraph.NewClient(ctx, tok, oauthCfg)

	events, err := client.GetCalendarView(ctx, from, to, cfg.Timezone)
	if err != nil {
		fail(exitStorage, fmt.Sprintf("Failed to fetch calendar events: %v", err))
	}
	log.Debug().Int("events", len(events)).Msg("calendar view fetched")

	result := msgraph.SyncEvents(s, events, msgraph.SyncOptions{
		Timezone: cfg.Timezone,
		DryRun:   outlookSyncDryRun,
	}, os.Stdout)

	if !outlookSyncDryRun && result.Imported > 0 {
		saveSchedule(s)
	}

	fmt.Println()
	fmt.Println("Summary:")
	fmt.Printf("  %d imported\n", result.Imported)
	fmt.Printf("  %d skipped\n", result.Skipped)
	fmt.Printf("  %d conflicts\n", result.Conflicts)
	if result.Errors > 0 {
		fmt.Printf("  %d errors\n", result.Errors)
		os.Exit(exitStorage)
	}
	return nil
}
