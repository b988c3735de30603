package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Tiliavir/campus-timetable/internal/config"
	"github.com/Tiliavir/campus-timetable/internal/logger"
)

var (
	schedulePath string

	cfg config.Config
	loc *time.Location
	log zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "ctt",
	Short: "Campus timetable – 校园课程表管理",
	Long: `ctt manages a weekly course timetable kept in a plain CSV file.
It validates imports, rejects overlapping courses, reminds you of classes
about to start and recommends study material for them.

Settings live in ~/.ctt/config.json and can be overridden with CTT_* variables.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&schedulePath, "schedule", "", "Schedule CSV file to read and update")

	rootCmd.AddCommand(templateCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(upcomingCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(outlookCmd)
	rootCmd.AddCommand(interactiveCmd)
	rootCmd.AddCommand(serveCmd)
}

func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	log = logger.Setup(cfg.Log.Level, cfg.Log.Format)
	loc, err = cfg.Location()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	return nil
}
