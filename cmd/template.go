package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/campus-timetable/internal/csvio"
)

var templateOut string

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Write the standard course table template",
	Args:  cobra.NoArgs,
	RunE:  runTemplate,
}

func init() {
	templateCmd.Flags().StringVarP(&templateOut, "output", "o", "", "Write to file instead of stdout")
}

func runTemplate(cmd *cobra.Command, args []string) error {
	if err := writeOutput(templateOut, csvio.WriteTemplate); err != nil {
		fail(exitStorage, err.Error())
	}
	if templateOut != "" {
		fmt.Fprintf(os.Stderr, "Template saved to %s (columns: %s)\n", templateOut, strings.Join(csvio.Columns, "、"))
	}
	return nil
}
