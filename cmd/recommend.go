package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/campus-timetable/internal/materials"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend <name>",
	Short: "Recommend study material for a course name",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runRecommend,
}

func runRecommend(cmd *cobra.Command, args []string) error {
	name := strings.Join(args, " ")
	for _, r := range materials.Default().Recommend(name) {
		fmt.Println("· " + r)
	}
	return nil
}
