package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every course from the schedule",
	Args:  cobra.NoArgs,
	RunE:  runClear,
}

func runClear(cmd *cobra.Command, args []string) error {
	s := loadSchedule()
	n := s.Len()
	s.Clear()
	saveSchedule(s)
	log.Info().Int("removed", n).Msg("schedule cleared")
	fmt.Println("课程表已清空！")
	return nil
}
