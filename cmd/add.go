package cmd

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/campus-timetable/internal/schedule"
	"github.com/Tiliavir/campus-timetable/internal/validator"
)

var addCourse validator.Course

var addCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a single course if it does not overlap an existing one",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdd,
}

func init() {
	addCmd.Flags().StringVar(&addCourse.Weekday, "weekday", "", "Weekday, 周一 to 周日")
	addCmd.Flags().StringVar(&addCourse.Start, "start", "", "Start time HH:MM")
	addCmd.Flags().StringVar(&addCourse.End, "end", "", "End time HH:MM")
	addCmd.Flags().StringVar(&addCourse.Room, "room", "", "Room")
	addCmd.Flags().StringVar(&addCourse.Instructor, "instructor", "", "Instructor")
}

func runAdd(cmd *cobra.Command, args []string) error {
	addCourse.Name = args[0]
	e, fields := validator.New().Course(addCourse)
	if fields != nil {
		fail(exitUser, "请填写所有课程信息！\n"+formatFields(fields))
	}

	s := loadSchedule()
	var ce *schedule.ConflictError
	if err := s.Add(e); errors.As(err, &ce) {
		fail(exitUser, "⚠️ 时间冲突！该时间段已有课程："+ce.With)
	}
	saveSchedule(s)

	log.Debug().Str("course", e.Name).Stringer("weekday", e.Weekday).Msg("course added")
	fmt.Printf("✅ 课程添加成功！%s %s %s-%s\n", e.Name, e.Weekday, e.Start, e.End)
	return nil
}

// formatFields lists validation messages in a stable order.
func formatFields(fields map[string]string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, "  "+fields[k])
	}
	return strings.Join(lines, "\n")
}
