package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/Tiliavir/campus-timetable/internal/csvio"
	"github.com/Tiliavir/campus-timetable/internal/materials"
	"github.com/Tiliavir/campus-timetable/internal/model"
	"github.com/Tiliavir/campus-timetable/internal/schedule"
)

const (
	msgEmpty      = "还未添加任何课程，请选择「添加课程」或「导入CSV」~"
	msgNoUpcoming = "暂无近期课程，放心摸鱼~"
)

// RenderTable draws entries as a bordered table with the CSV column names.
func RenderTable(entries []model.Entry) string {
	if len(entries) == 0 {
		return mutedStyle.Render(msgEmpty)
	}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			e.Name, e.Weekday.String(), e.Start.String(), e.End.String(), e.Room, e.Instructor,
		})
	}
	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("238"))).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		}).
		Headers(csvio.Columns...).
		Rows(rows...).
		String()
}

// RenderUpcoming lists the classes about to start together with their study
// material, or a reassuring note when there are none.
func RenderUpcoming(upcoming []model.Entry, horizon time.Duration, catalog *materials.Catalog) string {
	if len(upcoming) == 0 {
		return mutedStyle.Render(msgNoUpcoming)
	}
	var b strings.Builder
	b.WriteString(warnStyle.Render(fmt.Sprintf("接下来%d分钟即将开始的课程：", int(horizon/time.Minute))))
	b.WriteString("\n")
	for _, e := range upcoming {
		fmt.Fprintf(&b, "  %s %s-%s  %s  %s\n",
			accentStyle.Render(e.Name), e.Start, e.End, e.Room, e.Instructor)
		for _, r := range catalog.Recommend(e.Name) {
			fmt.Fprintf(&b, "    · %s\n", r)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderMerge summarizes an import.
func RenderMerge(res schedule.MergeResult, dryRun bool) string {
	var b strings.Builder
	if len(res.Rejected) > 0 {
		names := make([]string, 0, len(res.Rejected))
		for _, r := range res.Rejected {
			names = append(names, fmt.Sprintf("%s（与%s冲突）", r.Entry.Name, r.With))
		}
		b.WriteString(warnStyle.Render("冲突课程未导入：" + strings.Join(names, "、")))
		b.WriteString("\n")
	}
	verb := "成功导入"
	if dryRun {
		verb = "可导入"
	}
	b.WriteString(successStyle.Render(fmt.Sprintf("✅ %s%d门课程！", verb, len(res.Added))))
	return b.String()
}
