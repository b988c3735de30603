package csvio

import (
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/Tiliavir/campus-timetable/internal/model"
	"github.com/Tiliavir/campus-timetable/internal/timecalc"
)

// courseRow is the on-disk shape of an entry. Field order defines column order.
type courseRow struct {
	Name       string `csv:"课程名称"`
	Weekday    string `csv:"星期"`
	Start      string `csv:"开始时间"`
	End        string `csv:"结束时间"`
	Room       string `csv:"教室"`
	Instructor string `csv:"任课老师"`
}

// TemplateEntries are the example rows shipped in the downloadable template.
var TemplateEntries = []model.Entry{
	{
		Name:       "Python程序设计",
		Weekday:    model.Monday,
		Start:      timecalc.MustClock("08:00"),
		End:        timecalc.MustClock("09:40"),
		Room:       "教学楼A101",
		Instructor: "张老师",
	},
	{
		Name:       "人工智能导论",
		Weekday:    model.Wednesday,
		Start:      timecalc.MustClock("14:00"),
		End:        timecalc.MustClock("15:40"),
		Room:       "实验楼B202",
		Instructor: "李老师",
	},
}

// Write encodes entries as UTF-8 CSV with a byte order mark, header first.
// An empty list still produces the header row.
func Write(w io.Writer, entries []model.Entry) error {
	rows := make([]*courseRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, &courseRow{
			Name:       e.Name,
			Weekday:    e.Weekday.String(),
			Start:      e.Start.String(),
			End:        e.End.String(),
			Room:       e.Room,
			Instructor: e.Instructor,
		})
	}

	tw := transform.NewWriter(w, unicode.UTF8BOM.NewEncoder())
	if err := gocsv.Marshal(rows, tw); err != nil {
		return fmt.Errorf("encoding CSV: %w", err)
	}
	return tw.Close()
}

// WriteTemplate writes the header and the example rows.
func WriteTemplate(w io.Writer) error {
	return Write(w, TemplateEntries)
}

// Load reads and validates a course table from path.
func Load(path string) ([]model.Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &IngestionError{Err: err}
	}
	defer f.Close()

	t, err := Read(f)
	if err != nil {
		return nil, err
	}
	return Validate(t)
}
