package tui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
	"github.com/rs/zerolog"

	"github.com/Tiliavir/campus-timetable/internal/csvio"
	"github.com/Tiliavir/campus-timetable/internal/exporter"
	"github.com/Tiliavir/campus-timetable/internal/materials"
	"github.com/Tiliavir/campus-timetable/internal/model"
	"github.com/Tiliavir/campus-timetable/internal/schedule"
	"github.com/Tiliavir/campus-timetable/internal/storage"
	"github.com/Tiliavir/campus-timetable/internal/timecalc"
	"github.com/Tiliavir/campus-timetable/internal/validator"
)

// Session is one interactive run over a single schedule.
type Session struct {
	Schedule *schedule.Schedule
	Catalog  *materials.Catalog
	Location *time.Location
	Horizon  time.Duration
	Accent   string
	Log      zerolog.Logger
	Out      io.Writer
	// Save persists the schedule after each change; nil keeps it in memory.
	Save func([]model.Entry) error

	theme     *huh.Theme
	validator *validator.Validator
}

// Run shows the main menu until the user quits.
func (s *Session) Run() error {
	s.theme = SetAccent(s.Accent)
	s.validator = validator.New()
	if s.Out == nil {
		s.Out = os.Stdout
	}
	if s.Catalog == nil {
		s.Catalog = materials.Default()
	}

	fmt.Fprintln(s.Out, accentStyle.Render("📚 校园课程表"))
	s.showUpcoming()

	for {
		var action string
		menu := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("想做什么？").
					Options(
						huh.NewOption("➕ 添加课程", "add"),
						huh.NewOption("📥 导入CSV", "import"),
						huh.NewOption("📋 查看课程表", "list"),
						huh.NewOption("⏰ 即将开始的课程", "upcoming"),
						huh.NewOption("📖 学习资料推荐", "recommend"),
						huh.NewOption("📤 导出课程表", "export"),
						huh.NewOption("📄 保存CSV模板", "template"),
						huh.NewOption("🗑️ 清空课程表", "clear"),
						huh.NewOption("👋 退出", "quit"),
					).
					Value(&action),
			),
		).WithTheme(s.theme)

		if err := menu.Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return err
		}

		var err error
		switch action {
		case "add":
			err = s.add()
		case "import":
			err = s.importCSV()
		case "list":
			err = s.list()
		case "upcoming":
			s.showUpcoming()
		case "recommend":
			err = s.recommend()
		case "export":
			err = s.export()
		case "template":
			err = s.template()
		case "clear":
			err = s.clear()
		case "quit":
			return nil
		}
		if errors.Is(err, huh.ErrUserAborted) {
			continue
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(s.Out)
	}
}

func (s *Session) persist() {
	if s.Save == nil {
		return
	}
	if err := s.Save(s.Schedule.Snapshot()); err != nil {
		fmt.Fprintln(s.Out, errorStyle.Render("保存失败："+err.Error()))
		s.Log.Error().Err(err).Msg("saving schedule")
	}
}

func weekdayOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(model.Weekdays))
	for _, d := range model.Weekdays {
		opts = append(opts, huh.NewOption(d.String(), d.String()))
	}
	return opts
}

func clockInput(title string, value *string) *huh.Input {
	return huh.NewInput().
		Title(title).
		Placeholder("HH:MM").
		Value(value).
		Validate(func(str string) error {
			_, err := timecalc.ParseClock(str)
			return err
		})
}

func (s *Session) add() error {
	in := validator.Course{Weekday: model.Monday.String()}
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("课程名称").Value(&in.Name),
			huh.NewSelect[string]().Title("星期").Options(weekdayOptions()...).Value(&in.Weekday),
			clockInput("开始时间", &in.Start),
			clockInput("结束时间", &in.End),
			huh.NewInput().Title("教室").Value(&in.Room),
			huh.NewInput().Title("任课老师").Value(&in.Instructor),
		),
	).WithTheme(s.theme)
	if err := form.Run(); err != nil {
		return err
	}

	e, fields := s.validator.Course(in)
	if fields != nil {
		fmt.Fprintln(s.Out, errorStyle.Render("请填写所有课程信息！"))
		for _, msg := range fields {
			fmt.Fprintln(s.Out, mutedStyle.Render("  "+msg))
		}
		return nil
	}

	var ce *schedule.ConflictError
	if err := s.Schedule.Add(e); errors.As(err, &ce) {
		fmt.Fprintln(s.Out, errorStyle.Render("⚠️ 时间冲突！该时间段已有课程："+ce.With))
		return nil
	}
	s.persist()
	fmt.Fprintln(s.Out, successStyle.Render("✅ 课程添加成功！"))
	return nil
}

func (s *Session) importCSV() error {
	var (
		path       string
		crossCheck bool
	)
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("CSV文件路径").
				Value(&path).
				Validate(func(str string) error {
					if _, err := os.Stat(str); err != nil {
						return errors.New("文件不存在")
					}
					return nil
				}),
			huh.NewConfirm().
				Title("同一文件内的课程也互相检查冲突？").
				Value(&crossCheck),
		),
	).WithTheme(s.theme)
	if err := form.Run(); err != nil {
		return err
	}

	var (
		entries []model.Entry
		loadErr error
	)
	_ = spinner.New().
		Title("正在校验CSV...").
		Action(func() {
			entries, loadErr = csvio.Load(path)
		}).
		Run()
	if loadErr != nil {
		fmt.Fprintln(s.Out, errorStyle.Render("❌ 校验失败："+csvio.Message(loadErr)))
		return nil
	}

	res := schedule.Merge(s.Schedule, entries, schedule.MergeOptions{CrossCheck: crossCheck})
	if len(res.Added) > 0 {
		s.persist()
	}
	s.Log.Info().Str("file", path).Int("added", len(res.Added)).Int("rejected", len(res.Rejected)).Msg("import finished")
	fmt.Fprintln(s.Out, RenderMerge(res, false))
	return nil
}

func (s *Session) list() error {
	filter := "all"
	opts := append([]huh.Option[string]{huh.NewOption("全部", "all")}, weekdayOptions()...)
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("筛选星期").Options(opts...).Value(&filter),
		),
	).WithTheme(s.theme)
	if err := form.Run(); err != nil {
		return err
	}

	entries := s.Schedule.Snapshot()
	if day, err := model.ParseWeekday(filter); err == nil {
		entries = s.Schedule.Filter(day)
	}
	fmt.Fprintln(s.Out, RenderTable(entries))
	return nil
}

func (s *Session) showUpcoming() {
	now := time.Now().In(s.Location)
	up := schedule.Upcoming(s.Schedule.Snapshot(), now, s.Horizon)
	fmt.Fprintln(s.Out, RenderUpcoming(up, s.Horizon, s.Catalog))
}

func (s *Session) recommend() error {
	var name string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("课程名称").Value(&name),
		),
	).WithTheme(s.theme)
	if err := form.Run(); err != nil {
		return err
	}
	for _, r := range s.Catalog.Recommend(strings.TrimSpace(name)) {
		fmt.Fprintln(s.Out, "  · "+r)
	}
	return nil
}

func (s *Session) export() error {
	format := string(exporter.CSV)
	var path string
	opts := make([]huh.Option[string], 0, len(exporter.Formats))
	for _, f := range exporter.Formats {
		opts = append(opts, huh.NewOption(strings.ToUpper(string(f)), string(f)))
	}
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("导出格式").Options(opts...).Value(&format),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("保存到").
				Value(&path).
				PlaceholderFunc(func() string { return "课程表" + exporter.Format(format).Ext() }, &format),
		),
	).WithTheme(s.theme)
	if err := form.Run(); err != nil {
		return err
	}

	f := exporter.Format(format)
	if path == "" {
		path = "课程表" + f.Ext()
	}
	entries := s.Schedule.Snapshot()
	week := time.Now().In(s.Location)
	err := storage.WriteAtomic(path, func(w io.Writer) error {
		return exporter.Write(w, f, entries, week)
	})
	if err != nil {
		fmt.Fprintln(s.Out, errorStyle.Render("导出失败："+err.Error()))
		return nil
	}
	fmt.Fprintln(s.Out, successStyle.Render(fmt.Sprintf("✅ 已导出%d门课程到 %s", len(entries), path)))
	return nil
}

func (s *Session) template() error {
	path := "课程表模板.csv"
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("保存到").Value(&path),
		),
	).WithTheme(s.theme)
	if err := form.Run(); err != nil {
		return err
	}
	if err := storage.WriteAtomic(path, csvio.WriteTemplate); err != nil {
		fmt.Fprintln(s.Out, errorStyle.Render("保存失败："+err.Error()))
		return nil
	}
	fmt.Fprintln(s.Out, mutedStyle.Render("📌 标准模板格式（列名："+strings.Join(csvio.Columns, "、")+"）"))
	fmt.Fprintln(s.Out, successStyle.Render("✅ 模板已保存到 "+path))
	return nil
}

func (s *Session) clear() error {
	var ok bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().Title("确定清空课程表？").Value(&ok),
		),
	).WithTheme(s.theme)
	if err := form.Run(); err != nil {
		return err
	}
	if !ok {
		return nil
	}
	s.Schedule.Clear()
	s.persist()
	fmt.Fprintln(s.Out, successStyle.Render("课程表已清空！"))
	return nil
}
