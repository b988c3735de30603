package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Tiliavir/campus-timetable/internal/csvio"
	"github.com/Tiliavir/campus-timetable/internal/exporter"
	"github.com/Tiliavir/campus-timetable/internal/materials"
	"github.com/Tiliavir/campus-timetable/internal/model"
	"github.com/Tiliavir/campus-timetable/internal/response"
	"github.com/Tiliavir/campus-timetable/internal/schedule"
	"github.com/Tiliavir/campus-timetable/internal/session"
	"github.com/Tiliavir/campus-timetable/internal/timecalc"
	"github.com/Tiliavir/campus-timetable/internal/validator"
)

const ctxKeySession = "session"

// Handler serves the course schedule API.
type Handler struct {
	sessions  *session.Manager
	catalog   *materials.Catalog
	validator *validator.Validator
	loc       *time.Location
	horizon   time.Duration
	maxUpload int64
	log       zerolog.Logger
	now       func() time.Time
}

// RejectedCourse is a course skipped by an import because of a conflict.
type RejectedCourse struct {
	Course model.Entry `json:"course"`
	With   string      `json:"with"`
}

// ImportResult is the response body of an import.
type ImportResult struct {
	DryRun   bool             `json:"dry_run"`
	Added    []model.Entry    `json:"added"`
	Rejected []RejectedCourse `json:"rejected"`
}

func (h *Handler) loadSession(c *gin.Context) {
	s, err := h.sessions.Get(c.Param("id"))
	switch {
	case errors.Is(err, session.ErrInvalidID):
		response.AbortFail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	case err != nil:
		response.AbortFail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}
	c.Set(ctxKeySession, s)
	c.Next()
}

func current(c *gin.Context) *session.Session {
	return c.MustGet(ctxKeySession).(*session.Session)
}

func attachment(c *gin.Context, filename, contentType string) {
	c.Header("Content-Type", contentType)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename*=UTF-8''%s", url.PathEscape(filename)))
}

// Template godoc
// GET /api/v1/template.csv
// Downloads the BOM-prefixed CSV template with two example rows.
func (h *Handler) Template(c *gin.Context) {
	attachment(c, "课程表模板.csv", "text/csv; charset=utf-8")
	c.Status(http.StatusOK)
	if err := csvio.WriteTemplate(c.Writer); err != nil {
		h.log.Error().Err(err).Msg("writing template")
	}
}

// Materials godoc
// GET /api/v1/materials?course=...
// Recommends study resources for a course, or lists the catalog.
func (h *Handler) Materials(c *gin.Context) {
	name := c.Query("course")
	if name == "" {
		response.Success(c, http.StatusOK, gin.H{"topics": h.catalog.Topics()})
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"course":    name,
		"resources": h.catalog.Recommend(name),
	})
}

// CreateSession godoc
// POST /api/v1/sessions
// Starts a session with an empty schedule.
func (h *Handler) CreateSession(c *gin.Context) {
	s := h.sessions.Create()
	h.log.Debug().Str("session", s.ID.String()).Msg("session created")
	response.Success(c, http.StatusCreated, gin.H{
		"id":         s.ID.String(),
		"created_at": s.CreatedAt.UTC().Format(time.RFC3339),
	})
}

// DeleteSession godoc
// DELETE /api/v1/sessions/:id
func (h *Handler) DeleteSession(c *gin.Context) {
	h.sessions.Delete(current(c).ID)
	c.Status(http.StatusNoContent)
}

// ListCourses godoc
// GET /api/v1/sessions/:id/courses?weekday=周一
// Lists the schedule, optionally restricted to one weekday.
func (h *Handler) ListCourses(c *gin.Context) {
	var filter model.Weekday
	if raw := c.Query("weekday"); raw != "" {
		day, err := model.ParseWeekday(raw)
		if err != nil {
			response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation,
				map[string]string{"weekday": err.Error()})
			return
		}
		filter = day
	}

	var courses []model.Entry
	_ = current(c).Do(func(s *schedule.Schedule) error {
		if filter.Valid() {
			courses = s.Filter(filter)
		} else {
			courses = s.Snapshot()
		}
		return nil
	})
	response.Success(c, http.StatusOK, gin.H{"courses": courses})
}

// AddCourse godoc
// POST /api/v1/sessions/:id/courses
// Adds one course after the required-field and conflict checks.
func (h *Handler) AddCourse(c *gin.Context) {
	var req validator.Course
	if fields := h.validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	e := req.Entry()

	err := current(c).Do(func(s *schedule.Schedule) error { return s.Add(e) })
	var ce *schedule.ConflictError
	if errors.As(err, &ce) {
		response.FailWithFields(c, http.StatusConflict, response.ErrConflict,
			map[string]string{"with": ce.With})
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"course": e})
}

// ClearCourses godoc
// DELETE /api/v1/sessions/:id/courses
func (h *Handler) ClearCourses(c *gin.Context) {
	var n int
	_ = current(c).Do(func(s *schedule.Schedule) error {
		n = s.Len()
		s.Clear()
		return nil
	})
	response.Success(c, http.StatusOK, gin.H{"cleared": n})
}

// Import godoc
// POST /api/v1/sessions/:id/import?dry_run=true&cross_check=true
// Accepts a CSV as multipart field "file" or as the raw request body.
func (h *Handler) Import(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload)

	body, closeFn, ok := h.uploadBody(c)
	if !ok {
		return
	}
	defer closeFn()

	entries, err := readCourses(body)
	if err != nil {
		h.failCSV(c, err)
		return
	}

	opts := schedule.MergeOptions{
		DryRun:     c.Query("dry_run") == "true",
		CrossCheck: c.Query("cross_check") == "true",
	}
	var res schedule.MergeResult
	_ = current(c).Do(func(s *schedule.Schedule) error {
		res = schedule.Merge(s, entries, opts)
		return nil
	})

	out := ImportResult{DryRun: opts.DryRun, Added: res.Added, Rejected: []RejectedCourse{}}
	for _, r := range res.Rejected {
		out.Rejected = append(out.Rejected, RejectedCourse{Course: r.Entry, With: r.With})
	}
	h.log.Info().
		Str("session", current(c).ID.String()).
		Int("added", len(out.Added)).
		Int("rejected", len(out.Rejected)).
		Bool("dry_run", opts.DryRun).
		Msg("import finished")
	response.Success(c, http.StatusOK, out)
}

func readCourses(r io.Reader) ([]model.Entry, error) {
	t, err := csvio.Read(r)
	if err != nil {
		return nil, err
	}
	return csvio.Validate(t)
}

func (h *Handler) uploadBody(c *gin.Context) (io.Reader, func(), bool) {
	if c.ContentType() != "multipart/form-data" {
		return c.Request.Body, func() {}, true
	}
	fh, err := c.FormFile("file")
	if err != nil {
		var mbe *http.MaxBytesError
		switch {
		case errors.As(err, &mbe):
			response.Fail(c, http.StatusRequestEntityTooLarge, response.ErrFileTooLarge)
		default:
			response.Fail(c, http.StatusBadRequest, response.ErrFileRequired)
		}
		return nil, nil, false
	}
	f, err := fh.Open()
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return nil, nil, false
	}
	return f, func() { _ = f.Close() }, true
}

func (h *Handler) failCSV(c *gin.Context, err error) {
	var (
		mbe *http.MaxBytesError
		sm  *csvio.SchemaMismatchError
		mv  *csvio.MissingValuesError
		tf  *csvio.TimeFormatError
		we  *csvio.WeekdayError
	)
	code := response.ErrIngestion
	switch {
	case errors.As(err, &mbe):
		response.Fail(c, http.StatusRequestEntityTooLarge, response.ErrFileTooLarge)
		return
	case errors.As(err, &sm):
		code = response.ErrSchemaMismatch
	case errors.As(err, &mv):
		code = response.ErrMissingValues
	case errors.As(err, &tf):
		code = response.ErrTimeFormat
	case errors.As(err, &we):
		code = response.ErrWeekday
	}
	response.FailWithDetail(c, http.StatusUnprocessableEntity, code, csvio.Message(err))
}

// Upcoming godoc
// GET /api/v1/sessions/:id/upcoming?at=08:50&weekday=周一&horizon=15
// Lists the courses starting within the horizon. at and weekday replace the
// current clock and weekday; horizon is in minutes.
func (h *Handler) Upcoming(c *gin.Context) {
	now, fields := h.queryMoment(c)
	horizon := h.horizon
	if raw := c.Query("horizon"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			fields["horizon"] = "horizon must be a non-negative number of minutes"
		} else {
			horizon = time.Duration(n) * time.Minute
		}
	}
	if len(fields) > 0 {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	var courses []model.Entry
	_ = current(c).Do(func(s *schedule.Schedule) error {
		courses = schedule.Upcoming(s.Snapshot(), now, horizon)
		return nil
	})
	response.Success(c, http.StatusOK, gin.H{
		"at":              now.Format(time.RFC3339),
		"weekday":         model.WeekdayOf(now),
		"horizon_minutes": int(horizon / time.Minute),
		"courses":         courses,
	})
}

func (h *Handler) queryMoment(c *gin.Context) (time.Time, map[string]string) {
	fields := map[string]string{}
	now := h.now().In(h.loc)

	day := model.WeekdayOf(now)
	if raw := c.Query("weekday"); raw != "" {
		d, err := model.ParseWeekday(raw)
		if err != nil {
			fields["weekday"] = err.Error()
		}
		day = d
	}
	if raw := c.Query("at"); raw != "" {
		clock, err := timecalc.ParseClock(raw)
		if err != nil {
			fields["at"] = err.Error()
			return now, fields
		}
		return schedule.OnDay(now, day, clock), fields
	}
	if day != model.WeekdayOf(now) && len(fields) == 0 {
		return schedule.SameTimeOn(now, day), fields
	}
	return now, fields
}

// ExportCSV godoc
// GET /api/v1/sessions/:id/export.csv
func (h *Handler) ExportCSV(c *gin.Context) {
	h.export(c, exporter.CSV, "课程表.csv", "text/csv; charset=utf-8")
}

// ExportICS godoc
// GET /api/v1/sessions/:id/export.ics?week=2026-03-02
func (h *Handler) ExportICS(c *gin.Context) {
	h.export(c, exporter.ICS, "课程表.ics", "text/calendar; charset=utf-8")
}

func (h *Handler) export(c *gin.Context, f exporter.Format, filename, contentType string) {
	week := h.now().In(h.loc)
	if raw := c.Query("week"); raw != "" {
		d, err := time.ParseInLocation("2006-01-02", raw, h.loc)
		if err != nil {
			response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation,
				map[string]string{"week": "week must be a date like 2006-01-02"})
			return
		}
		week = d
	}

	var entries []model.Entry
	_ = current(c).Do(func(s *schedule.Schedule) error {
		entries = s.Snapshot()
		return nil
	})

	attachment(c, filename, contentType)
	c.Status(http.StatusOK)
	if err := exporter.Write(c.Writer, f, entries, week); err != nil {
		h.log.Error().Err(err).Str("format", string(f)).Msg("export failed")
	}
}
