// Package server exposes per-session course schedules over a JSON API.
package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Tiliavir/campus-timetable/internal/materials"
	"github.com/Tiliavir/campus-timetable/internal/response"
	"github.com/Tiliavir/campus-timetable/internal/schedule"
	"github.com/Tiliavir/campus-timetable/internal/session"
	"github.com/Tiliavir/campus-timetable/internal/validator"
)

// DefaultMaxUpload caps the size of an imported CSV.
const DefaultMaxUpload = 1 << 20

// Options wires the router's dependencies.
type Options struct {
	Sessions *session.Manager
	Catalog  *materials.Catalog
	Location *time.Location
	Horizon  time.Duration
	// AllowedOrigins restricts CORS; empty allows every origin.
	AllowedOrigins []string
	MaxUpload      int64
	Log            zerolog.Logger
	// Now is the clock; nil means time.Now.
	Now func() time.Time
}

// NewRouter builds the Gin engine with all routes and middlewares.
func NewRouter(opts Options) *gin.Engine {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Horizon <= 0 {
		opts.Horizon = schedule.DefaultHorizon
	}
	if opts.MaxUpload <= 0 {
		opts.MaxUpload = DefaultMaxUpload
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Catalog == nil {
		opts.Catalog = materials.Default()
	}

	h := &Handler{
		sessions:  opts.Sessions,
		catalog:   opts.Catalog,
		validator: validator.Setup(),
		loc:       opts.Location,
		horizon:   opts.Horizon,
		maxUpload: opts.MaxUpload,
		log:       opts.Log,
		now:       opts.Now,
	}

	router := gin.New()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set, restrict to that list; otherwise allow all.
	corsConfig := cors.DefaultConfig()
	if len(opts.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = opts.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID", "Content-Disposition"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	router.Use(response.RequestIDMiddleware())
	router.Use(RequestLogger(opts.Log))
	router.Use(gin.CustomRecovery(func(c *gin.Context, _ any) {
		response.AbortFail(c, http.StatusInternalServerError, response.ErrInternal)
	}))

	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		api.GET("/template.csv", h.Template)
		api.GET("/materials", h.Materials)
		api.POST("/sessions", h.CreateSession)

		s := api.Group("/sessions/:id")
		s.Use(h.loadSession)
		{
			s.DELETE("", h.DeleteSession)
			s.GET("/courses", h.ListCourses)
			s.POST("/courses", h.AddCourse)
			s.DELETE("/courses", h.ClearCourses)
			s.POST("/import", h.Import)
			s.GET("/upcoming", h.Upcoming)
			s.GET("/export.csv", h.ExportCSV)
			s.GET("/export.ics", h.ExportICS)
		}
	}

	return router
}
