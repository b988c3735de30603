package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/campus-timetable/internal/materials"
	"github.com/Tiliavir/campus-timetable/internal/server"
	"github.com/Tiliavir/campus-timetable/internal/session"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the timetable HTTP API",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	addr := cfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sessions := session.NewManager(cfg.SessionTTL())
	go sessions.Run(ctx, time.Minute, func(n int) {
		log.Debug().Int("evicted", n).Int("active", sessions.Len()).Msg("sessions swept")
	})

	router := server.NewRouter(server.Options{
		Sessions:       sessions,
		Catalog:        materials.Default(),
		Location:       loc,
		Horizon:        cfg.Horizon(),
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Log:            log,
	})

	if err := server.Run(ctx, addr, router, log); err != nil {
		fail(exitStorage, err.Error())
	}
	return nil
}
