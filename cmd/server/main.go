package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/AngelCh415/campaign-dash/internal/analytics"
	"github.com/AngelCh415/campaign-dash/internal/config"
	"github.com/AngelCh415/campaign-dash/internal/httpx"
	"github.com/AngelCh415/campaign-dash/internal/ingest"
	"github.com/AngelCh415/campaign-dash/internal/metrics"
	"github.com/AngelCh415/campaign-dash/internal/store"
)

type app struct {
	cfg  config.Config
	log  *slog.Logger
	met  *metrics.Metrics
	snap *store.Snapshot
	svc  *analytics.Service
}

func newApp(cfg config.Config) *app {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	met := metrics.New(cfg.MetricsNamespace)
	cl := ingest.NewHTTPClient(cfg.HTTPTimeout)
	snap := store.NewSnapshot(ingest.NewLoader(cl, logger, cfg, met))
	return &app{cfg: cfg, log: logger, met: met, snap: snap, svc: analytics.NewService(snap, met)}
}

func main() {
	cfg := config.FromEnv()

	root := &cobra.Command{
		Use:           "server",
		Short:         "Campaign reporting dashboard API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), newApp(cfg))
		},
	}
	root.PersistentFlags().StringVar(&cfg.DataSource, "data", cfg.DataSource, "spreadsheet path, sqlite://path or http(s) URL")
	root.PersistentFlags().StringVar(&cfg.DataSheet, "sheet", cfg.DataSheet, "sheet (or sqlite table) holding the campaigns")
	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Load the sheet and serve the dashboard API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), newApp(cfg))
		},
	})
	root.AddCommand(reportCmd(&cfg))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := root.ExecuteContext(ctx); err != nil {
		slog.Error("fatal", slog.String("err", err.Error()))
		stop()
		os.Exit(1)
	}
}

func serve(ctx context.Context, a *app) error {
	// load eagerly so a bad sheet stops the process before it accepts traffic
	if _, err := a.snap.Table(ctx); err != nil {
		return err
	}

	r := httpx.NewRouter(httpx.Deps{
		Log:        a.log,
		Dash:       a.svc,
		Catalog:    a.snap,
		Recorder:   a.met,
		Exposition: a.met.Handler(),
	})
	srv := &http.Server{
		Addr:              ":" + a.cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("starting server", slog.String("port", a.cfg.Port), slog.String("source", a.cfg.DataSource))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	a.log.Info("shutting down", slog.Duration("timeout", a.cfg.ShutdownTimeout))
	sctx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(sctx)
}
