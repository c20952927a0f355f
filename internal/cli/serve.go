package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/insightdelivered/statement-converter/internal/api"
	"github.com/insightdelivered/statement-converter/internal/converter"
	"github.com/insightdelivered/statement-converter/internal/metrics"
	"github.com/insightdelivered/statement-converter/internal/writer"
)

const shutdownTimeout = 30 * time.Second

func newServeCommand(root *rootFlags) *cobra.Command {
	var staticDir string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP conversion API",
		Long: `Starts the HTTP API on HTTP_PORT. Routes:

  GET  /api/health
  POST /api/process-pdf        multipart "file", optional "extractedText", "debug"
  POST /api/parse-text         JSON {"text": "...", "debug": false}
  POST /api/anonymous/convert  multipart "file", "format" (xlsx|csv), "layout"
  GET  /metrics                when METRICS_ENABLED is true`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, root, staticDir)
		},
	}
	cmd.Flags().StringVar(&staticDir, "static-dir", "", "serve a web client from this directory")
	return cmd
}

func runServe(cmd *cobra.Command, root *rootFlags, staticDir string) error {
	cfg, log, err := root.setup(cmd)
	if err != nil {
		return err
	}
	layout, err := writer.ParseLayout(cfg.DefaultCSVLayout)
	if err != nil {
		return err
	}

	opts := api.Options{
		Logger:       log,
		BodyLimit:    cfg.BodyLimit(),
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		StaticDir:    staticDir,
	}
	if cfg.MetricsEnabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		opts.Metrics = metrics.New(reg)
		opts.Gatherer = reg
	}

	svc := converter.NewService(log, opts.Metrics)
	app := api.NewApp(&api.Handler{
		Service:       svc,
		Version:       Version,
		DefaultLayout: layout,
	}, opts)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Addr()).Str("version", Version).Msg("HTTP server starting")
		errCh <- app.Listen(cfg.Addr())
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("HTTP server failed: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	log.Info().Msg("server stopped")
	return nil
}
