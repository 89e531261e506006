package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	mcpadapter "github.com/mtb-io/mercury-ci/internal/adapters/mcp"
	"github.com/mtb-io/mercury-ci/internal/bootstrap"
	"github.com/mtb-io/mercury-ci/internal/config"
	"github.com/mtb-io/mercury-ci/internal/observability/logging"
)

func main() {
	cfg := config.Load()
	// stdout carries the protocol; logs must stay off it.
	logger := logging.NewJSONLoggerTo(os.Stderr, "mcp", cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		slog.Error("bootstrap failed", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	srv := mcpadapter.NewServer(app.BriefingUC, app.AnalyzeUC, app.ReportUC)
	if err := srv.ServeStdio(); err != nil {
		slog.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}
