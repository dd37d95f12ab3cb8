package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/budgetsync/internal/app"
	"github.com/MrJamesThe3rd/budgetsync/internal/config"
	"github.com/MrJamesThe3rd/budgetsync/internal/logger"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg.App.LogLevel, cfg.App.LogFormat)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx = logger.WithContext(ctx, log)

	a, err := app.New(ctx, cfg)
	if err != nil {
		log.Error("failed to start", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	jobs, err := app.Jobs(cfg)
	if err != nil {
		log.Error("failed to discover files", "error", err)
		os.Exit(1)
	}

	summary := a.Runner.Run(ctx, jobs)

	for _, r := range summary.Reports {
		log.Info("source finished",
			"source", r.Source,
			"run_id", r.RunID,
			"files", len(r.Files),
			"inserted", r.Inserted,
			"ignored", r.Ignored,
			"deleted", len(r.Deleted))
	}

	if summary.Failed() {
		os.Exit(1)
	}
}
