package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/budgetsync/internal/app"
	"github.com/MrJamesThe3rd/budgetsync/internal/config"
	budgetHttp "github.com/MrJamesThe3rd/budgetsync/internal/http"
	categoryHandler "github.com/MrJamesThe3rd/budgetsync/internal/http/category"
	importHandler "github.com/MrJamesThe3rd/budgetsync/internal/http/importcsv"
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

	a, err := app.New(logger.WithContext(ctx, log), cfg)
	if err != nil {
		log.Error("failed to start", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	var (
		importH   = importHandler.NewHandler(a.Runner)
		categoryH = categoryHandler.NewHandler(a.Transactions)
	)

	router := budgetHttp.New(importH, categoryH, cfg.Server.AllowedOrigins)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.Timeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("shutdown failed", "error", err)
		}
	}()

	log.Info("starting server", "port", srv.Addr)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server failed", "error", err)
		os.Exit(1)
	}
}
