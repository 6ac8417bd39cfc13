// Package main содержит точку входа для планировщика автоматических поисков.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/magabrotheeeer/agentpulse/internal/app/scheduler"
	"github.com/magabrotheeeer/agentpulse/internal/config"
	"github.com/magabrotheeeer/agentpulse/internal/lib/sl"
)

func main() {
	cfg := config.MustLoad()
	logger := sl.New(cfg.Env)

	logger.Info("starting radar-scheduler", slog.String("env", cfg.Env))
	logger.Debug("debug messages are enabled")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := scheduler.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize radar-scheduler app", sl.Err(err))
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		logger.Error("radar-scheduler app stopped with error", sl.Err(err))
		os.Exit(1)
	}

	logger.Info("radar-scheduler app stopped gracefully")
}
