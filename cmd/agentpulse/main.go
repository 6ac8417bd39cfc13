// Package main содержит точку входа для сервиса дашборда.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/magabrotheeeer/agentpulse/internal/app/agentpulse"
	"github.com/magabrotheeeer/agentpulse/internal/config"
	"github.com/magabrotheeeer/agentpulse/internal/lib/sl"
)

func main() {
	cfg := config.MustLoad()
	logger := sl.New(cfg.Env)

	logger.Info("starting agentpulse", slog.String("env", cfg.Env))
	logger.Debug("debug messages are enabled")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := agentpulse.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize agentpulse app", sl.Err(err))
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		logger.Error("agentpulse app stopped with error", sl.Err(err))
		os.Exit(1)
	}

	logger.Info("agentpulse app stopped gracefully")
}
