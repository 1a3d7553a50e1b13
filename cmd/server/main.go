package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/dmitrijs2005/nasomail/internal/buildinfo"
	"github.com/dmitrijs2005/nasomail/internal/logging"
	"github.com/dmitrijs2005/nasomail/internal/server"
	"github.com/dmitrijs2005/nasomail/internal/server/config"
)

func main() {
	ctx := context.Background()
	logger := logging.NewJSONLogger(os.Stdout, slog.LevelInfo)

	logger.Info(ctx, "nasomail server", buildinfo.Fields()...)

	cfg, err := config.LoadConfig(ctx)
	if err != nil {
		logger.Error(ctx, "failed to load config", "err", err)
		os.Exit(1)
	}

	app, err := server.NewApp(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "failed to start", "err", err)
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		logger.Error(ctx, "server stopped with error", "err", err)
		os.Exit(1)
	}
}
