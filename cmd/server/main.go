package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"lms/internal/app/server"
	"lms/internal/platform/config"
)

func main() {
	// Best effort; production deployments set real environment variables.
	_ = godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	app, err := server.New(context.Background(), cfg)
	if err != nil {
		slog.Error("startup failed", "err", err)
		os.Exit(1)
	}
	defer app.Close()

	slog.Info("leave management server listening", "addr", cfg.Addr, "env", cfg.Environment)
	if err := app.Run(); err != nil {
		slog.Error("server failed", "err", err)
		os.Exit(1)
	}
}
