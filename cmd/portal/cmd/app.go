package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/zuca/portal/internal/app"
	"github.com/zuca/portal/internal/config"
	"github.com/zuca/portal/internal/logger"
)

// withApp loads configuration, builds the portal and runs fn until it
// returns or the process is interrupted.
func withApp(fn func(ctx context.Context, a *app.App) error) error {
	cfg := config.Load()

	log := logger.Init(cfg.AppName, cfg.IsDevelopment(), cfg.SentryDSN)
	defer logger.Flush()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		slog.Error("failed to initialize app", "error", err)
		return err
	}
	defer func() {
		closeErr := a.Close()
		if closeErr != nil {
			slog.Error("failed to close app", "error", closeErr)
		}
	}()

	return fn(ctx, a)
}
