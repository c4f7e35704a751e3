package cmd

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/zuca/portal/internal/app"
	"github.com/zuca/portal/internal/store"
)

func RunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the portal core and log collection changes until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(run)
		},
	}
}

func run(ctx context.Context, a *app.App) error {
	if a.Cfg.SeedContent {
		err := a.Seed(ctx)
		if err != nil {
			slog.Error("failed to seed notices", "error", err)
		}
	}

	if a.Bridge != nil {
		go func() {
			err := a.Bridge.Run(ctx)
			if err != nil {
				slog.Error("change sync stopped", "error", err)
			}
		}()
	}

	slog.Info("portal started",
		"env", a.Cfg.AppEnv,
		"store", a.Cfg.StoreBackend,
		"generation", a.Cfg.GenerationEnabled(),
		"media_storage", a.Cfg.MediaStorageEnabled(),
		"sync", a.Cfg.SyncEnabled())

	a.Bus.Watch(ctx, func(changed []string) {
		slog.Info("collections changed", "keys", changed)
	},
		store.KeyUsers,
		store.KeyChat,
		store.KeyUpdates,
		store.KeyPetitions,
		store.KeyChoir,
		store.KeyCurrentUser,
		store.KeyThemePreference,
	)

	slog.Info("portal stopped")
	return nil
}
