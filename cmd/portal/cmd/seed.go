package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	portal "github.com/zuca/portal"
	"github.com/zuca/portal/internal/app"
)

func SeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the bundled notices into a portal that has none",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app.App) error {
				n, err := a.UpdateService.Seed(ctx, portal.ContentFS, app.SeedDir)
				if err != nil {
					return err
				}
				if n == 0 {
					fmt.Println("Notices already present, nothing seeded")
					return nil
				}
				fmt.Printf("Seeded %d notices\n", n)
				return nil
			})
		},
	}
}
