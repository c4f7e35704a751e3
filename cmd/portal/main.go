package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/zuca/portal/cmd/portal/cmd"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "portal",
		Short:        "ZUCA fellowship portal",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(cmd.RunCmd())
	rootCmd.AddCommand(cmd.SeedCmd())
	rootCmd.AddCommand(cmd.MigrateCmd())
	rootCmd.AddCommand(cmd.LeaderboardCmd())
	rootCmd.AddCommand(cmd.InsightCmd())
	rootCmd.AddCommand(cmd.TriviaCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
