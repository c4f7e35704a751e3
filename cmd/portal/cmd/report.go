package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zuca/portal/internal/app"
	"github.com/zuca/portal/internal/service"
)

func LeaderboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leaderboard",
		Short: "Print the trivia standings",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app.App) error {
				entries, err := a.LeaderboardService.Standings(ctx, "")
				if err != nil {
					return err
				}
				if len(entries) == 0 {
					fmt.Println(service.EmptyStandings)
					return nil
				}
				for _, e := range entries {
					marker := ""
					if e.IsTrainer {
						marker = " (Trainer)"
					}
					fmt.Printf("%3d. %-30s %5d%s\n", e.Rank, e.User.Name, e.User.Points, marker)
				}
				return nil
			})
		},
	}
}

func InsightCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "insight [question]",
		Short: "Ask for a short spiritual reflection",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app.App) error {
				reply, err := a.InsightService.Ask(ctx, strings.Join(args, " "))
				if err != nil {
					return err
				}
				fmt.Println(reply)
				return nil
			})
		},
	}
}

func TriviaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "trivia",
		Short: "Generate and print a trivia question set",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app.App) error {
				for i, q := range a.Gateway.GenerateQuestionSet(ctx) {
					fmt.Printf("%d. %s (%d pts)\n", i+1, q.Question, q.Points)
					for j, opt := range q.Options {
						mark := " "
						if j == q.CorrectAnswer {
							mark = "*"
						}
						fmt.Printf("   %s %c) %s\n", mark, 'A'+j, opt)
					}
				}
				return nil
			})
		},
	}
}
