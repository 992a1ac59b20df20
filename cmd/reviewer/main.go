package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"prsentinel/internal/app"
	"prsentinel/internal/config"
	"prsentinel/internal/observability"
)

func main() {
	root := &cobra.Command{
		Use:   "reviewer",
		Short: "Automated pull request reviews",
		Long: `reviewer posts AI-generated review comments on pull requests.

It runs either as a webhook service receiving GitHub pull request events,
or as a one-shot command reviewing the local working tree against a base
branch.`,
		SilenceUsage: true,
	}

	root.AddCommand(serveCmd(), reviewCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the webhook service",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()

			logger := observability.NewLogger(cfg)
			defer logger.Sync()

			ctx, stop := signal.NotifyContext(context.Background(),
				syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return app.NewServer(cfg, logger).Start(ctx)
		},
	}
}

func reviewCmd() *cobra.Command {
	var (
		base       string
		dir        string
		exclude    string
		writeTests bool
	)

	cmd := &cobra.Command{
		Use:   "review",
		Short: "Review the local working tree against a base branch",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()

			if base != "" {
				cfg.BaseBranch = base
			}
			if exclude != "" {
				cfg.ExcludePatterns = append(cfg.ExcludePatterns,
					config.SplitPatterns(exclude)...)
			}
			if writeTests {
				cfg.TestGenEnabled = true
			}

			logger := observability.NewLogger(cfg)
			defer logger.Sync()

			ctx, stop := signal.NotifyContext(context.Background(),
				syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			runner := app.NewRunner(cfg, logger, dir, cmd.OutOrStdout())
			if err := runner.Run(ctx); err != nil {
				return fmt.Errorf("review: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&base, "base", "", "base branch to diff against (default from BASE_BRANCH)")
	cmd.Flags().StringVar(&dir, "dir", "", "repository directory (default current directory)")
	cmd.Flags().StringVar(&exclude, "exclude", "", "extra exclusion patterns, comma-separated")
	cmd.Flags().BoolVar(&writeTests, "write-tests", false, "generate test files for reviewed changes")

	return cmd
}
