// Package cli implements arcadectl, a command-line client for the arcade
// leaderboard API.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/okian/arcade/pkg/logger"
)

var (
	cfg    *Config
	client *Client
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "arcadectl",
		Short: "CLI tool for the arcade leaderboard API",
		Long: `arcadectl talks to the arcade leaderboard service.

It registers players, checks logins, submits scores, reads leaderboards
and can drive a concurrent load simulation that verifies ranking order.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch cfg.Output {
			case "text", "json":
			default:
				return fmt.Errorf("unknown output format %q (want text or json)", cfg.Output)
			}

			level := "warn"
			if cfg.Verbose {
				level = "debug"
			}
			if err := logger.Init(logger.WithOutput(cmd.ErrOrStderr())); err != nil {
				return err
			}
			if err := logger.SetLevelString(level); err != nil {
				return err
			}

			client = NewClient(cfg.ServerURL, cfg.Timeout)
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: ARCADE_SERVER)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "Per-request timeout")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	rootCmd.AddCommand(newRegisterCmd())
	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newScoreCmd())
	rootCmd.AddCommand(newLeaderboardCmd())
	rootCmd.AddCommand(newGamesCmd())
	rootCmd.AddCommand(newHealthCmd())
	rootCmd.AddCommand(newSimulateCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func output(cmd *cobra.Command) *Output {
	return NewOutput(cfg.Output, cmd.OutOrStdout())
}
