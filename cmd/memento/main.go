// Package main provides the entry point for the memento daemon.
package main

import (
	"context"
	"fmt"
	"memento/internal/di"
	"memento/internal/structures"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	flags := &structures.CliFlags{}

	rootCmd := &cobra.Command{
		Use:           "memento",
		Short:         "Memento mori prediction widget server",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := di.InitApp(flags)
			if err != nil {
				return fmt.Errorf("init: %w", err)
			}
			return app.Run(cmd.Context())
		},
	}

	rootCmd.Flags().StringVarP(&flags.ConfigPath, "config", "c", "config/config.yaml", "Path to the YAML config file")
	rootCmd.Flags().BoolVar(&flags.DebugMode, "debug", false, "Mirror logs to the console at debug verbosity")

	return rootCmd.ExecuteContext(ctx)
}
