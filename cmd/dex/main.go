// Package main provides the entry point for the dex server and CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ersonp/dex-core/internal/infrastructure/config"
)

var (
	version      = "0.1.0-dev"
	globalConfig string
	globalDebug  bool
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	rootCmd := &cobra.Command{
		Use:     "dex",
		Short:   "A natural-language Pokédex gateway backed by PokeAPI and an LLM",
		Version: version,
	}

	rootCmd.PersistentFlags().StringVarP(&globalConfig, "config", "c", config.DefaultConfigFile, "Path to the config file")
	rootCmd.PersistentFlags().BoolVar(&globalDebug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(
		newServeCmd(),
		newAskCmd(),
		newStatsCmd(),
		newInitCmd(),
	)

	return rootCmd.ExecuteContext(ctx)
}
