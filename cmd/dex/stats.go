package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ersonp/dex-core/internal/infrastructure/config"
	"github.com/ersonp/dex-core/internal/infrastructure/relationaldb/sqlite"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show cache and question-log statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStoreDeps(cmd.Context(), func(ctx context.Context, cfg *config.Config, logger *zap.Logger, cache *sqlite.Repository) error {
				pokemon, err := cache.CountPokemon(ctx)
				if err != nil {
					return err
				}
				species, err := cache.CountSpecies(ctx)
				if err != nil {
					return err
				}
				questions, err := cache.CountQuestions(ctx)
				if err != nil {
					return err
				}

				fmt.Printf("Database:         %s\n", cache.Path())
				fmt.Printf("Cached pokemon:   %d\n", pokemon)
				fmt.Printf("Cached species:   %d\n", species)
				fmt.Printf("Questions asked:  %d\n", questions)
				return nil
			})
		},
	}
}
