package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ersonp/dex-core/internal/infrastructure/config"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if err := cfg.Save(globalConfig); err != nil {
				return err
			}

			fmt.Printf("Wrote %s\n", globalConfig)
			fmt.Println("Set llm.api_key (or OPENAI_API_KEY) before starting the server.")
			return nil
		},
	}
}
