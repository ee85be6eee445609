package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newAskCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask a single question from the terminal",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			question := strings.Join(args, " ")

			return withDeps(cmd.Context(), func(d *Deps) error {
				answer, err := d.AskHandler.Handle(cmd.Context(), question)
				if err != nil {
					return err
				}

				fmt.Println(answer.Answer)
				if answer.PokemonName != nil {
					fmt.Printf("\n(%s", *answer.PokemonName)
					if answer.PokemonID != nil {
						fmt.Printf(", #%d", *answer.PokemonID)
					}
					fmt.Println(")")
				}
				return nil
			})
		},
	}
}
