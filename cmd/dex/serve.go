package main

import (
	"github.com/spf13/cobra"

	"github.com/ersonp/dex-core/internal/transport/httpapi"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP question-answering server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(d *Deps) error {
				if addr == "" {
					addr = d.Config.Server.Addr
				}
				server := httpapi.New(addr, d.AskHandler, d.Logger)
				return server.ListenAndServe(cmd.Context())
			})
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (overrides config)")

	return cmd
}
