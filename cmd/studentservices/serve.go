package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-studentservices/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	var address string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the request form over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if address != "" {
				a.cfg.Server.Address = address
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv, err := server.New(ctx, server.WithConfig(a.cfg), server.WithLogger(a.log))
			if err != nil {
				return err
			}
			return srv.Run(ctx)
		},
	}
	cmd.Flags().StringVar(&address, "addr", "", "listen address (overrides server.address)")
	return cmd
}
