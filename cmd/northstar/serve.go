package main

import (
	"github.com/spf13/cobra"
	"github.com/vfg2006/north-star-api/internal/api"
	"github.com/vfg2006/north-star-api/internal/bootstrap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Sobe a API HTTP do dashboard",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, closer, err := bootstrap.NewRecordStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closer()

	server, err := api.New(cfg, bootstrap.NewDashboardService(store, cfg))
	if err != nil {
		return err
	}

	return server.Run(ctx)
}
