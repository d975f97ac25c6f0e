package main

import (
	"jobAgent/internal/config"
	"jobAgent/internal/server"

	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long:  "Serves the saved jobs and the run journal, and starts searches on POST /api/runs.",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides HTTP_ADDR)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	a, err := bootstrap(ctx, func(cfg *config.Cfg) {
		if serveAddr != "" {
			cfg.Server.Addr = serveAddr
		}
	})
	if err != nil {
		return err
	}
	defer a.close()

	srv := server.New(a.cfg, a.log, a.pipe, a.pipe.Ledger(), a.journal)
	return srv.Run(ctx)
}
