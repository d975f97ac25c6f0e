package main

import (
	"jobAgent/internal/cli"

	"github.com/spf13/cobra"
)

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Interactive console (default)",
	RunE:  runConsole,
}

func init() {
	rootCmd.AddCommand(consoleCmd)
}

func runConsole(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	a, err := bootstrap(ctx, nil)
	if err != nil {
		return err
	}
	defer a.close()

	console := cli.New(a.pipe, a.pipe.Ledger(), a.cfg.Pipeline.LedgerPath, a.log)
	console.Run(ctx)
	return nil
}
