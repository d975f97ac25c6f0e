package main

import (
	"fmt"

	"jobAgent/internal/config"

	"github.com/spf13/cobra"
)

var runConcurrency int

var runCmd = &cobra.Command{
	Use:   "run [companies...]",
	Short: "Search jobs at the given companies and exit",
	Long:  "Runs one agent invocation per company. Companies default to COMPANIES from the environment.",
	RunE:  runBatch,
}

func init() {
	runCmd.Flags().IntVar(&runConcurrency, "concurrency", 0, "Parallel invocations (overrides PIPELINE_CONCURRENCY)")
	rootCmd.AddCommand(runCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := bootstrap(ctx, func(cfg *config.Cfg) {
		if runConcurrency > 0 {
			cfg.Pipeline.Concurrency = runConcurrency
		}
	})
	if err != nil {
		return err
	}
	defer a.close()

	companies := args
	if len(companies) == 0 {
		companies = a.cfg.Pipeline.Companies
	}

	results, err := a.pipe.Run(ctx, companies)

	out := cmd.OutOrStdout()
	failed := 0
	for _, r := range results {
		fmt.Fprintf(out, "%-12s %-10s %s", r.Company, r.Status, r.RunID)
		if r.Err != nil {
			failed++
			fmt.Fprintf(out, "  %v", r.Err)
		} else if r.Summary != "" {
			fmt.Fprintf(out, "  %s", r.Summary)
		}
		fmt.Fprintln(out)
	}
	fmt.Fprintf(out, "Jobs file: %s\n", a.pipe.Ledger().Path())

	if err != nil {
		return err
	}
	if failed == len(results) && failed > 0 {
		return fmt.Errorf("все запуски завершились ошибкой (%d)", failed)
	}
	return nil
}
