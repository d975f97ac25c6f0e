// Command jobagent ищет вакансии по резюме с помощью LLM агента в браузере
// и дописывает найденные в CSV файл.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "jobagent",
	Short:         "Job search agent",
	Long:          "jobagent reads your cv, searches company career pages with an LLM driven browser and appends matching jobs to a CSV ledger.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runConsole,
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
