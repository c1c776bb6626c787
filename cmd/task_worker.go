package cmd

import (
	"alfaaz/internal/config"
	"alfaaz/internal/worker"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const taskWorkerUse = "task-worker"

// taskWorkerCmd is the entry point of an isolated worker process. stdout
// carries the result message, so logs go to stderr.
func taskWorkerCmd() *cobra.Command {
	return &cobra.Command{
		Use:    taskWorkerUse,
		Short:  "Run one task read from stdin and write its result to stdout",
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Logger = zerolog.New(os.Stderr).With().Timestamp().Str("role", taskWorkerUse).Logger()
			cfg := config.Load()
			return worker.Serve(cmd.Context(), os.Stdin, os.Stdout, worker.NewExecutor(cfg))
		},
	}
}
