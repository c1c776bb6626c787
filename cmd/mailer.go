package cmd

import (
	"alfaaz/internal/config"
	"alfaaz/internal/mailer"
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

func mailerCmd() *cobra.Command {
	var (
		consumerName string
		baseBackoff  time.Duration
		maxBackoff   time.Duration
	)

	var command = &cobra.Command{
		Use:   "mailer",
		Short: "Start the verification email retry consumer",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if !cmd.Flags().Changed("base-backoff") {
				baseBackoff = cfg.Outbox.BaseBackoff
			}
			if !cmd.Flags().Changed("max-backoff") {
				maxBackoff = cfg.Outbox.MaxBackoff
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			tasks := newDispatcher(cfg)
			defer closeDispatcher(tasks, cfg.Pool.TaskTimeout)

			return mailer.Run(ctx, cfg, mailer.Config{
				ConsumerName: consumerName,
				BaseBackoff:  baseBackoff,
				MaxBackoff:   maxBackoff,
			}, tasks)
		},
	}

	command.Flags().StringVar(&consumerName, "consumer", "mailer-1", "Mailer consumer name")
	command.Flags().DurationVar(&baseBackoff, "base-backoff", 2*time.Second, "Base backoff duration, overrides Outbox_BaseBackoff")
	command.Flags().DurationVar(&maxBackoff, "max-backoff", 5*time.Minute, "Max backoff duration, overrides Outbox_MaxBackoff")

	return command
}
