package cmd

import (
	"alfaaz/internal/api"
	"alfaaz/internal/config"
	"alfaaz/internal/infra/postgres"
	"alfaaz/internal/infra/redisq"
	"alfaaz/internal/usecase"
	"context"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	var port int
	var command = &cobra.Command{
		Use:   "serve",
		Short: "Start API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
			cfg := config.Load()
			if cmd.Flags().Changed("port") {
				cfg.HTTP.Port = port
			}

			store, err := postgres.Open(cfg.Postgres.DSN)
			if err != nil {
				return err
			}
			defer store.Close()

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			tasks := newDispatcher(cfg)
			defer closeDispatcher(tasks, cfg.Pool.TaskTimeout)

			reg := usecase.Registration{Tasks: tasks, Users: store}
			if cfg.Redis.Enabled() {
				cli := redisq.New(cfg.Redis)
				defer cli.Close()
				if err := cli.Connect(ctx); err != nil {
					return err
				}
				reg.Outbox = &usecase.Enqueuer{Q: cli, MaxAttempts: cfg.Outbox.MaxAttempts}
				log.Info().Msgf("email outbox using stream: %s, group: %s", cfg.Redis.StreamKey, cfg.Redis.Group)
			}

			feed := usecase.NewFeed(store, cfg.Feed.CacheTTL)
			gen := usecase.Generation{Tasks: tasks, Posts: store, Feed: feed, PostTTL: cfg.Feed.PostTTL}

			janitor := usecase.Janitor{Posts: store, Interval: cfg.Feed.JanitorInterval, Feed: feed}
			go func() {
				_ = janitor.Run(ctx)
			}()

			api.NewServer(reg, gen, feed).Run(cfg.HTTP.Port)
			return nil
		},
	}

	command.Flags().IntVarP(&port, "port", "p", 8080, "Port to run the server on, overrides HTTP_Port")
	return command
}
