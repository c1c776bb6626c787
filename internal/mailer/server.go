// Package mailer runs the verification email outbox: it moves delayed
// retries back onto the stream and redelivers claimed jobs through the
// task dispatcher.
package mailer

import (
	"alfaaz/internal/config"
	"alfaaz/internal/infra/redisq"
	"alfaaz/internal/ports"
	"alfaaz/internal/usecase"
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
)

var ErrOutboxDisabled = errors.New("mailer needs Redis_Address to be set")

type Config struct {
	ConsumerName string
	BaseBackoff  time.Duration
	MaxBackoff   time.Duration
}

func Run(ctx context.Context, appCfg *config.Config, cfg Config, tasks ports.TaskRunner) error {
	if !appCfg.Redis.Enabled() {
		return ErrOutboxDisabled
	}

	cli := redisq.New(appCfg.Redis)
	defer cli.Close()
	if err := cli.Init(ctx); err != nil {
		return err
	}

	sched := redisq.NewScheduler(cli, 1*time.Second)
	go func() {
		if err := sched.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Ctx(ctx).Error().Err(err).Msg("scheduler stopped with error")
		}
	}()

	consumer := usecase.Consumer{
		Q:            cli,
		ConsumerName: cfg.ConsumerName,
		BaseBackoff:  cfg.BaseBackoff,
		MaxBackoff:   cfg.MaxBackoff,
	}

	log.Ctx(ctx).Info().
		Str("consumer", cfg.ConsumerName).
		Str("stream", appCfg.Redis.StreamKey).
		Msg("mailer started")
	err := consumer.Run(ctx, usecase.DeliverEmail(tasks))
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
