package usecase

import (
	"alfaaz/internal/domain"
	"alfaaz/internal/ports"
	"alfaaz/pkg/backoff"
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

type Handler func(ctx context.Context, j domain.Job) error

type Consumer struct {
	Q            ports.Outbox
	ConsumerName string
	BaseBackoff  time.Duration
	MaxBackoff   time.Duration
	// Block is how long one claim waits for a job.
	Block time.Duration
}

func (c Consumer) Run(ctx context.Context, handle Handler) error {
	block := c.Block
	if block <= 0 {
		block = 5 * time.Second
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		j, id, err := c.Q.Claim(ctx, c.ConsumerName, block)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Ctx(ctx).Error().Err(err).Msg("claim failed")
			sleep(ctx, time.Second)
			continue
		}
		if j == nil {
			continue
		}

		c.Process(ctx, id, j, handle)
	}
}

// Process runs one claimed job and settles it: ack on success, delayed
// retry with backoff on failure, DLQ once attempts are exhausted.
func (c Consumer) Process(ctx context.Context, streamID string, j *domain.Job, handle Handler) {
	logger := log.Ctx(ctx).With().Str("job_id", j.ID).Str("type", j.Type).Int("attempt", j.Attempts+1).Logger()

	j.Status = domain.StatusRunning
	_ = c.Q.SaveState(ctx, *j)

	err := handle(ctx, *j)
	if err == nil {
		_ = c.Q.Ack(ctx, streamID)
		j.Status = domain.StatusDone
		_ = c.Q.SaveState(ctx, *j)
		logger.Info().Msg("job done")
		return
	}

	// Failure path: retry or DLQ
	if j.Attempts+1 >= j.MaxAttempts {
		logger.Error().Err(err).Msg("job exhausted its attempts, moving to DLQ")
		_ = c.Q.ToDLQ(ctx, streamID, *j, fmt.Sprintf("after %d attempts: %v", j.Attempts+1, err))
		return
	}

	_ = c.Q.Fail(ctx, streamID, *j, err)
	j.Attempts++
	j.LastError = err.Error()

	delay := backoff.ExponentialJitter(c.BaseBackoff, c.MaxBackoff, j.Attempts)
	logger.Warn().Err(err).Dur("retry_in", delay).Msg("job failed, rescheduling")

	// remove from PEL by acking and then re-inserting as delayed
	_ = c.Q.Ack(ctx, streamID)
	if _, err := c.Q.EnqueueDelayed(ctx, *j, time.Now().Add(delay)); err != nil {
		logger.Error().Err(err).Msg("reschedule failed, job is lost")
	}
}

func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

// DeliverEmail is the mailer's outbox handler: it retries a verification
// email through the task dispatcher.
func DeliverEmail(tasks ports.TaskRunner) Handler {
	return func(ctx context.Context, j domain.Job) error {
		if j.Type != domain.JobVerificationEmail {
			return fmt.Errorf("unsupported job type %q", j.Type)
		}
		_, err := tasks.Run(ctx, domain.TaskSendEmail, j.EmailPayload())
		return err
	}
}
