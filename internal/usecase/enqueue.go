package usecase

import (
	"alfaaz/internal/domain"
	"alfaaz/internal/ports"
	"context"
	"time"
)

const defaultMaxAttempts = 5

type Enqueuer struct {
	Q           ports.Outbox
	MaxAttempts int
}

func (e Enqueuer) Now(ctx context.Context, j domain.Job) (string, error) {
	j.MaxAttempts = e.maxAttempts(j)
	return e.Q.Enqueue(ctx, j)
}

func (e Enqueuer) At(ctx context.Context, j domain.Job, runAt time.Time) (string, error) {
	j.MaxAttempts = e.maxAttempts(j)
	return e.Q.EnqueueDelayed(ctx, j, runAt)
}

func (e Enqueuer) maxAttempts(j domain.Job) int {
	switch {
	case j.MaxAttempts > 0:
		return j.MaxAttempts
	case e.MaxAttempts > 0:
		return e.MaxAttempts
	default:
		return defaultMaxAttempts
	}
}
