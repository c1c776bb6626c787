package ports

import (
	"alfaaz/internal/domain"
	"context"
	"time"
)

// Outbox is the durable retry queue behind verification email delivery.
type Outbox interface {
	Enqueue(ctx context.Context, j domain.Job) (string, error)
	EnqueueDelayed(ctx context.Context, j domain.Job, runAt time.Time) (string, error)
	Claim(ctx context.Context, consumer string, block time.Duration) (*domain.Job, string /*streamID*/, error)
	Ack(ctx context.Context, streamID string) error
	Fail(ctx context.Context, streamID string, j domain.Job, err error) error
	ToDLQ(ctx context.Context, streamID string, j domain.Job, reason string) error
	SaveState(ctx context.Context, j domain.Job) error
	Get(ctx context.Context, id string) (*domain.Job, error)
}

type Scheduler interface {
	// moves due jobs from ZSET into the stream
	Run(ctx context.Context) error
}
