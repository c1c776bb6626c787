package ports

import (
	"alfaaz/internal/domain"
	"context"
)

// TaskRunner offloads one task to a worker and waits for its outcome.
type TaskRunner interface {
	Run(ctx context.Context, task domain.TaskName, payload any) (string, error)
}
