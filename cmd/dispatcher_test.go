package cmd

import (
	"alfaaz/internal/dispatcher"
	"alfaaz/internal/domain"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloseDispatcher_BoundedByTimeout(t *testing.T) {
	release := make(chan struct{})
	t.Cleanup(func() { close(release) })

	// the worker ignores cancellation, as a stuck SMTP dial would
	hung := dispatcher.FuncSpawner(func(ctx context.Context, req domain.Request, post func(domain.Result)) int {
		<-release
		return 0
	})
	d := dispatcher.New(dispatcher.Config{MaxWorkers: 1, TaskTimeout: 10 * time.Millisecond}, hung)

	_, err := d.Run(context.Background(), domain.TaskHashPassword, domain.HashPasswordPayload{Password: "x"})
	require.ErrorIs(t, err, dispatcher.ErrTaskTimeout)
	require.Equal(t, int64(1), d.Live())

	start := time.Now()
	closeDispatcher(d, 50*time.Millisecond)
	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, int64(1), d.Live())
}
