package cmd

import (
	"alfaaz/internal/config"
	"alfaaz/internal/dispatcher"
	"alfaaz/internal/worker"
	"context"
	"os"
	"time"

	"github.com/rs/zerolog/log"
)

// newDispatcher builds the task dispatcher for the configured isolation mode.
func newDispatcher(cfg *config.Config) *dispatcher.Dispatcher {
	var spawner dispatcher.Spawner
	switch cfg.Pool.Isolation {
	case config.IsolationProcess:
		spawner = dispatcher.ProcessSpawner{Args: []string{taskWorkerUse}, Stderr: os.Stderr}
	default:
		spawner = dispatcher.InProcess(worker.NewExecutor(cfg))
	}

	log.Info().
		Str("isolation", cfg.Pool.Isolation).
		Int("max_workers", cfg.Pool.MaxWorkers).
		Dur("task_timeout", cfg.Pool.TaskTimeout).
		Msg("task dispatcher ready")
	return dispatcher.New(dispatcher.FromPool(cfg.Pool), spawner)
}

// closeDispatcher waits up to timeout for live workers to exit.
func closeDispatcher(d *dispatcher.Dispatcher, timeout time.Duration) {
	if timeout <= 0 {
		timeout = dispatcher.DefaultConfig().TaskTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := d.Close(ctx); err != nil {
		log.Warn().Err(err).Msg("workers still running at shutdown")
	}
}
