// Package dispatcher offloads tasks to isolated workers and turns each
// worker's single outgoing message into a return value or an error.
//
// Every call spawns a fresh worker. At most Config.MaxWorkers workers are
// alive at once, and each call settles exactly once: on the worker's first
// message, on a fault, on a non-zero exit, on a clean exit without a
// message, or on timeout.
package dispatcher

import (
	"alfaaz/internal/domain"
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"
)

type Dispatcher struct {
	config  Config
	spawner Spawner
	slots   *semaphore.Weighted
	live    atomic.Int64
	wg      sync.WaitGroup
	mu      sync.Mutex
	closed  bool
}

func New(config Config, spawner Spawner) *Dispatcher {
	if config.MaxWorkers <= 0 {
		config.MaxWorkers = DefaultConfig().MaxWorkers
	}
	return &Dispatcher{
		config:  config,
		spawner: spawner,
		slots:   semaphore.NewWeighted(int64(config.MaxWorkers)),
	}
}

type outcome struct {
	value string
	err   error
}

// Run executes task with payload on a fresh worker and waits for it to
// settle. The payload is JSON-encoded, so the worker only ever sees a copy.
// Every error returned is a *TaskError.
func (d *Dispatcher) Run(ctx context.Context, task domain.TaskName, payload any) (string, error) {
	id := uuid.NewString()
	logger := log.Ctx(ctx).With().Str("task", string(task)).Str("task_id", id).Logger()
	start := time.Now()

	value, err := d.run(ctx, task, payload, &logger)
	if err != nil {
		logger.Warn().Err(err).Dur("took", time.Since(start)).Msg("task rejected")
		return "", &TaskError{Task: task, ID: id, Err: err}
	}

	logger.Debug().Dur("took", time.Since(start)).Msg("task resolved")
	return value, nil
}

// Live returns the number of workers currently alive.
func (d *Dispatcher) Live() int64 {
	return d.live.Load()
}

// Close rejects new tasks and waits for live workers to exit.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for %d workers: %w", d.Live(), ctx.Err())
	}
}

func (d *Dispatcher) run(ctx context.Context, task domain.TaskName, payload any, logger *zerolog.Logger) (string, error) {
	// unknown names never reach a worker
	if !task.Valid() {
		return "", domain.UnknownTask(task).Err()
	}

	req, err := domain.NewRequest(task, payload)
	if err != nil {
		return "", err
	}

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return "", ErrDispatcherClosed
	}
	d.wg.Add(1)
	d.mu.Unlock()

	if err := d.acquire(ctx); err != nil {
		d.wg.Done()
		return "", err
	}

	var cancel context.CancelFunc
	if d.config.TaskTimeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, d.config.TaskTimeout)
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}
	// settling discards the worker
	defer cancel()

	events, err := d.spawner.Spawn(ctx, req)
	if err != nil {
		d.slots.Release(1)
		d.wg.Done()
		return "", &FaultError{Err: err}
	}

	d.live.Add(1)
	settled := make(chan outcome, 1)
	go func() {
		defer d.wg.Done()
		defer d.slots.Release(1)
		defer d.live.Add(-1)
		watch(events, settled, logger)
	}()

	select {
	case o := <-settled:
		// a worker failing after the deadline failed because of it
		if o.err != nil && ctx.Err() != nil {
			return "", d.contextError(ctx)
		}
		return o.value, o.err
	case <-ctx.Done():
		select {
		case o := <-settled:
			if o.err == nil {
				return o.value, nil
			}
		default:
		}
		return "", d.contextError(ctx)
	}
}

func (d *Dispatcher) contextError(ctx context.Context) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w after %s", ErrTaskTimeout, d.config.TaskTimeout)
	}
	return ctx.Err()
}

func (d *Dispatcher) acquire(ctx context.Context) error {
	if d.slots.TryAcquire(1) {
		return nil
	}
	if d.config.QueueWait <= 0 {
		return ErrPoolSaturated
	}

	wctx, cancel := context.WithTimeout(ctx, d.config.QueueWait)
	defer cancel()
	if err := d.slots.Acquire(wctx, 1); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return ErrPoolSaturated
	}
	return nil
}

// watch drains a worker's events. The first message, fault or non-zero
// exit settles the call; anything after that is only logged.
func watch(events <-chan Event, settled chan<- outcome, logger *zerolog.Logger) {
	done := false
	settle := func(o outcome) {
		if done {
			return
		}
		done = true
		settled <- o
	}

	for ev := range events {
		switch ev.Kind {
		case EventMessage:
			if done {
				logger.Debug().Bool("ok", ev.Result.OK).Msg("ignoring worker message after settlement")
				continue
			}
			if err := ev.Result.Err(); err != nil {
				settle(outcome{err: err})
			} else {
				settle(outcome{value: ev.Result.Value})
			}

		case EventFault:
			if done {
				logger.Warn().Err(ev.Err).Msg("worker fault after settlement")
				continue
			}
			settle(outcome{err: &FaultError{Err: ev.Err}})

		case EventExit:
			if ev.Code != 0 {
				if done {
					logger.Debug().Int("exit_code", ev.Code).Msg("worker exited after settlement")
					continue
				}
				settle(outcome{err: &ExitError{Code: ev.Code}})
			}
		}
	}

	settle(outcome{err: ErrNoResult})
}
