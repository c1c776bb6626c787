package dispatcher

import (
	"alfaaz/internal/domain"
	"bytes"
	"context"
	"fmt"
)

type EventKind int

const (
	// EventMessage carries the worker's posted result
	EventMessage EventKind = iota
	// EventFault carries an uncaught worker crash
	EventFault
	// EventExit carries the worker's exit code; it is always the last event
	EventExit
)

type Event struct {
	Kind   EventKind
	Result domain.Result
	Err    error
	Code   int
}

// Spawner starts one fresh worker for req. The returned channel delivers
// the worker's events and is closed once the worker is gone. Cancelling
// ctx must terminate the worker.
type Spawner interface {
	Spawn(ctx context.Context, req domain.Request) (<-chan Event, error)
}

// Executor runs one task to a result.
type Executor interface {
	Execute(ctx context.Context, req domain.Request) domain.Result
}

// WorkerFunc is the body of an in-process worker. It may call post any
// number of times; the value it returns is its exit code.
type WorkerFunc func(ctx context.Context, req domain.Request, post func(domain.Result)) int

// FuncSpawner runs every request in a fresh goroutine. A panic is contained
// and reported as a fault followed by exit code 1, as is runtime.Goexit.
type FuncSpawner WorkerFunc

func (f FuncSpawner) Spawn(ctx context.Context, req domain.Request) (<-chan Event, error) {
	req.Payload = bytes.Clone(req.Payload)
	events := make(chan Event, 4)

	go func() {
		defer close(events)

		code := 1
		defer func() {
			if r := recover(); r != nil {
				events <- Event{Kind: EventFault, Err: fmt.Errorf("panic: %v", r)}
				code = 1
			}
			events <- Event{Kind: EventExit, Code: code}
		}()

		code = f(ctx, req, func(res domain.Result) {
			events <- Event{Kind: EventMessage, Result: res}
		})
	}()

	return events, nil
}

// InProcess spawns goroutine workers that run e and post its result.
func InProcess(e Executor) Spawner {
	return FuncSpawner(func(ctx context.Context, req domain.Request, post func(domain.Result)) int {
		post(e.Execute(ctx, req))
		return 0
	})
}
