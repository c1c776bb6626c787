package dispatcher

import (
	"alfaaz/internal/domain"
	"errors"
	"fmt"
)

var (
	// ErrDispatcherClosed is returned when running a task on a closed dispatcher
	ErrDispatcherClosed = errors.New("dispatcher is closed")
	// ErrPoolSaturated is returned when no worker slot frees up in time
	ErrPoolSaturated = errors.New("worker pool is saturated")
	// ErrTaskTimeout is returned when a worker does not settle before the task timeout
	ErrTaskTimeout = errors.New("task timed out")
	// ErrWorkerFault is returned when a worker crashes outside its own error handling
	ErrWorkerFault = errors.New("worker fault")
	// ErrAbnormalExit is returned when a worker exits non-zero without posting a result
	ErrAbnormalExit = errors.New("worker exited abnormally")
	// ErrNoResult is returned when a worker exits cleanly without posting a result
	ErrNoResult = errors.New("worker exited without a result")
)

// TaskError is the rejection of a single dispatched task.
type TaskError struct {
	Task domain.TaskName
	ID   string
	Err  error
}

func (e *TaskError) Error() string {
	return fmt.Sprintf("task %s (%s) failed: %v", e.Task, e.ID, e.Err)
}

func (e *TaskError) Unwrap() error {
	return e.Err
}

// ExitError carries the exit status of a worker that died without a result.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("Worker stopped with exit code %d", e.Code)
}

func (e *ExitError) Is(target error) bool {
	return target == ErrAbnormalExit
}

// FaultError wraps an uncaught worker crash.
type FaultError struct {
	Err error
}

func (e *FaultError) Error() string {
	return fmt.Sprintf("%v: %v", ErrWorkerFault, e.Err)
}

func (e *FaultError) Unwrap() []error {
	return []error{ErrWorkerFault, e.Err}
}
