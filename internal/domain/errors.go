package domain

import "errors"

var (
	ErrUnknownTask       = errors.New("unknown task")
	ErrMissingCredential = errors.New("missing credential")
	ErrExecution         = errors.New("task execution failed")
)

// ErrorKind classifies a worker failure so that it survives being
// flattened into a message.
type ErrorKind string

const (
	KindUnknownTask       ErrorKind = "unknown_task"
	KindMissingCredential ErrorKind = "missing_credential"
	KindExecution         ErrorKind = "execution"
)

// Sentinel maps a kind back to its sentinel error.
func (k ErrorKind) Sentinel() error {
	switch k {
	case KindUnknownTask:
		return ErrUnknownTask
	case KindMissingCredential:
		return ErrMissingCredential
	default:
		return ErrExecution
	}
}

// RemoteError is a failure reported by a worker in its result message.
type RemoteError struct {
	Kind    ErrorKind
	Message string
}

func (e *RemoteError) Error() string { return e.Message }

func (e *RemoteError) Is(target error) bool { return target == e.Kind.Sentinel() }

// Err converts a failed result into an error; it returns nil for successes.
func (r Result) Err() error {
	if r.OK {
		return nil
	}
	return &RemoteError{Kind: r.Kind, Message: r.Error}
}
