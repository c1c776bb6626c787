package dispatcher

import (
	"alfaaz/internal/domain"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"
)

// ProcessSpawner runs every request in a fresh subprocess. The request is
// written to the child's stdin as JSON and each JSON value the child
// writes to stdout is a posted message.
type ProcessSpawner struct {
	// Path is the worker executable; empty means the running binary.
	Path string
	Args []string
	// Env is the child environment; nil inherits the parent's.
	Env    []string
	Stderr io.Writer
}

func (s ProcessSpawner) Spawn(ctx context.Context, req domain.Request) (<-chan Event, error) {
	in, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode task request: %w", err)
	}

	path := s.Path
	if path == "" {
		if path, err = os.Executable(); err != nil {
			return nil, fmt.Errorf("resolve worker executable: %w", err)
		}
	}

	cmd := exec.CommandContext(ctx, path, s.Args...)
	cmd.Env = s.Env
	cmd.Stdin = bytes.NewReader(in)
	cmd.Stderr = s.Stderr
	cmd.WaitDelay = time.Second
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("attach worker stdout: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("spawn worker: %w", err)
	}

	events := make(chan Event, 4)
	go func() {
		defer close(events)

		dec := json.NewDecoder(stdout)
		for {
			var res domain.Result
			if err := dec.Decode(&res); err != nil {
				if !errors.Is(err, io.EOF) {
					events <- Event{Kind: EventFault, Err: fmt.Errorf("malformed worker message: %w", err)}
				}
				break
			}
			events <- Event{Kind: EventMessage, Result: res}
		}
		// stdout must be fully read before Wait
		_, _ = io.Copy(io.Discard, stdout)

		events <- Event{Kind: EventExit, Code: exitCode(cmd.Wait())}
	}()

	return events, nil
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) && ee.ExitCode() > 0 {
		return ee.ExitCode()
	}
	// killed by a signal, or Wait failed
	return -1
}
