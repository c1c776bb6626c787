package worker

import (
	"alfaaz/internal/domain"
	"context"
	"encoding/json"
	"fmt"
	"io"
)

// Serve is the body of a task-worker subprocess. It reads one request from
// r, executes it, writes one result to w and returns. The process exits
// afterwards, so Serve never loops.
func Serve(ctx context.Context, r io.Reader, w io.Writer, e *Executor) error {
	var req domain.Request
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return fmt.Errorf("read task request: %w", err)
	}

	res := e.Execute(ctx, req)
	if err := json.NewEncoder(w).Encode(res); err != nil {
		return fmt.Errorf("post task result: %w", err)
	}
	return nil
}
