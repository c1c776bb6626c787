//go:build integration

package redisq

import (
	"alfaaz/internal/config"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupRedis(t *testing.T) *Client {
	t.Helper()
	ctx := context.Background()

	container, err := tcredis.Run(ctx, "redis:7-alpine",
		testcontainers.WithWaitStrategy(
			wait.ForLog("Ready to accept connections").WithOccurrence(1).WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Skipf("failed to start redis testcontainer: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	connStr, err := container.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("redis connection string: %v", err)
	}
	opts, err := redis.ParseURL(connStr)
	if err != nil {
		t.Fatalf("parse %s: %v", connStr, err)
	}

	suffix := fmt.Sprintf("%s:%d", t.Name(), time.Now().UnixNano())
	c := New(config.Redis{
		Addr:          opts.Addr,
		StreamKey:     "outbox:" + suffix,
		Group:         "mailers",
		ScheduledZSet: "outbox:scheduled:" + suffix,
		DLQStreamKey:  "outbox:dlq:" + suffix,
	})
	t.Cleanup(func() { _ = c.Close() })

	if err := c.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}
	return c
}
