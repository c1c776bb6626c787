package redisq

import (
	"alfaaz/internal/domain"
	"alfaaz/internal/ports"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var _ ports.Outbox = (*Client)(nil)

func (c *Client) Enqueue(ctx context.Context, j domain.Job) (string, error) {
	if j.ID == "" {
		j.ID = uuid.NewString()
	}
	if j.CreatedAt.IsZero() {
		j.CreatedAt = time.Now()
	}
	j.Status = domain.StatusQueued

	if err := c.SaveState(ctx, j); err != nil {
		return "", err
	}
	b, err := json.Marshal(j)
	if err != nil {
		return "", err
	}
	if _, err := c.Rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: c.Cfg.StreamKey,
		Values: map[string]interface{}{"job": b},
	}).Result(); err != nil {
		return "", err
	}
	return j.ID, nil
}

func (c *Client) EnqueueDelayed(ctx context.Context, j domain.Job, runAt time.Time) (string, error) {
	if j.ID == "" {
		j.ID = uuid.NewString()
	}
	if j.CreatedAt.IsZero() {
		j.CreatedAt = time.Now()
	}
	j.Status = domain.StatusDelayed
	j.NextRunAt = runAt
	if err := c.SaveState(ctx, j); err != nil {
		return "", err
	}
	score := float64(runAt.UnixMilli())
	if err := c.Rdb.ZAdd(ctx, c.Cfg.ScheduledZSet, redis.Z{Score: score,
		Member: j.ID}).Err(); err != nil {
		return "", err
	}
	return j.ID, nil
}

func (c *Client) Claim(ctx context.Context, consumer string, block time.Duration) (*domain.Job, string, error) {
	res, err := c.Rdb.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    c.Cfg.Group,
		Consumer: consumer,
		Streams:  []string{c.Cfg.StreamKey, ">"},
		Count:    1,
		Block:    block,
	}).Result()

	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, "", nil
		}
		return nil, "", err
	}

	if len(res) == 0 || len(res[0].Messages) == 0 {
		return nil, "", nil
	}

	msg := res[0].Messages[0]
	var j domain.Job
	switch v := msg.Values["job"].(type) {
	case string:
		err = json.Unmarshal([]byte(v), &j)
	case []byte:
		err = json.Unmarshal(v, &j)
	default:
		err = fmt.Errorf("unexpected job encoding: %T", v)
	}
	if err != nil {
		// poison entry, never redeliver it
		_ = c.Ack(ctx, msg.ID)
		return nil, "", err
	}
	return &j, msg.ID, nil
}

func (c *Client) Ack(ctx context.Context, streamID string) error {
	return c.Rdb.XAck(ctx, c.Cfg.StreamKey, c.Cfg.Group, streamID).Err()
}

func (c *Client) Fail(ctx context.Context, streamID string, j domain.Job, err error) error {
	j.Attempts++
	j.LastError = err.Error()
	return c.SaveState(ctx, j)
}

func (c *Client) ToDLQ(ctx context.Context, streamID string, j domain.Job, reason string) error {
	b, _ := json.Marshal(struct {
		domain.Job
		Reason string `json:"reason"`
	}{j, reason})
	if err := c.Rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: c.Cfg.DLQStreamKey,
		Values: map[string]interface{}{"job": b},
	}).Err(); err != nil {
		return err
	}

	_ = c.Rdb.XAck(ctx, c.Cfg.StreamKey, c.Cfg.Group, streamID).Err()
	j.Status = domain.StatusFailed
	j.LastError = reason
	return c.SaveState(ctx, j)
}

func (c *Client) SaveState(ctx context.Context, j domain.Job) error {
	m := map[string]any{
		"status":       string(j.Status),
		"attempts":     j.Attempts,
		"max_attempts": j.MaxAttempts,
		"type":         j.Type,
		"last_error":   j.LastError,
		"created_at":   j.CreatedAt.UnixMilli(),
		"next_run_at":  j.NextRunAt.UnixMilli(),
	}
	for k, v := range j.Payload {
		m["payload:"+k] = v
	}
	return c.Rdb.HSet(ctx, jobKey(j.ID), m).Err()
}

func (c *Client) Get(ctx context.Context, id string) (*domain.Job, error) {
	h, err := c.Rdb.HGetAll(ctx, jobKey(id)).Result()
	if err != nil || len(h) == 0 {
		return nil, err
	}

	j := &domain.Job{
		ID:        id,
		Type:      h["type"],
		Status:    domain.JobStatus(h["status"]),
		LastError: h["last_error"],
		Payload:   map[string]string{},
	}
	j.Attempts, _ = strconv.Atoi(h["attempts"])
	j.MaxAttempts, _ = strconv.Atoi(h["max_attempts"])
	if ms, err := strconv.ParseInt(h["created_at"], 10, 64); err == nil {
		j.CreatedAt = time.UnixMilli(ms)
	}
	if ms, err := strconv.ParseInt(h["next_run_at"], 10, 64); err == nil {
		j.NextRunAt = time.UnixMilli(ms)
	}

	for k, v := range h {
		if p, ok := strings.CutPrefix(k, "payload:"); ok {
			j.Payload[p] = v
		}
	}
	return j, nil
}
