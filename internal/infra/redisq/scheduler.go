package redisq

import (
	"alfaaz/internal/domain"
	"alfaaz/internal/ports"
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

var _ ports.Scheduler = (*Scheduler)(nil)

type Scheduler struct {
	C        *Client
	Interval time.Duration
}

func NewScheduler(c *Client, interval time.Duration) *Scheduler {
	return &Scheduler{C: c, Interval: interval}
}

func (s *Scheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()
	for {
		if _, err := s.MoveDue(ctx); err != nil && ctx.Err() == nil {
			log.Ctx(ctx).Error().Err(err).Msg("moving due jobs failed")
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// MoveDue pushes delayed jobs whose time has come onto the stream and
// reports how many were moved.
func (s *Scheduler) MoveDue(ctx context.Context) (int, error) {
	ids, err := s.C.Rdb.ZRangeByScore(ctx, s.C.Cfg.ScheduledZSet, &redis.ZRangeBy{
		Min:    "-inf",
		Max:    fmtFloat(nowMs()),
		Offset: 0,
		Count:  128,
	}).Result()
	if err != nil {
		return 0, err
	}

	moved := 0
	for _, id := range ids {
		j, err := s.C.Get(ctx, id)
		if err != nil {
			return moved, err
		}
		if j == nil {
			// state expired or was never written
			_ = s.C.Rdb.ZRem(ctx, s.C.Cfg.ScheduledZSet, id).Err()
			continue
		}

		j.Status = domain.StatusQueued
		b, _ := json.Marshal(j)
		if _, err := s.C.Rdb.XAdd(ctx, &redis.XAddArgs{
			Stream: s.C.Cfg.StreamKey,
			Values: map[string]interface{}{"job": b}}).Result(); err != nil {
			return moved, err
		}
		_ = s.C.SaveState(ctx, *j)
		_ = s.C.Rdb.ZRem(ctx, s.C.Cfg.ScheduledZSet, id).Err()
		moved++
	}
	return moved, nil
}

func fmtFloat(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
