package usecase

import (
	"alfaaz/internal/domain"
	"alfaaz/internal/ports"
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/rs/zerolog/log"
)

const maxFeedLimit = 100

// Feed serves the approved, unexpired community posts, newest first.
type Feed struct {
	posts ports.PostStore
	cache *expirable.LRU[int, []domain.CommunityPost]
}

func NewFeed(posts ports.PostStore, ttl time.Duration) *Feed {
	return &Feed{
		posts: posts,
		cache: expirable.NewLRU[int, []domain.CommunityPost](16, nil, ttl),
	}
}

func (f *Feed) Latest(ctx context.Context, limit int) ([]domain.CommunityPost, error) {
	if limit <= 0 || limit > maxFeedLimit {
		limit = maxFeedLimit
	}
	if v, ok := f.cache.Get(limit); ok {
		return v, nil
	}

	posts, err := f.posts.ListApprovedPosts(ctx, time.Now(), limit)
	if err != nil {
		return nil, err
	}
	f.cache.Add(limit, posts)
	return posts, nil
}

func (f *Feed) Invalidate() {
	f.cache.Purge()
}

// Janitor removes community posts past their expiry.
type Janitor struct {
	Posts    ports.PostStore
	Interval time.Duration
	Feed     *Feed
}

func (j Janitor) Run(ctx context.Context) error {
	ticker := time.NewTicker(j.Interval)
	defer ticker.Stop()
	for {
		if _, err := j.Sweep(ctx); err != nil && ctx.Err() == nil {
			log.Ctx(ctx).Error().Err(err).Msg("expired post sweep failed")
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (j Janitor) Sweep(ctx context.Context) (int64, error) {
	n, err := j.Posts.DeleteExpiredPosts(ctx, time.Now())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		if j.Feed != nil {
			j.Feed.Invalidate()
		}
		log.Ctx(ctx).Info().Int64("deleted", n).Msg("expired posts removed")
	}
	return n, nil
}
