package usecase

import (
	"alfaaz/internal/domain"
	"alfaaz/internal/ports"
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

const defaultPostTTL = 72 * time.Hour

// Generation produces a shayari and auto-publishes it to the community
// feed. It never fails: a generation error is logged and replaced by a
// fallback verse, and a publishing error is only logged.
type Generation struct {
	Tasks   ports.TaskRunner
	Posts   ports.PostStore
	Feed    *Feed
	PostTTL time.Duration
	Now     func() time.Time
}

type Generated struct {
	Text     string
	Fallback bool
	PostID   string
}

func (g Generation) Generate(ctx context.Context, in GenerateInput) Generated {
	logger := log.Ctx(ctx)
	now := g.now()

	prompt := BuildPrompt(in, randomTheme(), now)
	out := Generated{}
	text, err := g.Tasks.Run(ctx, domain.TaskGenerateShayari, domain.GenerateShayariPayload{Prompt: prompt})
	if err != nil {
		logger.Warn().Err(err).Msg("generation failed, serving fallback")
		text = randomFallback()
		out.Fallback = true
	}
	out.Text = text

	ttl := g.PostTTL
	if ttl <= 0 {
		ttl = defaultPostTTL
	}
	expires := now.Add(ttl)
	post := &domain.CommunityPost{
		Text:       text,
		AuthorName: domain.GeneratedAuthor,
		Status:     domain.PostApproved,
		ExpiresAt:  &expires,
		CreatedAt:  now,
	}
	if err := g.Posts.CreatePost(ctx, post); err != nil {
		logger.Error().Err(err).Bool("fallback", out.Fallback).Msg("auto-publish failed")
		return out
	}

	out.PostID = post.ID
	if g.Feed != nil {
		g.Feed.Invalidate()
	}
	logger.Info().Str("post_id", post.ID).Bool("fallback", out.Fallback).Msg("auto-published to feed")
	return out
}

func (g Generation) now() time.Time {
	if g.Now != nil {
		return g.Now()
	}
	return time.Now()
}
