package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"alfaaz/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var mood = GenerateInput{Mood: "udaas", Purpose: "yaad", Personality: "soft", Depth: "deep"}

func TestGenerate_PublishesVerse(t *testing.T) {
	tasks := new(MockTasks)
	tasks.On("Run", mock.Anything, domain.TaskGenerateShayari, mock.MatchedBy(func(p domain.GenerateShayariPayload) bool {
		return p.APIKey == "" && p.Prompt != ""
	})).Return("chaand bhi tanha hai", nil)
	posts := newMemStore()

	g := Generation{Tasks: tasks, Posts: posts, Now: fixedNow}
	out := g.Generate(context.Background(), mood)
	assert.Equal(t, "chaand bhi tanha hai", out.Text)
	assert.False(t, out.Fallback)
	assert.NotEmpty(t, out.PostID)

	require.Len(t, posts.posts, 1)
	p := posts.posts[0]
	assert.Equal(t, domain.GeneratedAuthor, p.AuthorName)
	assert.Equal(t, domain.PostApproved, p.Status)
	require.NotNil(t, p.ExpiresAt)
	assert.Equal(t, fixedNow().Add(72*time.Hour), *p.ExpiresAt)
}

func TestGenerate_FallbackOnFailure(t *testing.T) {
	tasks := new(MockTasks)
	tasks.On("Run", mock.Anything, domain.TaskGenerateShayari, mock.Anything).Return("", errors.New("API Key missing"))
	posts := newMemStore()

	out := Generation{Tasks: tasks, Posts: posts}.Generate(context.Background(), mood)
	assert.True(t, out.Fallback)
	assert.Contains(t, fallbacks, out.Text)
	require.Len(t, posts.posts, 1)
	assert.Equal(t, out.Text, posts.posts[0].Text)
}

func TestGenerate_PublishFailureStillAnswers(t *testing.T) {
	tasks := new(MockTasks)
	tasks.On("Run", mock.Anything, domain.TaskGenerateShayari, mock.Anything).Return("verse", nil)
	posts := newMemStore()
	posts.err = errors.New("db down")

	out := Generation{Tasks: tasks, Posts: posts}.Generate(context.Background(), mood)
	assert.Equal(t, "verse", out.Text)
	assert.Empty(t, out.PostID)
}

func TestGenerate_InvalidatesFeed(t *testing.T) {
	tasks := new(MockTasks)
	tasks.On("Run", mock.Anything, domain.TaskGenerateShayari, mock.Anything).Return("verse", nil)
	posts := newMemStore()
	feed := NewFeed(posts, time.Minute)

	got, err := feed.Latest(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, got)

	Generation{Tasks: tasks, Posts: posts, Feed: feed}.Generate(context.Background(), mood)

	got, err = feed.Latest(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestBuildPrompt(t *testing.T) {
	seed := time.UnixMilli(1700000000000)
	p := BuildPrompt(mood, themes[0], seed)
	assert.Contains(t, p, "Mood: udaas")
	assert.Contains(t, p, "Emotional Depth: deep")
	assert.Contains(t, p, themes[0])
	assert.Contains(t, p, "Seed: 1700000000000")
}
