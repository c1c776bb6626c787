package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "k")
	t.Setenv("EMAIL_USER", "poet@example.com")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "k", cfg.Gemini.APIKey)
	assert.Equal(t, "gemini-flash-latest", cfg.Gemini.Model)
	assert.Equal(t, "poet@example.com", cfg.SMTP.User)
	assert.Equal(t, 587, cfg.SMTP.Port)
	assert.Equal(t, 8, cfg.Pool.MaxWorkers)
	assert.Equal(t, IsolationGoroutine, cfg.Pool.Isolation)
	assert.Equal(t, 72*time.Hour, cfg.Feed.PostTTL)
	assert.False(t, cfg.Redis.Enabled())
}

func TestParse_Overrides(t *testing.T) {
	t.Setenv("Pool_MaxWorkers", "2")
	t.Setenv("Pool_TaskTimeout", "3s")
	t.Setenv("Pool_Isolation", "process")
	t.Setenv("Redis_Address", "localhost:6379")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Pool.MaxWorkers)
	assert.Equal(t, 3*time.Second, cfg.Pool.TaskTimeout)
	assert.Equal(t, IsolationProcess, cfg.Pool.Isolation)
	assert.True(t, cfg.Redis.Enabled())
}

func TestValidate(t *testing.T) {
	t.Setenv("Pool_MaxWorkers", "0")
	t.Setenv("Pool_Isolation", "thread")

	_, err := Parse()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Pool_MaxWorkers")
	assert.Contains(t, err.Error(), "Pool_Isolation")
}
