//go:build integration

package postgres

import (
	"alfaaz/internal/domain"
	"alfaaz/internal/ports"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("alfaaz"),
		tcpostgres.WithUsername("alfaaz"),
		tcpostgres.WithPassword("alfaaz"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2).WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Skipf("failed to start postgres testcontainer: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	s, err := Open(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_Users(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	_, err := s.FindUserByEmail(ctx, "a@example.com")
	assert.ErrorIs(t, err, ports.ErrNotFound)

	u := &domain.User{Name: "Ghalib", Email: "a@example.com", PasswordHash: "h1", OTP: "111111", OTPExpiresAt: time.Now().Add(10 * time.Minute)}
	require.NoError(t, s.SaveUser(ctx, u))
	require.NotEmpty(t, u.ID)

	// re-registration of an unverified address updates in place
	again := &domain.User{Name: "Mirza", Email: "a@example.com", PasswordHash: "h2", OTP: "222222"}
	require.NoError(t, s.SaveUser(ctx, again))

	got, err := s.FindUserByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, "Mirza", got.Name)
	assert.Equal(t, "h2", got.PasswordHash)
	assert.Equal(t, "222222", got.OTP)
	assert.False(t, got.Verified)
}

func TestStore_Posts(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	now := time.Now()

	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)
	posts := []*domain.CommunityPost{
		{Text: "expired", AuthorName: domain.GeneratedAuthor, Status: domain.PostApproved, ExpiresAt: &past, CreatedAt: now.Add(-3 * time.Hour)},
		{Text: "older", AuthorName: domain.GeneratedAuthor, Status: domain.PostApproved, ExpiresAt: &future, CreatedAt: now.Add(-2 * time.Hour)},
		{Text: "newer", AuthorName: "Faiz", Status: domain.PostApproved, CreatedAt: now.Add(-time.Hour)},
		{Text: "pending", AuthorName: "Faiz", Status: domain.PostPending, CreatedAt: now},
	}
	for _, p := range posts {
		require.NoError(t, s.CreatePost(ctx, p))
	}

	feed, err := s.ListApprovedPosts(ctx, now, 10)
	require.NoError(t, err)
	require.Len(t, feed, 2)
	assert.Equal(t, "newer", feed[0].Text)
	assert.Equal(t, "older", feed[1].Text)

	n, err := s.DeleteExpiredPosts(ctx, now)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	n, err = s.DeleteExpiredPosts(ctx, now)
	require.NoError(t, err)
	assert.Zero(t, n)
}
