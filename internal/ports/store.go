package ports

import (
	"alfaaz/internal/domain"
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("not found")

type UserStore interface {
	// FindUserByEmail returns ErrNotFound when no user has the address.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	// SaveUser inserts the user or updates the existing row with the same email.
	SaveUser(ctx context.Context, u *domain.User) error
}

type PostStore interface {
	CreatePost(ctx context.Context, p *domain.CommunityPost) error
	ListApprovedPosts(ctx context.Context, now time.Time, limit int) ([]domain.CommunityPost, error)
	DeleteExpiredPosts(ctx context.Context, now time.Time) (int64, error)
}
