package usecase

import (
	"alfaaz/internal/domain"
	"alfaaz/internal/ports"
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"
)

type MockTasks struct {
	mock.Mock
}

func (m *MockTasks) Run(ctx context.Context, task domain.TaskName, payload any) (string, error) {
	args := m.Called(ctx, task, payload)
	return args.String(0), args.Error(1)
}

type MockOutbox struct {
	mock.Mock
}

func (m *MockOutbox) Enqueue(ctx context.Context, j domain.Job) (string, error) {
	args := m.Called(ctx, j)
	return args.String(0), args.Error(1)
}

func (m *MockOutbox) EnqueueDelayed(ctx context.Context, j domain.Job, runAt time.Time) (string, error) {
	args := m.Called(ctx, j, runAt)
	return args.String(0), args.Error(1)
}

func (m *MockOutbox) Claim(ctx context.Context, consumer string, block time.Duration) (*domain.Job, string, error) {
	args := m.Called(ctx, consumer, block)
	j, _ := args.Get(0).(*domain.Job)
	return j, args.String(1), args.Error(2)
}

func (m *MockOutbox) Ack(ctx context.Context, streamID string) error {
	return m.Called(ctx, streamID).Error(0)
}

func (m *MockOutbox) Fail(ctx context.Context, streamID string, j domain.Job, err error) error {
	return m.Called(ctx, streamID, j, err).Error(0)
}

func (m *MockOutbox) ToDLQ(ctx context.Context, streamID string, j domain.Job, reason string) error {
	return m.Called(ctx, streamID, j, reason).Error(0)
}

func (m *MockOutbox) SaveState(ctx context.Context, j domain.Job) error {
	return m.Called(ctx, j).Error(0)
}

func (m *MockOutbox) Get(ctx context.Context, id string) (*domain.Job, error) {
	args := m.Called(ctx, id)
	j, _ := args.Get(0).(*domain.Job)
	return j, args.Error(1)
}

// memStore is an in-memory UserStore and PostStore.
type memStore struct {
	mu        sync.Mutex
	users     map[string]domain.User
	posts     []domain.CommunityPost
	err       error
	listCalls int
}

func newMemStore() *memStore {
	return &memStore{users: map[string]domain.User{}}
}

func (s *memStore) FindUserByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[email]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return &u, nil
}

func (s *memStore) SaveUser(_ context.Context, u *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.users[u.Email] = *u
	return nil
}

func (s *memStore) CreatePost(_ context.Context, p *domain.CommunityPost) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	p.ID = "post-" + string(rune('a'+len(s.posts)))
	s.posts = append(s.posts, *p)
	return nil
}

func (s *memStore) ListApprovedPosts(_ context.Context, now time.Time, limit int) ([]domain.CommunityPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listCalls++
	var out []domain.CommunityPost
	for i := len(s.posts) - 1; i >= 0 && len(out) < limit; i-- {
		p := s.posts[i]
		if p.Status == domain.PostApproved && (p.ExpiresAt == nil || p.ExpiresAt.After(now)) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *memStore) DeleteExpiredPosts(_ context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return 0, s.err
	}
	kept := s.posts[:0]
	var n int64
	for _, p := range s.posts {
		if p.ExpiresAt != nil && !p.ExpiresAt.After(now) {
			n++
			continue
		}
		kept = append(kept, p)
	}
	s.posts = kept
	return n, nil
}
