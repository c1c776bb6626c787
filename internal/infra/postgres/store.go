package postgres

import (
	"alfaaz/internal/domain"
	"alfaaz/internal/ports"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

var (
	_ ports.UserStore = (*Store)(nil)
	_ ports.PostStore = (*Store)(nil)
)

type Store struct {
	DB *gorm.DB
}

// Open connects to Postgres and migrates the schema.
func Open(dsn string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	if err := db.AutoMigrate(&UserModel{}, &PostModel{}); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}
	log.Info().Msg("postgres store ready")
	return &Store{DB: db}, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var m UserModel
	err := s.DB.WithContext(ctx).Where("email = ?", email).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ports.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return m.toDomain(), nil
}

func (s *Store) SaveUser(ctx context.Context, u *domain.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	m := UserModel{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		OTP:          u.OTP,
		OTPExpiresAt: u.OTPExpiresAt,
		Verified:     u.Verified,
	}
	err := s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "password_hash", "otp", "otp_expires_at", "verified", "updated_at"}),
	}).Create(&m).Error
	if err != nil {
		return err
	}
	u.CreatedAt = m.CreatedAt
	return nil
}

func (s *Store) CreatePost(ctx context.Context, p *domain.CommunityPost) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	m := PostModel{
		ID:         p.ID,
		Text:       p.Text,
		AuthorName: p.AuthorName,
		Status:     string(p.Status),
		ExpiresAt:  p.ExpiresAt,
		CreatedAt:  p.CreatedAt,
	}
	if err := s.DB.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	p.CreatedAt = m.CreatedAt
	return nil
}

func (s *Store) ListApprovedPosts(ctx context.Context, now time.Time, limit int) ([]domain.CommunityPost, error) {
	var ms []PostModel
	err := s.DB.WithContext(ctx).
		Where("status = ?", string(domain.PostApproved)).
		Where("expires_at IS NULL OR expires_at > ?", now).
		Order("created_at DESC").
		Limit(limit).
		Find(&ms).Error
	if err != nil {
		return nil, err
	}

	posts := make([]domain.CommunityPost, 0, len(ms))
	for _, m := range ms {
		posts = append(posts, m.toDomain())
	}
	return posts, nil
}

func (s *Store) DeleteExpiredPosts(ctx context.Context, now time.Time) (int64, error) {
	res := s.DB.WithContext(ctx).Where("expires_at IS NOT NULL AND expires_at <= ?", now).Delete(&PostModel{})
	return res.RowsAffected, res.Error
}
