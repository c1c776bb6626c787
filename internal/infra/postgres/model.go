package postgres

import (
	"alfaaz/internal/domain"
	"time"
)

type UserModel struct {
	ID           string `gorm:"primaryKey;type:uuid"`
	Name         string
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	OTP          string
	OTPExpiresAt time.Time
	Verified     bool `gorm:"not null;default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (UserModel) TableName() string { return "users" }

func (m UserModel) toDomain() *domain.User {
	return &domain.User{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		OTP:          m.OTP,
		OTPExpiresAt: m.OTPExpiresAt,
		Verified:     m.Verified,
		CreatedAt:    m.CreatedAt,
	}
}

type PostModel struct {
	ID         string `gorm:"primaryKey;type:uuid"`
	Text       string `gorm:"not null"`
	AuthorName string `gorm:"not null"`
	Status     string `gorm:"index;not null;default:pending"`
	// ExpiresAt is indexed for the janitor sweep
	ExpiresAt *time.Time `gorm:"index"`
	CreatedAt time.Time  `gorm:"index"`
}

func (PostModel) TableName() string { return "community_posts" }

func (m PostModel) toDomain() domain.CommunityPost {
	return domain.CommunityPost{
		ID:         m.ID,
		Text:       m.Text,
		AuthorName: m.AuthorName,
		Status:     domain.PostStatus(m.Status),
		ExpiresAt:  m.ExpiresAt,
		CreatedAt:  m.CreatedAt,
	}
}
