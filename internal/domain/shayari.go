package domain

import "time"

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	OTP          string
	OTPExpiresAt time.Time
	Verified     bool
	CreatedAt    time.Time
}

type PostStatus string

const (
	PostPending  PostStatus = "pending"
	PostApproved PostStatus = "approved"
	PostRejected PostStatus = "rejected"
)

// GeneratedAuthor is the author name of auto-published posts.
const GeneratedAuthor = "Generated by Alfaaz"

type CommunityPost struct {
	ID         string     `json:"id"`
	Text       string     `json:"text"`
	AuthorName string     `json:"authorName"`
	Status     PostStatus `json:"status"`
	ExpiresAt  *time.Time `json:"expiresAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}
