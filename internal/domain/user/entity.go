package user

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// User represents a marketplace account in the domain
type User struct {
	ID             uuid.UUID
	Email          string
	PasswordHashed string
	FullName       string
	Phone          string
	Location       string
	Gender         string
	ProfilePicture *string
	Role           string

	// Seller reputation, recomputed from the full review set
	Rating       float64
	TotalReviews int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DisplayRating rounds the stored full-precision rating to one decimal.
func (u *User) DisplayRating() float64 {
	return math.Round(u.Rating*10) / 10
}

// RefreshToken represents a refresh token entity
type RefreshToken struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Token     string
	ExpiresAt time.Time
	Revoked   bool
	RevokedAt time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsExpired checks if the refresh token is expired
func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// IsActive checks if the refresh token is active (not revoked and not expired)
func (rt *RefreshToken) IsActive() bool {
	return !rt.Revoked && !rt.IsExpired()
}
