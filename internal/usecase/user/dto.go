package user

import (
	"time"

	domainUser "ecotrade-marketplace/internal/domain/user"

	"github.com/google/uuid"
)

// Request DTOs
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"full_name" validate:"required,min=2,max=255"`
	Phone    string `json:"phone" validate:"omitempty,phone"`
	Location string `json:"location" validate:"omitempty,max=255"`
	Gender   string `json:"gender" validate:"omitempty,oneof=masculino femenino otro"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type UpdateProfileRequest struct {
	FullName       *string `json:"full_name" validate:"omitempty,min=2,max=255"`
	Phone          *string `json:"phone" validate:"omitempty,phone"`
	Location       *string `json:"location" validate:"omitempty,max=255"`
	Gender         *string `json:"gender" validate:"omitempty,oneof=masculino femenino otro"`
	ProfilePicture *string `json:"profile_picture" validate:"omitempty,url"`
}

// Response DTOs
type UserResponse struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	FullName       string    `json:"full_name"`
	Phone          string    `json:"phone,omitempty"`
	Location       string    `json:"location,omitempty"`
	Gender         string    `json:"gender,omitempty"`
	ProfilePicture *string   `json:"profile_picture,omitempty"`
	Role           string    `json:"role"`
	Rating         float64   `json:"rating"`
	TotalReviews   int       `json:"total_reviews"`
	CreatedAt      time.Time `json:"created_at"`
}

type AuthResponse struct {
	User         *UserResponse `json:"user"`
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	ExpiresAt    int64         `json:"expires_at"`
}

// ToUserResponse maps a domain user to its API representation.
func ToUserResponse(u *domainUser.User) *UserResponse {
	return &UserResponse{
		ID:             u.ID,
		Email:          u.Email,
		FullName:       u.FullName,
		Phone:          u.Phone,
		Location:       u.Location,
		Gender:         u.Gender,
		ProfilePicture: u.ProfilePicture,
		Role:           u.Role,
		Rating:         u.DisplayRating(),
		TotalReviews:   u.TotalReviews,
		CreatedAt:      u.CreatedAt,
	}
}
