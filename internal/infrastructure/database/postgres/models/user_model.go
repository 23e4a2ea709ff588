package models

import (
	"time"

	"github.com/google/uuid"
)

// UserModel represents the database model for Users
type UserModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Email          string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHashed string    `gorm:"type:varchar(255);not null"`
	FullName       string    `gorm:"type:varchar(255);not null"`
	Phone          string    `gorm:"type:varchar(30)"`
	Location       string    `gorm:"type:varchar(255)"`
	Gender         string    `gorm:"type:varchar(20)"`
	ProfilePicture *string   `gorm:"type:text"`
	Role           string    `gorm:"type:varchar(20);not null;default:'user'"`
	Rating         float64   `gorm:"type:decimal(4,3);not null;default:0"`
	TotalReviews   int       `gorm:"type:integer;not null;default:0"`
	CreatedAt      time.Time `gorm:"not null"`
	UpdatedAt      time.Time `gorm:"not null"`
}

func (UserModel) TableName() string {
	return "users"
}

// RefreshTokenModel represents the database model for RefreshTokens
type RefreshTokenModel struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	Token     string     `gorm:"type:varchar(255);not null;uniqueIndex"`
	ExpiresAt time.Time  `gorm:"not null"`
	Revoked   bool       `gorm:"not null;default:false"`
	RevokedAt *time.Time `gorm:"type:timestamptz"`
	CreatedAt time.Time  `gorm:"not null"`
	UpdatedAt time.Time  `gorm:"not null"`

	User *UserModel `gorm:"foreignKey:UserID"`
}

func (RefreshTokenModel) TableName() string {
	return "refresh_tokens"
}
