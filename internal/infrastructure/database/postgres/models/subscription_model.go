package models

import (
	"time"

	"github.com/google/uuid"
)

// SubscriptionModel represents the database model for Subscriptions
type SubscriptionModel struct {
	ID                    uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID                uuid.UUID `gorm:"type:uuid;not null;index"`
	Plan                  string    `gorm:"type:varchar(20);not null"`
	BillingCycle          string    `gorm:"type:varchar(20);not null"`
	Price                 int64     `gorm:"type:bigint;not null"`
	Status                string    `gorm:"type:varchar(20);not null;default:'active';index"`
	ProductsLimit         int       `gorm:"type:integer;not null"`
	FeaturedProductsLimit int       `gorm:"type:integer;not null"`
	AnalyticsEnabled      bool      `gorm:"not null;default:false"`
	StartedAt             time.Time `gorm:"not null"`
	ExpiresAt             time.Time `gorm:"not null"`
	CreatedAt             time.Time `gorm:"not null"`
	UpdatedAt             time.Time `gorm:"not null"`

	User *UserModel `gorm:"foreignKey:UserID"`
}

func (SubscriptionModel) TableName() string {
	return "subscriptions"
}
