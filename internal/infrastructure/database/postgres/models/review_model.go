package models

import (
	"time"

	"github.com/google/uuid"
)

// ReviewModel represents the database model for Reviews
type ReviewModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	PurchaseID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	ReviewerID     uuid.UUID `gorm:"type:uuid;not null;index"`
	ReviewedUserID uuid.UUID `gorm:"type:uuid;not null;index"`
	Rating         int       `gorm:"type:integer;not null;check:rating >= 1 AND rating <= 5"`
	Comment        *string   `gorm:"type:varchar(500)"`
	CreatedAt      time.Time `gorm:"not null"`

	Purchase     *PurchaseModel `gorm:"foreignKey:PurchaseID"`
	Reviewer     *UserModel     `gorm:"foreignKey:ReviewerID"`
	ReviewedUser *UserModel     `gorm:"foreignKey:ReviewedUserID"`
}

func (ReviewModel) TableName() string {
	return "reviews"
}
