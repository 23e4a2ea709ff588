package models

import (
	"time"

	"github.com/google/uuid"
)

// ProductModel represents the database model for Products
type ProductModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	SellerID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Title       string    `gorm:"type:varchar(255);not null"`
	Description string    `gorm:"type:text;not null"`
	Category    string    `gorm:"type:varchar(50);not null;index"`
	Condition   string    `gorm:"type:varchar(20);not null"`
	Size        string    `gorm:"type:varchar(20)"`
	Price       int64     `gorm:"type:bigint;not null;check:price > 0"`
	Location    string    `gorm:"type:varchar(255)"`

	// Ordered image URLs stored as a JSON array
	Images string `gorm:"type:jsonb;not null;default:'[]'"`

	Status    string    `gorm:"type:varchar(20);not null;default:'available';index"`
	Featured  bool      `gorm:"not null;default:false;index"`
	CreatedAt time.Time `gorm:"not null;index"`
	UpdatedAt time.Time `gorm:"not null"`

	Seller *UserModel `gorm:"foreignKey:SellerID"`
}

func (ProductModel) TableName() string {
	return "products"
}
