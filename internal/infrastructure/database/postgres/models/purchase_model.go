package models

import (
	"time"

	"github.com/google/uuid"
)

// PurchaseModel represents the database model for Purchases
type PurchaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	BuyerID   uuid.UUID `gorm:"type:uuid;not null;index"`
	SellerID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Status    string    `gorm:"type:varchar(20);not null;default:'pending';index"`

	// Buyer contact snapshot taken at purchase time
	BuyerName  string  `gorm:"type:varchar(255);not null"`
	BuyerEmail string  `gorm:"type:varchar(255);not null"`
	BuyerPhone string  `gorm:"type:varchar(30)"`
	Notes      *string `gorm:"type:text"`

	CreatedAt time.Time `gorm:"not null;index"`
	UpdatedAt time.Time `gorm:"not null"`

	Product *ProductModel `gorm:"foreignKey:ProductID"`
	Buyer   *UserModel    `gorm:"foreignKey:BuyerID"`
	Seller  *UserModel    `gorm:"foreignKey:SellerID"`
}

func (PurchaseModel) TableName() string {
	return "purchases"
}
