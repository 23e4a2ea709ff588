package models

import (
	"time"

	"github.com/google/uuid"
)

// MessageModel represents the database model for Messages
type MessageModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	PurchaseID uuid.UUID `gorm:"type:uuid;not null;index"`
	SenderID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Text       string    `gorm:"column:message;type:text;not null"`
	CreatedAt  time.Time `gorm:"not null;index"`

	Purchase *PurchaseModel `gorm:"foreignKey:PurchaseID"`
	Sender   *UserModel     `gorm:"foreignKey:SenderID"`
}

func (MessageModel) TableName() string {
	return "messages"
}
