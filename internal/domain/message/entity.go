package message

import (
	"time"

	"github.com/google/uuid"
)

// Message is an append-only chat message scoped to one purchase
type Message struct {
	ID         uuid.UUID
	PurchaseID uuid.UUID
	SenderID   uuid.UUID
	Text       string
	CreatedAt  time.Time
}
