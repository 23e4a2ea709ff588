package message

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for message repository operations
type Repository interface {
	Create(ctx context.Context, message *Message) error
	GetByID(ctx context.Context, messageID uuid.UUID) (*Message, error)

	// ListByPurchase returns the full history ordered by created_at ascending.
	ListByPurchase(ctx context.Context, purchaseID uuid.UUID) ([]*Message, error)

	// ListByPurchases returns every message of the given purchases, grouped
	// by purchase and ordered ascending within each group.
	ListByPurchases(ctx context.Context, purchaseIDs []uuid.UUID) (map[uuid.UUID][]*Message, error)

	Delete(ctx context.Context, messageID uuid.UUID) error
}
