package subscription

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for subscription repository operations
type Repository interface {
	Create(ctx context.Context, subscription *Subscription) error
	GetByID(ctx context.Context, subscriptionID uuid.UUID) (*Subscription, error)
	GetActiveByUser(ctx context.Context, userID uuid.UUID) (*Subscription, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Subscription, error)
	Update(ctx context.Context, subscription *Subscription) error
	Cancel(ctx context.Context, subscriptionID uuid.UUID) error
}
