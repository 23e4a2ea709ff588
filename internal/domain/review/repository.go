package review

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for review repository operations
type Repository interface {
	Create(ctx context.Context, review *Review) error
	GetByID(ctx context.Context, reviewID uuid.UUID) (*Review, error)
	GetByPurchase(ctx context.Context, purchaseID uuid.UUID) (*Review, error)
	ListByReviewedUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]*Review, int64, error)
	ListAllByReviewedUser(ctx context.Context, userID uuid.UUID) ([]*Review, error)
	Delete(ctx context.Context, reviewID uuid.UUID) error
}
