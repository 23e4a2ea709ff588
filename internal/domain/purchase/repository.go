package purchase

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for purchase repository operations
type Repository interface {
	Create(ctx context.Context, purchase *Purchase) error
	GetByID(ctx context.Context, purchaseID uuid.UUID) (*Purchase, error)
	UpdateStatus(ctx context.Context, purchaseID uuid.UUID, status Status) error
	List(ctx context.Context, filter *Filter) ([]*Purchase, int64, error)
	ListByParticipant(ctx context.Context, userID uuid.UUID) ([]*Purchase, error)
	CountByBuyer(ctx context.Context, buyerID uuid.UUID) (int64, error)
	HasActiveByProduct(ctx context.Context, productID uuid.UUID) (bool, error)
}

// Filter represents filtering options for listing purchases
type Filter struct {
	BuyerID  *uuid.UUID
	SellerID *uuid.UUID

	// ParticipantID matches either side of the transaction
	ParticipantID *uuid.UUID

	Status *Status

	Page     int
	PageSize int
}
