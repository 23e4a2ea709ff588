package product

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for product repository operations
type Repository interface {
	Create(ctx context.Context, product *Product) error
	GetByID(ctx context.Context, productID uuid.UUID) (*Product, error)
	GetByIDs(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]*Product, error)
	Update(ctx context.Context, product *Product) error
	UpdateStatus(ctx context.Context, productID uuid.UUID, status ProductStatus) error
	Delete(ctx context.Context, productID uuid.UUID) error
	List(ctx context.Context, filter *Filter) ([]*Product, int64, error)
	ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]*Product, error)
	ListFeatured(ctx context.Context, limit int) ([]*Product, error)
	CountBySellerAndStatus(ctx context.Context, sellerID uuid.UUID, status ProductStatus) (int64, error)
	CountFeaturedBySeller(ctx context.Context, sellerID uuid.UUID) (int64, error)
}

// Filter represents filtering options for listing products
type Filter struct {
	Status    *ProductStatus
	Category  string
	Condition *Condition
	SellerID  *uuid.UUID
	PriceMin  *int64
	PriceMax  *int64
	Search    string

	Page     int
	PageSize int
}
