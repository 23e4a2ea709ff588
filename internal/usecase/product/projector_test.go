package product

import (
	"context"
	"errors"
	"testing"

	domainProduct "ecotrade-marketplace/internal/domain/product"
	domainPurchase "ecotrade-marketplace/internal/domain/purchase"
	domainUser "ecotrade-marketplace/internal/domain/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProductRepo struct {
	domainProduct.Repository

	available int64
	sold      int64
	countErr  error
}

func (s *stubProductRepo) CountBySellerAndStatus(_ context.Context, _ uuid.UUID, status domainProduct.ProductStatus) (int64, error) {
	if s.countErr != nil {
		return 0, s.countErr
	}
	if status == domainProduct.StatusSold {
		return s.sold, nil
	}
	return s.available, nil
}

type stubPurchaseRepo struct {
	domainPurchase.Repository

	purchased int64
	countErr  error
}

func (s *stubPurchaseRepo) CountByBuyer(_ context.Context, _ uuid.UUID) (int64, error) {
	if s.countErr != nil {
		return 0, s.countErr
	}
	return s.purchased, nil
}

type stubUserRepo struct {
	domainUser.Repository

	user   *domainUser.User
	getErr error
}

func (s *stubUserRepo) GetByID(_ context.Context, _ uuid.UUID) (*domainUser.User, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.user, nil
}

func TestProfileStats(t *testing.T) {
	projector := NewProjector(
		&stubProductRepo{available: 3, sold: 2},
		&stubPurchaseRepo{purchased: 7},
		&stubUserRepo{user: &domainUser.User{Rating: 4.25, TotalReviews: 8}},
	)

	stats, err := projector.ProfileStats(context.Background(), uuid.New())
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.AvailableCount)
	assert.Equal(t, int64(2), stats.SoldCount)
	assert.Equal(t, int64(7), stats.PurchasedCount)
	assert.Equal(t, int64(8), stats.ReviewsReceived)
	assert.InDelta(t, 4.3, stats.AverageRating, 0.0001)
	assert.Empty(t, stats.Partial)
}

func TestProfileStatsPurchasesUnavailable(t *testing.T) {
	projector := NewProjector(
		&stubProductRepo{available: 3, sold: 2},
		&stubPurchaseRepo{countErr: errors.New("backend unavailable")},
		&stubUserRepo{user: &domainUser.User{}},
	)

	stats, err := projector.ProfileStats(context.Background(), uuid.New())
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.AvailableCount)
	assert.Equal(t, int64(2), stats.SoldCount)
	assert.Equal(t, int64(0), stats.PurchasedCount)
	assert.Contains(t, stats.Partial, "purchases")
}

func TestProfileStatsListingsUnavailable(t *testing.T) {
	projector := NewProjector(
		&stubProductRepo{countErr: errors.New("backend unavailable")},
		&stubPurchaseRepo{purchased: 4},
		&stubUserRepo{user: &domainUser.User{}},
	)

	stats, err := projector.ProfileStats(context.Background(), uuid.New())
	require.NoError(t, err)

	assert.Equal(t, int64(0), stats.AvailableCount)
	assert.Equal(t, int64(4), stats.PurchasedCount)
	assert.Contains(t, stats.Partial, "listings")
}
