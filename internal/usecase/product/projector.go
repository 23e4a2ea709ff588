package product

import (
	"context"

	domainProduct "ecotrade-marketplace/internal/domain/product"
	domainPurchase "ecotrade-marketplace/internal/domain/purchase"
	domainUser "ecotrade-marketplace/internal/domain/user"
	"ecotrade-marketplace/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Projector assembles the profile dashboard from independent sources.
// A source that fails is reported in ProfileStats.Partial instead of
// failing the whole projection.
type Projector struct {
	productRepo  domainProduct.Repository
	purchaseRepo domainPurchase.Repository
	userRepo     domainUser.Repository
}

// NewProjector creates a new profile stats projector
func NewProjector(
	productRepo domainProduct.Repository,
	purchaseRepo domainPurchase.Repository,
	userRepo domainUser.Repository,
) *Projector {
	return &Projector{
		productRepo:  productRepo,
		purchaseRepo: purchaseRepo,
		userRepo:     userRepo,
	}
}

// ProfileStats projects the user's listings, purchases and reputation
// into one dashboard snapshot.
func (p *Projector) ProfileStats(ctx context.Context, userID uuid.UUID) (*ProfileStats, error) {
	stats := &ProfileStats{}

	available, err := p.productRepo.CountBySellerAndStatus(ctx, userID, domainProduct.StatusAvailable)
	if err != nil {
		p.degrade(stats, "listings", err)
	} else {
		stats.AvailableCount = available

		sold, err := p.productRepo.CountBySellerAndStatus(ctx, userID, domainProduct.StatusSold)
		if err != nil {
			p.degrade(stats, "listings", err)
			stats.AvailableCount = 0
		} else {
			stats.SoldCount = sold
		}
	}

	// Server-reported total, so the count does not depend on page size
	purchased, err := p.purchaseRepo.CountByBuyer(ctx, userID)
	if err != nil {
		p.degrade(stats, "purchases", err)
	} else {
		stats.PurchasedCount = purchased
	}

	owner, err := p.userRepo.GetByID(ctx, userID)
	if err != nil {
		p.degrade(stats, "reputation", err)
	} else {
		stats.ReviewsReceived = int64(owner.TotalReviews)
		stats.AverageRating = owner.DisplayRating()
	}

	return stats, nil
}

func (p *Projector) degrade(stats *ProfileStats, section string, err error) {
	for _, existing := range stats.Partial {
		if existing == section {
			return
		}
	}
	stats.Partial = append(stats.Partial, section)
	logger.Warn("Profile stats section unavailable",
		zap.String("section", section),
		zap.Error(err),
	)
}
