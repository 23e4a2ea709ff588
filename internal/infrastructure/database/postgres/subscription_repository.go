package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ecotrade-marketplace/internal/domain/subscription"
	"ecotrade-marketplace/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SubscriptionRepository implements the subscription domain Repository interface
type SubscriptionRepository struct {
	db *DB
}

// NewSubscriptionRepository creates a new subscription repository
func NewSubscriptionRepository(db *DB) subscription.Repository {
	return &SubscriptionRepository{db: db}
}

func (r *SubscriptionRepository) Create(ctx context.Context, sub *subscription.Subscription) error {
	now := time.Now()
	sub.ID = uuid.New()
	sub.CreatedAt = now
	sub.UpdatedAt = now

	dbModel := toSubscriptionModel(sub)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create subscription: %w", err)
	}

	sub.ID = dbModel.ID
	sub.CreatedAt = dbModel.CreatedAt
	sub.UpdatedAt = dbModel.UpdatedAt

	return nil
}

func (r *SubscriptionRepository) GetByID(ctx context.Context, subscriptionID uuid.UUID) (*subscription.Subscription, error) {
	var dbModel models.SubscriptionModel
	err := r.db.DB.WithContext(ctx).First(&dbModel, "id = ?", subscriptionID).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, subscription.ErrSubscriptionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	return toSubscriptionEntity(&dbModel), nil
}

func (r *SubscriptionRepository) GetActiveByUser(ctx context.Context, userID uuid.UUID) (*subscription.Subscription, error) {
	var dbModel models.SubscriptionModel
	err := r.db.DB.WithContext(ctx).
		Where("user_id = ? AND status = ? AND expires_at > ?", userID, string(subscription.StatusActive), time.Now()).
		Order("created_at DESC").
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, subscription.ErrNoActiveSubscription
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get active subscription: %w", err)
	}

	return toSubscriptionEntity(&dbModel), nil
}

func (r *SubscriptionRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*subscription.Subscription, error) {
	var dbModels []models.SubscriptionModel
	err := r.db.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	entities := make([]*subscription.Subscription, len(dbModels))
	for i := range dbModels {
		entities[i] = toSubscriptionEntity(&dbModels[i])
	}

	return entities, nil
}

func (r *SubscriptionRepository) Update(ctx context.Context, sub *subscription.Subscription) error {
	updates := map[string]interface{}{
		"plan":                    string(sub.Plan),
		"billing_cycle":           string(sub.BillingCycle),
		"price":                   sub.Price,
		"status":                  string(sub.Status),
		"products_limit":          sub.ProductsLimit,
		"featured_products_limit": sub.FeaturedProductsLimit,
		"analytics_enabled":       sub.AnalyticsEnabled,
		"expires_at":              sub.ExpiresAt,
		"updated_at":              time.Now(),
	}

	result := r.db.DB.WithContext(ctx).
		Model(&models.SubscriptionModel{}).
		Where("id = ?", sub.ID).
		Updates(updates)

	if result.Error != nil {
		return fmt.Errorf("failed to update subscription: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return subscription.ErrSubscriptionNotFound
	}

	return nil
}

func (r *SubscriptionRepository) Cancel(ctx context.Context, subscriptionID uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).
		Model(&models.SubscriptionModel{}).
		Where("id = ?", subscriptionID).
		Updates(map[string]interface{}{
			"status":     string(subscription.StatusCancelled),
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to cancel subscription: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return subscription.ErrSubscriptionNotFound
	}

	return nil
}

func toSubscriptionModel(sub *subscription.Subscription) *models.SubscriptionModel {
	return &models.SubscriptionModel{
		ID:                    sub.ID,
		UserID:                sub.UserID,
		Plan:                  string(sub.Plan),
		BillingCycle:          string(sub.BillingCycle),
		Price:                 sub.Price,
		Status:                string(sub.Status),
		ProductsLimit:         sub.ProductsLimit,
		FeaturedProductsLimit: sub.FeaturedProductsLimit,
		AnalyticsEnabled:      sub.AnalyticsEnabled,
		StartedAt:             sub.StartedAt,
		ExpiresAt:             sub.ExpiresAt,
		CreatedAt:             sub.CreatedAt,
		UpdatedAt:             sub.UpdatedAt,
	}
}

func toSubscriptionEntity(m *models.SubscriptionModel) *subscription.Subscription {
	return &subscription.Subscription{
		ID:                    m.ID,
		UserID:                m.UserID,
		Plan:                  subscription.Plan(m.Plan),
		BillingCycle:          subscription.BillingCycle(m.BillingCycle),
		Price:                 m.Price,
		Status:                subscription.SubscriptionStatus(m.Status),
		ProductsLimit:         m.ProductsLimit,
		FeaturedProductsLimit: m.FeaturedProductsLimit,
		AnalyticsEnabled:      m.AnalyticsEnabled,
		StartedAt:             m.StartedAt,
		ExpiresAt:             m.ExpiresAt,
		CreatedAt:             m.CreatedAt,
		UpdatedAt:             m.UpdatedAt,
	}
}
