package subscription

import (
	"time"

	domainSubscription "ecotrade-marketplace/internal/domain/subscription"

	"github.com/google/uuid"
)

// Request DTOs
type SubscribeRequest struct {
	Plan         string `json:"plan" validate:"required,oneof=basico pro premium"`
	BillingCycle string `json:"billing_cycle" validate:"required,oneof=mensual anual"`
}

// Response DTOs
type SubscriptionResponse struct {
	ID           uuid.UUID                             `json:"id"`
	Plan         domainSubscription.Plan               `json:"plan"`
	BillingCycle domainSubscription.BillingCycle       `json:"billing_cycle"`
	Price        int64                                 `json:"price"`
	Status       domainSubscription.SubscriptionStatus `json:"status"`

	ProductsLimit         int  `json:"products_limit"`
	FeaturedProductsLimit int  `json:"featured_products_limit"`
	AnalyticsEnabled      bool `json:"analytics_enabled"`

	StartedAt time.Time `json:"started_at"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// PlanInfo describes one tier for the pricing page.
type PlanInfo struct {
	Plan                  domainSubscription.Plan `json:"plan"`
	MonthlyPrice          int64                   `json:"monthly_price"`
	AnnualPrice           int64                   `json:"annual_price"`
	ProductsLimit         int                     `json:"products_limit"`
	FeaturedProductsLimit int                     `json:"featured_products_limit"`
	AnalyticsEnabled      bool                    `json:"analytics_enabled"`
}

// LimitsResponse reports the effective limits of the user's current plan.
type LimitsResponse struct {
	Plan                  domainSubscription.Plan `json:"plan"`
	ProductsLimit         int                     `json:"products_limit"`
	FeaturedProductsLimit int                     `json:"featured_products_limit"`
	AnalyticsEnabled      bool                    `json:"analytics_enabled"`
}

func toSubscriptionResponse(s *domainSubscription.Subscription) *SubscriptionResponse {
	return &SubscriptionResponse{
		ID:                    s.ID,
		Plan:                  s.Plan,
		BillingCycle:          s.BillingCycle,
		Price:                 s.Price,
		Status:                s.Status,
		ProductsLimit:         s.ProductsLimit,
		FeaturedProductsLimit: s.FeaturedProductsLimit,
		AnalyticsEnabled:      s.AnalyticsEnabled,
		StartedAt:             s.StartedAt,
		ExpiresAt:             s.ExpiresAt,
		CreatedAt:             s.CreatedAt,
	}
}
