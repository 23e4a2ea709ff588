package subscription

import (
	"time"

	"github.com/google/uuid"
)

// Plan identifies a subscription tier
type Plan string

const (
	PlanBasico  Plan = "basico"
	PlanPro     Plan = "pro"
	PlanPremium Plan = "premium"
)

// BillingCycle identifies the billing period
type BillingCycle string

const (
	CycleMensual BillingCycle = "mensual"
	CycleAnual   BillingCycle = "anual"
)

// SubscriptionStatus represents subscription state
type SubscriptionStatus string

const (
	StatusActive    SubscriptionStatus = "active"
	StatusCancelled SubscriptionStatus = "cancelled"
	StatusExpired   SubscriptionStatus = "expired"
)

// Subscription represents a user's paid plan. At most one active per user;
// a user without one behaves as plan basico.
type Subscription struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Plan         Plan
	BillingCycle BillingCycle

	// Price in colones, whole units
	Price int64

	Status SubscriptionStatus

	ProductsLimit         int // -1 means unlimited
	FeaturedProductsLimit int
	AnalyticsEnabled      bool

	StartedAt time.Time
	ExpiresAt time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive reports whether the subscription is currently usable.
func (s *Subscription) IsActive() bool {
	return s.Status == StatusActive && time.Now().Before(s.ExpiresAt)
}
