package subscription

import (
	"context"
	"errors"
	"time"

	domainSubscription "ecotrade-marketplace/internal/domain/subscription"
	"ecotrade-marketplace/internal/logger"
	appErrors "ecotrade-marketplace/pkg/errors"
	"ecotrade-marketplace/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service implements subscription plan use cases
type Service struct {
	subRepo domainSubscription.Repository
}

// NewService creates a new subscription service
func NewService(subRepo domainSubscription.Repository) *Service {
	return &Service{subRepo: subRepo}
}

// Plans returns the available tiers for the pricing page.
func (s *Service) Plans() []*PlanInfo {
	plans := []domainSubscription.Plan{
		domainSubscription.PlanBasico,
		domainSubscription.PlanPro,
		domainSubscription.PlanPremium,
	}

	infos := make([]*PlanInfo, len(plans))
	for i, plan := range plans {
		limits := domainSubscription.LimitsFor(plan)
		infos[i] = &PlanInfo{
			Plan:                  plan,
			MonthlyPrice:          limits.MonthlyPrice,
			AnnualPrice:           limits.AnnualPrice,
			ProductsLimit:         limits.ProductsLimit,
			FeaturedProductsLimit: limits.FeaturedProductsLimit,
			AnalyticsEnabled:      limits.AnalyticsEnabled,
		}
	}

	return infos
}

// Subscribe activates a plan for the user. An existing active
// subscription is cancelled first so at most one is active.
func (s *Service) Subscribe(ctx context.Context, userID uuid.UUID, req *SubscribeRequest) (*SubscriptionResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError(appErrors.CodeValidation, "Invalid input", err)
	}

	plan := domainSubscription.Plan(req.Plan)
	if !domainSubscription.IsValidPlan(plan) {
		return nil, appErrors.NewAppError(appErrors.CodeValidation, "Unknown plan", domainSubscription.ErrInvalidPlan)
	}
	cycle := domainSubscription.BillingCycle(req.BillingCycle)

	if current, err := s.subRepo.GetActiveByUser(ctx, userID); err == nil {
		if err := s.subRepo.Cancel(ctx, current.ID); err != nil {
			return nil, err
		}
	} else if !errors.Is(err, domainSubscription.ErrNoActiveSubscription) {
		return nil, err
	}

	limits := domainSubscription.LimitsFor(plan)
	now := time.Now()
	duration := 30 * 24 * time.Hour
	if cycle == domainSubscription.CycleAnual {
		duration = 365 * 24 * time.Hour
	}

	newSub := &domainSubscription.Subscription{
		UserID:                userID,
		Plan:                  plan,
		BillingCycle:          cycle,
		Price:                 domainSubscription.PriceFor(plan, cycle),
		Status:                domainSubscription.StatusActive,
		ProductsLimit:         limits.ProductsLimit,
		FeaturedProductsLimit: limits.FeaturedProductsLimit,
		AnalyticsEnabled:      limits.AnalyticsEnabled,
		StartedAt:             now,
		ExpiresAt:             now.Add(duration),
	}

	if err := s.subRepo.Create(ctx, newSub); err != nil {
		return nil, err
	}

	logger.Info("Subscription activated",
		zap.String("subscription_id", newSub.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("plan", string(plan)),
		zap.String("event", "subscription_activated"),
	)

	return toSubscriptionResponse(newSub), nil
}

// Active returns the user's current subscription, or the basico tier
// presented as a virtual subscription when they have none.
func (s *Service) Active(ctx context.Context, userID uuid.UUID) (*SubscriptionResponse, error) {
	current, err := s.subRepo.GetActiveByUser(ctx, userID)
	if errors.Is(err, domainSubscription.ErrNoActiveSubscription) {
		limits := domainSubscription.LimitsFor(domainSubscription.PlanBasico)
		return &SubscriptionResponse{
			Plan:                  domainSubscription.PlanBasico,
			Status:                domainSubscription.StatusActive,
			ProductsLimit:         limits.ProductsLimit,
			FeaturedProductsLimit: limits.FeaturedProductsLimit,
			AnalyticsEnabled:      limits.AnalyticsEnabled,
		}, nil
	}
	if err != nil {
		return nil, err
	}

	return toSubscriptionResponse(current), nil
}

// History returns all of the user's subscriptions, newest first.
func (s *Service) History(ctx context.Context, userID uuid.UUID) ([]*SubscriptionResponse, error) {
	subs, err := s.subRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]*SubscriptionResponse, len(subs))
	for i, sub := range subs {
		responses[i] = toSubscriptionResponse(sub)
	}
	return responses, nil
}

// Cancel ends the user's subscription. Already-published listings stay
// up; the limits only apply to new publications.
func (s *Service) Cancel(ctx context.Context, subscriptionID, userID uuid.UUID) error {
	existing, err := s.subRepo.GetByID(ctx, subscriptionID)
	if err != nil {
		return err
	}

	if existing.UserID != userID {
		return appErrors.NewAppError(
			appErrors.CodeNotAuthorized,
			"Only the owner may cancel this subscription",
			domainSubscription.ErrNotOwner,
		)
	}

	if err := s.subRepo.Cancel(ctx, subscriptionID); err != nil {
		return err
	}

	logger.Info("Subscription cancelled",
		zap.String("subscription_id", subscriptionID.String()),
		zap.String("event", "subscription_cancelled"),
	)

	return nil
}

// Limits returns the effective limits of the user's current plan.
// Users without an active subscription get the basico limits.
func (s *Service) Limits(ctx context.Context, userID uuid.UUID) (*LimitsResponse, error) {
	plan := domainSubscription.PlanBasico
	current, err := s.subRepo.GetActiveByUser(ctx, userID)
	if err == nil {
		plan = current.Plan
	} else if !errors.Is(err, domainSubscription.ErrNoActiveSubscription) {
		return nil, err
	}

	limits := domainSubscription.LimitsFor(plan)
	return &LimitsResponse{
		Plan:                  plan,
		ProductsLimit:         limits.ProductsLimit,
		FeaturedProductsLimit: limits.FeaturedProductsLimit,
		AnalyticsEnabled:      limits.AnalyticsEnabled,
	}, nil
}

// HasAnalytics reports whether the user's plan includes the sales
// analytics dashboard.
func (s *Service) HasAnalytics(ctx context.Context, userID uuid.UUID) bool {
	current, err := s.subRepo.GetActiveByUser(ctx, userID)
	if err != nil {
		return false
	}
	return domainSubscription.LimitsFor(current.Plan).AnalyticsEnabled
}
