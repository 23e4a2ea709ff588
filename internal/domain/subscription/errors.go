package subscription

import "errors"

var (
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrNoActiveSubscription = errors.New("user has no active subscription")
	ErrInvalidPlan          = errors.New("invalid subscription plan")
	ErrNotOwner             = errors.New("user does not own this subscription")
)
