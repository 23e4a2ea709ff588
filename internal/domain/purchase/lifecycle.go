package purchase

import (
	"fmt"

	"github.com/google/uuid"

	appErrors "ecotrade-marketplace/pkg/errors"
)

// State machine for purchase status transitions
var validTransitions = map[Status][]Status{
	StatusPending: {
		StatusConfirmed,
		StatusCancelled,
	},
	StatusConfirmed: {
		StatusCompleted,
		StatusCancelled,
	},
	StatusCompleted: {
		// Terminal state - no transitions
	},
	StatusCancelled: {
		// Terminal state - no transitions
	},
}

// ValidateTransition checks if a status transition is allowed
func ValidateTransition(currentStatus, newStatus Status) error {
	allowedStatuses, exists := validTransitions[currentStatus]
	if !exists {
		return appErrors.NewAppError(
			"INVALID_STATUS",
			fmt.Sprintf("Unknown current status: %s", currentStatus),
			ErrInvalidStatus,
		)
	}

	for _, allowed := range allowedStatuses {
		if newStatus == allowed {
			return nil
		}
	}

	return appErrors.NewAppError(
		appErrors.CodeInvalidTransition,
		fmt.Sprintf("Cannot transition from %s to %s", currentStatus, newStatus),
		appErrors.ErrInvalidTransition,
	)
}

// AllowedTransitions returns allowed next statuses
func AllowedTransitions(currentStatus Status) []Status {
	return validTransitions[currentStatus]
}

// transitionActor describes who may drive a purchase into a status.
type transitionActor struct {
	Seller bool
	Buyer  bool
}

var transitionActors = map[Status]transitionActor{
	StatusConfirmed: {Seller: true},
	StatusCompleted: {Seller: true},
	StatusCancelled: {Seller: true, Buyer: true},
}

// AuthorizeTransition validates both the transition itself and that actorID
// is allowed to drive it.
func AuthorizeTransition(p *Purchase, actorID uuid.UUID, newStatus Status) error {
	if !p.IsParticipant(actorID) {
		return appErrors.NewAppError(
			appErrors.CodeNotAuthorized,
			"Only the buyer or seller may act on this purchase",
			appErrors.ErrNotAuthorized,
		)
	}

	if err := ValidateTransition(p.Status, newStatus); err != nil {
		return err
	}

	actor, exists := transitionActors[newStatus]
	if !exists {
		return appErrors.NewAppError(
			"INVALID_STATUS",
			fmt.Sprintf("Unknown target status: %s", newStatus),
			ErrInvalidStatus,
		)
	}

	if actor.Seller && actorID == p.SellerID {
		return nil
	}
	if actor.Buyer && actorID == p.BuyerID {
		return nil
	}

	return appErrors.NewAppError(
		appErrors.CodeNotAuthorized,
		fmt.Sprintf("User may not move this purchase to %s", newStatus),
		appErrors.ErrNotAuthorized,
	)
}

// CanInitiatePurchase reports whether buyerID may open a purchase for a
// product that is still available and not their own.
func CanInitiatePurchase(buyerID, sellerID uuid.UUID, productAvailable bool) bool {
	if buyerID == uuid.Nil {
		return false
	}
	return productAvailable && buyerID != sellerID
}

// CanCancel reports whether userID may cancel the purchase.
func CanCancel(userID uuid.UUID, p *Purchase) bool {
	if !p.IsParticipant(userID) {
		return false
	}
	return p.Status == StatusPending || p.Status == StatusConfirmed
}

// CanChat reports whether userID may read or send messages on the purchase.
// Chat stays open on completed purchases so buyer and seller can settle
// delivery details after the sale.
func CanChat(userID uuid.UUID, p *Purchase) bool {
	if !p.IsParticipant(userID) {
		return false
	}
	return p.Status != StatusCancelled
}

// CanReview reports whether userID may review the seller of the purchase.
// Only the buyer reviews, only once, and only after the seller confirmed.
func CanReview(userID uuid.UUID, p *Purchase, alreadyReviewed bool) bool {
	if userID != p.BuyerID {
		return false
	}
	if alreadyReviewed {
		return false
	}
	return p.Status == StatusConfirmed || p.Status == StatusCompleted
}
