package purchase

import (
	"time"

	"github.com/google/uuid"
)

// Status represents the status of a purchase
type Status string

const (
	StatusPending   Status = "pending"   // Buyer submitted the purchase
	StatusConfirmed Status = "confirmed" // Seller accepted the purchase
	StatusCompleted Status = "completed" // Hand-off done, product becomes sold
	StatusCancelled Status = "cancelled" // Abandoned before completion
)

// Purchase represents a buyer-seller transaction tied to exactly one product
type Purchase struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	BuyerID   uuid.UUID
	SellerID  uuid.UUID
	Status    Status

	// Buyer contact snapshot taken at purchase time
	BuyerName  string
	BuyerEmail string
	BuyerPhone string
	Notes      *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsParticipant reports whether userID is the buyer or seller of this purchase.
func (p *Purchase) IsParticipant(userID uuid.UUID) bool {
	return userID == p.BuyerID || userID == p.SellerID
}

// IsTerminal reports whether the status admits no further transitions.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}
