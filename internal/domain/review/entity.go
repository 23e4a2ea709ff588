package review

import (
	"time"

	"github.com/google/uuid"
)

// MaxCommentLength caps review comments.
const MaxCommentLength = 500

// Review is a buyer's one-time rating of a seller for a single purchase
type Review struct {
	ID             uuid.UUID
	PurchaseID     uuid.UUID
	ReviewerID     uuid.UUID
	ReviewedUserID uuid.UUID
	Rating         int
	Comment        *string
	CreatedAt      time.Time
}

// MeanRating computes the running mean over a full review set. Stored at
// full precision; display rounding happens at the user entity.
func MeanRating(reviews []*Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(reviews))
}
