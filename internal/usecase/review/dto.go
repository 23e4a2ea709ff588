package review

import (
	"time"

	domainReview "ecotrade-marketplace/internal/domain/review"

	"github.com/google/uuid"
)

// Request DTOs
type SubmitReviewRequest struct {
	PurchaseID uuid.UUID `json:"purchase_id" validate:"required,uuid"`
	Rating     int       `json:"rating" validate:"omitempty,min=0,max=5"`
	Comment    *string   `json:"comment" validate:"omitempty,max=500"`
}

type ListReviewsRequest struct {
	Page     int `form:"page" validate:"omitempty,min=1"`
	PageSize int `form:"page_size" validate:"omitempty,min=1,max=100"`
}

// Response DTOs
type ReviewerInfo struct {
	ID       uuid.UUID `json:"id"`
	FullName string    `json:"full_name"`
}

type ReviewResponse struct {
	ID             uuid.UUID     `json:"id"`
	PurchaseID     uuid.UUID     `json:"purchase_id"`
	ReviewedUserID uuid.UUID     `json:"reviewed_user_id"`
	Reviewer       *ReviewerInfo `json:"reviewer,omitempty"`
	Rating         int           `json:"rating"`
	Comment        *string       `json:"comment,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
}

type ReviewListResponse struct {
	Reviews  []*ReviewResponse `json:"reviews"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`

	// Seller aggregate alongside the page
	AverageRating float64 `json:"average_rating"`
	TotalReviews  int     `json:"total_reviews"`
}

func toReviewResponse(r *domainReview.Review) *ReviewResponse {
	return &ReviewResponse{
		ID:             r.ID,
		PurchaseID:     r.PurchaseID,
		ReviewedUserID: r.ReviewedUserID,
		Rating:         r.Rating,
		Comment:        r.Comment,
		CreatedAt:      r.CreatedAt,
	}
}
