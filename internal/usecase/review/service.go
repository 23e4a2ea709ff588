package review

import (
	"context"
	"errors"
	"fmt"

	domainPurchase "ecotrade-marketplace/internal/domain/purchase"
	domainReview "ecotrade-marketplace/internal/domain/review"
	domainUser "ecotrade-marketplace/internal/domain/user"
	"ecotrade-marketplace/internal/logger"
	appErrors "ecotrade-marketplace/pkg/errors"
	"ecotrade-marketplace/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service implements seller review use cases
type Service struct {
	reviewRepo   domainReview.Repository
	purchaseRepo domainPurchase.Repository
	userRepo     domainUser.Repository
}

// NewService creates a new review service
func NewService(
	reviewRepo domainReview.Repository,
	purchaseRepo domainPurchase.Repository,
	userRepo domainUser.Repository,
) *Service {
	return &Service{
		reviewRepo:   reviewRepo,
		purchaseRepo: purchaseRepo,
		userRepo:     userRepo,
	}
}

// Submit creates the buyer's one-time review of the seller and folds it
// into the seller's rating.
func (s *Service) Submit(ctx context.Context, reviewerID uuid.UUID, req *SubmitReviewRequest) (*ReviewResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError(appErrors.CodeValidation, "Invalid input", err)
	}

	if req.Rating == 0 {
		return nil, appErrors.NewAppError(appErrors.CodeRatingRequired, "A rating between 1 and 5 is required", appErrors.ErrRatingRequired)
	}
	if req.Rating < 1 || req.Rating > 5 {
		return nil, appErrors.NewAppError(appErrors.CodeValidation, "Rating must be between 1 and 5", appErrors.ErrInvalidInput)
	}
	if req.Comment != nil && len(*req.Comment) > domainReview.MaxCommentLength {
		return nil, appErrors.NewAppError(
			appErrors.CodeValidation,
			fmt.Sprintf("Comment may not exceed %d characters", domainReview.MaxCommentLength),
			appErrors.ErrInvalidInput,
		)
	}

	p, err := s.purchaseRepo.GetByID(ctx, req.PurchaseID)
	if err != nil {
		return nil, err
	}

	alreadyReviewed := false
	if _, err := s.reviewRepo.GetByPurchase(ctx, req.PurchaseID); err == nil {
		alreadyReviewed = true
	} else if !errors.Is(err, domainReview.ErrReviewNotFound) {
		return nil, err
	}

	if alreadyReviewed {
		return nil, appErrors.NewAppError(appErrors.CodeDuplicateReview, "Purchase has already been reviewed", appErrors.ErrDuplicateReview)
	}

	if !domainPurchase.CanReview(reviewerID, p, false) {
		return nil, appErrors.NewAppError(
			appErrors.CodeReviewNotPermitted,
			"Review is not permitted for this purchase",
			appErrors.ErrReviewNotPermitted,
		)
	}

	newReview := &domainReview.Review{
		PurchaseID:     p.ID,
		ReviewerID:     reviewerID,
		ReviewedUserID: p.SellerID,
		Rating:         req.Rating,
	}
	if req.Comment != nil {
		sanitized := utils.SanitizeText(*req.Comment)
		newReview.Comment = &sanitized
	}

	if err := s.reviewRepo.Create(ctx, newReview); err != nil {
		if errors.Is(err, domainReview.ErrReviewExists) {
			return nil, appErrors.NewAppError(appErrors.CodeDuplicateReview, "Purchase has already been reviewed", appErrors.ErrDuplicateReview)
		}
		return nil, err
	}

	if err := s.recomputeRating(ctx, p.SellerID); err != nil {
		// The review exists; the aggregate self-heals on the next recompute
		logger.Error("Failed to recompute seller rating",
			zap.String("seller_id", p.SellerID.String()),
			zap.Error(err),
		)
	}

	logger.Info("Review submitted",
		zap.String("review_id", newReview.ID.String()),
		zap.String("purchase_id", p.ID.String()),
		zap.Int("rating", req.Rating),
		zap.String("event", "review_submitted"),
	)

	return toReviewResponse(newReview), nil
}

// ListByUser returns one page of reviews received by a user, together
// with their aggregate rating.
func (s *Service) ListByUser(ctx context.Context, userID uuid.UUID, req *ListReviewsRequest) (*ReviewListResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError(appErrors.CodeValidation, "Invalid filter", err)
	}

	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize < 1 {
		pageSize = 10
	}

	reviews, total, err := s.reviewRepo.ListByReviewedUser(ctx, userID, page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]*ReviewResponse, len(reviews))
	for i, r := range reviews {
		responses[i] = toReviewResponse(r)
	}
	s.annotateReviewers(ctx, responses, reviews)

	response := &ReviewListResponse{
		Reviews:  responses,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}

	if reviewed, err := s.userRepo.GetByID(ctx, userID); err == nil {
		response.AverageRating = reviewed.DisplayRating()
		response.TotalReviews = reviewed.TotalReviews
	} else {
		logger.Warn("Reviewed user lookup failed", zap.String("user_id", userID.String()), zap.Error(err))
	}

	return response, nil
}

// Delete removes a review. The reviewer or an admin may delete; the
// seller's rating is recomputed from the remaining set.
func (s *Service) Delete(ctx context.Context, reviewID, actorID uuid.UUID, isAdmin bool) error {
	existing, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return err
	}

	if !isAdmin && existing.ReviewerID != actorID {
		return appErrors.NewAppError(
			appErrors.CodeNotAuthorized,
			"Only the reviewer may delete this review",
			appErrors.ErrNotAuthorized,
		)
	}

	if err := s.reviewRepo.Delete(ctx, reviewID); err != nil {
		return err
	}

	if err := s.recomputeRating(ctx, existing.ReviewedUserID); err != nil {
		logger.Error("Failed to recompute seller rating after delete",
			zap.String("seller_id", existing.ReviewedUserID.String()),
			zap.Error(err),
		)
	}

	logger.Info("Review deleted",
		zap.String("review_id", reviewID.String()),
		zap.String("event", "review_deleted"),
	)

	return nil
}

// recomputeRating rebuilds the aggregate from the full review set, so
// the result does not depend on submission order.
func (s *Service) recomputeRating(ctx context.Context, userID uuid.UUID) error {
	reviews, err := s.reviewRepo.ListAllByReviewedUser(ctx, userID)
	if err != nil {
		return err
	}

	return s.userRepo.UpdateRating(ctx, userID, domainReview.MeanRating(reviews), len(reviews))
}

func (s *Service) annotateReviewers(ctx context.Context, responses []*ReviewResponse, reviews []*domainReview.Review) {
	if len(reviews) == 0 {
		return
	}

	ids := make([]uuid.UUID, 0, len(reviews))
	seen := make(map[uuid.UUID]bool, len(reviews))
	for _, r := range reviews {
		if !seen[r.ReviewerID] {
			seen[r.ReviewerID] = true
			ids = append(ids, r.ReviewerID)
		}
	}

	reviewers, err := s.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		logger.Warn("Reviewer lookup failed", zap.Error(err))
		return
	}

	for i, r := range reviews {
		if reviewer, ok := reviewers[r.ReviewerID]; ok {
			responses[i].Reviewer = &ReviewerInfo{
				ID:       reviewer.ID,
				FullName: reviewer.FullName,
			}
		}
	}
}
