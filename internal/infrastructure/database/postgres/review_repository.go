package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ecotrade-marketplace/internal/domain/review"
	"ecotrade-marketplace/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReviewRepository implements the review domain Repository interface
type ReviewRepository struct {
	db *DB
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(db *DB) review.Repository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Create(ctx context.Context, rv *review.Review) error {
	rv.ID = uuid.New()
	rv.CreatedAt = time.Now()

	dbModel := toReviewModel(rv)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		// The unique index on purchase_id backs the one-review-per-purchase
		// invariant against concurrent submissions.
		errStr := strings.ToLower(err.Error())
		if strings.Contains(errStr, "duplicate key") {
			return review.ErrReviewExists
		}
		return fmt.Errorf("failed to create review: %w", err)
	}

	rv.ID = dbModel.ID
	rv.CreatedAt = dbModel.CreatedAt

	return nil
}

func (r *ReviewRepository) GetByID(ctx context.Context, reviewID uuid.UUID) (*review.Review, error) {
	var dbModel models.ReviewModel
	err := r.db.DB.WithContext(ctx).First(&dbModel, "id = ?", reviewID).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, review.ErrReviewNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get review: %w", err)
	}

	return toReviewEntity(&dbModel), nil
}

func (r *ReviewRepository) GetByPurchase(ctx context.Context, purchaseID uuid.UUID) (*review.Review, error) {
	var dbModel models.ReviewModel
	err := r.db.DB.WithContext(ctx).Where("purchase_id = ?", purchaseID).First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, review.ErrReviewNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get review: %w", err)
	}

	return toReviewEntity(&dbModel), nil
}

func (r *ReviewRepository) ListByReviewedUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]*review.Review, int64, error) {
	var dbModels []models.ReviewModel
	var total int64

	db := r.db.DB.WithContext(ctx).
		Model(&models.ReviewModel{}).
		Where("reviewed_user_id = ?", userID)

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}

	err := db.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&dbModels).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reviews: %w", err)
	}

	entities := make([]*review.Review, len(dbModels))
	for i := range dbModels {
		entities[i] = toReviewEntity(&dbModels[i])
	}

	return entities, total, nil
}

func (r *ReviewRepository) ListAllByReviewedUser(ctx context.Context, userID uuid.UUID) ([]*review.Review, error) {
	var dbModels []models.ReviewModel
	err := r.db.DB.WithContext(ctx).
		Where("reviewed_user_id = ?", userID).
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	entities := make([]*review.Review, len(dbModels))
	for i := range dbModels {
		entities[i] = toReviewEntity(&dbModels[i])
	}

	return entities, nil
}

func (r *ReviewRepository) Delete(ctx context.Context, reviewID uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).
		Where("id = ?", reviewID).
		Delete(&models.ReviewModel{})

	if result.Error != nil {
		return fmt.Errorf("failed to delete review: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return review.ErrReviewNotFound
	}

	return nil
}

func toReviewModel(rv *review.Review) *models.ReviewModel {
	return &models.ReviewModel{
		ID:             rv.ID,
		PurchaseID:     rv.PurchaseID,
		ReviewerID:     rv.ReviewerID,
		ReviewedUserID: rv.ReviewedUserID,
		Rating:         rv.Rating,
		Comment:        rv.Comment,
		CreatedAt:      rv.CreatedAt,
	}
}

func toReviewEntity(m *models.ReviewModel) *review.Review {
	return &review.Review{
		ID:             m.ID,
		PurchaseID:     m.PurchaseID,
		ReviewerID:     m.ReviewerID,
		ReviewedUserID: m.ReviewedUserID,
		Rating:         m.Rating,
		Comment:        m.Comment,
		CreatedAt:      m.CreatedAt,
	}
}
