package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ecotrade-marketplace/internal/domain/purchase"
	"ecotrade-marketplace/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PurchaseRepository implements the purchase domain Repository interface
type PurchaseRepository struct {
	db *DB
}

// NewPurchaseRepository creates a new purchase repository
func NewPurchaseRepository(db *DB) purchase.Repository {
	return &PurchaseRepository{db: db}
}

func (r *PurchaseRepository) Create(ctx context.Context, p *purchase.Purchase) error {
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	p.UpdatedAt = time.Now()
	if p.Status == "" {
		p.Status = purchase.StatusPending
	}

	dbModel := toPurchaseModel(p)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create purchase: %w", err)
	}

	p.ID = dbModel.ID
	p.CreatedAt = dbModel.CreatedAt
	p.UpdatedAt = dbModel.UpdatedAt

	return nil
}

func (r *PurchaseRepository) GetByID(ctx context.Context, purchaseID uuid.UUID) (*purchase.Purchase, error) {
	var dbModel models.PurchaseModel
	err := r.db.DB.WithContext(ctx).First(&dbModel, "id = ?", purchaseID).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, purchase.ErrPurchaseNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get purchase: %w", err)
	}

	return toPurchaseEntity(&dbModel), nil
}

func (r *PurchaseRepository) UpdateStatus(ctx context.Context, purchaseID uuid.UUID, status purchase.Status) error {
	result := r.db.DB.WithContext(ctx).
		Model(&models.PurchaseModel{}).
		Where("id = ?", purchaseID).
		Updates(map[string]interface{}{
			"status":     string(status),
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update purchase status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return purchase.ErrPurchaseNotFound
	}

	return nil
}

func (r *PurchaseRepository) List(ctx context.Context, filter *purchase.Filter) ([]*purchase.Purchase, int64, error) {
	var dbModels []models.PurchaseModel
	var total int64

	db := r.db.DB.WithContext(ctx).Model(&models.PurchaseModel{})

	if filter.BuyerID != nil {
		db = db.Where("buyer_id = ?", *filter.BuyerID)
	}
	if filter.SellerID != nil {
		db = db.Where("seller_id = ?", *filter.SellerID)
	}
	if filter.ParticipantID != nil {
		db = db.Where("buyer_id = ? OR seller_id = ?", *filter.ParticipantID, *filter.ParticipantID)
	}
	if filter.Status != nil {
		db = db.Where("status = ?", string(*filter.Status))
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count purchases: %w", err)
	}

	page := filter.Page
	if page <= 0 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}

	err := db.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&dbModels).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list purchases: %w", err)
	}

	entities := make([]*purchase.Purchase, len(dbModels))
	for i := range dbModels {
		entities[i] = toPurchaseEntity(&dbModels[i])
	}

	return entities, total, nil
}

func (r *PurchaseRepository) ListByParticipant(ctx context.Context, userID uuid.UUID) ([]*purchase.Purchase, error) {
	var dbModels []models.PurchaseModel
	err := r.db.DB.WithContext(ctx).
		Where("buyer_id = ? OR seller_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list purchases: %w", err)
	}

	entities := make([]*purchase.Purchase, len(dbModels))
	for i := range dbModels {
		entities[i] = toPurchaseEntity(&dbModels[i])
	}

	return entities, nil
}

func (r *PurchaseRepository) CountByBuyer(ctx context.Context, buyerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.DB.WithContext(ctx).
		Model(&models.PurchaseModel{}).
		Where("buyer_id = ?", buyerID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count purchases: %w", err)
	}

	return count, nil
}

func (r *PurchaseRepository) HasActiveByProduct(ctx context.Context, productID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.DB.WithContext(ctx).
		Model(&models.PurchaseModel{}).
		Where("product_id = ? AND status IN ?", productID,
			[]string{string(purchase.StatusPending), string(purchase.StatusConfirmed)}).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to count active purchases: %w", err)
	}

	return count > 0, nil
}

func toPurchaseModel(p *purchase.Purchase) *models.PurchaseModel {
	return &models.PurchaseModel{
		ID:         p.ID,
		ProductID:  p.ProductID,
		BuyerID:    p.BuyerID,
		SellerID:   p.SellerID,
		Status:     string(p.Status),
		BuyerName:  p.BuyerName,
		BuyerEmail: p.BuyerEmail,
		BuyerPhone: p.BuyerPhone,
		Notes:      p.Notes,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

func toPurchaseEntity(m *models.PurchaseModel) *purchase.Purchase {
	return &purchase.Purchase{
		ID:         m.ID,
		ProductID:  m.ProductID,
		BuyerID:    m.BuyerID,
		SellerID:   m.SellerID,
		Status:     purchase.Status(m.Status),
		BuyerName:  m.BuyerName,
		BuyerEmail: m.BuyerEmail,
		BuyerPhone: m.BuyerPhone,
		Notes:      m.Notes,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}
