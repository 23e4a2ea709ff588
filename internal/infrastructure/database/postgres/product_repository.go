package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ecotrade-marketplace/internal/domain/product"
	"ecotrade-marketplace/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductRepository implements the product domain Repository interface
type ProductRepository struct {
	db *DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *DB) product.Repository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(ctx context.Context, p *product.Product) error {
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	p.UpdatedAt = time.Now()
	if p.Status == "" {
		p.Status = product.StatusAvailable
	}

	dbModel, err := toProductModel(p)
	if err != nil {
		return err
	}
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	p.ID = dbModel.ID
	p.CreatedAt = dbModel.CreatedAt
	p.UpdatedAt = dbModel.UpdatedAt

	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, productID uuid.UUID) (*product.Product, error) {
	var dbModel models.ProductModel
	err := r.db.DB.WithContext(ctx).First(&dbModel, "id = ?", productID).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, product.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return toProductEntity(&dbModel)
}

func (r *ProductRepository) GetByIDs(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]*product.Product, error) {
	result := make(map[uuid.UUID]*product.Product, len(productIDs))
	if len(productIDs) == 0 {
		return result, nil
	}

	var dbModels []models.ProductModel
	err := r.db.DB.WithContext(ctx).Where("id IN ?", productIDs).Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	for i := range dbModels {
		entity, err := toProductEntity(&dbModels[i])
		if err != nil {
			return nil, err
		}
		result[entity.ID] = entity
	}

	return result, nil
}

func (r *ProductRepository) Update(ctx context.Context, p *product.Product) error {
	p.UpdatedAt = time.Now()

	imagesJSON, err := json.Marshal(p.Images)
	if err != nil {
		return fmt.Errorf("failed to encode product images: %w", err)
	}

	result := r.db.DB.WithContext(ctx).
		Model(&models.ProductModel{}).
		Where("id = ?", p.ID).
		Updates(map[string]interface{}{
			"title":       p.Title,
			"description": p.Description,
			"category":    p.Category,
			"condition":   string(p.Condition),
			"size":        p.Size,
			"price":       p.Price,
			"location":    p.Location,
			"images":      string(imagesJSON),
			"status":      string(p.Status),
			"featured":    p.Featured,
			"updated_at":  p.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return product.ErrProductNotFound
	}

	return nil
}

func (r *ProductRepository) UpdateStatus(ctx context.Context, productID uuid.UUID, status product.ProductStatus) error {
	result := r.db.DB.WithContext(ctx).
		Model(&models.ProductModel{}).
		Where("id = ?", productID).
		Updates(map[string]interface{}{
			"status":     string(status),
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update product status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return product.ErrProductNotFound
	}

	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, productID uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).
		Where("id = ?", productID).
		Delete(&models.ProductModel{})

	if result.Error != nil {
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return product.ErrProductNotFound
	}

	return nil
}

func (r *ProductRepository) List(ctx context.Context, filter *product.Filter) ([]*product.Product, int64, error) {
	var dbModels []models.ProductModel
	var total int64

	db := r.db.DB.WithContext(ctx).Model(&models.ProductModel{})

	if filter.Status != nil {
		db = db.Where("status = ?", string(*filter.Status))
	}
	if filter.Category != "" {
		db = db.Where("category = ?", filter.Category)
	}
	if filter.Condition != nil {
		db = db.Where("condition = ?", string(*filter.Condition))
	}
	if filter.SellerID != nil {
		db = db.Where("seller_id = ?", *filter.SellerID)
	}
	if filter.PriceMin != nil {
		db = db.Where("price >= ?", *filter.PriceMin)
	}
	if filter.PriceMax != nil {
		db = db.Where("price <= ?", *filter.PriceMax)
	}
	if filter.Search != "" {
		search := "%" + filter.Search + "%"
		db = db.Where("title ILIKE ? OR description ILIKE ?", search, search)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
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
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}

	return toProductEntities(dbModels, total)
}

func (r *ProductRepository) ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]*product.Product, error) {
	var dbModels []models.ProductModel
	err := r.db.DB.WithContext(ctx).
		Where("seller_id = ?", sellerID).
		Order("created_at DESC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list seller products: %w", err)
	}

	entities, _, err := toProductEntities(dbModels, int64(len(dbModels)))
	return entities, err
}

func (r *ProductRepository) ListFeatured(ctx context.Context, limit int) ([]*product.Product, error) {
	if limit <= 0 {
		limit = 6
	}

	var dbModels []models.ProductModel
	err := r.db.DB.WithContext(ctx).
		Where("featured = true AND status = ?", string(product.StatusAvailable)).
		Order("created_at DESC").
		Limit(limit).
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list featured products: %w", err)
	}

	entities, _, err := toProductEntities(dbModels, int64(len(dbModels)))
	return entities, err
}

func (r *ProductRepository) CountBySellerAndStatus(ctx context.Context, sellerID uuid.UUID, status product.ProductStatus) (int64, error) {
	var count int64
	err := r.db.DB.WithContext(ctx).
		Model(&models.ProductModel{}).
		Where("seller_id = ? AND status = ?", sellerID, string(status)).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count seller products: %w", err)
	}

	return count, nil
}

func (r *ProductRepository) CountFeaturedBySeller(ctx context.Context, sellerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.DB.WithContext(ctx).
		Model(&models.ProductModel{}).
		Where("seller_id = ? AND featured = true", sellerID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count featured products: %w", err)
	}

	return count, nil
}

func toProductModel(p *product.Product) (*models.ProductModel, error) {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	imagesJSON, err := json.Marshal(images)
	if err != nil {
		return nil, fmt.Errorf("failed to encode product images: %w", err)
	}

	return &models.ProductModel{
		ID:          p.ID,
		SellerID:    p.SellerID,
		Title:       p.Title,
		Description: p.Description,
		Category:    p.Category,
		Condition:   string(p.Condition),
		Size:        p.Size,
		Price:       p.Price,
		Location:    p.Location,
		Images:      string(imagesJSON),
		Status:      string(p.Status),
		Featured:    p.Featured,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}, nil
}

func toProductEntity(m *models.ProductModel) (*product.Product, error) {
	var images []string
	if m.Images != "" {
		if err := json.Unmarshal([]byte(m.Images), &images); err != nil {
			return nil, fmt.Errorf("failed to decode product images: %w", err)
		}
	}

	return &product.Product{
		ID:          m.ID,
		SellerID:    m.SellerID,
		Title:       m.Title,
		Description: m.Description,
		Category:    m.Category,
		Condition:   product.Condition(m.Condition),
		Size:        m.Size,
		Price:       m.Price,
		Location:    m.Location,
		Images:      images,
		Status:      product.ProductStatus(m.Status),
		Featured:    m.Featured,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}, nil
}

func toProductEntities(dbModels []models.ProductModel, total int64) ([]*product.Product, int64, error) {
	entities := make([]*product.Product, len(dbModels))
	for i := range dbModels {
		entity, err := toProductEntity(&dbModels[i])
		if err != nil {
			return nil, 0, err
		}
		entities[i] = entity
	}
	return entities, total, nil
}
