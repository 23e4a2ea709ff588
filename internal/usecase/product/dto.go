package product

import (
	"time"

	domainProduct "ecotrade-marketplace/internal/domain/product"

	"github.com/google/uuid"
)

// Request DTOs
type CreateProductRequest struct {
	Title       string   `json:"title" validate:"required,min=3,max=255"`
	Description string   `json:"description" validate:"required,min=10,max=2000"`
	Category    string   `json:"category" validate:"required"`
	Condition   string   `json:"condition" validate:"required,oneof=nuevo poco_uso usado"`
	Size        string   `json:"size" validate:"omitempty,max=20"`
	Price       int64    `json:"price" validate:"required,min=1"`
	Location    string   `json:"location" validate:"omitempty,max=255"`
	Images      []string `json:"images" validate:"required,min=1,max=8,dive,url"`
	Featured    bool     `json:"featured"`
}

type UpdateProductRequest struct {
	Title       *string  `json:"title" validate:"omitempty,min=3,max=255"`
	Description *string  `json:"description" validate:"omitempty,min=10,max=2000"`
	Category    *string  `json:"category" validate:"omitempty"`
	Condition   *string  `json:"condition" validate:"omitempty,oneof=nuevo poco_uso usado"`
	Size        *string  `json:"size" validate:"omitempty,max=20"`
	Price       *int64   `json:"price" validate:"omitempty,min=1"`
	Location    *string  `json:"location" validate:"omitempty,max=255"`
	Images      []string `json:"images" validate:"omitempty,min=1,max=8,dive,url"`
	Featured    *bool    `json:"featured"`
}

type ListProductsRequest struct {
	Status    string `form:"status" validate:"omitempty,oneof=available sold"`
	Category  string `form:"category"`
	Condition string `form:"condition" validate:"omitempty,oneof=nuevo poco_uso usado"`
	SellerID  string `form:"seller_id" validate:"omitempty,uuid"`
	PriceMin  *int64 `form:"price_min" validate:"omitempty,min=0"`
	PriceMax  *int64 `form:"price_max" validate:"omitempty,min=0"`
	Search    string `form:"search"`
	Page      int    `form:"page" validate:"omitempty,min=1"`
	PageSize  int    `form:"page_size" validate:"omitempty,min=1,max=100"`
}

// Response DTOs
type SellerInfo struct {
	ID           uuid.UUID `json:"id"`
	FullName     string    `json:"full_name"`
	Location     string    `json:"location,omitempty"`
	Rating       float64   `json:"rating"`
	TotalReviews int       `json:"total_reviews"`
}

type ProductResponse struct {
	ID          uuid.UUID                   `json:"id"`
	Title       string                      `json:"title"`
	Description string                      `json:"description"`
	Category    string                      `json:"category"`
	Condition   domainProduct.Condition     `json:"condition"`
	Size        string                      `json:"size,omitempty"`
	Price       int64                       `json:"price"`
	Location    string                      `json:"location,omitempty"`
	Images      []string                    `json:"images"`
	Status      domainProduct.ProductStatus `json:"status"`
	Featured    bool                        `json:"featured"`
	Seller      *SellerInfo                 `json:"seller,omitempty"`
	CreatedAt   time.Time                   `json:"created_at"`
	UpdatedAt   time.Time                   `json:"updated_at"`
}

type ProductListResponse struct {
	Products []*ProductResponse `json:"products"`
	Total    int64              `json:"total"`
	Page     int                `json:"page"`
	PageSize int                `json:"page_size"`
}

// ProfileStats is the seller dashboard snapshot. Each section degrades
// independently: a failed source zeroes its numbers and is reported in
// Partial rather than failing the whole response.
type ProfileStats struct {
	AvailableCount  int64   `json:"available_count"`
	SoldCount       int64   `json:"sold_count"`
	PurchasedCount  int64   `json:"purchased_count"`
	ReviewsReceived int64   `json:"reviews_received"`
	AverageRating   float64 `json:"average_rating"`

	// Names of the sections that could not be loaded
	Partial []string `json:"partial,omitempty"`
}

func ToProductResponse(p *domainProduct.Product) *ProductResponse {
	return &ProductResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Category:    p.Category,
		Condition:   p.Condition,
		Size:        p.Size,
		Price:       p.Price,
		Location:    p.Location,
		Images:      p.Images,
		Status:      p.Status,
		Featured:    p.Featured,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func ToProductResponses(products []*domainProduct.Product) []*ProductResponse {
	responses := make([]*ProductResponse, len(products))
	for i, p := range products {
		responses[i] = ToProductResponse(p)
	}
	return responses
}
