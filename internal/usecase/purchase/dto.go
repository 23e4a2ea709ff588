package purchase

import (
	"time"

	domainProduct "ecotrade-marketplace/internal/domain/product"
	domainPurchase "ecotrade-marketplace/internal/domain/purchase"

	"github.com/google/uuid"
)

// Request DTOs
type CreatePurchaseRequest struct {
	ProductID  uuid.UUID `json:"product_id" validate:"required,uuid"`
	BuyerName  string    `json:"buyer_name" validate:"required,min=2,max=255"`
	BuyerEmail string    `json:"buyer_email" validate:"required,email"`
	BuyerPhone string    `json:"buyer_phone" validate:"omitempty,phone"`
	Notes      *string   `json:"notes" validate:"omitempty,max=500"`
}

type UpdateStatusRequest struct {
	Status domainPurchase.Status `json:"status" validate:"required,oneof=confirmed completed cancelled"`
}

type ListPurchasesRequest struct {
	// Role selects which side of the transaction to list: "buyer",
	// "seller", or empty for both.
	Role     string `form:"role" validate:"omitempty,oneof=buyer seller"`
	Status   string `form:"status" validate:"omitempty,oneof=pending confirmed completed cancelled"`
	Page     int    `form:"page" validate:"omitempty,min=1"`
	PageSize int    `form:"page_size" validate:"omitempty,min=1,max=100"`
}

// Response DTOs
type ProductSummary struct {
	ID     uuid.UUID                   `json:"id"`
	Title  string                      `json:"title"`
	Price  int64                       `json:"price"`
	Image  string                      `json:"image,omitempty"`
	Status domainProduct.ProductStatus `json:"status"`
}

type PurchaseResponse struct {
	ID       uuid.UUID             `json:"id"`
	Status   domainPurchase.Status `json:"status"`
	Product  *ProductSummary       `json:"product,omitempty"`
	BuyerID  uuid.UUID             `json:"buyer_id"`
	SellerID uuid.UUID             `json:"seller_id"`

	BuyerName  string  `json:"buyer_name"`
	BuyerEmail string  `json:"buyer_email"`
	BuyerPhone string  `json:"buyer_phone,omitempty"`
	Notes      *string `json:"notes,omitempty"`

	// What the requesting user may do next
	AllowedTransitions []domainPurchase.Status `json:"allowed_transitions"`
	CanChat            bool                    `json:"can_chat"`
	CanReview          bool                    `json:"can_review"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PurchaseListResponse struct {
	Purchases []*PurchaseResponse `json:"purchases"`
	Total     int64               `json:"total"`
	Page      int                 `json:"page"`
	PageSize  int                 `json:"page_size"`
}

// ToPurchaseResponse maps a purchase plus its product to the API shape.
// Permission flags are evaluated for viewerID.
func ToPurchaseResponse(p *domainPurchase.Purchase, prod *domainProduct.Product, viewerID uuid.UUID, alreadyReviewed bool) *PurchaseResponse {
	response := &PurchaseResponse{
		ID:         p.ID,
		Status:     p.Status,
		BuyerID:    p.BuyerID,
		SellerID:   p.SellerID,
		BuyerName:  p.BuyerName,
		BuyerEmail: p.BuyerEmail,
		BuyerPhone: p.BuyerPhone,
		Notes:      p.Notes,
		CanChat:    domainPurchase.CanChat(viewerID, p),
		CanReview:  domainPurchase.CanReview(viewerID, p, alreadyReviewed),
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}

	response.AllowedTransitions = allowedFor(p, viewerID)

	if prod != nil {
		summary := &ProductSummary{
			ID:     prod.ID,
			Title:  prod.Title,
			Price:  prod.Price,
			Status: prod.Status,
		}
		if len(prod.Images) > 0 {
			summary.Image = prod.Images[0]
		}
		response.Product = summary
	}

	return response
}

func allowedFor(p *domainPurchase.Purchase, viewerID uuid.UUID) []domainPurchase.Status {
	allowed := make([]domainPurchase.Status, 0, 2)
	for _, next := range domainPurchase.AllowedTransitions(p.Status) {
		if domainPurchase.AuthorizeTransition(p, viewerID, next) == nil {
			allowed = append(allowed, next)
		}
	}
	return allowed
}
