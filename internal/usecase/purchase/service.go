package purchase

import (
	"context"
	"errors"

	domainProduct "ecotrade-marketplace/internal/domain/product"
	domainPurchase "ecotrade-marketplace/internal/domain/purchase"
	domainReview "ecotrade-marketplace/internal/domain/review"
	"ecotrade-marketplace/internal/infrastructure/cache"
	"ecotrade-marketplace/internal/logger"
	appErrors "ecotrade-marketplace/pkg/errors"
	"ecotrade-marketplace/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service implements purchase lifecycle use cases
type Service struct {
	purchaseRepo domainPurchase.Repository
	productRepo  domainProduct.Repository
	reviewRepo   domainReview.Repository
	cache        *cache.Cache
}

// NewService creates a new purchase service
func NewService(
	purchaseRepo domainPurchase.Repository,
	productRepo domainProduct.Repository,
	reviewRepo domainReview.Repository,
	c *cache.Cache,
) *Service {
	return &Service{
		purchaseRepo: purchaseRepo,
		productRepo:  productRepo,
		reviewRepo:   reviewRepo,
		cache:        c,
	}
}

// Create opens a pending purchase for an available product. The product
// stays available until the seller completes the hand-off.
func (s *Service) Create(ctx context.Context, buyerID uuid.UUID, req *CreatePurchaseRequest) (*PurchaseResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError(appErrors.CodeValidation, "Invalid input", err)
	}

	prod, err := s.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	if buyerID == prod.SellerID {
		return nil, appErrors.NewAppError(
			appErrors.CodeSelfPurchase,
			"Sellers cannot purchase their own products",
			appErrors.ErrSelfPurchaseForbidden,
		)
	}

	if !domainPurchase.CanInitiatePurchase(buyerID, prod.SellerID, prod.IsAvailable()) {
		return nil, appErrors.NewAppError(
			appErrors.CodeProductUnavailable,
			"Product is no longer available",
			domainProduct.ErrProductSold,
		)
	}

	newPurchase := &domainPurchase.Purchase{
		ProductID:  prod.ID,
		BuyerID:    buyerID,
		SellerID:   prod.SellerID,
		Status:     domainPurchase.StatusPending,
		BuyerName:  utils.SanitizeString(req.BuyerName),
		BuyerEmail: utils.SanitizeEmail(req.BuyerEmail),
		BuyerPhone: utils.SanitizePhone(req.BuyerPhone),
		Notes:      req.Notes,
	}

	if err := s.purchaseRepo.Create(ctx, newPurchase); err != nil {
		return nil, err
	}

	logger.Info("Purchase created",
		zap.String("purchase_id", newPurchase.ID.String()),
		zap.String("product_id", prod.ID.String()),
		zap.String("buyer_id", buyerID.String()),
		zap.String("event", "purchase_created"),
	)

	return s.respond(ctx, newPurchase, buyerID), nil
}

// UpdateStatus drives the purchase along the lifecycle. Completing a
// purchase also marks the product sold.
func (s *Service) UpdateStatus(ctx context.Context, purchaseID, actorID uuid.UUID, req *UpdateStatusRequest) (*PurchaseResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError(appErrors.CodeValidation, "Invalid input", err)
	}

	p, err := s.purchaseRepo.GetByID(ctx, purchaseID)
	if err != nil {
		return nil, err
	}

	if err := domainPurchase.AuthorizeTransition(p, actorID, req.Status); err != nil {
		return nil, err
	}

	if err := s.purchaseRepo.UpdateStatus(ctx, purchaseID, req.Status); err != nil {
		return nil, err
	}

	if req.Status == domainPurchase.StatusCompleted {
		if err := s.productRepo.UpdateStatus(ctx, p.ProductID, domainProduct.StatusSold); err != nil {
			// The purchase already completed; log and keep going so
			// the status change is not lost
			logger.Error("Failed to mark product sold after completion",
				zap.String("product_id", p.ProductID.String()),
				zap.Error(err),
			)
		}
		s.cache.DeleteByPattern(ctx, "products:list:*")
		s.cache.Delete(ctx, "products:featured")
	}

	updated, err := s.purchaseRepo.GetByID(ctx, purchaseID)
	if err != nil {
		return nil, err
	}

	logger.Info("Purchase status changed",
		zap.String("purchase_id", purchaseID.String()),
		zap.String("from", string(p.Status)),
		zap.String("to", string(req.Status)),
		zap.String("actor_id", actorID.String()),
		zap.String("event", "purchase_status_changed"),
	)

	return s.respond(ctx, updated, actorID), nil
}

// Confirm is the seller accepting a pending purchase.
func (s *Service) Confirm(ctx context.Context, purchaseID, actorID uuid.UUID) (*PurchaseResponse, error) {
	return s.UpdateStatus(ctx, purchaseID, actorID, &UpdateStatusRequest{Status: domainPurchase.StatusConfirmed})
}

// Complete is the seller closing a confirmed purchase after hand-off.
func (s *Service) Complete(ctx context.Context, purchaseID, actorID uuid.UUID) (*PurchaseResponse, error) {
	return s.UpdateStatus(ctx, purchaseID, actorID, &UpdateStatusRequest{Status: domainPurchase.StatusCompleted})
}

// Cancel abandons a purchase that has not completed. Either participant
// may cancel.
func (s *Service) Cancel(ctx context.Context, purchaseID, actorID uuid.UUID) (*PurchaseResponse, error) {
	return s.UpdateStatus(ctx, purchaseID, actorID, &UpdateStatusRequest{Status: domainPurchase.StatusCancelled})
}

func (s *Service) GetByID(ctx context.Context, purchaseID, viewerID uuid.UUID) (*PurchaseResponse, error) {
	p, err := s.purchaseRepo.GetByID(ctx, purchaseID)
	if err != nil {
		return nil, err
	}

	if !p.IsParticipant(viewerID) {
		return nil, appErrors.NewAppError(
			appErrors.CodeNotAuthorized,
			"Only the buyer or seller may view this purchase",
			appErrors.ErrNotAuthorized,
		)
	}

	return s.respond(ctx, p, viewerID), nil
}

func (s *Service) List(ctx context.Context, userID uuid.UUID, req *ListPurchasesRequest) (*PurchaseListResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError(appErrors.CodeValidation, "Invalid filter", err)
	}

	filter := &domainPurchase.Filter{
		Page:     req.Page,
		PageSize: req.PageSize,
	}
	switch req.Role {
	case "buyer":
		filter.BuyerID = &userID
	case "seller":
		filter.SellerID = &userID
	default:
		filter.ParticipantID = &userID
	}
	if req.Status != "" {
		status := domainPurchase.Status(req.Status)
		filter.Status = &status
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}

	purchases, total, err := s.purchaseRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]*PurchaseResponse, len(purchases))
	products := s.loadProducts(ctx, purchases)
	for i, p := range purchases {
		reviewed := s.alreadyReviewed(ctx, p.ID)
		responses[i] = ToPurchaseResponse(p, products[p.ProductID], userID, reviewed)
	}

	return &PurchaseListResponse{
		Purchases: responses,
		Total:     total,
		Page:      filter.Page,
		PageSize:  filter.PageSize,
	}, nil
}

func (s *Service) respond(ctx context.Context, p *domainPurchase.Purchase, viewerID uuid.UUID) *PurchaseResponse {
	var prod *domainProduct.Product
	if loaded, err := s.productRepo.GetByID(ctx, p.ProductID); err == nil {
		prod = loaded
	} else {
		logger.Warn("Product lookup failed for purchase",
			zap.String("purchase_id", p.ID.String()),
			zap.Error(err),
		)
	}

	return ToPurchaseResponse(p, prod, viewerID, s.alreadyReviewed(ctx, p.ID))
}

func (s *Service) alreadyReviewed(ctx context.Context, purchaseID uuid.UUID) bool {
	_, err := s.reviewRepo.GetByPurchase(ctx, purchaseID)
	if err == nil {
		return true
	}
	if !errors.Is(err, domainReview.ErrReviewNotFound) {
		logger.Warn("Review lookup failed", zap.String("purchase_id", purchaseID.String()), zap.Error(err))
	}
	return false
}

func (s *Service) loadProducts(ctx context.Context, purchases []*domainPurchase.Purchase) map[uuid.UUID]*domainProduct.Product {
	if len(purchases) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(purchases))
	seen := make(map[uuid.UUID]bool, len(purchases))
	for _, p := range purchases {
		if !seen[p.ProductID] {
			seen[p.ProductID] = true
			ids = append(ids, p.ProductID)
		}
	}

	products, err := s.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		logger.Warn("Product batch lookup failed", zap.Error(err))
		return nil
	}
	return products
}
