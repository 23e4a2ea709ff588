package product

import (
	"context"
	"fmt"

	domainProduct "ecotrade-marketplace/internal/domain/product"
	domainPurchase "ecotrade-marketplace/internal/domain/purchase"
	domainSubscription "ecotrade-marketplace/internal/domain/subscription"
	domainUser "ecotrade-marketplace/internal/domain/user"
	"ecotrade-marketplace/internal/infrastructure/cache"
	"ecotrade-marketplace/internal/logger"
	appErrors "ecotrade-marketplace/pkg/errors"
	"ecotrade-marketplace/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	listingCachePattern = "products:list:*"
	featuredCacheKey    = "products:featured"
)

// Service implements product listing use cases
type Service struct {
	productRepo  domainProduct.Repository
	userRepo     domainUser.Repository
	purchaseRepo domainPurchase.Repository
	subRepo      domainSubscription.Repository
	cache        *cache.Cache
}

// NewService creates a new product service
func NewService(
	productRepo domainProduct.Repository,
	userRepo domainUser.Repository,
	purchaseRepo domainPurchase.Repository,
	subRepo domainSubscription.Repository,
	c *cache.Cache,
) *Service {
	return &Service{
		productRepo:  productRepo,
		userRepo:     userRepo,
		purchaseRepo: purchaseRepo,
		subRepo:      subRepo,
		cache:        c,
	}
}

func (s *Service) Create(ctx context.Context, sellerID uuid.UUID, req *CreateProductRequest) (*ProductResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError(appErrors.CodeValidation, "Invalid input", err)
	}

	if !domainProduct.IsValidCategory(req.Category) {
		return nil, appErrors.NewAppError(appErrors.CodeValidation, "Unknown category", domainProduct.ErrInvalidCategory)
	}

	limits := s.limitsFor(ctx, sellerID)

	if limits.ProductsLimit >= 0 {
		active, err := s.productRepo.CountBySellerAndStatus(ctx, sellerID, domainProduct.StatusAvailable)
		if err != nil {
			return nil, err
		}
		if active >= int64(limits.ProductsLimit) {
			return nil, appErrors.NewAppError(
				appErrors.CodeSubscriptionLimit,
				fmt.Sprintf("Plan allows at most %d active listings", limits.ProductsLimit),
				nil,
			)
		}
	}

	if req.Featured {
		if err := s.checkFeaturedQuota(ctx, sellerID, limits); err != nil {
			return nil, err
		}
	}

	newProduct := &domainProduct.Product{
		SellerID:    sellerID,
		Title:       utils.SanitizeString(req.Title),
		Description: utils.SanitizeText(req.Description),
		Category:    req.Category,
		Condition:   domainProduct.Condition(req.Condition),
		Size:        utils.SanitizeString(req.Size),
		Price:       req.Price,
		Location:    utils.SanitizeString(req.Location),
		Images:      req.Images,
		Status:      domainProduct.StatusAvailable,
		Featured:    req.Featured,
	}

	if err := s.productRepo.Create(ctx, newProduct); err != nil {
		return nil, err
	}

	s.invalidateListings(ctx)

	logger.Info("Product published",
		zap.String("product_id", newProduct.ID.String()),
		zap.String("seller_id", sellerID.String()),
		zap.String("event", "product_published"),
	)

	return s.respondWithSeller(ctx, newProduct), nil
}

func (s *Service) GetByID(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	p, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	return s.respondWithSeller(ctx, p), nil
}

func (s *Service) List(ctx context.Context, req *ListProductsRequest) (*ProductListResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError(appErrors.CodeValidation, "Invalid filter", err)
	}

	filter := &domainProduct.Filter{
		Category: req.Category,
		Search:   utils.SanitizeString(req.Search),
		PriceMin: req.PriceMin,
		PriceMax: req.PriceMax,
		Page:     req.Page,
		PageSize: req.PageSize,
	}
	if req.Status != "" {
		status := domainProduct.ProductStatus(req.Status)
		filter.Status = &status
	}
	if req.Condition != "" {
		condition := domainProduct.Condition(req.Condition)
		filter.Condition = &condition
	}
	if req.SellerID != "" {
		sellerID, err := uuid.Parse(req.SellerID)
		if err != nil {
			return nil, appErrors.NewAppError(appErrors.CodeValidation, "Invalid seller id", err)
		}
		filter.SellerID = &sellerID
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}

	cacheKey := listingCacheKey(filter)
	var cached ProductListResponse
	if s.cache.GetJSON(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	products, total, err := s.productRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	response := &ProductListResponse{
		Products: ToProductResponses(products),
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}
	s.annotateSellers(ctx, response.Products, products)

	s.cache.SetJSON(ctx, cacheKey, response, 0)

	return response, nil
}

// ListFeatured returns the featured carousel, newest first.
func (s *Service) ListFeatured(ctx context.Context, limit int) ([]*ProductResponse, error) {
	var cached []*ProductResponse
	if limit <= 0 && s.cache.GetJSON(ctx, featuredCacheKey, &cached) {
		return cached, nil
	}

	products, err := s.productRepo.ListFeatured(ctx, limit)
	if err != nil {
		return nil, err
	}

	responses := ToProductResponses(products)
	s.annotateSellers(ctx, responses, products)

	if limit <= 0 {
		s.cache.SetJSON(ctx, featuredCacheKey, responses, 0)
	}

	return responses, nil
}

// ListMine returns all of the seller's own listings regardless of status.
func (s *Service) ListMine(ctx context.Context, sellerID uuid.UUID) ([]*ProductResponse, error) {
	products, err := s.productRepo.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	return ToProductResponses(products), nil
}

// ListBySeller returns a user's listings for their public profile page.
func (s *Service) ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]*ProductResponse, error) {
	products, err := s.productRepo.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	responses := ToProductResponses(products)
	s.annotateSellers(ctx, responses, products)

	return responses, nil
}

// Categories returns the fixed category list for filter menus.
func (s *Service) Categories() []string {
	return domainProduct.Categories
}

func (s *Service) Update(ctx context.Context, productID, sellerID uuid.UUID, req *UpdateProductRequest) (*ProductResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError(appErrors.CodeValidation, "Invalid input", err)
	}

	existing, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if existing.SellerID != sellerID {
		return nil, appErrors.NewAppError(appErrors.CodeNotAuthorized, "Only the seller may edit this listing", domainProduct.ErrNotOwner)
	}

	if existing.Status == domainProduct.StatusSold {
		return nil, appErrors.NewAppError(appErrors.CodeProductUnavailable, "Sold listings cannot be edited", domainProduct.ErrProductSold)
	}

	if req.Category != nil {
		if !domainProduct.IsValidCategory(*req.Category) {
			return nil, appErrors.NewAppError(appErrors.CodeValidation, "Unknown category", domainProduct.ErrInvalidCategory)
		}
		existing.Category = *req.Category
	}
	if req.Title != nil {
		existing.Title = utils.SanitizeString(*req.Title)
	}
	if req.Description != nil {
		existing.Description = utils.SanitizeText(*req.Description)
	}
	if req.Condition != nil {
		existing.Condition = domainProduct.Condition(*req.Condition)
	}
	if req.Size != nil {
		existing.Size = utils.SanitizeString(*req.Size)
	}
	if req.Price != nil {
		existing.Price = *req.Price
	}
	if req.Location != nil {
		existing.Location = utils.SanitizeString(*req.Location)
	}
	if req.Images != nil {
		existing.Images = req.Images
	}
	if req.Featured != nil && *req.Featured != existing.Featured {
		if *req.Featured {
			if err := s.checkFeaturedQuota(ctx, sellerID, s.limitsFor(ctx, sellerID)); err != nil {
				return nil, err
			}
		}
		existing.Featured = *req.Featured
	}

	if err := s.productRepo.Update(ctx, existing); err != nil {
		return nil, err
	}

	s.invalidateListings(ctx)

	updated, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	logger.Info("Product updated",
		zap.String("product_id", productID.String()),
		zap.String("event", "product_updated"),
	)

	return s.respondWithSeller(ctx, updated), nil
}

func (s *Service) Delete(ctx context.Context, productID, sellerID uuid.UUID) error {
	existing, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return err
	}

	if existing.SellerID != sellerID {
		return appErrors.NewAppError(appErrors.CodeNotAuthorized, "Only the seller may delete this listing", domainProduct.ErrNotOwner)
	}

	hasActive, err := s.purchaseRepo.HasActiveByProduct(ctx, productID)
	if err != nil {
		return err
	}
	if hasActive {
		return appErrors.NewAppError(
			appErrors.CodeProductUnavailable,
			"Listing has pending or confirmed purchases",
			domainProduct.ErrHasActivePurchases,
		)
	}

	if err := s.productRepo.Delete(ctx, productID); err != nil {
		return err
	}

	s.invalidateListings(ctx)

	logger.Info("Product deleted",
		zap.String("product_id", productID.String()),
		zap.String("event", "product_deleted"),
	)

	return nil
}

func (s *Service) limitsFor(ctx context.Context, userID uuid.UUID) domainSubscription.Limits {
	active, err := s.subRepo.GetActiveByUser(ctx, userID)
	if err != nil {
		// No subscription, or the lookup failed: behave as the free tier
		return domainSubscription.LimitsFor(domainSubscription.PlanBasico)
	}
	return domainSubscription.LimitsFor(active.Plan)
}

func (s *Service) checkFeaturedQuota(ctx context.Context, sellerID uuid.UUID, limits domainSubscription.Limits) error {
	if limits.FeaturedProductsLimit <= 0 {
		return appErrors.NewAppError(
			appErrors.CodeSubscriptionLimit,
			"Plan does not allow featured listings",
			nil,
		)
	}

	featured, err := s.productRepo.CountFeaturedBySeller(ctx, sellerID)
	if err != nil {
		return err
	}
	if featured >= int64(limits.FeaturedProductsLimit) {
		return appErrors.NewAppError(
			appErrors.CodeSubscriptionLimit,
			fmt.Sprintf("Plan allows at most %d featured listings", limits.FeaturedProductsLimit),
			nil,
		)
	}

	return nil
}

func (s *Service) invalidateListings(ctx context.Context) {
	s.cache.DeleteByPattern(ctx, listingCachePattern)
	s.cache.Delete(ctx, featuredCacheKey)
}

func (s *Service) respondWithSeller(ctx context.Context, p *domainProduct.Product) *ProductResponse {
	response := ToProductResponse(p)

	seller, err := s.userRepo.GetByID(ctx, p.SellerID)
	if err != nil {
		// Seller info is decoration; serve the listing without it
		logger.Warn("Seller lookup failed", zap.String("seller_id", p.SellerID.String()), zap.Error(err))
		return response
	}

	response.Seller = &SellerInfo{
		ID:           seller.ID,
		FullName:     seller.FullName,
		Location:     seller.Location,
		Rating:       seller.DisplayRating(),
		TotalReviews: seller.TotalReviews,
	}

	return response
}

func (s *Service) annotateSellers(ctx context.Context, responses []*ProductResponse, products []*domainProduct.Product) {
	if len(products) == 0 {
		return
	}

	sellerIDs := make([]uuid.UUID, 0, len(products))
	seen := make(map[uuid.UUID]bool, len(products))
	for _, p := range products {
		if !seen[p.SellerID] {
			seen[p.SellerID] = true
			sellerIDs = append(sellerIDs, p.SellerID)
		}
	}

	sellers, err := s.userRepo.GetByIDs(ctx, sellerIDs)
	if err != nil {
		logger.Warn("Seller batch lookup failed", zap.Error(err))
		return
	}

	for i, p := range products {
		if seller, ok := sellers[p.SellerID]; ok {
			responses[i].Seller = &SellerInfo{
				ID:           seller.ID,
				FullName:     seller.FullName,
				Location:     seller.Location,
				Rating:       seller.DisplayRating(),
				TotalReviews: seller.TotalReviews,
			}
		}
	}
}

func listingCacheKey(f *domainProduct.Filter) string {
	status := ""
	if f.Status != nil {
		status = string(*f.Status)
	}
	condition := ""
	if f.Condition != nil {
		condition = string(*f.Condition)
	}
	seller := ""
	if f.SellerID != nil {
		seller = f.SellerID.String()
	}
	priceMin, priceMax := int64(-1), int64(-1)
	if f.PriceMin != nil {
		priceMin = *f.PriceMin
	}
	if f.PriceMax != nil {
		priceMax = *f.PriceMax
	}

	return fmt.Sprintf("products:list:%s:%s:%s:%s:%d:%d:%s:%d:%d",
		status, f.Category, condition, seller, priceMin, priceMax, f.Search, f.Page, f.PageSize)
}
