package product

import (
	"context"
	"testing"

	domainProduct "ecotrade-marketplace/internal/domain/product"
	domainSubscription "ecotrade-marketplace/internal/domain/subscription"
	domainUser "ecotrade-marketplace/internal/domain/user"
	appErrors "ecotrade-marketplace/pkg/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type quotaProductRepo struct {
	domainProduct.Repository

	available int64
	featured  int64
	created   []*domainProduct.Product
}

func (s *quotaProductRepo) CountBySellerAndStatus(_ context.Context, _ uuid.UUID, _ domainProduct.ProductStatus) (int64, error) {
	return s.available, nil
}

func (s *quotaProductRepo) CountFeaturedBySeller(_ context.Context, _ uuid.UUID) (int64, error) {
	return s.featured, nil
}

func (s *quotaProductRepo) Create(_ context.Context, p *domainProduct.Product) error {
	p.ID = uuid.New()
	s.created = append(s.created, p)
	return nil
}

type stubSubRepo struct {
	domainSubscription.Repository

	active *domainSubscription.Subscription
}

func (s *stubSubRepo) GetActiveByUser(_ context.Context, _ uuid.UUID) (*domainSubscription.Subscription, error) {
	if s.active == nil {
		return nil, domainSubscription.ErrNoActiveSubscription
	}
	return s.active, nil
}

func newQuotaService(productRepo *quotaProductRepo, subRepo *stubSubRepo) *Service {
	return NewService(
		productRepo,
		&stubUserRepo{user: &domainUser.User{FullName: "Ana"}},
		&stubPurchaseRepo{},
		subRepo,
		nil,
	)
}

func validCreateRequest() *CreateProductRequest {
	return &CreateProductRequest{
		Title:       "Camisa de lino",
		Description: "Camisa de lino en excelente estado",
		Category:    "camisas",
		Condition:   "poco_uso",
		Price:       4500,
		Images:      []string{"https://img.example/camisa.jpg"},
	}
}

func TestCreateProductWithinFreeLimit(t *testing.T) {
	productRepo := &quotaProductRepo{available: 4}
	service := newQuotaService(productRepo, &stubSubRepo{})

	result, err := service.Create(context.Background(), uuid.New(), validCreateRequest())
	require.NoError(t, err)

	assert.Equal(t, domainProduct.StatusAvailable, result.Status)
	require.Len(t, productRepo.created, 1)
}

func TestCreateProductFreeLimitReached(t *testing.T) {
	productRepo := &quotaProductRepo{available: 5}
	service := newQuotaService(productRepo, &stubSubRepo{})

	_, err := service.Create(context.Background(), uuid.New(), validCreateRequest())
	require.Error(t, err)

	assert.Equal(t, appErrors.CodeSubscriptionLimit, appErrors.CodeOf(err))
	assert.Empty(t, productRepo.created)
}

func TestCreateProductProPlanRaisesLimit(t *testing.T) {
	productRepo := &quotaProductRepo{available: 5}
	service := newQuotaService(productRepo, &stubSubRepo{
		active: &domainSubscription.Subscription{Plan: domainSubscription.PlanPro},
	})

	_, err := service.Create(context.Background(), uuid.New(), validCreateRequest())
	require.NoError(t, err)
	require.Len(t, productRepo.created, 1)
}

func TestCreateFeaturedRequiresPaidPlan(t *testing.T) {
	productRepo := &quotaProductRepo{}
	service := newQuotaService(productRepo, &stubSubRepo{})

	req := validCreateRequest()
	req.Featured = true

	_, err := service.Create(context.Background(), uuid.New(), req)
	require.Error(t, err)

	assert.Equal(t, appErrors.CodeSubscriptionLimit, appErrors.CodeOf(err))
	assert.Empty(t, productRepo.created)
}

func TestCreateFeaturedQuotaReached(t *testing.T) {
	productRepo := &quotaProductRepo{featured: 5}
	service := newQuotaService(productRepo, &stubSubRepo{
		active: &domainSubscription.Subscription{Plan: domainSubscription.PlanPro},
	})

	req := validCreateRequest()
	req.Featured = true

	_, err := service.Create(context.Background(), uuid.New(), req)
	require.Error(t, err)
	assert.Equal(t, appErrors.CodeSubscriptionLimit, appErrors.CodeOf(err))
}

func TestCreateProductUnknownCategory(t *testing.T) {
	productRepo := &quotaProductRepo{}
	service := newQuotaService(productRepo, &stubSubRepo{})

	req := validCreateRequest()
	req.Category = "electronica"

	_, err := service.Create(context.Background(), uuid.New(), req)
	require.Error(t, err)
	assert.Equal(t, appErrors.CodeValidation, appErrors.CodeOf(err))
}
