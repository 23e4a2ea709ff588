package purchase

import (
	"context"
	"testing"
	"time"

	domainProduct "ecotrade-marketplace/internal/domain/product"
	domainPurchase "ecotrade-marketplace/internal/domain/purchase"
	domainReview "ecotrade-marketplace/internal/domain/review"
	appErrors "ecotrade-marketplace/pkg/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePurchaseRepo struct {
	purchases map[uuid.UUID]*domainPurchase.Purchase
}

func newFakePurchaseRepo() *fakePurchaseRepo {
	return &fakePurchaseRepo{purchases: make(map[uuid.UUID]*domainPurchase.Purchase)}
}

func (f *fakePurchaseRepo) Create(_ context.Context, p *domainPurchase.Purchase) error {
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	f.purchases[p.ID] = p
	return nil
}

func (f *fakePurchaseRepo) GetByID(_ context.Context, id uuid.UUID) (*domainPurchase.Purchase, error) {
	p, ok := f.purchases[id]
	if !ok {
		return nil, domainPurchase.ErrPurchaseNotFound
	}
	clone := *p
	return &clone, nil
}

func (f *fakePurchaseRepo) UpdateStatus(_ context.Context, id uuid.UUID, status domainPurchase.Status) error {
	p, ok := f.purchases[id]
	if !ok {
		return domainPurchase.ErrPurchaseNotFound
	}
	p.Status = status
	p.UpdatedAt = time.Now()
	return nil
}

func (f *fakePurchaseRepo) List(_ context.Context, filter *domainPurchase.Filter) ([]*domainPurchase.Purchase, int64, error) {
	var out []*domainPurchase.Purchase
	for _, p := range f.purchases {
		if filter.BuyerID != nil && p.BuyerID != *filter.BuyerID {
			continue
		}
		if filter.SellerID != nil && p.SellerID != *filter.SellerID {
			continue
		}
		if filter.ParticipantID != nil && !p.IsParticipant(*filter.ParticipantID) {
			continue
		}
		if filter.Status != nil && p.Status != *filter.Status {
			continue
		}
		clone := *p
		out = append(out, &clone)
	}
	return out, int64(len(out)), nil
}

func (f *fakePurchaseRepo) ListByParticipant(_ context.Context, userID uuid.UUID) ([]*domainPurchase.Purchase, error) {
	var out []*domainPurchase.Purchase
	for _, p := range f.purchases {
		if p.IsParticipant(userID) {
			clone := *p
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (f *fakePurchaseRepo) CountByBuyer(_ context.Context, buyerID uuid.UUID) (int64, error) {
	var n int64
	for _, p := range f.purchases {
		if p.BuyerID == buyerID {
			n++
		}
	}
	return n, nil
}

func (f *fakePurchaseRepo) HasActiveByProduct(_ context.Context, productID uuid.UUID) (bool, error) {
	for _, p := range f.purchases {
		if p.ProductID == productID && !p.Status.IsTerminal() {
			return true, nil
		}
	}
	return false, nil
}

type fakeProductRepo struct {
	products map[uuid.UUID]*domainProduct.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[uuid.UUID]*domainProduct.Product)}
}

func (f *fakeProductRepo) add(sellerID uuid.UUID, status domainProduct.ProductStatus) *domainProduct.Product {
	p := &domainProduct.Product{
		ID:       uuid.New(),
		SellerID: sellerID,
		Title:    "Camisa de lino",
		Price:    5000,
		Status:   status,
		Images:   []string{"https://img.example/1.jpg"},
	}
	f.products[p.ID] = p
	return p
}

func (f *fakeProductRepo) Create(_ context.Context, p *domainProduct.Product) error {
	p.ID = uuid.New()
	f.products[p.ID] = p
	return nil
}

func (f *fakeProductRepo) GetByID(_ context.Context, id uuid.UUID) (*domainProduct.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, domainProduct.ErrProductNotFound
	}
	clone := *p
	return &clone, nil
}

func (f *fakeProductRepo) GetByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]*domainProduct.Product, error) {
	out := make(map[uuid.UUID]*domainProduct.Product)
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			clone := *p
			out[id] = &clone
		}
	}
	return out, nil
}

func (f *fakeProductRepo) Update(_ context.Context, p *domainProduct.Product) error {
	f.products[p.ID] = p
	return nil
}

func (f *fakeProductRepo) UpdateStatus(_ context.Context, id uuid.UUID, status domainProduct.ProductStatus) error {
	p, ok := f.products[id]
	if !ok {
		return domainProduct.ErrProductNotFound
	}
	p.Status = status
	return nil
}

func (f *fakeProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.products, id)
	return nil
}

func (f *fakeProductRepo) List(_ context.Context, _ *domainProduct.Filter) ([]*domainProduct.Product, int64, error) {
	return nil, 0, nil
}

func (f *fakeProductRepo) ListBySeller(_ context.Context, _ uuid.UUID) ([]*domainProduct.Product, error) {
	return nil, nil
}

func (f *fakeProductRepo) ListFeatured(_ context.Context, _ int) ([]*domainProduct.Product, error) {
	return nil, nil
}

func (f *fakeProductRepo) CountBySellerAndStatus(_ context.Context, sellerID uuid.UUID, status domainProduct.ProductStatus) (int64, error) {
	var n int64
	for _, p := range f.products {
		if p.SellerID == sellerID && p.Status == status {
			n++
		}
	}
	return n, nil
}

func (f *fakeProductRepo) CountFeaturedBySeller(_ context.Context, _ uuid.UUID) (int64, error) {
	return 0, nil
}

type fakeReviewRepo struct {
	byPurchase map[uuid.UUID]*domainReview.Review
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{byPurchase: make(map[uuid.UUID]*domainReview.Review)}
}

func (f *fakeReviewRepo) Create(_ context.Context, r *domainReview.Review) error {
	if _, exists := f.byPurchase[r.PurchaseID]; exists {
		return domainReview.ErrReviewExists
	}
	r.ID = uuid.New()
	r.CreatedAt = time.Now()
	f.byPurchase[r.PurchaseID] = r
	return nil
}

func (f *fakeReviewRepo) GetByID(_ context.Context, id uuid.UUID) (*domainReview.Review, error) {
	for _, r := range f.byPurchase {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, domainReview.ErrReviewNotFound
}

func (f *fakeReviewRepo) GetByPurchase(_ context.Context, purchaseID uuid.UUID) (*domainReview.Review, error) {
	r, ok := f.byPurchase[purchaseID]
	if !ok {
		return nil, domainReview.ErrReviewNotFound
	}
	return r, nil
}

func (f *fakeReviewRepo) ListByReviewedUser(_ context.Context, userID uuid.UUID, _, _ int) ([]*domainReview.Review, int64, error) {
	reviews, _ := f.ListAllByReviewedUser(context.Background(), userID)
	return reviews, int64(len(reviews)), nil
}

func (f *fakeReviewRepo) ListAllByReviewedUser(_ context.Context, userID uuid.UUID) ([]*domainReview.Review, error) {
	var out []*domainReview.Review
	for _, r := range f.byPurchase {
		if r.ReviewedUserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReviewRepo) Delete(_ context.Context, id uuid.UUID) error {
	for pid, r := range f.byPurchase {
		if r.ID == id {
			delete(f.byPurchase, pid)
			return nil
		}
	}
	return domainReview.ErrReviewNotFound
}

func newTestService() (*Service, *fakePurchaseRepo, *fakeProductRepo) {
	purchaseRepo := newFakePurchaseRepo()
	productRepo := newFakeProductRepo()
	svc := NewService(purchaseRepo, productRepo, newFakeReviewRepo(), nil)
	return svc, purchaseRepo, productRepo
}

func createRequest(productID uuid.UUID) *CreatePurchaseRequest {
	return &CreatePurchaseRequest{
		ProductID:  productID,
		BuyerName:  "Ana Rodriguez",
		BuyerEmail: "ana@example.com",
		BuyerPhone: "8888-1234",
	}
}

func TestCreatePurchase(t *testing.T) {
	svc, _, productRepo := newTestService()
	sellerID := uuid.New()
	buyerID := uuid.New()
	prod := productRepo.add(sellerID, domainProduct.StatusAvailable)

	resp, err := svc.Create(context.Background(), buyerID, createRequest(prod.ID))
	require.NoError(t, err)

	assert.Equal(t, domainPurchase.StatusPending, resp.Status)
	assert.Equal(t, buyerID, resp.BuyerID)
	assert.Equal(t, sellerID, resp.SellerID)
	assert.True(t, resp.CanChat)
	assert.False(t, resp.CanReview)

	// Creating the purchase must not flip the product
	current, err := productRepo.GetByID(context.Background(), prod.ID)
	require.NoError(t, err)
	assert.Equal(t, domainProduct.StatusAvailable, current.Status)
}

func TestCreatePurchaseSelfPurchase(t *testing.T) {
	svc, _, productRepo := newTestService()
	sellerID := uuid.New()
	prod := productRepo.add(sellerID, domainProduct.StatusAvailable)

	_, err := svc.Create(context.Background(), sellerID, createRequest(prod.ID))
	require.Error(t, err)
	assert.Equal(t, appErrors.CodeSelfPurchase, appErrors.CodeOf(err))
}

func TestCreatePurchaseSoldProduct(t *testing.T) {
	svc, _, productRepo := newTestService()
	prod := productRepo.add(uuid.New(), domainProduct.StatusSold)

	_, err := svc.Create(context.Background(), uuid.New(), createRequest(prod.ID))
	require.Error(t, err)
	assert.Equal(t, appErrors.CodeProductUnavailable, appErrors.CodeOf(err))
}

func TestCompleteMarksProductSold(t *testing.T) {
	svc, _, productRepo := newTestService()
	sellerID := uuid.New()
	buyerID := uuid.New()
	prod := productRepo.add(sellerID, domainProduct.StatusAvailable)

	created, err := svc.Create(context.Background(), buyerID, createRequest(prod.ID))
	require.NoError(t, err)

	_, err = svc.Confirm(context.Background(), created.ID, sellerID)
	require.NoError(t, err)

	completed, err := svc.Complete(context.Background(), created.ID, sellerID)
	require.NoError(t, err)
	assert.Equal(t, domainPurchase.StatusCompleted, completed.Status)

	current, err := productRepo.GetByID(context.Background(), prod.ID)
	require.NoError(t, err)
	assert.Equal(t, domainProduct.StatusSold, current.Status)
}

func TestBuyerCannotConfirm(t *testing.T) {
	svc, _, productRepo := newTestService()
	sellerID := uuid.New()
	buyerID := uuid.New()
	prod := productRepo.add(sellerID, domainProduct.StatusAvailable)

	created, err := svc.Create(context.Background(), buyerID, createRequest(prod.ID))
	require.NoError(t, err)

	_, err = svc.Confirm(context.Background(), created.ID, buyerID)
	require.Error(t, err)
	assert.Equal(t, appErrors.CodeNotAuthorized, appErrors.CodeOf(err))
}

func TestBuyerCanCancelPending(t *testing.T) {
	svc, _, productRepo := newTestService()
	sellerID := uuid.New()
	buyerID := uuid.New()
	prod := productRepo.add(sellerID, domainProduct.StatusAvailable)

	created, err := svc.Create(context.Background(), buyerID, createRequest(prod.ID))
	require.NoError(t, err)

	cancelled, err := svc.Cancel(context.Background(), created.ID, buyerID)
	require.NoError(t, err)
	assert.Equal(t, domainPurchase.StatusCancelled, cancelled.Status)
	assert.False(t, cancelled.CanChat)
}

func TestCompletedPurchaseIsTerminal(t *testing.T) {
	svc, _, productRepo := newTestService()
	sellerID := uuid.New()
	buyerID := uuid.New()
	prod := productRepo.add(sellerID, domainProduct.StatusAvailable)

	created, err := svc.Create(context.Background(), buyerID, createRequest(prod.ID))
	require.NoError(t, err)

	_, err = svc.Confirm(context.Background(), created.ID, sellerID)
	require.NoError(t, err)
	_, err = svc.Complete(context.Background(), created.ID, sellerID)
	require.NoError(t, err)

	_, err = svc.Cancel(context.Background(), created.ID, sellerID)
	require.Error(t, err)
	assert.Equal(t, appErrors.CodeInvalidTransition, appErrors.CodeOf(err))
}

func TestGetByIDNonParticipant(t *testing.T) {
	svc, _, productRepo := newTestService()
	prod := productRepo.add(uuid.New(), domainProduct.StatusAvailable)

	created, err := svc.Create(context.Background(), uuid.New(), createRequest(prod.ID))
	require.NoError(t, err)

	_, err = svc.GetByID(context.Background(), created.ID, uuid.New())
	require.Error(t, err)
	assert.Equal(t, appErrors.CodeNotAuthorized, appErrors.CodeOf(err))
}

func TestListByRole(t *testing.T) {
	svc, _, productRepo := newTestService()
	sellerID := uuid.New()
	buyerID := uuid.New()
	prod := productRepo.add(sellerID, domainProduct.StatusAvailable)

	_, err := svc.Create(context.Background(), buyerID, createRequest(prod.ID))
	require.NoError(t, err)

	asBuyer, err := svc.List(context.Background(), buyerID, &ListPurchasesRequest{Role: "buyer"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), asBuyer.Total)

	asSeller, err := svc.List(context.Background(), buyerID, &ListPurchasesRequest{Role: "seller"})
	require.NoError(t, err)
	assert.Equal(t, int64(0), asSeller.Total)

	both, err := svc.List(context.Background(), sellerID, &ListPurchasesRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), both.Total)
}
