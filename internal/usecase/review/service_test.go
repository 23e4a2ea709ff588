package review

import (
	"context"
	"math/rand"
	"testing"
	"time"

	domainPurchase "ecotrade-marketplace/internal/domain/purchase"
	domainReview "ecotrade-marketplace/internal/domain/review"
	domainUser "ecotrade-marketplace/internal/domain/user"
	appErrors "ecotrade-marketplace/pkg/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

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

func (f *fakeReviewRepo) ListByReviewedUser(ctx context.Context, userID uuid.UUID, _, _ int) ([]*domainReview.Review, int64, error) {
	reviews, _ := f.ListAllByReviewedUser(ctx, userID)
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

type fakePurchaseRepo struct {
	purchases map[uuid.UUID]*domainPurchase.Purchase
}

func newFakePurchaseRepo() *fakePurchaseRepo {
	return &fakePurchaseRepo{purchases: make(map[uuid.UUID]*domainPurchase.Purchase)}
}

func (f *fakePurchaseRepo) add(buyerID, sellerID uuid.UUID, status domainPurchase.Status) *domainPurchase.Purchase {
	p := &domainPurchase.Purchase{
		ID:       uuid.New(),
		BuyerID:  buyerID,
		SellerID: sellerID,
		Status:   status,
	}
	f.purchases[p.ID] = p
	return p
}

func (f *fakePurchaseRepo) Create(_ context.Context, p *domainPurchase.Purchase) error {
	p.ID = uuid.New()
	f.purchases[p.ID] = p
	return nil
}

func (f *fakePurchaseRepo) GetByID(_ context.Context, id uuid.UUID) (*domainPurchase.Purchase, error) {
	p, ok := f.purchases[id]
	if !ok {
		return nil, domainPurchase.ErrPurchaseNotFound
	}
	return p, nil
}

func (f *fakePurchaseRepo) UpdateStatus(_ context.Context, id uuid.UUID, status domainPurchase.Status) error {
	f.purchases[id].Status = status
	return nil
}

func (f *fakePurchaseRepo) List(_ context.Context, _ *domainPurchase.Filter) ([]*domainPurchase.Purchase, int64, error) {
	return nil, 0, nil
}

func (f *fakePurchaseRepo) ListByParticipant(_ context.Context, _ uuid.UUID) ([]*domainPurchase.Purchase, error) {
	return nil, nil
}

func (f *fakePurchaseRepo) CountByBuyer(_ context.Context, _ uuid.UUID) (int64, error) {
	return 0, nil
}

func (f *fakePurchaseRepo) HasActiveByProduct(_ context.Context, _ uuid.UUID) (bool, error) {
	return false, nil
}

type fakeUserRepo struct {
	ratings map[uuid.UUID]float64
	totals  map[uuid.UUID]int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		ratings: make(map[uuid.UUID]float64),
		totals:  make(map[uuid.UUID]int),
	}
}

func (f *fakeUserRepo) Create(_ context.Context, _ *domainUser.User) error { return nil }

func (f *fakeUserRepo) GetByEmail(_ context.Context, _ string) (*domainUser.User, error) {
	return nil, appErrors.ErrUserNotFound
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*domainUser.User, error) {
	return &domainUser.User{
		ID:           id,
		FullName:     "Vendedor Ejemplo",
		Rating:       f.ratings[id],
		TotalReviews: f.totals[id],
	}, nil
}

func (f *fakeUserRepo) GetByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]*domainUser.User, error) {
	out := make(map[uuid.UUID]*domainUser.User, len(ids))
	for _, id := range ids {
		u, _ := f.GetByID(context.Background(), id)
		out[id] = u
	}
	return out, nil
}

func (f *fakeUserRepo) Update(_ context.Context, _ *domainUser.User) error { return nil }

func (f *fakeUserRepo) UpdateRating(_ context.Context, id uuid.UUID, rating float64, totalReviews int) error {
	f.ratings[id] = rating
	f.totals[id] = totalReviews
	return nil
}

func newTestService() (*Service, *fakePurchaseRepo, *fakeUserRepo) {
	purchaseRepo := newFakePurchaseRepo()
	userRepo := newFakeUserRepo()
	svc := NewService(newFakeReviewRepo(), purchaseRepo, userRepo)
	return svc, purchaseRepo, userRepo
}

func TestSubmitReview(t *testing.T) {
	svc, purchaseRepo, userRepo := newTestService()
	buyerID := uuid.New()
	sellerID := uuid.New()
	p := purchaseRepo.add(buyerID, sellerID, domainPurchase.StatusCompleted)

	comment := "Excelente vendedor"
	resp, err := svc.Submit(context.Background(), buyerID, &SubmitReviewRequest{
		PurchaseID: p.ID,
		Rating:     5,
		Comment:    &comment,
	})
	require.NoError(t, err)

	assert.Equal(t, 5, resp.Rating)
	assert.Equal(t, sellerID, resp.ReviewedUserID)
	assert.Equal(t, 5.0, userRepo.ratings[sellerID])
	assert.Equal(t, 1, userRepo.totals[sellerID])
}

func TestSubmitReviewRatingRequired(t *testing.T) {
	svc, purchaseRepo, _ := newTestService()
	buyerID := uuid.New()
	p := purchaseRepo.add(buyerID, uuid.New(), domainPurchase.StatusCompleted)

	_, err := svc.Submit(context.Background(), buyerID, &SubmitReviewRequest{PurchaseID: p.ID})
	require.Error(t, err)
	assert.Equal(t, appErrors.CodeRatingRequired, appErrors.CodeOf(err))
}

func TestSubmitReviewDuplicate(t *testing.T) {
	svc, purchaseRepo, _ := newTestService()
	buyerID := uuid.New()
	p := purchaseRepo.add(buyerID, uuid.New(), domainPurchase.StatusCompleted)

	_, err := svc.Submit(context.Background(), buyerID, &SubmitReviewRequest{PurchaseID: p.ID, Rating: 4})
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), buyerID, &SubmitReviewRequest{PurchaseID: p.ID, Rating: 5})
	require.Error(t, err)
	assert.Equal(t, appErrors.CodeDuplicateReview, appErrors.CodeOf(err))
}

func TestSubmitReviewPendingPurchase(t *testing.T) {
	svc, purchaseRepo, _ := newTestService()
	buyerID := uuid.New()
	p := purchaseRepo.add(buyerID, uuid.New(), domainPurchase.StatusPending)

	_, err := svc.Submit(context.Background(), buyerID, &SubmitReviewRequest{PurchaseID: p.ID, Rating: 4})
	require.Error(t, err)
	assert.Equal(t, appErrors.CodeReviewNotPermitted, appErrors.CodeOf(err))
}

func TestSubmitReviewSellerForbidden(t *testing.T) {
	svc, purchaseRepo, _ := newTestService()
	sellerID := uuid.New()
	p := purchaseRepo.add(uuid.New(), sellerID, domainPurchase.StatusCompleted)

	_, err := svc.Submit(context.Background(), sellerID, &SubmitReviewRequest{PurchaseID: p.ID, Rating: 4})
	require.Error(t, err)
	assert.Equal(t, appErrors.CodeReviewNotPermitted, appErrors.CodeOf(err))
}

func TestRatingMeanOrderIndependent(t *testing.T) {
	sellerID := uuid.New()
	ratings := []int{5, 4, 3}

	for trial := 0; trial < 5; trial++ {
		svc, purchaseRepo, userRepo := newTestService()

		shuffled := append([]int(nil), ratings...)
		rand.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

		for _, rating := range shuffled {
			p := purchaseRepo.add(uuid.New(), sellerID, domainPurchase.StatusCompleted)
			_, err := svc.Submit(context.Background(), p.BuyerID, &SubmitReviewRequest{
				PurchaseID: p.ID,
				Rating:     rating,
			})
			require.NoError(t, err)
		}

		assert.InDelta(t, 4.0, userRepo.ratings[sellerID], 0.0001)
		assert.Equal(t, 3, userRepo.totals[sellerID])
	}
}

func TestDeleteReviewRecomputes(t *testing.T) {
	svc, purchaseRepo, userRepo := newTestService()
	sellerID := uuid.New()

	p1 := purchaseRepo.add(uuid.New(), sellerID, domainPurchase.StatusCompleted)
	p2 := purchaseRepo.add(uuid.New(), sellerID, domainPurchase.StatusCompleted)

	first, err := svc.Submit(context.Background(), p1.BuyerID, &SubmitReviewRequest{PurchaseID: p1.ID, Rating: 5})
	require.NoError(t, err)
	_, err = svc.Submit(context.Background(), p2.BuyerID, &SubmitReviewRequest{PurchaseID: p2.ID, Rating: 3})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), first.ID, p1.BuyerID, false))

	assert.InDelta(t, 3.0, userRepo.ratings[sellerID], 0.0001)
	assert.Equal(t, 1, userRepo.totals[sellerID])
}

func TestDeleteReviewNotReviewer(t *testing.T) {
	svc, purchaseRepo, _ := newTestService()
	p := purchaseRepo.add(uuid.New(), uuid.New(), domainPurchase.StatusCompleted)

	created, err := svc.Submit(context.Background(), p.BuyerID, &SubmitReviewRequest{PurchaseID: p.ID, Rating: 4})
	require.NoError(t, err)

	err = svc.Delete(context.Background(), created.ID, uuid.New(), false)
	require.Error(t, err)
	assert.Equal(t, appErrors.CodeNotAuthorized, appErrors.CodeOf(err))
}
