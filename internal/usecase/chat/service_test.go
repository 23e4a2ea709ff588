package chat

import (
	"context"
	"sort"
	"testing"
	"time"

	domainMessage "ecotrade-marketplace/internal/domain/message"
	domainProduct "ecotrade-marketplace/internal/domain/product"
	domainPurchase "ecotrade-marketplace/internal/domain/purchase"
	domainUser "ecotrade-marketplace/internal/domain/user"
	appErrors "ecotrade-marketplace/pkg/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMessageRepo struct {
	messages []*domainMessage.Message
}

func (f *fakeMessageRepo) Create(_ context.Context, m *domainMessage.Message) error {
	m.ID = uuid.New()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	f.messages = append(f.messages, m)
	return nil
}

func (f *fakeMessageRepo) GetByID(_ context.Context, id uuid.UUID) (*domainMessage.Message, error) {
	for _, m := range f.messages {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, domainMessage.ErrMessageNotFound
}

func (f *fakeMessageRepo) ListByPurchase(_ context.Context, purchaseID uuid.UUID) ([]*domainMessage.Message, error) {
	var out []*domainMessage.Message
	for _, m := range f.messages {
		if m.PurchaseID == purchaseID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeMessageRepo) ListByPurchases(ctx context.Context, purchaseIDs []uuid.UUID) (map[uuid.UUID][]*domainMessage.Message, error) {
	out := make(map[uuid.UUID][]*domainMessage.Message)
	for _, id := range purchaseIDs {
		history, _ := f.ListByPurchase(ctx, id)
		if len(history) > 0 {
			out[id] = history
		}
	}
	return out, nil
}

func (f *fakeMessageRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, m := range f.messages {
		if m.ID == id {
			f.messages = append(f.messages[:i], f.messages[i+1:]...)
			return nil
		}
	}
	return domainMessage.ErrMessageNotFound
}

type fakePurchaseRepo struct {
	purchases map[uuid.UUID]*domainPurchase.Purchase
}

func newFakePurchaseRepo() *fakePurchaseRepo {
	return &fakePurchaseRepo{purchases: make(map[uuid.UUID]*domainPurchase.Purchase)}
}

func (f *fakePurchaseRepo) add(buyerID, sellerID uuid.UUID, status domainPurchase.Status, createdAt time.Time) *domainPurchase.Purchase {
	p := &domainPurchase.Purchase{
		ID:        uuid.New(),
		ProductID: uuid.New(),
		BuyerID:   buyerID,
		SellerID:  sellerID,
		Status:    status,
		CreatedAt: createdAt,
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
	p, ok := f.purchases[id]
	if !ok {
		return domainPurchase.ErrPurchaseNotFound
	}
	p.Status = status
	return nil
}

func (f *fakePurchaseRepo) List(_ context.Context, _ *domainPurchase.Filter) ([]*domainPurchase.Purchase, int64, error) {
	return nil, 0, nil
}

func (f *fakePurchaseRepo) ListByParticipant(_ context.Context, userID uuid.UUID) ([]*domainPurchase.Purchase, error) {
	var out []*domainPurchase.Purchase
	for _, p := range f.purchases {
		if p.IsParticipant(userID) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePurchaseRepo) CountByBuyer(_ context.Context, _ uuid.UUID) (int64, error) {
	return 0, nil
}

func (f *fakePurchaseRepo) HasActiveByProduct(_ context.Context, _ uuid.UUID) (bool, error) {
	return false, nil
}

type fakeProductRepo struct{}

func (fakeProductRepo) Create(_ context.Context, _ *domainProduct.Product) error { return nil }
func (fakeProductRepo) GetByID(_ context.Context, _ uuid.UUID) (*domainProduct.Product, error) {
	return nil, domainProduct.ErrProductNotFound
}
func (fakeProductRepo) GetByIDs(_ context.Context, _ []uuid.UUID) (map[uuid.UUID]*domainProduct.Product, error) {
	return map[uuid.UUID]*domainProduct.Product{}, nil
}
func (fakeProductRepo) Update(_ context.Context, _ *domainProduct.Product) error { return nil }
func (fakeProductRepo) UpdateStatus(_ context.Context, _ uuid.UUID, _ domainProduct.ProductStatus) error {
	return nil
}
func (fakeProductRepo) Delete(_ context.Context, _ uuid.UUID) error { return nil }
func (fakeProductRepo) List(_ context.Context, _ *domainProduct.Filter) ([]*domainProduct.Product, int64, error) {
	return nil, 0, nil
}
func (fakeProductRepo) ListBySeller(_ context.Context, _ uuid.UUID) ([]*domainProduct.Product, error) {
	return nil, nil
}
func (fakeProductRepo) ListFeatured(_ context.Context, _ int) ([]*domainProduct.Product, error) {
	return nil, nil
}
func (fakeProductRepo) CountBySellerAndStatus(_ context.Context, _ uuid.UUID, _ domainProduct.ProductStatus) (int64, error) {
	return 0, nil
}
func (fakeProductRepo) CountFeaturedBySeller(_ context.Context, _ uuid.UUID) (int64, error) {
	return 0, nil
}

type fakeUserRepo struct{}

func (fakeUserRepo) Create(_ context.Context, _ *domainUser.User) error { return nil }
func (fakeUserRepo) GetByEmail(_ context.Context, _ string) (*domainUser.User, error) {
	return nil, appErrors.ErrUserNotFound
}
func (fakeUserRepo) GetByID(_ context.Context, _ uuid.UUID) (*domainUser.User, error) {
	return nil, appErrors.ErrUserNotFound
}
func (fakeUserRepo) GetByIDs(_ context.Context, _ []uuid.UUID) (map[uuid.UUID]*domainUser.User, error) {
	return map[uuid.UUID]*domainUser.User{}, nil
}
func (fakeUserRepo) Update(_ context.Context, _ *domainUser.User) error { return nil }
func (fakeUserRepo) UpdateRating(_ context.Context, _ uuid.UUID, _ float64, _ int) error {
	return nil
}

func newTestService() (*Service, *fakeMessageRepo, *fakePurchaseRepo) {
	messageRepo := &fakeMessageRepo{}
	purchaseRepo := newFakePurchaseRepo()
	svc := NewService(messageRepo, purchaseRepo, fakeProductRepo{}, fakeUserRepo{})
	return svc, messageRepo, purchaseRepo
}

func TestSendMessage(t *testing.T) {
	svc, messageRepo, purchaseRepo := newTestService()
	buyerID := uuid.New()
	p := purchaseRepo.add(buyerID, uuid.New(), domainPurchase.StatusPending, time.Now())

	resp, err := svc.SendMessage(context.Background(), p.ID, buyerID, &SendMessageRequest{Text: "Hola, sigue disponible?"})
	require.NoError(t, err)

	assert.Equal(t, "Hola, sigue disponible?", resp.Text)
	assert.True(t, resp.Mine)
	assert.Len(t, messageRepo.messages, 1)
}

func TestSendMessageNonParticipant(t *testing.T) {
	svc, messageRepo, purchaseRepo := newTestService()
	p := purchaseRepo.add(uuid.New(), uuid.New(), domainPurchase.StatusPending, time.Now())

	_, err := svc.SendMessage(context.Background(), p.ID, uuid.New(), &SendMessageRequest{Text: "hola"})
	require.Error(t, err)
	assert.Equal(t, appErrors.CodeChatNotPermitted, appErrors.CodeOf(err))
	assert.Empty(t, messageRepo.messages)
}

func TestSendMessageCancelledPurchase(t *testing.T) {
	svc, _, purchaseRepo := newTestService()
	buyerID := uuid.New()
	p := purchaseRepo.add(buyerID, uuid.New(), domainPurchase.StatusCancelled, time.Now())

	_, err := svc.SendMessage(context.Background(), p.ID, buyerID, &SendMessageRequest{Text: "hola"})
	require.Error(t, err)
	assert.Equal(t, appErrors.CodeChatNotPermitted, appErrors.CodeOf(err))
}

func TestSendMessageBlankText(t *testing.T) {
	svc, messageRepo, purchaseRepo := newTestService()
	buyerID := uuid.New()
	p := purchaseRepo.add(buyerID, uuid.New(), domainPurchase.StatusPending, time.Now())

	_, err := svc.SendMessage(context.Background(), p.ID, buyerID, &SendMessageRequest{Text: "   "})
	require.Error(t, err)
	assert.Equal(t, appErrors.CodeEmptyMessage, appErrors.CodeOf(err))
	assert.Empty(t, messageRepo.messages)
}

func TestGetMessagesByPurchaseNonParticipant(t *testing.T) {
	svc, _, purchaseRepo := newTestService()
	p := purchaseRepo.add(uuid.New(), uuid.New(), domainPurchase.StatusPending, time.Now())

	_, err := svc.GetMessagesByPurchase(context.Background(), p.ID, uuid.New())
	require.Error(t, err)
	assert.Equal(t, appErrors.CodeChatNotPermitted, appErrors.CodeOf(err))
}

func TestGetMessagesOrderedAscending(t *testing.T) {
	svc, messageRepo, purchaseRepo := newTestService()
	buyerID := uuid.New()
	sellerID := uuid.New()
	p := purchaseRepo.add(buyerID, sellerID, domainPurchase.StatusConfirmed, time.Now())

	base := time.Now()
	for i, text := range []string{"primero", "segundo", "tercero"} {
		messageRepo.messages = append(messageRepo.messages, &domainMessage.Message{
			ID:         uuid.New(),
			PurchaseID: p.ID,
			SenderID:   buyerID,
			Text:       text,
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
		})
	}

	history, err := svc.GetMessagesByPurchase(context.Background(), p.ID, sellerID)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "primero", history[0].Text)
	assert.Equal(t, "tercero", history[2].Text)
	assert.False(t, history[0].Mine)
}

func TestGetAllConversationsOrdering(t *testing.T) {
	svc, messageRepo, purchaseRepo := newTestService()
	userID := uuid.New()

	base := time.Now().Add(-time.Hour)

	// P1 has a message at T1, P2 has none, P3 has a message at T2 > T1
	p1 := purchaseRepo.add(userID, uuid.New(), domainPurchase.StatusPending, base)
	p2 := purchaseRepo.add(userID, uuid.New(), domainPurchase.StatusPending, base.Add(10*time.Minute))
	p3 := purchaseRepo.add(userID, uuid.New(), domainPurchase.StatusPending, base.Add(5*time.Minute))

	messageRepo.messages = append(messageRepo.messages,
		&domainMessage.Message{ID: uuid.New(), PurchaseID: p1.ID, SenderID: userID, Text: "t1", CreatedAt: base.Add(20 * time.Minute)},
		&domainMessage.Message{ID: uuid.New(), PurchaseID: p3.ID, SenderID: userID, Text: "t2", CreatedAt: base.Add(30 * time.Minute)},
	)

	conversations, err := svc.GetAllConversations(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, conversations, 3)

	assert.Equal(t, p3.ID, conversations[0].PurchaseID)
	assert.Equal(t, p1.ID, conversations[1].PurchaseID)
	assert.Equal(t, p2.ID, conversations[2].PurchaseID)

	assert.Equal(t, "t2", conversations[0].LastMessage.Text)
	assert.Nil(t, conversations[2].LastMessage)
}

func TestGetAllConversationsNoMessageTiebreak(t *testing.T) {
	svc, _, purchaseRepo := newTestService()
	userID := uuid.New()

	base := time.Now().Add(-time.Hour)
	older := purchaseRepo.add(userID, uuid.New(), domainPurchase.StatusPending, base)
	newer := purchaseRepo.add(userID, uuid.New(), domainPurchase.StatusPending, base.Add(time.Minute))

	conversations, err := svc.GetAllConversations(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, conversations, 2)

	assert.Equal(t, newer.ID, conversations[0].PurchaseID)
	assert.Equal(t, older.ID, conversations[1].PurchaseID)
}

func TestDeleteMessageSenderOnly(t *testing.T) {
	svc, messageRepo, purchaseRepo := newTestService()
	buyerID := uuid.New()
	p := purchaseRepo.add(buyerID, uuid.New(), domainPurchase.StatusPending, time.Now())

	sent, err := svc.SendMessage(context.Background(), p.ID, buyerID, &SendMessageRequest{Text: "hola"})
	require.NoError(t, err)

	err = svc.DeleteMessage(context.Background(), sent.ID, uuid.New())
	require.Error(t, err)
	assert.Equal(t, appErrors.CodeNotAuthorized, appErrors.CodeOf(err))
	assert.Len(t, messageRepo.messages, 1)

	require.NoError(t, svc.DeleteMessage(context.Background(), sent.ID, buyerID))
	assert.Empty(t, messageRepo.messages)
}
