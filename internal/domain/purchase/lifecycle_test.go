package purchase

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "ecotrade-marketplace/pkg/errors"
)

func TestValidateTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    Status
		to      Status
		allowed bool
	}{
		{"pending to confirmed", StatusPending, StatusConfirmed, true},
		{"pending to cancelled", StatusPending, StatusCancelled, true},
		{"confirmed to completed", StatusConfirmed, StatusCompleted, true},
		{"confirmed to cancelled", StatusConfirmed, StatusCancelled, true},
		{"pending to completed skips confirmation", StatusPending, StatusCompleted, false},
		{"completed is terminal", StatusCompleted, StatusCancelled, false},
		{"completed cannot reopen", StatusCompleted, StatusConfirmed, false},
		{"cancelled is terminal", StatusCancelled, StatusConfirmed, false},
		{"cancelled cannot complete", StatusCancelled, StatusCompleted, false},
		{"confirmed cannot revert", StatusConfirmed, StatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTransition(tt.from, tt.to)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Equal(t, appErrors.CodeInvalidTransition, appErrors.CodeOf(err))
			}
		})
	}
}

func TestValidateTransitionUnknownStatus(t *testing.T) {
	err := ValidateTransition(Status("shipped"), StatusCompleted)
	require.Error(t, err)
	assert.Equal(t, "INVALID_STATUS", appErrors.CodeOf(err))
}

func TestAuthorizeTransition(t *testing.T) {
	buyer := uuid.New()
	seller := uuid.New()
	stranger := uuid.New()

	newPurchase := func(status Status) *Purchase {
		return &Purchase{ID: uuid.New(), BuyerID: buyer, SellerID: seller, Status: status}
	}

	t.Run("seller confirms pending", func(t *testing.T) {
		assert.NoError(t, AuthorizeTransition(newPurchase(StatusPending), seller, StatusConfirmed))
	})

	t.Run("buyer cannot confirm", func(t *testing.T) {
		err := AuthorizeTransition(newPurchase(StatusPending), buyer, StatusConfirmed)
		require.Error(t, err)
		assert.Equal(t, appErrors.CodeNotAuthorized, appErrors.CodeOf(err))
	})

	t.Run("seller completes confirmed", func(t *testing.T) {
		assert.NoError(t, AuthorizeTransition(newPurchase(StatusConfirmed), seller, StatusCompleted))
	})

	t.Run("either side cancels while pending", func(t *testing.T) {
		assert.NoError(t, AuthorizeTransition(newPurchase(StatusPending), buyer, StatusCancelled))
		assert.NoError(t, AuthorizeTransition(newPurchase(StatusPending), seller, StatusCancelled))
	})

	t.Run("non-participant is rejected before transition check", func(t *testing.T) {
		err := AuthorizeTransition(newPurchase(StatusPending), stranger, StatusConfirmed)
		require.Error(t, err)
		assert.Equal(t, appErrors.CodeNotAuthorized, appErrors.CodeOf(err))
	})

	t.Run("terminal state rejects any move", func(t *testing.T) {
		err := AuthorizeTransition(newPurchase(StatusCompleted), seller, StatusCancelled)
		require.Error(t, err)
		assert.Equal(t, appErrors.CodeInvalidTransition, appErrors.CodeOf(err))
	})
}

func TestCanInitiatePurchase(t *testing.T) {
	buyer := uuid.New()
	seller := uuid.New()

	assert.True(t, CanInitiatePurchase(buyer, seller, true))
	assert.False(t, CanInitiatePurchase(buyer, seller, false), "sold product")
	assert.False(t, CanInitiatePurchase(seller, seller, true), "self purchase")
	assert.False(t, CanInitiatePurchase(uuid.Nil, seller, true), "anonymous user")
}

func TestCanChat(t *testing.T) {
	buyer := uuid.New()
	seller := uuid.New()
	stranger := uuid.New()

	for _, status := range []Status{StatusPending, StatusConfirmed, StatusCompleted} {
		p := &Purchase{BuyerID: buyer, SellerID: seller, Status: status}
		assert.True(t, CanChat(buyer, p), "buyer on %s", status)
		assert.True(t, CanChat(seller, p), "seller on %s", status)
		assert.False(t, CanChat(stranger, p), "stranger on %s", status)
	}

	cancelled := &Purchase{BuyerID: buyer, SellerID: seller, Status: StatusCancelled}
	assert.False(t, CanChat(buyer, cancelled))
	assert.False(t, CanChat(seller, cancelled))
}

func TestCanReview(t *testing.T) {
	buyer := uuid.New()
	seller := uuid.New()

	p := func(status Status) *Purchase {
		return &Purchase{BuyerID: buyer, SellerID: seller, Status: status}
	}

	assert.True(t, CanReview(buyer, p(StatusConfirmed), false))
	assert.True(t, CanReview(buyer, p(StatusCompleted), false))
	assert.False(t, CanReview(buyer, p(StatusPending), false), "purchase not confirmed yet")
	assert.False(t, CanReview(buyer, p(StatusCancelled), false), "cancelled purchase")
	assert.False(t, CanReview(seller, p(StatusCompleted), false), "seller cannot review")
	assert.False(t, CanReview(buyer, p(StatusCompleted), true), "already reviewed")
}

func TestCanCancel(t *testing.T) {
	buyer := uuid.New()
	seller := uuid.New()
	stranger := uuid.New()

	p := func(status Status) *Purchase {
		return &Purchase{BuyerID: buyer, SellerID: seller, Status: status}
	}

	assert.True(t, CanCancel(buyer, p(StatusPending)))
	assert.True(t, CanCancel(seller, p(StatusConfirmed)))
	assert.False(t, CanCancel(stranger, p(StatusPending)))
	assert.False(t, CanCancel(buyer, p(StatusCompleted)))
	assert.False(t, CanCancel(buyer, p(StatusCancelled)))
}
