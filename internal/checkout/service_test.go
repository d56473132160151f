package checkout

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Dele-Oyelese/Brittania-Brewing-application/internal/domain"
	"github.com/Dele-Oyelese/Brittania-Brewing-application/internal/inventory"
	"github.com/Dele-Oyelese/Brittania-Brewing-application/internal/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testProfileID = "profile-123"

var testLocationID = uuid.New()

func testCart(t *testing.T) *domain.Cart {
	t.Helper()
	cart := domain.NewCart(testProfileID)
	cart.AddLine(domain.CartLine{
		BeerID:        uuid.New(),
		BeerName:      "West Coast IPA",
		ContainerSize: "50L",
		UnitPrice:     decimal.RequireFromString("150.00"),
		Quantity:      2,
	})
	cart.AddLine(domain.CartLine{
		BeerID:        uuid.New(),
		BeerName:      "Czech Pilsner",
		ContainerSize: "flat",
		UnitPrice:     decimal.RequireFromString("40.00"),
		Quantity:      2,
	})
	return cart
}

func testRequest() *SubmissionRequest {
	return &SubmissionRequest{
		ProfileID:      testProfileID,
		LocationID:     testLocationID.String(),
		IdempotencyKey: "attempt-1",
	}
}

func newTestService(repo *MockOrderRepository, carts *MockCartAggregator) *ServiceImpl {
	return NewService(repo, carts, decimal.RequireFromString("0.05"))
}

func TestSubmit_Success(t *testing.T) {
	repo := NewMockOrderRepository()
	carts := &MockCartAggregator{Cart: testCart(t)}
	svc := newTestService(repo, carts)

	order, err := svc.Submit(context.Background(), testRequest())
	require.NoError(t, err)
	require.NotNil(t, order)

	// 2x150 + 2x40 = 380.00, tax 5% = 19.00, total 399.00
	assert.True(t, order.Subtotal.Equal(decimal.RequireFromString("380.00")), "subtotal %s", order.Subtotal)
	assert.True(t, order.TaxAmount.Equal(decimal.RequireFromString("19.00")), "tax %s", order.TaxAmount)
	assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("399.00")), "total %s", order.TotalAmount)

	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.Equal(t, testProfileID, order.ProfileID)
	assert.Len(t, order.Items, 2)
	assert.Regexp(t, `^BB-[0-9A-Z]+-[0-9A-Z]{4}$`, order.OrderNumber)
	assert.True(t, carts.Cleared, "cart should be cleared after a durable order")
	assert.Len(t, repo.Created, 1)
}

func TestSubmit_SnapshotPricesWin(t *testing.T) {
	repo := NewMockOrderRepository()
	cart := domain.NewCart(testProfileID)
	cart.AddLine(domain.CartLine{
		BeerID:        uuid.New(),
		BeerName:      "Oatmeal Stout",
		ContainerSize: "30L",
		UnitPrice:     decimal.RequireFromString("99.95"),
		Quantity:      3,
	})
	carts := &MockCartAggregator{Cart: cart}
	svc := newTestService(repo, carts)

	order, err := svc.Submit(context.Background(), testRequest())
	require.NoError(t, err)

	require.Len(t, order.Items, 1)
	assert.True(t, order.Items[0].UnitPrice.Equal(decimal.RequireFromString("99.95")))
	assert.True(t, order.Items[0].LineTotal.Equal(decimal.RequireFromString("299.85")))
	assert.True(t, order.Subtotal.Equal(decimal.RequireFromString("299.85")))
}

func TestSubmit_Unauthenticated(t *testing.T) {
	svc := newTestService(NewMockOrderRepository(), &MockCartAggregator{Cart: testCart(t)})

	request := testRequest()
	request.ProfileID = ""

	_, err := svc.Submit(context.Background(), request)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestSubmit_EmptyCart(t *testing.T) {
	carts := &MockCartAggregator{Cart: domain.NewCart(testProfileID)}
	svc := newTestService(NewMockOrderRepository(), carts)

	_, err := svc.Submit(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.False(t, carts.Cleared)
}

func TestSubmit_MissingIdempotencyKey(t *testing.T) {
	svc := newTestService(NewMockOrderRepository(), &MockCartAggregator{Cart: testCart(t)})

	request := testRequest()
	request.IdempotencyKey = ""

	_, err := svc.Submit(context.Background(), request)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "idempotency_key", validationErr.Field)
}

func TestSubmit_InvalidLocation(t *testing.T) {
	svc := newTestService(NewMockOrderRepository(), &MockCartAggregator{Cart: testCart(t)})

	request := testRequest()
	request.LocationID = "not-a-uuid"

	_, err := svc.Submit(context.Background(), request)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "location_id", validationErr.Field)
}

func TestSubmit_DeliveryDateValidation(t *testing.T) {
	svc := newTestService(NewMockOrderRepository(), &MockCartAggregator{Cart: testCart(t)})

	for _, raw := range []string{"19/09/2026", "yesterday", "2019-01-01"} {
		request := testRequest()
		request.DeliveryDate = raw

		_, err := svc.Submit(context.Background(), request)
		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr, "date %q", raw)
		assert.Equal(t, "delivery_date", validationErr.Field)
	}
}

func TestSubmit_DeliveryDateTodayAndLaterAccepted(t *testing.T) {
	for _, daysAhead := range []int{0, 1, 14} {
		repo := NewMockOrderRepository()
		svc := newTestService(repo, &MockCartAggregator{Cart: testCart(t)})

		request := testRequest()
		request.DeliveryDate = time.Now().AddDate(0, 0, daysAhead).Format("2006-01-02")

		order, err := svc.Submit(context.Background(), request)
		require.NoError(t, err, "delivery in %d days", daysAhead)
		require.NotNil(t, order.DeliveryDate)
		assert.Equal(t, request.DeliveryDate, order.DeliveryDate.Format("2006-01-02"))
	}
}

func TestSubmit_DuplicateKeyReturnsExistingOrder(t *testing.T) {
	repo := NewMockOrderRepository()
	carts := &MockCartAggregator{Cart: testCart(t)}
	svc := newTestService(repo, carts)

	first, err := svc.Submit(context.Background(), testRequest())
	require.NoError(t, err)

	// Same key again: no second order, same result back
	carts.Cleared = false
	second, err := svc.Submit(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.OrderNumber, second.OrderNumber)
	assert.Len(t, repo.Created, 1)
	assert.False(t, carts.Cleared, "a collapsed resubmission must not clear the cart again")
}

func TestSubmit_ConcurrentDuplicateCommitsFirst(t *testing.T) {
	repo := NewMockOrderRepository()
	winner := &domain.Order{
		ID:             uuid.New(),
		OrderNumber:    "BB-WINNER-0001",
		ProfileID:      testProfileID,
		IdempotencyKey: "attempt-1",
		Status:         domain.OrderStatusPending,
	}
	repo.OrdersByKey["attempt-1"] = winner
	// The pre-insert lookup misses the race, the insert then hits the
	// unique constraint and the coordinator re-fetches the winner.
	repo.LookupErrs = []error{repository.ErrOrderNotFound}
	repo.CreateErrs = []error{repository.ErrDuplicateSubmission}

	svc := newTestService(repo, &MockCartAggregator{Cart: testCart(t)})
	order, err := svc.Submit(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Equal(t, winner.ID, order.ID)
}

func TestSubmit_InsufficientStockPropagates(t *testing.T) {
	repo := NewMockOrderRepository()
	stockErr := &inventory.InsufficientStockError{
		BeerID:        uuid.New(),
		BeerName:      "West Coast IPA",
		ContainerSize: "50L",
		Requested:     2,
	}
	repo.CreateErrs = []error{stockErr}
	carts := &MockCartAggregator{Cart: testCart(t)}
	svc := newTestService(repo, carts)

	_, err := svc.Submit(context.Background(), testRequest())
	assert.ErrorIs(t, err, inventory.ErrInsufficientStock)
	assert.False(t, carts.Cleared, "a rejected order must leave the cart intact")
	assert.Empty(t, repo.Created)
}

func TestSubmit_RetriesOnceOnOrderNumberCollision(t *testing.T) {
	repo := NewMockOrderRepository()
	repo.CreateErrs = []error{repository.ErrOrderNumberCollision, nil}
	svc := newTestService(repo, &MockCartAggregator{Cart: testCart(t)})

	order, err := svc.Submit(context.Background(), testRequest())
	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Len(t, repo.Created, 1)
}

func TestSubmit_ClearCartFailureDoesNotFailSubmission(t *testing.T) {
	repo := NewMockOrderRepository()
	carts := &MockCartAggregator{Cart: testCart(t), ClearErr: errors.New("redis down")}
	svc := newTestService(repo, carts)

	order, err := svc.Submit(context.Background(), testRequest())
	require.NoError(t, err)
	assert.NotNil(t, order)
	assert.Len(t, repo.Created, 1)
}

func TestCalculateTax_RoundsToCents(t *testing.T) {
	cases := []struct {
		subtotal string
		want     string
	}{
		{"380.00", "19.00"},
		{"0.00", "0.00"},
		{"0.10", "0.01"},   // 0.005 rounds up
		{"99.99", "5.00"},  // 4.9995
		{"299.85", "14.99"}, // 14.9925
	}
	rate := decimal.RequireFromString("0.05")
	for _, tc := range cases {
		got := CalculateTax(decimal.RequireFromString(tc.subtotal), rate)
		assert.True(t, got.Equal(decimal.RequireFromString(tc.want)),
			"tax(%s) = %s, want %s", tc.subtotal, got, tc.want)
	}
}
