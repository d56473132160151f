package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/Dele-Oyelese/Brittania-Brewing-application/internal/domain"
	"github.com/Dele-Oyelese/Brittania-Brewing-application/internal/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const deliveryDateLayout = "2006-01-02"

// CartAggregator is the slice of the cart service the coordinator needs:
// the snapshot feeding the order and the clear on success.
type CartAggregator interface {
	GetCart(ctx context.Context, profileID string) (*domain.Cart, error)
	ClearCart(ctx context.Context, profileID string) error
}

// SubmissionRequest is the single submission entry point's input.
// IdempotencyKey identifies the logical attempt across retries.
type SubmissionRequest struct {
	ProfileID      string
	LocationID     string
	DeliveryDate   string
	Notes          string
	IdempotencyKey string
}

type Service interface {
	Submit(ctx context.Context, request *SubmissionRequest) (*domain.Order, error)
}

// ServiceImpl coordinates order submission: it validates the request,
// prices the cart snapshot, and drives the repository's atomic boundary.
type ServiceImpl struct {
	repo    repository.OrderRepository
	carts   CartAggregator
	taxRate decimal.Decimal
}

func NewService(repo repository.OrderRepository, carts CartAggregator, taxRate decimal.Decimal) *ServiceImpl {
	return &ServiceImpl{
		repo:    repo,
		carts:   carts,
		taxRate: taxRate,
	}
}

// Submit turns the profile's cart into a durably recorded order. All writes
// (header, item snapshots, stock decrements, outbox event) commit together;
// on any failure nothing is visible and the cart is untouched. Resubmitting
// the same idempotency key returns the already-created order unchanged.
func (s *ServiceImpl) Submit(ctx context.Context, request *SubmissionRequest) (*domain.Order, error) {
	if request.ProfileID == "" {
		return nil, ErrUnauthenticated
	}
	if request.IdempotencyKey == "" {
		return nil, &ValidationError{Field: "idempotency_key", Message: "idempotency key is required"}
	}

	locationID, err := uuid.Parse(request.LocationID)
	if err != nil {
		return nil, &ValidationError{Field: "location_id", Message: "a valid delivery location is required"}
	}

	deliveryDate, err := parseDeliveryDate(request.DeliveryDate)
	if err != nil {
		return nil, err
	}

	// A completed attempt with this key wins over everything else
	existing, err := s.repo.GetOrderByIdempotencyKey(ctx, request.IdempotencyKey)
	if err == nil {
		log.Printf("duplicate submission detected idempotency_key=%s order=%s", request.IdempotencyKey, existing.OrderNumber)
		return existing, nil
	}
	if !errors.Is(err, repository.ErrOrderNotFound) {
		return nil, fmt.Errorf("failed to check idempotency: %w", err)
	}

	cart, err := s.carts.GetCart(ctx, request.ProfileID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if cart.IsEmpty() {
		return nil, ErrEmptyCart
	}

	order := s.buildOrder(cart, request, locationID, deliveryDate)

	if err := s.repo.CreateOrder(ctx, order); err != nil {
		if errors.Is(err, repository.ErrOrderNumberCollision) {
			order.OrderNumber = GenerateOrderNumber()
			err = s.repo.CreateOrder(ctx, order)
		}
		if errors.Is(err, repository.ErrDuplicateSubmission) {
			// A concurrent retry with the same key committed first
			return s.repo.GetOrderByIdempotencyKey(ctx, request.IdempotencyKey)
		}
		if err != nil {
			return nil, err
		}
	}

	// The order is durable; a failed cart clear must not undo that
	if errClear := s.carts.ClearCart(ctx, request.ProfileID); errClear != nil {
		log.Printf("failed to clear cart after order %s: %v", order.OrderNumber, errClear)
	}

	return order, nil
}

// buildOrder prices the order from the cart's unit price snapshots, not from
// live catalog pricing: the snapshot taken at add-to-cart time is what the
// customer agreed to.
func (s *ServiceImpl) buildOrder(cart *domain.Cart, request *SubmissionRequest, locationID uuid.UUID, deliveryDate *time.Time) *domain.Order {
	items := make([]domain.OrderItem, 0, len(cart.Lines))
	subtotal := decimal.Zero
	for _, line := range cart.Lines {
		lineTotal := line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
		items = append(items, domain.OrderItem{
			BeerID:        line.BeerID,
			BeerName:      line.BeerName,
			ContainerSize: line.ContainerSize,
			Quantity:      line.Quantity,
			UnitPrice:     line.UnitPrice,
			LineTotal:     lineTotal,
		})
		subtotal = subtotal.Add(lineTotal)
	}

	taxAmount := CalculateTax(subtotal, s.taxRate)

	return &domain.Order{
		ID:             uuid.New(),
		OrderNumber:    GenerateOrderNumber(),
		ProfileID:      request.ProfileID,
		LocationID:     locationID,
		Status:         domain.OrderStatusPending,
		Subtotal:       subtotal,
		TaxAmount:      taxAmount,
		TotalAmount:    subtotal.Add(taxAmount),
		Notes:          request.Notes,
		DeliveryDate:   deliveryDate,
		IdempotencyKey: request.IdempotencyKey,
		Items:          items,
	}
}

func parseDeliveryDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(deliveryDateLayout, raw)
	if err != nil {
		return nil, &ValidationError{Field: "delivery_date", Message: "delivery date must be YYYY-MM-DD"}
	}
	// Compare calendar days: the parsed date is UTC midnight, so build the
	// floor from the local date rather than truncating on the UTC epoch,
	// which rejects "today" for part of the day outside UTC.
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if parsed.Before(today) {
		return nil, &ValidationError{Field: "delivery_date", Message: "delivery date cannot be in the past"}
	}
	return &parsed, nil
}

var _ Service = (*ServiceImpl)(nil)
