package inventory

import (
	"context"
	"sync"

	"github.com/Dele-Oyelese/Brittania-Brewing-application/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type stockKey struct {
	beerID        uuid.UUID
	containerSize string
}

// MemoryStore implements Ledger with in-memory storage. The mutex makes the
// check-and-subtract in Decrement a single step, so concurrent callers can
// never drive a count negative.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[stockKey]*domain.BeerPricing
}

// NewMemoryStore creates a new in-memory inventory ledger
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[stockKey]*domain.BeerPricing),
	}
}

func (s *MemoryStore) Decrement(_ context.Context, beerID uuid.UUID, containerSize string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, exists := s.records[stockKey{beerID, containerSize}]
	if !exists {
		return ErrRecordNotFound
	}
	if record.StockQuantity < quantity {
		return ErrInsufficientStock
	}
	record.StockQuantity -= quantity
	return nil
}

func (s *MemoryStore) GetStock(_ context.Context, beerID uuid.UUID, containerSize string) (*domain.BeerPricing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, exists := s.records[stockKey{beerID, containerSize}]
	if !exists {
		return nil, ErrRecordNotFound
	}
	copied := *record
	return &copied, nil
}

func (s *MemoryStore) SetStock(_ context.Context, beerID uuid.UUID, containerSize string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := stockKey{beerID, containerSize}
	if record, exists := s.records[key]; exists {
		record.StockQuantity = quantity
		return nil
	}
	s.records[key] = &domain.BeerPricing{
		BeerID:        beerID,
		ContainerSize: containerSize,
		StockQuantity: quantity,
	}
	return nil
}

// SetPrice sets the unit price for a record, creating it at zero stock when
// absent (used for seeding and admin price edits).
func (s *MemoryStore) SetPrice(_ context.Context, beerID uuid.UUID, containerSize string, price decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := stockKey{beerID, containerSize}
	if record, exists := s.records[key]; exists {
		record.Price = price
		return nil
	}
	s.records[key] = &domain.BeerPricing{
		BeerID:        beerID,
		ContainerSize: containerSize,
		Price:         price,
	}
	return nil
}

var _ Ledger = (*MemoryStore)(nil)
