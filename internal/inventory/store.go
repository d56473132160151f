package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dele-Oyelese/Brittania-Brewing-application/internal/domain"
	"github.com/google/uuid"
)

// Common errors returned by the ledger
var (
	ErrRecordNotFound    = errors.New("inventory record not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// InsufficientStockError names the line that could not be covered so the
// customer knows which quantity to adjust. It unwraps to ErrInsufficientStock.
type InsufficientStockError struct {
	BeerID        uuid.UUID
	BeerName      string
	ContainerSize string
	Requested     int
}

func (e *InsufficientStockError) Error() string {
	name := e.BeerName
	if name == "" {
		name = e.BeerID.String()
	}
	return fmt.Sprintf("insufficient stock for %s (%s): requested %d", name, e.ContainerSize, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

// Ledger is the sole authority over stock counts. Decrement is a single
// atomic check-and-subtract: stock can never be observed below zero and
// concurrent decrements against the same (beer, container size) row succeed
// only up to the stock available.
type Ledger interface {
	// Decrement atomically subtracts quantity when stock covers it,
	// otherwise fails with ErrInsufficientStock and mutates nothing.
	Decrement(ctx context.Context, beerID uuid.UUID, containerSize string, quantity int) error

	// GetStock returns the inventory record for one (beer, container size) key.
	GetStock(ctx context.Context, beerID uuid.UUID, containerSize string) (*domain.BeerPricing, error)

	// SetStock sets the stock level for a record (operator restocking,
	// outside the submission path).
	SetStock(ctx context.Context, beerID uuid.UUID, containerSize string, quantity int) error
}
