package cart

import (
	"context"
	"errors"

	"github.com/Dele-Oyelese/Brittania-Brewing-application/internal/domain"
)

var (
	ErrCartNotFound = errors.New("cart not found")
)

// CartRepository defines the interface for durable cart storage.
// Consumers define this interface, not the MongoDB implementation.
type CartRepository interface {
	GetCart(ctx context.Context, profileID string) (*domain.Cart, error)
	UpsertCart(ctx context.Context, cart *domain.Cart) error
	DeleteCart(ctx context.Context, profileID string) error
}
