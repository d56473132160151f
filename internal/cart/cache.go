package cart

import (
	"context"
	"errors"

	"github.com/Dele-Oyelese/Brittania-Brewing-application/internal/domain"
)

type CartCache interface {
	Get(ctx context.Context, profileID string) (*domain.Cart, error)
	Set(ctx context.Context, profileID string, cart *domain.Cart) error
	Delete(ctx context.Context, profileID string) error
}

var ErrCacheMiss = errors.New("cache miss")
