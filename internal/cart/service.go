package cart

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/Dele-Oyelese/Brittania-Brewing-application/internal/domain"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// Service is the cart aggregator. Mutations load the cart, apply the
// aggregation rule in the domain type, and persist the result; a missing or
// unreadable cart always degrades to an empty one rather than failing.
type Service struct {
	repo  CartRepository
	cache CartCache
	sfg   singleflight.Group // Prevents cache stampede
}

func NewService(repo CartRepository, cache CartCache) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
	}
}

func (s *Service) GetCart(ctx context.Context, profileID string) (*domain.Cart, error) {
	// Use singleflight so concurrent cache misses for the same profile hit
	// the repository once
	v, err, _ := s.sfg.Do(profileID, func() (interface{}, error) {

		cart, err := s.cache.Get(ctx, profileID)
		if err == nil {
			return cart, nil // cart is in cache
		}

		if !errors.Is(err, ErrCacheMiss) {
			log.Printf("cache get error: %v", err) // log cache error but continue
		}

		cart, errGet := s.repo.GetCart(ctx, profileID)
		if errGet != nil {
			if errors.Is(errGet, ErrCartNotFound) {
				return domain.NewCart(profileID), nil
			}
			return nil, errGet
		}

		go func() {
			errSet := s.cache.Set(context.Background(), profileID, cart)
			if errSet != nil {
				log.Printf("cache set error: %v", errSet)
			}
		}()

		return cart, nil
	})

	if err != nil {
		return nil, err
	}

	return v.(*domain.Cart), nil
}

// AddLine merges the line into the profile's cart, summing quantities when a
// line with the same (beer, container size) already exists.
func (s *Service) AddLine(ctx context.Context, profileID string, line domain.CartLine) (*domain.Cart, error) {
	return s.mutate(ctx, profileID, func(cart *domain.Cart) {
		cart.AddLine(line)
	})
}

// SetQuantity replaces a line's quantity; zero or less removes the line.
func (s *Service) SetQuantity(ctx context.Context, profileID string, beerID uuid.UUID, containerSize string, quantity int) (*domain.Cart, error) {
	return s.mutate(ctx, profileID, func(cart *domain.Cart) {
		cart.SetQuantity(beerID, containerSize, quantity)
	})
}

// RemoveLine drops a line; removing an absent line is a no-op.
func (s *Service) RemoveLine(ctx context.Context, profileID string, beerID uuid.UUID, containerSize string) (*domain.Cart, error) {
	return s.mutate(ctx, profileID, func(cart *domain.Cart) {
		cart.RemoveLine(beerID, containerSize)
	})
}

func (s *Service) ClearCart(ctx context.Context, profileID string) error {
	errDelete := s.repo.DeleteCart(ctx, profileID)
	if errDelete != nil && !errors.Is(errDelete, ErrCartNotFound) {
		log.Printf("repo delete cart error: %v", errDelete)
		return errDelete
	}

	s.invalidateCache(profileID)
	return nil
}

func (s *Service) mutate(ctx context.Context, profileID string, apply func(*domain.Cart)) (*domain.Cart, error) {
	cart, err := s.GetCart(ctx, profileID)
	if err != nil {
		return nil, err
	}

	apply(cart)

	if errUpsert := s.repo.UpsertCart(ctx, cart); errUpsert != nil {
		log.Printf("repo upsert cart error: %v", errUpsert)
		return nil, errUpsert
	}

	s.invalidateCache(profileID)
	return cart, nil
}

func (s *Service) invalidateCache(profileID string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	errInvalidate := s.cache.Delete(ctx, profileID)
	if errInvalidate != nil {
		log.Printf("cache invalidate error: %v", errInvalidate)
	}
}
