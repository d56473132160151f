package http

import (
	"context"

	"github.com/Dele-Oyelese/Brittania-Brewing-application/internal/cart"
	"github.com/Dele-Oyelese/Brittania-Brewing-application/internal/checkout"
	"github.com/Dele-Oyelese/Brittania-Brewing-application/internal/domain"
	"github.com/Dele-Oyelese/Brittania-Brewing-application/internal/repository"
	"github.com/google/uuid"
)

type MockCheckoutService struct {
	Order *domain.Order
	Err   error

	LastRequest *checkout.SubmissionRequest
}

func (m *MockCheckoutService) Submit(_ context.Context, request *checkout.SubmissionRequest) (*domain.Order, error) {
	m.LastRequest = request
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Order, nil
}

var _ checkout.Service = (*MockCheckoutService)(nil)

type MockOrderRepository struct {
	Orders map[uuid.UUID]*domain.Order

	GetErr    error
	ListErr   error
	UpdateErr error
}

func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{Orders: make(map[uuid.UUID]*domain.Order)}
}

func (m *MockOrderRepository) CreateOrder(_ context.Context, order *domain.Order) error {
	m.Orders[order.ID] = order
	return nil
}

func (m *MockOrderRepository) GetOrderByID(_ context.Context, id uuid.UUID) (*domain.Order, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	order, ok := m.Orders[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	return order, nil
}

func (m *MockOrderRepository) GetOrderByIdempotencyKey(_ context.Context, key string) (*domain.Order, error) {
	for _, order := range m.Orders {
		if order.IdempotencyKey == key {
			return order, nil
		}
	}
	return nil, repository.ErrOrderNotFound
}

func (m *MockOrderRepository) ListOrdersByProfileID(_ context.Context, profileID string) ([]*domain.Order, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	orders := []*domain.Order{}
	for _, order := range m.Orders {
		if order.ProfileID == profileID {
			orders = append(orders, order)
		}
	}
	return orders, nil
}

func (m *MockOrderRepository) UpdateOrderStatus(_ context.Context, id uuid.UUID, from, to domain.OrderStatus) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	order, ok := m.Orders[id]
	if !ok || order.Status != from {
		return repository.ErrOrderNotFound
	}
	order.Status = to
	return nil
}

var _ repository.OrderRepository = (*MockOrderRepository)(nil)

// In-memory cart repository and cache backing a real cart.Service in tests.

type memoryCartRepo struct {
	carts map[string]*domain.Cart
}

func newMemoryCartRepo() *memoryCartRepo {
	return &memoryCartRepo{carts: make(map[string]*domain.Cart)}
}

func (m *memoryCartRepo) GetCart(_ context.Context, profileID string) (*domain.Cart, error) {
	c, ok := m.carts[profileID]
	if !ok {
		return nil, cart.ErrCartNotFound
	}
	return c, nil
}

func (m *memoryCartRepo) UpsertCart(_ context.Context, c *domain.Cart) error {
	m.carts[c.ProfileID] = c
	return nil
}

func (m *memoryCartRepo) DeleteCart(_ context.Context, profileID string) error {
	if _, ok := m.carts[profileID]; !ok {
		return cart.ErrCartNotFound
	}
	delete(m.carts, profileID)
	return nil
}

var _ cart.CartRepository = (*memoryCartRepo)(nil)

type noopCartCache struct{}

func (noopCartCache) Get(_ context.Context, _ string) (*domain.Cart, error) {
	return nil, cart.ErrCacheMiss
}

func (noopCartCache) Set(_ context.Context, _ string, _ *domain.Cart) error { return nil }

func (noopCartCache) Delete(_ context.Context, _ string) error { return nil }

var _ cart.CartCache = noopCartCache{}
