package checkout

import (
	"context"

	"github.com/Dele-Oyelese/Brittania-Brewing-application/internal/domain"
	"github.com/Dele-Oyelese/Brittania-Brewing-application/internal/repository"
	"github.com/google/uuid"
)

type MockOrderRepository struct {
	OrdersByKey map[string]*domain.Order
	Created     []*domain.Order

	CreateErrs []error // popped one per CreateOrder call
	LookupErrs []error // popped one per GetOrderByIdempotencyKey call
}

func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{OrdersByKey: make(map[string]*domain.Order)}
}

func (m *MockOrderRepository) CreateOrder(_ context.Context, order *domain.Order) error {
	if len(m.CreateErrs) > 0 {
		err := m.CreateErrs[0]
		m.CreateErrs = m.CreateErrs[1:]
		if err != nil {
			return err
		}
	}
	m.Created = append(m.Created, order)
	m.OrdersByKey[order.IdempotencyKey] = order
	return nil
}

func (m *MockOrderRepository) GetOrderByID(_ context.Context, id uuid.UUID) (*domain.Order, error) {
	for _, order := range m.OrdersByKey {
		if order.ID == id {
			return order, nil
		}
	}
	return nil, repository.ErrOrderNotFound
}

func (m *MockOrderRepository) GetOrderByIdempotencyKey(_ context.Context, key string) (*domain.Order, error) {
	if len(m.LookupErrs) > 0 {
		err := m.LookupErrs[0]
		m.LookupErrs = m.LookupErrs[1:]
		if err != nil {
			return nil, err
		}
	}
	order, ok := m.OrdersByKey[key]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	return order, nil
}

func (m *MockOrderRepository) ListOrdersByProfileID(_ context.Context, profileID string) ([]*domain.Order, error) {
	var orders []*domain.Order
	for _, order := range m.OrdersByKey {
		if order.ProfileID == profileID {
			orders = append(orders, order)
		}
	}
	return orders, nil
}

func (m *MockOrderRepository) UpdateOrderStatus(_ context.Context, id uuid.UUID, from, to domain.OrderStatus) error {
	order, err := m.GetOrderByID(context.Background(), id)
	if err != nil {
		return err
	}
	if order.Status != from {
		return repository.ErrOrderNotFound
	}
	order.Status = to
	return nil
}

var _ repository.OrderRepository = (*MockOrderRepository)(nil)

type MockCartAggregator struct {
	Cart *domain.Cart

	GetErr   error
	ClearErr error
	Cleared  bool
}

func (m *MockCartAggregator) GetCart(_ context.Context, profileID string) (*domain.Cart, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	if m.Cart != nil {
		return m.Cart, nil
	}
	return domain.NewCart(profileID), nil
}

func (m *MockCartAggregator) ClearCart(_ context.Context, _ string) error {
	if m.ClearErr != nil {
		return m.ClearErr
	}
	m.Cleared = true
	return nil
}

var _ CartAggregator = (*MockCartAggregator)(nil)
