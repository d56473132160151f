package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the state of an order in its lifecycle
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusReady      OrderStatus = "ready"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// forwardRank orders the non-cancelled statuses. Transitions only ever move
// to a strictly higher rank, or to cancelled while still early in the flow.
var forwardRank = map[OrderStatus]int{
	OrderStatusPending:    0,
	OrderStatusConfirmed:  1,
	OrderStatusProcessing: 2,
	OrderStatusReady:      3,
	OrderStatusDelivered:  4,
}

func (s OrderStatus) IsValid() bool {
	if s == OrderStatusCancelled {
		return true
	}
	_, ok := forwardRank[s]
	return ok
}

func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// CanTransitionTo reports whether an order may move from s to target.
// Cancellation is only reachable from pending or confirmed.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	if target == OrderStatusCancelled {
		return s == OrderStatusPending || s == OrderStatusConfirmed
	}
	from, okFrom := forwardRank[s]
	to, okTo := forwardRank[target]
	if !okFrom || !okTo {
		return false
	}
	return to > from
}

// String representation (for logging)
func (s OrderStatus) String() string {
	return string(s)
}

// OrderItem is a line snapshot taken at submission time. Beer name and unit
// price are denormalized so later catalog edits never alter historical orders.
type OrderItem struct {
	OrderID       uuid.UUID       `json:"order_id"`
	BeerID        uuid.UUID       `json:"beer_id"`
	BeerName      string          `json:"beer_name"`
	ContainerSize string          `json:"container_size"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	LineTotal     decimal.Decimal `json:"line_total"`
}

type Order struct {
	ID             uuid.UUID       `json:"id"`
	OrderNumber    string          `json:"order_number"`
	ProfileID      string          `json:"profile_id"`
	LocationID     uuid.UUID       `json:"location_id"`
	Status         OrderStatus     `json:"status"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	Notes          string          `json:"notes,omitempty"`
	DeliveryDate   *time.Time      `json:"delivery_date,omitempty"`
	IdempotencyKey string          `json:"-"`
	Items          []OrderItem     `json:"items"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
