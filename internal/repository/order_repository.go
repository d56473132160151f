package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Dele-Oyelese/Brittania-Brewing-application/internal/domain"
	"github.com/Dele-Oyelese/Brittania-Brewing-application/internal/inventory"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// OrderRepository is the persistence contract the submission coordinator
// depends on. CreateOrder is the atomic boundary: header, items, stock
// decrements and the outbox event all commit together or not at all.
type OrderRepository interface {
	CreateOrder(ctx context.Context, order *domain.Order) error
	GetOrderByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	GetOrderByIdempotencyKey(ctx context.Context, key string) (*domain.Order, error)
	ListOrdersByProfileID(ctx context.Context, profileID string) ([]*domain.Order, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, from, to domain.OrderStatus) error
}

const orderCreatedEventType = "order_created"

// CreateOrder persists the order header, its item snapshots, one conditional
// stock decrement per line and the order-created outbox event in a single
// transaction. A failed decrement surfaces as InsufficientStockError naming
// the line; a duplicate idempotency key surfaces as ErrDuplicateSubmission.
// Either way the transaction rolls back and nothing becomes visible.
func (r *Repository) CreateOrder(ctx context.Context, order *domain.Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin order transaction: %w", err)
	}
	defer tx.Rollback()

	headerQuery := `INSERT INTO orders
	        (id, order_number, profile_id, location_id, status, subtotal, tax_amount, total_amount, notes, delivery_date, idempotency_key, created_at, updated_at)
	        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
	        RETURNING created_at, updated_at`

	err = tx.QueryRowContext(ctx, headerQuery,
		order.ID,
		order.OrderNumber,
		order.ProfileID,
		order.LocationID,
		order.Status,
		order.Subtotal,
		order.TaxAmount,
		order.TotalAmount,
		nullString(order.Notes),
		order.DeliveryDate,
		order.IdempotencyKey,
	).Scan(&order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			if pqErr.Constraint == "orders_idempotency_key_key" {
				return ErrDuplicateSubmission
			}
			return ErrOrderNumberCollision
		}
		return fmt.Errorf("insert order: %w", err)
	}

	itemQuery := `INSERT INTO order_items
	        (order_id, beer_id, beer_name, container_size, quantity, unit_price, line_total)
	        VALUES ($1, $2, $3, $4, $5, $6, $7)`

	decrementQuery := `UPDATE beer_pricing
	        SET stock_quantity = stock_quantity - $3
	        WHERE beer_id = $1 AND container_size = $2 AND stock_quantity >= $3`

	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = order.ID

		if _, err := tx.ExecContext(ctx, itemQuery,
			item.OrderID,
			item.BeerID,
			item.BeerName,
			item.ContainerSize,
			item.Quantity,
			item.UnitPrice,
			item.LineTotal,
		); err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}

		result, err := tx.ExecContext(ctx, decrementQuery, item.BeerID, item.ContainerSize, item.Quantity)
		if err != nil {
			return fmt.Errorf("decrement stock: %w", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("decrement stock result: %w", err)
		}
		if affected == 0 {
			return &inventory.InsufficientStockError{
				BeerID:        item.BeerID,
				BeerName:      item.BeerName,
				ContainerSize: item.ContainerSize,
				Requested:     item.Quantity,
			}
		}
	}

	payload, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("marshal order payload: %w", err)
	}
	outboxQuery := `INSERT INTO outbox_events (aggregate_id, event_type, payload, created_at)
	        VALUES ($1, $2, $3, NOW())`
	if _, err := tx.ExecContext(ctx, outboxQuery, order.ID, orderCreatedEventType, payload); err != nil {
		return fmt.Errorf("insert outbox event: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit order transaction: %w", err)
	}
	return nil
}

func (r *Repository) GetOrderByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	return r.getOrder(ctx, "id = $1", id)
}

func (r *Repository) GetOrderByIdempotencyKey(ctx context.Context, key string) (*domain.Order, error) {
	return r.getOrder(ctx, "idempotency_key = $1", key)
}

func (r *Repository) getOrder(ctx context.Context, where string, arg interface{}) (*domain.Order, error) {
	query := `SELECT id, order_number, profile_id, location_id, status, subtotal, tax_amount, total_amount, notes, delivery_date, idempotency_key, created_at, updated_at
	          FROM orders WHERE ` + where

	var order domain.Order
	var notes sql.NullString
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&order.ID,
		&order.OrderNumber,
		&order.ProfileID,
		&order.LocationID,
		&order.Status,
		&order.Subtotal,
		&order.TaxAmount,
		&order.TotalAmount,
		&notes,
		&order.DeliveryDate,
		&order.IdempotencyKey,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query order: %w", err)
	}
	order.Notes = notes.String

	items, err := r.getOrderItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items

	return &order, nil
}

func (r *Repository) getOrderItems(ctx context.Context, orderID uuid.UUID) ([]domain.OrderItem, error) {
	query := `SELECT order_id, beer_id, beer_name, container_size, quantity, unit_price, line_total
	          FROM order_items WHERE order_id = $1 ORDER BY beer_name, container_size`

	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("query order items: %w", err)
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(
			&item.OrderID,
			&item.BeerID,
			&item.BeerName,
			&item.ContainerSize,
			&item.Quantity,
			&item.UnitPrice,
			&item.LineTotal,
		); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("order item iteration: %w", err)
	}

	return items, nil
}

func (r *Repository) ListOrdersByProfileID(ctx context.Context, profileID string) ([]*domain.Order, error) {
	query := `SELECT id, order_number, profile_id, location_id, status, subtotal, tax_amount, total_amount, notes, delivery_date, idempotency_key, created_at, updated_at
	          FROM orders WHERE profile_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, profileID)
	if err != nil {
		return nil, fmt.Errorf("query orders by profile: %w", err)
	}
	defer rows.Close()

	var orders []*domain.Order
	for rows.Next() {
		var order domain.Order
		var notes sql.NullString
		if err := rows.Scan(
			&order.ID,
			&order.OrderNumber,
			&order.ProfileID,
			&order.LocationID,
			&order.Status,
			&order.Subtotal,
			&order.TaxAmount,
			&order.TotalAmount,
			&notes,
			&order.DeliveryDate,
			&order.IdempotencyKey,
			&order.CreatedAt,
			&order.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		order.Notes = notes.String
		orders = append(orders, &order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("order iteration: %w", err)
	}

	for _, order := range orders {
		items, err := r.getOrderItems(ctx, order.ID)
		if err != nil {
			return nil, err
		}
		order.Items = items
	}

	return orders, nil
}

// UpdateOrderStatus moves an order from one status to another with a
// compare-and-set update, so a stale operator view can never rewind the
// lifecycle. The transition itself must be legal per the domain rules.
func (r *Repository) UpdateOrderStatus(ctx context.Context, id uuid.UUID, from, to domain.OrderStatus) error {
	if !from.CanTransitionTo(to) {
		return fmt.Errorf("illegal status transition %s -> %s", from, to)
	}

	query := `UPDATE orders SET status = $3, updated_at = NOW() WHERE id = $1 AND status = $2`
	result, err := r.db.ExecContext(ctx, query, id, from, to)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update order status result: %w", err)
	}
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

var _ OrderRepository = (*Repository)(nil)
