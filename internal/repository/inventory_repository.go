package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dele-Oyelese/Brittania-Brewing-application/internal/domain"
	"github.com/Dele-Oyelese/Brittania-Brewing-application/internal/inventory"
	"github.com/google/uuid"
)

// Decrement is the standalone conditional decrement against beer_pricing.
// The same statement runs inside CreateOrder's transaction; this form exists
// for operator tooling and the ledger contract.
func (r *Repository) Decrement(ctx context.Context, beerID uuid.UUID, containerSize string, quantity int) error {
	query := `UPDATE beer_pricing
	        SET stock_quantity = stock_quantity - $3
	        WHERE beer_id = $1 AND container_size = $2 AND stock_quantity >= $3`

	result, err := r.db.ExecContext(ctx, query, beerID, containerSize, quantity)
	if err != nil {
		return fmt.Errorf("decrement stock: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("decrement stock result: %w", err)
	}
	if affected == 0 {
		// Distinguish a missing row from an uncovered quantity
		if _, errGet := r.GetStock(ctx, beerID, containerSize); errGet != nil {
			return errGet
		}
		return &inventory.InsufficientStockError{
			BeerID:        beerID,
			ContainerSize: containerSize,
			Requested:     quantity,
		}
	}
	return nil
}

func (r *Repository) GetStock(ctx context.Context, beerID uuid.UUID, containerSize string) (*domain.BeerPricing, error) {
	query := `SELECT beer_id, container_size, price, stock_quantity
	          FROM beer_pricing WHERE beer_id = $1 AND container_size = $2`

	var record domain.BeerPricing
	err := r.db.QueryRowContext(ctx, query, beerID, containerSize).Scan(
		&record.BeerID,
		&record.ContainerSize,
		&record.Price,
		&record.StockQuantity,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, inventory.ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query stock: %w", err)
	}
	return &record, nil
}

func (r *Repository) SetStock(ctx context.Context, beerID uuid.UUID, containerSize string, quantity int) error {
	query := `UPDATE beer_pricing SET stock_quantity = $3
	          WHERE beer_id = $1 AND container_size = $2`

	result, err := r.db.ExecContext(ctx, query, beerID, containerSize, quantity)
	if err != nil {
		return fmt.Errorf("set stock: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("set stock result: %w", err)
	}
	if affected == 0 {
		return inventory.ErrRecordNotFound
	}
	return nil
}

var _ inventory.Ledger = (*Repository)(nil)
