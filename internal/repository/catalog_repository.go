package repository

import (
	"context"
	"fmt"

	"github.com/Dele-Oyelese/Brittania-Brewing-application/internal/domain"
	"github.com/google/uuid"
)

// ListBeers returns the catalog with pricing and stock per container size.
// Discontinued beers are excluded from the customer-facing listing.
func (r *Repository) ListBeers(ctx context.Context) ([]*domain.Beer, error) {
	query := `SELECT id, name, type, abv, description, availability_status
	          FROM beers WHERE availability_status <> 'discontinued' ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query beers: %w", err)
	}
	defer rows.Close()

	var beers []*domain.Beer
	byID := make(map[uuid.UUID]*domain.Beer)
	for rows.Next() {
		var beer domain.Beer
		if err := rows.Scan(
			&beer.ID,
			&beer.Name,
			&beer.Type,
			&beer.ABV,
			&beer.Description,
			&beer.AvailabilityStatus,
		); err != nil {
			return nil, fmt.Errorf("scan beer row: %w", err)
		}
		beers = append(beers, &beer)
		byID[beer.ID] = &beer
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("beer iteration: %w", err)
	}

	pricingQuery := `SELECT beer_id, container_size, price, stock_quantity FROM beer_pricing`
	pricingRows, err := r.db.QueryContext(ctx, pricingQuery)
	if err != nil {
		return nil, fmt.Errorf("query beer pricing: %w", err)
	}
	defer pricingRows.Close()

	for pricingRows.Next() {
		var record domain.BeerPricing
		if err := pricingRows.Scan(
			&record.BeerID,
			&record.ContainerSize,
			&record.Price,
			&record.StockQuantity,
		); err != nil {
			return nil, fmt.Errorf("scan pricing row: %w", err)
		}
		if beer, ok := byID[record.BeerID]; ok {
			beer.Pricing = append(beer.Pricing, record)
		}
	}
	if err := pricingRows.Err(); err != nil {
		return nil, fmt.Errorf("pricing iteration: %w", err)
	}

	return beers, nil
}
