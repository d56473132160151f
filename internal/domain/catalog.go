package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AvailabilityStatus string

const (
	AvailabilityAvailable    AvailabilityStatus = "available"
	AvailabilityLimited      AvailabilityStatus = "limited"
	AvailabilityOutOfStock   AvailabilityStatus = "out_of_stock"
	AvailabilityDiscontinued AvailabilityStatus = "discontinued"
)

// BeerPricing is one inventory record: price and stock for a beer in a given
// container size. StockQuantity never goes below zero; the repository's
// conditional decrement is the only mutation on the submission path.
type BeerPricing struct {
	BeerID        uuid.UUID       `json:"beer_id"`
	ContainerSize string          `json:"container_size"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity"`
}

type Beer struct {
	ID                 uuid.UUID          `json:"id"`
	Name               string             `json:"name"`
	Type               string             `json:"type"`
	ABV                float64            `json:"abv"`
	Description        string             `json:"description"`
	AvailabilityStatus AvailabilityStatus `json:"availability_status"`
	Pricing            []BeerPricing      `json:"pricing"`
}

// ContainerSizeDisplay maps a container size to its customer-facing label.
func ContainerSizeDisplay(size string) string {
	switch size {
	case "50L":
		return "50L Keg"
	case "30L":
		return "30L Keg"
	case "20L":
		return "20L Keg"
	case "flat":
		return "24-Pack Flat"
	default:
		return size
	}
}
