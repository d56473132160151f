package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartSchemaVersion tags persisted cart documents. Loaders treat any other
// version the same as a missing cart.
const CartSchemaVersion = 1

// CartLine is one cart entry. Two lines are the same line iff
// (BeerID, ContainerSize) match; UnitPrice is the price snapshot captured
// when the line was first added.
type CartLine struct {
	BeerID        uuid.UUID       `json:"beer_id"`
	BeerName      string          `json:"beer_name"`
	ContainerSize string          `json:"container_size"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Quantity      int             `json:"quantity"`
	AddedAt       time.Time       `json:"added_at"`
}

type Cart struct {
	ProfileID     string     `json:"profile_id"`
	SchemaVersion int        `json:"schema_version"`
	Lines         []CartLine `json:"lines"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func NewCart(profileID string) *Cart {
	now := time.Now()
	return &Cart{
		ProfileID:     profileID,
		SchemaVersion: CartSchemaVersion,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func (c *Cart) findLine(beerID uuid.UUID, containerSize string) int {
	for i, line := range c.Lines {
		if line.BeerID == beerID && line.ContainerSize == containerSize {
			return i
		}
	}
	return -1
}

// AddLine merges into an existing line when (BeerID, ContainerSize) matches,
// otherwise appends a new line carrying the given price snapshot. A quantity
// of zero or less is a no-op.
func (c *Cart) AddLine(line CartLine) {
	if line.Quantity <= 0 {
		return
	}
	if i := c.findLine(line.BeerID, line.ContainerSize); i >= 0 {
		c.Lines[i].Quantity += line.Quantity
		return
	}
	if line.AddedAt.IsZero() {
		line.AddedAt = time.Now()
	}
	c.Lines = append(c.Lines, line)
}

// RemoveLine deletes the matching line; no-op when absent.
func (c *Cart) RemoveLine(beerID uuid.UUID, containerSize string) {
	if i := c.findLine(beerID, containerSize); i >= 0 {
		c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
	}
}

// SetQuantity replaces the quantity in place. A quantity of zero or less
// removes the line; a line is never retained at zero.
func (c *Cart) SetQuantity(beerID uuid.UUID, containerSize string, quantity int) {
	if quantity <= 0 {
		c.RemoveLine(beerID, containerSize)
		return
	}
	if i := c.findLine(beerID, containerSize); i >= 0 {
		c.Lines[i].Quantity = quantity
	}
}

func (c *Cart) Clear() {
	c.Lines = nil
}

func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// TotalAmount is the sum of unit price snapshots times quantities.
func (c *Cart) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.Lines {
		total = total.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total
}

func (c *Cart) TotalItemCount() int {
	count := 0
	for _, line := range c.Lines {
		count += line.Quantity
	}
	return count
}
