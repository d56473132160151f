package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/Dele-Oyelese/Brittania-Brewing-application/internal/cart"
	"github.com/Dele-Oyelese/Brittania-Brewing-application/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CartHandler struct {
	carts   *cart.Service
	timeout time.Duration
}

func NewCartHandler(carts *cart.Service, timeout time.Duration) *CartHandler {
	return &CartHandler{
		carts:   carts,
		timeout: timeout,
	}
}

type AddLineRequestDTO struct {
	BeerID        string          `json:"beer_id"`
	BeerName      string          `json:"beer_name"`
	ContainerSize string          `json:"container_size"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Quantity      int             `json:"quantity"`
}

type SetQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

type CartResponseDTO struct {
	Lines          []domain.CartLine `json:"lines"`
	TotalAmount    decimal.Decimal   `json:"total_amount"`
	TotalItemCount int               `json:"total_item_count"`
}

func cartResponse(c *domain.Cart) CartResponseDTO {
	lines := c.Lines
	if lines == nil {
		lines = []domain.CartLine{}
	}
	return CartResponseDTO{
		Lines:          lines,
		TotalAmount:    c.TotalAmount(),
		TotalItemCount: c.TotalItemCount(),
	}
}

var validContainerSizes = map[string]bool{
	"50L": true, "30L": true, "20L": true, "flat": true,
}

// GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	profileID := getProfileIDFromContext(r.Context())
	if profileID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	c, err := h.carts.GetCart(ctx, profileID)
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, "cart_unavailable", "could not load cart")
		return
	}

	respondJSON(w, http.StatusOK, cartResponse(c))
}

// POST /api/v1/cart/lines
func (h *CartHandler) AddLine(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	profileID := getProfileIDFromContext(r.Context())
	if profileID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	var req AddLineRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	beerID, err := uuid.Parse(req.BeerID)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_beer_id", "beer_id must be a UUID")
		return
	}
	if !validContainerSizes[req.ContainerSize] {
		respondError(w, http.StatusBadRequest, "invalid_container_size", "container_size must be one of 50L, 30L, 20L, flat")
		return
	}
	if req.Quantity <= 0 || req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be between 1 and 99")
		return
	}
	if req.UnitPrice.IsNegative() {
		respondError(w, http.StatusBadRequest, "invalid_unit_price", "unit_price cannot be negative")
		return
	}

	c, err := h.carts.AddLine(ctx, profileID, domain.CartLine{
		BeerID:        beerID,
		BeerName:      req.BeerName,
		ContainerSize: req.ContainerSize,
		UnitPrice:     req.UnitPrice,
		Quantity:      req.Quantity,
	})
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, "cart_unavailable", "could not update cart")
		return
	}

	respondJSON(w, http.StatusCreated, cartResponse(c))
}

// PUT /api/v1/cart/lines/{beer_id}/{container_size}
func (h *CartHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	profileID := getProfileIDFromContext(r.Context())
	if profileID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	beerID, containerSize, ok := lineKeyFromURL(w, r)
	if !ok {
		return
	}

	var req SetQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be at most 99")
		return
	}

	c, err := h.carts.SetQuantity(ctx, profileID, beerID, containerSize, req.Quantity)
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, "cart_unavailable", "could not update cart")
		return
	}

	respondJSON(w, http.StatusOK, cartResponse(c))
}

// DELETE /api/v1/cart/lines/{beer_id}/{container_size}
func (h *CartHandler) RemoveLine(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	profileID := getProfileIDFromContext(r.Context())
	if profileID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	beerID, containerSize, ok := lineKeyFromURL(w, r)
	if !ok {
		return
	}

	c, err := h.carts.RemoveLine(ctx, profileID, beerID, containerSize)
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, "cart_unavailable", "could not update cart")
		return
	}

	respondJSON(w, http.StatusOK, cartResponse(c))
}

// DELETE /api/v1/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	profileID := getProfileIDFromContext(r.Context())
	if profileID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	if err := h.carts.ClearCart(ctx, profileID); err != nil {
		respondError(w, http.StatusServiceUnavailable, "cart_unavailable", "could not clear cart")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func lineKeyFromURL(w http.ResponseWriter, r *http.Request) (uuid.UUID, string, bool) {
	beerID, err := uuid.Parse(chi.URLParam(r, "beer_id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_beer_id", "beer_id must be a UUID")
		return uuid.Nil, "", false
	}
	containerSize := chi.URLParam(r, "container_size")
	if !validContainerSizes[containerSize] {
		respondError(w, http.StatusBadRequest, "invalid_container_size", "container_size must be one of 50L, 30L, 20L, flat")
		return uuid.Nil, "", false
	}
	return beerID, containerSize, true
}
