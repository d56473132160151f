package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Dele-Oyelese/Brittania-Brewing-application/internal/checkout"
	"github.com/Dele-Oyelese/Brittania-Brewing-application/internal/repository"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type OrderHandler struct {
	checkout checkout.Service
	repo     repository.OrderRepository
	timeout  time.Duration
}

func NewOrderHandler(checkoutService checkout.Service, repo repository.OrderRepository, timeout time.Duration) *OrderHandler {
	return &OrderHandler{
		checkout: checkoutService,
		repo:     repo,
		timeout:  timeout,
	}
}

type SubmitOrderRequestDTO struct {
	LocationID     string `json:"location_id"`
	DeliveryDate   string `json:"delivery_date,omitempty"`
	Notes          string `json:"notes,omitempty"`
	IdempotencyKey string `json:"idempotency_key"`
}

// POST /api/v1/orders
func (h *OrderHandler) SubmitOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	profileID := getProfileIDFromContext(r.Context())

	var req SubmitOrderRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.IdempotencyKey == "" {
		respondError(w, http.StatusBadRequest, "missing_idempotency_key", "idempotency_key is required")
		return
	}

	order, err := h.checkout.Submit(ctx, &checkout.SubmissionRequest{
		ProfileID:      profileID,
		LocationID:     req.LocationID,
		DeliveryDate:   req.DeliveryDate,
		Notes:          req.Notes,
		IdempotencyKey: req.IdempotencyKey,
	})
	if err != nil {
		handleSubmissionError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, order)
}

// GET /api/v1/orders/{order_id}
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	profileID := getProfileIDFromContext(r.Context())
	if profileID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	orderID, err := uuid.Parse(chi.URLParam(r, "order_id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_order_id", "order_id must be a UUID")
		return
	}

	order, err := h.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			respondError(w, http.StatusNotFound, "order_not_found", "order not found")
			return
		}
		respondError(w, http.StatusServiceUnavailable, "persistence_failure", "could not load order")
		return
	}

	// Customers only see their own orders
	if order.ProfileID != profileID {
		respondError(w, http.StatusNotFound, "order_not_found", "order not found")
		return
	}

	respondJSON(w, http.StatusOK, order)
}

// GET /api/v1/orders
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	profileID := getProfileIDFromContext(r.Context())
	if profileID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	orders, err := h.repo.ListOrdersByProfileID(ctx, profileID)
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, "persistence_failure", "could not load orders")
		return
	}

	respondJSON(w, http.StatusOK, orders)
}
