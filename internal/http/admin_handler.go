package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Dele-Oyelese/Brittania-Brewing-application/internal/domain"
	"github.com/Dele-Oyelese/Brittania-Brewing-application/internal/inventory"
	"github.com/Dele-Oyelese/Brittania-Brewing-application/internal/repository"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// AdminHandler covers the operator workflow: restocking and moving orders
// through their lifecycle. Neither touches the submission path.
type AdminHandler struct {
	ledger  inventory.Ledger
	repo    repository.OrderRepository
	timeout time.Duration
}

func NewAdminHandler(ledger inventory.Ledger, repo repository.OrderRepository, timeout time.Duration) *AdminHandler {
	return &AdminHandler{
		ledger:  ledger,
		repo:    repo,
		timeout: timeout,
	}
}

type SetStockRequestDTO struct {
	StockQuantity int `json:"stock_quantity"`
}

type UpdateStatusRequestDTO struct {
	Status string `json:"status"`
}

// PUT /api/v1/admin/inventory/{beer_id}/{container_size}
func (h *AdminHandler) SetStock(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	beerID, containerSize, ok := lineKeyFromURL(w, r)
	if !ok {
		return
	}

	var req SetStockRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.StockQuantity < 0 {
		respondError(w, http.StatusBadRequest, "invalid_stock_quantity", "stock_quantity cannot be negative")
		return
	}

	if err := h.ledger.SetStock(ctx, beerID, containerSize, req.StockQuantity); err != nil {
		if errors.Is(err, inventory.ErrRecordNotFound) {
			respondError(w, http.StatusNotFound, "record_not_found", "no pricing record for that beer and container size")
			return
		}
		respondError(w, http.StatusServiceUnavailable, "persistence_failure", "could not update stock")
		return
	}

	record, err := h.ledger.GetStock(ctx, beerID, containerSize)
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, "persistence_failure", "could not load stock")
		return
	}

	respondJSON(w, http.StatusOK, record)
}

// PATCH /api/v1/admin/orders/{order_id}/status
func (h *AdminHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	orderID, err := uuid.Parse(chi.URLParam(r, "order_id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_order_id", "order_id must be a UUID")
		return
	}

	var req UpdateStatusRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	target := domain.OrderStatus(req.Status)
	if !target.IsValid() {
		respondError(w, http.StatusBadRequest, "invalid_status", "unknown order status")
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

	if !order.Status.CanTransitionTo(target) {
		respondError(w, http.StatusConflict, "illegal_transition",
			"cannot move order from "+order.Status.String()+" to "+target.String())
		return
	}

	if err := h.repo.UpdateOrderStatus(ctx, orderID, order.Status, target); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			// Lost the compare-and-set race with another operator
			respondError(w, http.StatusConflict, "stale_status", "order status changed, reload and retry")
			return
		}
		respondError(w, http.StatusServiceUnavailable, "persistence_failure", "could not update status")
		return
	}

	order.Status = target
	respondJSON(w, http.StatusOK, order)
}
