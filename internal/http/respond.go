package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/Dele-Oyelese/Brittania-Brewing-application/internal/checkout"
	"github.com/Dele-Oyelese/Brittania-Brewing-application/internal/inventory"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error:   message,
		Code:    code,
		Details: message,
	})
}

// handleSubmissionError maps the submission error taxonomy onto HTTP
// statuses. Anything unrecognized is a persistence failure: the atomic
// boundary rolled back, so the client may safely retry with the same
// idempotency key.
func handleSubmissionError(w http.ResponseWriter, err error) {
	var validationErr *checkout.ValidationError
	var stockErr *inventory.InsufficientStockError

	switch {
	case errors.Is(err, checkout.ErrUnauthenticated):
		respondError(w, http.StatusUnauthorized, "unauthorized", "you must be logged in to place an order")
	case errors.Is(err, checkout.ErrEmptyCart):
		respondError(w, http.StatusUnprocessableEntity, "empty_cart", "your cart is empty")
	case errors.As(err, &validationErr):
		respondError(w, http.StatusBadRequest, "invalid_"+validationErr.Field, validationErr.Message)
	case errors.As(err, &stockErr):
		respondError(w, http.StatusConflict, "insufficient_stock", stockErr.Error())
	default:
		log.Printf("order submission failed: %v", err)
		respondError(w, http.StatusServiceUnavailable, "persistence_failure", "could not record the order, please retry")
	}
}
