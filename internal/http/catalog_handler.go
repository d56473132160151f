package http

import (
	"context"
	"net/http"
	"time"

	"github.com/Dele-Oyelese/Brittania-Brewing-application/internal/domain"
)

// CatalogLister is the read side of the catalog needed by the browse page.
type CatalogLister interface {
	ListBeers(ctx context.Context) ([]*domain.Beer, error)
}

type CatalogHandler struct {
	catalog CatalogLister
	timeout time.Duration
}

func NewCatalogHandler(catalog CatalogLister, timeout time.Duration) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalog,
		timeout: timeout,
	}
}

// GET /api/v1/beers
func (h *CatalogHandler) ListBeers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	beers, err := h.catalog.ListBeers(ctx)
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, "catalog_unavailable", "could not load catalog")
		return
	}
	if beers == nil {
		beers = []*domain.Beer{}
	}

	respondJSON(w, http.StatusOK, beers)
}
