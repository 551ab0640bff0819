package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/meyashjha/ecommerce-fullstack/internal/cart"
	"github.com/meyashjha/ecommerce-fullstack/internal/catalog"
	"github.com/meyashjha/ecommerce-fullstack/internal/order"
	"github.com/meyashjha/ecommerce-fullstack/internal/pricing"
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
		Error: message,
		Code:  code,
	})
}

// respondDomainError maps every stable error kind the services return to an
// HTTP status. Nothing escapes unmapped; unknown errors become a 500
// without leaking internals.
func respondDomainError(w http.ResponseWriter, err error) {
	var stockErr *catalog.InsufficientStockError

	switch {
	case errors.As(err, &stockErr):
		respondError(w, http.StatusConflict, "insufficient_stock", stockErr.Error())
	case errors.Is(err, order.ErrEmptyCart):
		respondError(w, http.StatusBadRequest, "empty_cart", "cart is empty")
	case errors.Is(err, order.ErrInvalidTransition):
		respondError(w, http.StatusBadRequest, "invalid_transition", "order cannot be changed at this stage")
	case errors.Is(err, pricing.ErrInvalidAmount):
		respondError(w, http.StatusBadRequest, "invalid_amount", "invalid amount")
	case errors.Is(err, order.ErrForbidden):
		respondError(w, http.StatusForbidden, "forbidden", "access denied")
	case errors.Is(err, order.ErrOrderNotFound):
		respondError(w, http.StatusNotFound, "not_found", "order not found")
	case errors.Is(err, catalog.ErrProductNotFound):
		respondError(w, http.StatusNotFound, "not_found", "product not found")
	case errors.Is(err, cart.ErrCartNotFound):
		respondError(w, http.StatusNotFound, "not_found", "cart not found")
	default:
		log.Printf("internal error: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

// Pagination mirrors the shape the storefront client expects.
type Pagination struct {
	CurrentPage int   `json:"current_page"`
	TotalPages  int   `json:"total_pages"`
	Total       int64 `json:"total"`
}

func paginate(page, pageSize int, total int64) Pagination {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 1
	}
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return Pagination{CurrentPage: page, TotalPages: totalPages, Total: total}
}
