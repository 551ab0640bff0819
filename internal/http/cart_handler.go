package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/meyashjha/ecommerce-fullstack/internal/cart"
	"github.com/meyashjha/ecommerce-fullstack/internal/catalog"
)

// CartHandler serves both cart variants behind one route set: an
// authenticated caller gets the persisted cart, an anonymous caller with a
// session header gets the local one.
type CartHandler struct {
	persisted cart.Service
	local     cart.Service
	products  catalog.ProductRepository
}

func NewCartHandler(persisted, local cart.Service, products catalog.ProductRepository) *CartHandler {
	return &CartHandler{
		persisted: persisted,
		local:     local,
		products:  products,
	}
}

type AddItemRequestDTO struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

// resolve picks the cart variant and identity for this request.
func (h *CartHandler) resolve(r *http.Request) (cart.Service, string, bool) {
	if claims := claimsFromContext(r.Context()); claims != nil {
		return h.persisted, claims.UserID, true
	}
	if sessionID := r.Header.Get(SessionHeader); sessionID != "" {
		return h.local, sessionID, true
	}
	return nil, "", false
}

// GET /api/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	svc, identity, ok := h.resolve(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "authentication or session id required")
		return
	}

	c, err := svc.Fetch(r.Context(), identity)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, c)
}

// POST /api/cart/add
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	svc, identity, ok := h.resolve(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "authentication or session id required")
		return
	}

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if req.Quantity < 1 || req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be between 1 and 99")
		return
	}

	product, err := h.products.GetByID(r.Context(), req.ProductID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	c, err := svc.Add(r.Context(), identity, product.Snapshot(), req.Quantity)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, c)
}

// PUT /api/cart/update/{item_id}
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	svc, identity, ok := h.resolve(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "authentication or session id required")
		return
	}

	itemID := chi.URLParam(r, "item_id")
	if itemID == "" {
		respondError(w, http.StatusBadRequest, "missing_item_id", "item_id is required")
		return
	}

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Quantity < 0 || req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be between 0 and 99")
		return
	}

	// Quantity 0 removes the item; the service treats the two alike.
	c, err := svc.SetQuantity(r.Context(), identity, itemID, req.Quantity)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, c)
}

// DELETE /api/cart/remove/{item_id}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	svc, identity, ok := h.resolve(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "authentication or session id required")
		return
	}

	itemID := chi.URLParam(r, "item_id")
	if itemID == "" {
		respondError(w, http.StatusBadRequest, "missing_item_id", "item_id is required")
		return
	}

	c, err := svc.Remove(r.Context(), identity, itemID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, c)
}

// DELETE /api/cart/clear
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	svc, identity, ok := h.resolve(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "authentication or session id required")
		return
	}

	c, err := svc.Clear(r.Context(), identity)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, c)
}
