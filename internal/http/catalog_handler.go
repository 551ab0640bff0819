package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/meyashjha/ecommerce-fullstack/internal/catalog"
	"github.com/meyashjha/ecommerce-fullstack/internal/domain"
)

type CatalogHandler struct {
	products catalog.ProductRepository
}

func NewCatalogHandler(products catalog.ProductRepository) *CatalogHandler {
	return &CatalogHandler{products: products}
}

type productListResponse struct {
	Products   []domain.Product `json:"products"`
	Pagination Pagination       `json:"pagination"`
}

// GET /api/products
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, _ := strconv.Atoi(q.Get("page"))
	pageSize, _ := strconv.Atoi(q.Get("limit"))
	if pageSize == 0 {
		pageSize = 12
	}

	params := catalog.ListParams{
		Category: q.Get("category"),
		Search:   q.Get("search"),
		Sort:     q.Get("sort"),
		Featured: q.Get("featured") == "true",
		Page:     page,
		PageSize: pageSize,
	}

	products, total, err := h.products.List(r.Context(), params)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, productListResponse{
		Products:   products,
		Pagination: paginate(page, pageSize, total),
	})
}

// GET /api/products/{product_id}
func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "product_id")
	if productID == "" {
		respondError(w, http.StatusBadRequest, "missing_product_id", "product_id is required")
		return
	}

	product, err := h.products.GetByID(r.Context(), productID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, product)
}
