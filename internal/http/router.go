package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/meyashjha/ecommerce-fullstack/internal/auth"
)

// NewRouter assembles the API surface: public catalog routes, session or
// token scoped cart routes, and authenticated order routes with an
// admin-only subtree.
func NewRouter(
	catalogHandler *CatalogHandler,
	cartHandler *CartHandler,
	ordersHandler *OrdersHandler,
	jwtService *auth.JWTService,
	requestTimeout time.Duration,
) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", catalogHandler.List)
			r.Get("/{product_id}", catalogHandler.Get)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Use(OptionalAuth(jwtService))
			r.Get("/", cartHandler.GetCart)
			r.Post("/add", cartHandler.AddItem)
			r.Put("/update/{item_id}", cartHandler.UpdateQuantity)
			r.Delete("/remove/{item_id}", cartHandler.RemoveItem)
			r.Delete("/clear", cartHandler.ClearCart)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Use(RequireAuth(jwtService))
			r.Post("/", ordersHandler.Create)
			r.Get("/", ordersHandler.List)
			r.Get("/{order_id}", ordersHandler.Get)
			r.Put("/{order_id}/cancel", ordersHandler.Cancel)

			r.Group(func(r chi.Router) {
				r.Use(RequireAdmin)
				r.Get("/admin/all", ordersHandler.ListAll)
				r.Put("/{order_id}/status", ordersHandler.UpdateStatus)
			})
		})
	})

	return r
}
