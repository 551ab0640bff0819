package cart

import (
	"context"

	"github.com/meyashjha/ecommerce-fullstack/internal/domain"
)

// Service is the cart contract shared by the local (anonymous, in-process)
// and persisted (per-user, MongoDB) variants. The identity argument is a
// session id for local carts and a user id for persisted ones. Every
// mutation returns the resulting cart with freshly derived totals.
//
// No stock check happens at mutation time; quantities are validated against
// live stock only at checkout.
type Service interface {
	Fetch(ctx context.Context, userID string) (*domain.Cart, error)
	Add(ctx context.Context, userID string, snap domain.ProductSnapshot, quantity int) (*domain.Cart, error)
	SetQuantity(ctx context.Context, userID, itemID string, quantity int) (*domain.Cart, error)
	Remove(ctx context.Context, userID, itemID string) (*domain.Cart, error)
	Clear(ctx context.Context, userID string) (*domain.Cart, error)
}
