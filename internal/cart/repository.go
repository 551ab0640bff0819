package cart

import (
	"context"
	"errors"

	"github.com/meyashjha/ecommerce-fullstack/internal/domain"
)

var ErrCartNotFound = errors.New("cart not found")

// Repository defines the persisted cart storage operations.
// Consumers define this interface, not the MongoDB implementation.
// There is no delete: clearing upserts an empty document, and idle
// documents age out through the TTL index.
type Repository interface {
	Get(ctx context.Context, userID string) (*domain.Cart, error)
	Upsert(ctx context.Context, cart *domain.Cart) error
}
