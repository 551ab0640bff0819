package order

import (
	"context"

	"github.com/meyashjha/ecommerce-fullstack/internal/domain"
)

// Repository defines the order storage operations the lifecycle service
// consumes. Orders are written once; only status, tracking number and
// updated_at change afterwards.
type Repository interface {
	Insert(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	FindByUser(ctx context.Context, userID string, page, pageSize int) ([]domain.Order, int64, error)
	FindAll(ctx context.Context, status domain.OrderStatus, page, pageSize int) ([]domain.Order, int64, error)

	// UpdateStatus overwrites the status (and optionally the tracking
	// number) unconditionally. Privileged callers only.
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus, trackingNumber string) error

	// TransitionStatus flips the status only while the current status is
	// one of from; the unmatched case returns ErrInvalidTransition. This is
	// the guarded update that keeps a racing ship/cancel pair from both
	// winning.
	TransitionStatus(ctx context.Context, id string, to domain.OrderStatus, from ...domain.OrderStatus) error
}
