package order

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/meyashjha/ecommerce-fullstack/internal/cart"
	"github.com/meyashjha/ecommerce-fullstack/internal/catalog"
	"github.com/meyashjha/ecommerce-fullstack/internal/domain"
	"github.com/meyashjha/ecommerce-fullstack/internal/keymutex"
	"github.com/meyashjha/ecommerce-fullstack/internal/pricing"
)

// DeliveryEstimateOffset is how far after creation the delivery estimate
// lands. Fixed offset; there is no courier integration.
const DeliveryEstimateOffset = 7 * 24 * time.Hour

const (
	EventOrderPlaced    = "order.placed"
	EventOrderCancelled = "order.cancelled"
)

// EventRecorder appends order events for asynchronous publication. Recording
// is best-effort: failures are logged and never fail the order operation.
type EventRecorder interface {
	Record(ctx context.Context, aggregateID, eventType string, payload interface{}) error
}

// Service owns the order lifecycle: turning a cart into a persisted order
// with reserved stock, cancelling with restock, and privileged status
// updates.
type Service struct {
	orders   Repository
	products catalog.ProductRepository
	carts    cart.Service
	events   EventRecorder // optional
	locks    *keymutex.KeyMutex
	now      func() time.Time
}

func NewService(orders Repository, products catalog.ProductRepository, carts cart.Service, events EventRecorder) *Service {
	return &Service{
		orders:   orders,
		products: products,
		carts:    carts,
		events:   events,
		locks:    keymutex.New(),
		now:      time.Now,
	}
}

// Create converts the user's persisted cart into a pending order. The cart
// snapshot keeps the unit prices captured at add time; live product state is
// consulted only for stock. Stock decrements are guarded updates applied one
// product at a time, and any rejection rolls back the decrements already
// applied, so a failed create leaves every stock counter untouched.
//
// Creates for the same user serialize on a per-user lock; of two concurrent
// calls the first commits and clears the cart, the second sees the empty
// cart and fails with ErrEmptyCart.
func (s *Service) Create(ctx context.Context, userID string, address domain.Address, paymentMethod string) (*domain.Order, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	c, err := s.carts.Fetch(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if len(c.Items) == 0 {
		return nil, ErrEmptyCart
	}

	// Pre-check every line against live stock before touching anything, so
	// an order that cannot be filled has no partial effect at all.
	items := make([]domain.OrderItem, 0, len(c.Items))
	for _, item := range c.Items {
		p, err := s.products.GetByID(ctx, item.ProductID)
		if errors.Is(err, catalog.ErrProductNotFound) {
			// Product withdrawn since it was added to the cart.
			return nil, &catalog.InsufficientStockError{
				ProductID: item.ProductID,
				Name:      item.Name,
				Available: 0,
				Requested: item.Quantity,
			}
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load product %s: %w", item.ProductID, err)
		}
		if p.Stock < item.Quantity {
			return nil, &catalog.InsufficientStockError{
				ProductID: p.ID,
				Name:      p.Name,
				Available: p.Stock,
				Requested: item.Quantity,
			}
		}
		items = append(items, domain.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Image:     item.Image,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}

	subtotal := c.Subtotal().InexactFloat64()
	quote, err := pricing.Calculate(subtotal)
	if err != nil {
		return nil, err
	}

	// Guarded decrements. The pre-check above cannot rule out a concurrent
	// checkout grabbing the same units, so each decrement may still be
	// rejected; compensate the ones already applied and fail whole.
	applied := make([]domain.OrderItem, 0, len(items))
	for _, item := range items {
		if err := s.products.AdjustStock(ctx, item.ProductID, -item.Quantity); err != nil {
			s.restock(ctx, applied)
			if errors.Is(err, catalog.ErrInsufficientStock) || errors.Is(err, catalog.ErrProductNotFound) {
				return nil, &catalog.InsufficientStockError{
					ProductID: item.ProductID,
					Name:      item.Name,
					Available: s.availableStock(ctx, item.ProductID),
					Requested: item.Quantity,
				}
			}
			return nil, fmt.Errorf("failed to reserve stock for %s: %w", item.ProductID, err)
		}
		applied = append(applied, item)
	}

	now := s.now()
	order := &domain.Order{
		ID:              uuid.NewString(),
		OrderNumber:     newOrderNumber(),
		UserID:          userID,
		Items:           items,
		ShippingAddress: address,
		PaymentMethod:   paymentMethod,
		Subtotal:        quote.Subtotal,
		ShippingCost:    quote.ShippingCost,
		Tax:             quote.Tax,
		TotalAmount:     quote.Total,
		Status:          domain.OrderStatusPending,
		// Fixed offset; no courier integration.
		EstimatedDelivery: now.Add(DeliveryEstimateOffset),
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.orders.Insert(ctx, order); err != nil {
		s.restock(ctx, applied)
		return nil, fmt.Errorf("failed to persist order: %w", err)
	}

	// The order is committed from here on. A failed cart clear leaves the
	// order standing; the clear is retried on the user's next cart action.
	if _, err := s.carts.Clear(ctx, userID); err != nil {
		log.Printf("failed to clear cart for user %s after order %s: %v", userID, order.ID, err)
	}

	s.recordEvent(ctx, order, EventOrderPlaced)

	return order, nil
}

// Cancel flips a pending or processing order to cancelled and returns every
// line's quantity to its product's stock. Restock is best-effort: a product
// deleted since purchase is skipped, not an error.
func (s *Service) Cancel(ctx context.Context, userID, orderID string) (*domain.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, ErrForbidden
	}
	if !order.Status.Cancellable() {
		return nil, ErrInvalidTransition
	}

	err = s.orders.TransitionStatus(ctx, orderID, domain.OrderStatusCancelled,
		domain.OrderStatusPending, domain.OrderStatusProcessing)
	if err != nil {
		return nil, err
	}

	s.restock(ctx, order.Items)

	order.Status = domain.OrderStatusCancelled
	s.recordEvent(ctx, order, EventOrderCancelled)

	return order, nil
}

// UpdateStatus is the privileged status overwrite. Authorization is the
// caller's responsibility; the service only validates the status value.
func (s *Service) UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus, trackingNumber string) (*domain.Order, error) {
	if !status.Valid() {
		return nil, ErrInvalidTransition
	}

	if err := s.orders.UpdateStatus(ctx, orderID, status, trackingNumber); err != nil {
		return nil, err
	}

	return s.orders.FindByID(ctx, orderID)
}

// Get returns an order to its owner, or to a privileged caller.
func (s *Service) Get(ctx context.Context, userID string, privileged bool, orderID string) (*domain.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID && !privileged {
		return nil, ErrForbidden
	}
	return order, nil
}

// List returns the user's orders, newest first.
func (s *Service) List(ctx context.Context, userID string, page, pageSize int) ([]domain.Order, int64, error) {
	return s.orders.FindByUser(ctx, userID, page, pageSize)
}

// ListAll returns all orders with an optional status filter. Privileged
// callers only.
func (s *Service) ListAll(ctx context.Context, status domain.OrderStatus, page, pageSize int) ([]domain.Order, int64, error) {
	if status != "" && !status.Valid() {
		return nil, 0, ErrInvalidTransition
	}
	return s.orders.FindAll(ctx, status, page, pageSize)
}

func (s *Service) restock(ctx context.Context, items []domain.OrderItem) {
	for _, item := range items {
		err := s.products.AdjustStock(ctx, item.ProductID, item.Quantity)
		if err != nil && !errors.Is(err, catalog.ErrProductNotFound) {
			log.Printf("failed to restock product %s by %d: %v", item.ProductID, item.Quantity, err)
		}
	}
}

func (s *Service) availableStock(ctx context.Context, productID string) int {
	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return 0
	}
	return p.Stock
}

func (s *Service) recordEvent(ctx context.Context, order *domain.Order, eventType string) {
	if s.events == nil {
		return
	}
	if err := s.events.Record(ctx, order.ID, eventType, order); err != nil {
		log.Printf("failed to record %s event for order %s: %v", eventType, order.ID, err)
	}
}

func newOrderNumber() string {
	return "ORD-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:12])
}
