package cart

import (
	"context"
	"sync"
	"time"

	"github.com/meyashjha/ecommerce-fullstack/internal/domain"
)

// LocalService holds anonymous session carts in process memory. Carts are
// created empty on first use and vanish with the process; nothing is
// persisted. The identity argument is the caller's session id.
type LocalService struct {
	mu    sync.Mutex
	carts map[string]*domain.Cart
}

func NewLocalService() *LocalService {
	return &LocalService{carts: make(map[string]*domain.Cart)}
}

func (s *LocalService) Fetch(_ context.Context, sessionID string) (*domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot(sessionID), nil
}

func (s *LocalService) Add(_ context.Context, sessionID string, snap domain.ProductSnapshot, quantity int) (*domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart(sessionID).Add(snap, quantity)
	return s.snapshot(sessionID), nil
}

func (s *LocalService) SetQuantity(_ context.Context, sessionID, itemID string, quantity int) (*domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart(sessionID).SetQuantity(itemID, quantity)
	return s.snapshot(sessionID), nil
}

func (s *LocalService) Remove(_ context.Context, sessionID, itemID string) (*domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart(sessionID).Remove(itemID)
	return s.snapshot(sessionID), nil
}

func (s *LocalService) Clear(_ context.Context, sessionID string) (*domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart(sessionID).Clear()
	return s.snapshot(sessionID), nil
}

// Drop discards a session's cart, e.g. when the session authenticates.
// Local cart contents are not merged into the user's persisted cart.
func (s *LocalService) Drop(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
}

func (s *LocalService) cart(sessionID string) *domain.Cart {
	c, ok := s.carts[sessionID]
	if !ok {
		now := time.Now()
		c = &domain.Cart{UserID: sessionID, Items: []domain.CartItem{}, CreatedAt: now, UpdatedAt: now}
		s.carts[sessionID] = c
	}
	c.UpdatedAt = time.Now()
	return c
}

// snapshot copies the cart so callers never share the map's mutable state.
func (s *LocalService) snapshot(sessionID string) *domain.Cart {
	c := s.cart(sessionID)
	out := *c
	out.Items = make([]domain.CartItem, len(c.Items))
	copy(out.Items, c.Items)
	return &out
}
