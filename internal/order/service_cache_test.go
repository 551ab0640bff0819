package order

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meyashjha/ecommerce-fullstack/internal/cart"
	"github.com/meyashjha/ecommerce-fullstack/internal/cart/cache"
	"github.com/meyashjha/ecommerce-fullstack/internal/domain"
)

type memCartRepo struct {
	mu    sync.Mutex
	carts map[string]*domain.Cart
}

func (r *memCartRepo) Get(_ context.Context, userID string) (*domain.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.carts[userID]
	if !ok {
		return nil, cart.ErrCartNotFound
	}
	out := *c
	out.Items = append([]domain.CartItem(nil), c.Items...)
	return &out, nil
}

func (r *memCartRepo) Upsert(_ context.Context, c *domain.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *c
	stored.Items = append([]domain.CartItem(nil), c.Items...)
	r.carts[c.UserID] = &stored
	return nil
}

// slowCache delays writes, so a fill racing an invalidation would land last.
type slowCache struct {
	mu       sync.Mutex
	carts    map[string]*domain.Cart
	setDelay time.Duration
}

func (s *slowCache) Get(_ context.Context, userID string) (*domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.carts[userID]
	if !ok {
		return nil, cache.ErrCacheMiss
	}
	out := *c
	out.Items = append([]domain.CartItem(nil), c.Items...)
	return &out, nil
}

func (s *slowCache) Set(_ context.Context, userID string, c *domain.Cart) error {
	time.Sleep(s.setDelay)
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *c
	stored.Items = append([]domain.CartItem(nil), c.Items...)
	s.carts[userID] = &stored
	return nil
}

func (s *slowCache) Delete(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, userID)
	return nil
}

// A create reads the cart through the cache. The fill triggered by that read
// must not outlive the post-order clear: if it did, the cleared cart would
// come back from the cache and a repeat create would charge the user again.
func TestCreate_ClearedCartStaysClearedDespiteSlowCacheFill(t *testing.T) {
	products := newMockProducts(product("p1", 25.00, 50))
	orders := newMockOrders()
	repo := &memCartRepo{carts: make(map[string]*domain.Cart)}
	cc := &slowCache{carts: make(map[string]*domain.Cart), setDelay: 20 * time.Millisecond}
	carts := cart.NewPersistedService(repo, cc)

	ctx := context.Background()
	_, err := carts.Add(ctx, "user1", domain.ProductSnapshot{ProductID: "p1", Name: "product p1", Price: 25.00}, 2)
	require.NoError(t, err)

	svc := NewService(orders, products, carts, nil)
	address := domain.Address{Street: "1 Main St", City: "Springfield"}

	o, err := svc.Create(ctx, "user1", address, "card")
	require.NoError(t, err)
	assert.Equal(t, 48, products.stock("p1"))

	// Leave time for any straggling cache write before trying again.
	time.Sleep(50 * time.Millisecond)

	_, err = svc.Create(ctx, "user1", address, "card")
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Equal(t, 48, products.stock("p1"))

	all, total, err := orders.FindAll(ctx, "", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, all, 1)
	assert.Equal(t, o.ID, all[0].ID)

	// The cart the user sees afterwards is the cleared one.
	c, err := carts.Fetch(ctx, "user1")
	require.NoError(t, err)
	assert.Empty(t, c.Items)
}
