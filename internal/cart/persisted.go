package cart

import (
	"context"
	"errors"
	"log"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/meyashjha/ecommerce-fullstack/internal/cart/cache"
	"github.com/meyashjha/ecommerce-fullstack/internal/domain"
	"github.com/meyashjha/ecommerce-fullstack/internal/keymutex"
)

// PersistedService keeps one cart per authenticated user in MongoDB, with a
// Redis read cache in front. The cart document is created lazily on the
// first mutation and survives across sessions; it is emptied only by an
// explicit clear or a successful order placement.
//
// Mutations for the same user serialize on a per-user lock, so each one is
// a clean read-modify-write; cache refills after a miss take the same lock,
// so a refill and a mutation's invalidation cannot cross. Carts are
// user-scoped, so no cross-user coordination is needed.
type PersistedService struct {
	repo  Repository
	cache cache.CartCache
	locks *keymutex.KeyMutex
	sfg   singleflight.Group // Prevents cache stampede
}

func NewPersistedService(repo Repository, cache cache.CartCache) *PersistedService {
	return &PersistedService{
		repo:  repo,
		cache: cache,
		locks: keymutex.New(),
	}
}

func (s *PersistedService) Fetch(ctx context.Context, userID string) (*domain.Cart, error) {
	// Use singleflight to prevent multiple concurrent cache misses for same key
	v, err, _ := s.sfg.Do(userID, func() (interface{}, error) {
		c, err := s.cache.Get(ctx, userID)
		if err == nil {
			return c, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Printf("cache get error: %v", err) // log cache error but continue
		}

		// Read and refill under the user's lock so the fill cannot be
		// reordered past a later mutation's invalidation; an unsynchronized
		// fill landing after a clear would resurrect the old cart in the
		// cache for the whole TTL.
		unlock := s.locks.Lock(userID)
		defer unlock()

		c, err = s.repo.Get(ctx, userID)
		if errors.Is(err, ErrCartNotFound) {
			now := time.Now()
			return &domain.Cart{UserID: userID, Items: []domain.CartItem{}, CreatedAt: now, UpdatedAt: now}, nil
		}
		if err != nil {
			return nil, err
		}

		if err := s.cache.Set(ctx, userID, c); err != nil {
			log.Printf("cache set error: %v", err)
		}

		return c, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*domain.Cart), nil
}

func (s *PersistedService) Add(ctx context.Context, userID string, snap domain.ProductSnapshot, quantity int) (*domain.Cart, error) {
	return s.mutate(ctx, userID, func(c *domain.Cart) {
		c.Add(snap, quantity)
	})
}

func (s *PersistedService) SetQuantity(ctx context.Context, userID, itemID string, quantity int) (*domain.Cart, error) {
	return s.mutate(ctx, userID, func(c *domain.Cart) {
		c.SetQuantity(itemID, quantity)
	})
}

func (s *PersistedService) Remove(ctx context.Context, userID, itemID string) (*domain.Cart, error) {
	return s.mutate(ctx, userID, func(c *domain.Cart) {
		c.Remove(itemID)
	})
}

func (s *PersistedService) Clear(ctx context.Context, userID string) (*domain.Cart, error) {
	return s.mutate(ctx, userID, func(c *domain.Cart) {
		c.Clear()
	})
}

// mutate loads the user's cart (creating it lazily), applies fn, persists
// the result and invalidates the cache, all under the user's lock.
func (s *PersistedService) mutate(ctx context.Context, userID string, fn func(*domain.Cart)) (*domain.Cart, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	c, err := s.repo.Get(ctx, userID)
	if errors.Is(err, ErrCartNotFound) {
		now := time.Now()
		c = &domain.Cart{UserID: userID, Items: []domain.CartItem{}, CreatedAt: now, UpdatedAt: now}
	} else if err != nil {
		return nil, err
	}

	fn(c)

	if err := s.repo.Upsert(ctx, c); err != nil {
		log.Printf("repo upsert cart error: %v", err)
		return nil, err
	}

	s.invalidateCache(userID)
	return c, nil
}

func (s *PersistedService) invalidateCache(userID string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx, userID); err != nil {
		log.Printf("cache invalidate error: %v", err)
	}
}
