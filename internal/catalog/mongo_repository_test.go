package catalog

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"

	"github.com/meyashjha/ecommerce-fullstack/internal/domain"
	mongoconn "github.com/meyashjha/ecommerce-fullstack/internal/mongodb"
)

func setupTestDB(t *testing.T) (ProductRepository, func()) {
	ctx := context.Background()

	mongoContainer, err := mongodb.RunContainer(ctx, testcontainers.WithImage("mongo:7"))
	require.NoError(t, err)

	uri, err := mongoContainer.ConnectionString(ctx)
	require.NoError(t, err)

	db, err := mongoconn.Connect(ctx, uri, "testdb")
	require.NoError(t, err)

	repo := NewMongoRepository(db)

	mongoRepo := repo.(*mongoRepository)
	err = mongoRepo.CreateIndexes(ctx)
	require.NoError(t, err)

	cleanup := func() {
		if err := mongoContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}

	return repo, cleanup
}

func seedProduct(t *testing.T, repo ProductRepository, name, category string, price float64, stock int) *domain.Product {
	t.Helper()
	p := &domain.Product{
		Name:     name,
		Category: category,
		Price:    price,
		Stock:    stock,
	}
	require.NoError(t, repo.Insert(context.Background(), p))
	return p
}

func TestGetByID_NotFound(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	product, err := repo.GetByID(ctx, "nonexistent")

	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.Nil(t, product)
}

func TestInsertAndGetByID(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	p := seedProduct(t, repo, "Headphones", "electronics", 49.99, 10)
	require.NotEmpty(t, p.ID)

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Headphones", got.Name)
	assert.Equal(t, 49.99, got.Price)
	assert.Equal(t, 10, got.Stock)
}

func TestList_CategoryFilter(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	seedProduct(t, repo, "Headphones", "electronics", 49.99, 10)
	seedProduct(t, repo, "Desk", "furniture", 150.00, 4)

	products, total, err := repo.List(ctx, ListParams{Category: "electronics"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, products, 1)
	assert.Equal(t, "Headphones", products[0].Name)
}

func TestList_SearchAndSort(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	seedProduct(t, repo, "Wireless Headphones", "electronics", 79.99, 10)
	seedProduct(t, repo, "Wired Headphones", "electronics", 19.99, 10)
	seedProduct(t, repo, "Desk", "furniture", 150.00, 4)

	products, total, err := repo.List(ctx, ListParams{Search: "headphones", Sort: "price_asc"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, products, 2)
	assert.Equal(t, "Wired Headphones", products[0].Name)
	assert.Equal(t, "Wireless Headphones", products[1].Name)
}

func TestList_Pagination(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		seedProduct(t, repo, "Item", "electronics", 10.00, 1)
	}

	products, total, err := repo.List(ctx, ListParams{Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, products, 2)

	products, _, err = repo.List(ctx, ListParams{Page: 3, PageSize: 2})
	require.NoError(t, err)
	assert.Len(t, products, 1)
}

func TestAdjustStock_Decrement(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	p := seedProduct(t, repo, "Headphones", "electronics", 49.99, 5)

	err := repo.AdjustStock(ctx, p.ID, -3)
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Stock)
}

func TestAdjustStock_GuardRejectsOversell(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	p := seedProduct(t, repo, "Headphones", "electronics", 49.99, 2)

	err := repo.AdjustStock(ctx, p.ID, -3)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	// The rejected write must leave the stock untouched.
	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Stock)
}

func TestAdjustStock_UnknownProduct(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	err := repo.AdjustStock(context.Background(), "nonexistent", -1)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestAdjustStock_ConcurrentDecrements(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	p := seedProduct(t, repo, "Headphones", "electronics", 49.99, 10)

	// 20 workers each try to take one unit; exactly 10 may win.
	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := repo.AdjustStock(ctx, p.ID, -1); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, succeeded)

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Stock)
}

func TestAdjustStock_Restock(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	p := seedProduct(t, repo, "Headphones", "electronics", 49.99, 1)

	require.NoError(t, repo.AdjustStock(ctx, p.ID, -1))
	require.NoError(t, repo.AdjustStock(ctx, p.ID, 1))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Stock)
}
