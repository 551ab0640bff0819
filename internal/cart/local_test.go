package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meyashjha/ecommerce-fullstack/internal/domain"
)

func TestLocal_FetchCreatesEmptyCart(t *testing.T) {
	svc := NewLocalService()

	c, err := svc.Fetch(context.Background(), "sess1")
	require.NoError(t, err)
	assert.Empty(t, c.Items)
	assert.Equal(t, 0.0, c.TotalAmount)
}

func TestLocal_AddAndTotals(t *testing.T) {
	svc := NewLocalService()
	ctx := context.Background()

	_, err := svc.Add(ctx, "sess1", domain.ProductSnapshot{ProductID: "p1", Price: 3.00}, 2)
	require.NoError(t, err)
	c, err := svc.Add(ctx, "sess1", domain.ProductSnapshot{ProductID: "p2", Price: 1.25}, 4)
	require.NoError(t, err)

	assert.Equal(t, 6, c.TotalItems)
	assert.Equal(t, 11.00, c.TotalAmount)
}

func TestLocal_SessionsAreIsolated(t *testing.T) {
	svc := NewLocalService()
	ctx := context.Background()

	_, err := svc.Add(ctx, "sess1", domain.ProductSnapshot{ProductID: "p1", Price: 3.00}, 1)
	require.NoError(t, err)

	c, err := svc.Fetch(ctx, "sess2")
	require.NoError(t, err)
	assert.Empty(t, c.Items)
}

func TestLocal_ReturnedCartIsACopy(t *testing.T) {
	svc := NewLocalService()
	ctx := context.Background()

	c, err := svc.Add(ctx, "sess1", domain.ProductSnapshot{ProductID: "p1", Price: 3.00}, 1)
	require.NoError(t, err)

	c.Items[0].Quantity = 99 // must not leak into the stored cart

	stored, err := svc.Fetch(ctx, "sess1")
	require.NoError(t, err)
	assert.Equal(t, 1, stored.Items[0].Quantity)
}

func TestLocal_DropDiscardsCart(t *testing.T) {
	svc := NewLocalService()
	ctx := context.Background()

	_, err := svc.Add(ctx, "sess1", domain.ProductSnapshot{ProductID: "p1", Price: 3.00}, 1)
	require.NoError(t, err)

	svc.Drop("sess1")

	c, err := svc.Fetch(ctx, "sess1")
	require.NoError(t, err)
	assert.Empty(t, c.Items)
}
