package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meyashjha/ecommerce-fullstack/internal/domain"
)

func cartRequest(method, target, sessionID, token string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	if sessionID != "" {
		req.Header.Set(SessionHeader, sessionID)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func decodeCart(t *testing.T, rec *httptest.ResponseRecorder) *domain.Cart {
	t.Helper()
	var c domain.Cart
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&c))
	return &c
}

func TestCart_GuestFlow(t *testing.T) {
	ts := newTestServer(t, testProduct("prod-1", "Headphones", 49.99, 10))

	rec := ts.do(cartRequest(http.MethodPost, "/api/cart/add", "sess-1", "",
		AddItemRequestDTO{ProductID: "prod-1", Quantity: 2}))
	require.Equal(t, http.StatusCreated, rec.Code)

	c := decodeCart(t, rec)
	require.Len(t, c.Items, 1)
	assert.Equal(t, "prod-1", c.Items[0].ProductID)
	assert.Equal(t, 2, c.Items[0].Quantity)
	assert.Equal(t, 49.99, c.Items[0].Price)
	assert.Equal(t, 99.98, c.TotalAmount)

	itemID := c.Items[0].ID

	rec = ts.do(cartRequest(http.MethodPut, "/api/cart/update/"+itemID, "sess-1", "",
		UpdateQuantityRequestDTO{Quantity: 5}))
	require.Equal(t, http.StatusOK, rec.Code)
	c = decodeCart(t, rec)
	assert.Equal(t, 5, c.TotalItems)

	rec = ts.do(cartRequest(http.MethodDelete, "/api/cart/remove/"+itemID, "sess-1", "", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	c = decodeCart(t, rec)
	assert.Empty(t, c.Items)
	assert.Zero(t, c.TotalAmount)
}

func TestCart_UpdateQuantityZeroRemoves(t *testing.T) {
	ts := newTestServer(t, testProduct("prod-1", "Headphones", 49.99, 10))

	rec := ts.do(cartRequest(http.MethodPost, "/api/cart/add", "sess-1", "",
		AddItemRequestDTO{ProductID: "prod-1", Quantity: 1}))
	require.Equal(t, http.StatusCreated, rec.Code)
	itemID := decodeCart(t, rec).Items[0].ID

	rec = ts.do(cartRequest(http.MethodPut, "/api/cart/update/"+itemID, "sess-1", "",
		UpdateQuantityRequestDTO{Quantity: 0}))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeCart(t, rec).Items)
}

func TestCart_SessionsAreIsolated(t *testing.T) {
	ts := newTestServer(t, testProduct("prod-1", "Headphones", 49.99, 10))

	rec := ts.do(cartRequest(http.MethodPost, "/api/cart/add", "sess-a", "",
		AddItemRequestDTO{ProductID: "prod-1"}))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = ts.do(cartRequest(http.MethodGet, "/api/cart", "sess-b", "", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeCart(t, rec).Items)
}

func TestCart_AuthenticatedCallerUsesPersistedCart(t *testing.T) {
	ts := newTestServer(t, testProduct("prod-1", "Headphones", 49.99, 10))
	token := ts.token(t, "user-1", "customer")

	rec := ts.do(cartRequest(http.MethodPost, "/api/cart/add", "", token,
		AddItemRequestDTO{ProductID: "prod-1", Quantity: 3}))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = ts.do(cartRequest(http.MethodGet, "/api/cart", "", token, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	c := decodeCart(t, rec)
	require.Len(t, c.Items, 1)
	assert.Equal(t, 3, c.TotalItems)
}

func TestCart_NoIdentityRejected(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(cartRequest(http.MethodGet, "/api/cart", "", "", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCart_AddUnknownProduct(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(cartRequest(http.MethodPost, "/api/cart/add", "sess-1", "",
		AddItemRequestDTO{ProductID: "ghost", Quantity: 1}))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "not_found", resp.Code)
}

func TestCart_AddQuantityValidation(t *testing.T) {
	ts := newTestServer(t, testProduct("prod-1", "Headphones", 49.99, 10))

	rec := ts.do(cartRequest(http.MethodPost, "/api/cart/add", "sess-1", "",
		AddItemRequestDTO{ProductID: "prod-1", Quantity: 100}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Omitted quantity defaults to one.
	rec = ts.do(cartRequest(http.MethodPost, "/api/cart/add", "sess-1", "",
		AddItemRequestDTO{ProductID: "prod-1"}))
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 1, decodeCart(t, rec).TotalItems)
}

func TestCart_ClearKeepsEmptyCart(t *testing.T) {
	ts := newTestServer(t, testProduct("prod-1", "Headphones", 49.99, 10))

	rec := ts.do(cartRequest(http.MethodPost, "/api/cart/add", "sess-1", "",
		AddItemRequestDTO{ProductID: "prod-1", Quantity: 2}))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = ts.do(cartRequest(http.MethodDelete, "/api/cart/clear", "sess-1", "", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	c := decodeCart(t, rec)
	assert.Empty(t, c.Items)
	assert.Zero(t, c.TotalItems)
	assert.Zero(t, c.TotalAmount)
}
