package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raynerd/attire/internal/domain"
)

func testIdentity() *domain.Identity {
	return &domain.Identity{UserID: uuid.New(), Role: domain.RoleUser}
}

func sampleCart(userID uuid.UUID, productID uuid.UUID) domain.Cart {
	price := decimal.NewFromInt(20)
	return domain.Cart{
		ID:     uuid.New(),
		UserID: userID,
		Items: []domain.CartItem{{
			ProductID:   productID,
			Quantity:    2,
			Price:       price,
			ProductName: "Runner",
			UnitPrice:   decimal.NewFromInt(10),
		}},
		TotalPrice: price,
	}
}

func TestCartHandler_Add(t *testing.T) {
	identity := testIdentity()
	productID := uuid.New()

	t.Run("adds with owner from context", func(t *testing.T) {
		carts := &mockCartService{
			AddItemFn: func(ctx context.Context, ownerID, pID uuid.UUID, quantity int32) (domain.Cart, error) {
				assert.Equal(t, identity.UserID, ownerID)
				assert.Equal(t, productID, pID)
				assert.Equal(t, int32(2), quantity)
				return sampleCart(ownerID, pID), nil
			},
		}
		h := NewCartHandler(carts, nil)

		req := authedRequest(t, http.MethodPost, "/add-cart",
			jsonBody(`{"productId":"`+productID.String()+`","quantity":2}`), identity)
		rec := httptest.NewRecorder()
		h.Add(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Cart cartResponse `json:"cart"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Cart.Items, 1)
		assert.True(t, resp.Cart.TotalPrice.Equal(decimal.NewFromInt(20)))
	})

	t.Run("401 without identity", func(t *testing.T) {
		h := NewCartHandler(&mockCartService{}, nil)

		req := authedRequest(t, http.MethodPost, "/add-cart",
			jsonBody(`{"productId":"`+productID.String()+`","quantity":2}`), nil)
		rec := httptest.NewRecorder()
		h.Add(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("400 on zero quantity", func(t *testing.T) {
		h := NewCartHandler(&mockCartService{}, nil)

		req := authedRequest(t, http.MethodPost, "/add-cart",
			jsonBody(`{"productId":"`+productID.String()+`","quantity":0}`), identity)
		rec := httptest.NewRecorder()
		h.Add(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("insufficient stock surfaces 400", func(t *testing.T) {
		carts := &mockCartService{
			AddItemFn: func(ctx context.Context, ownerID, pID uuid.UUID, quantity int32) (domain.Cart, error) {
				return domain.Cart{}, domain.ErrInsufficientStock
			},
		}
		h := NewCartHandler(carts, nil)

		req := authedRequest(t, http.MethodPost, "/add-cart",
			jsonBody(`{"productId":"`+productID.String()+`","quantity":99}`), identity)
		rec := httptest.NewRecorder()
		h.Add(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Not enough stock available")
	})
}

func TestCartHandler_View(t *testing.T) {
	identity := testIdentity()

	t.Run("missing cart is 404", func(t *testing.T) {
		carts := &mockCartService{
			ViewCartFn: func(ctx context.Context, ownerID uuid.UUID) (domain.Cart, error) {
				return domain.Cart{}, domain.ErrCartNotFound
			},
		}
		h := NewCartHandler(carts, nil)

		req := authedRequest(t, http.MethodGet, "/cart", nil, identity)
		rec := httptest.NewRecorder()
		h.View(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("returns the cart", func(t *testing.T) {
		productID := uuid.New()
		carts := &mockCartService{
			ViewCartFn: func(ctx context.Context, ownerID uuid.UUID) (domain.Cart, error) {
				return sampleCart(ownerID, productID), nil
			},
		}
		h := NewCartHandler(carts, nil)

		req := authedRequest(t, http.MethodGet, "/cart", nil, identity)
		rec := httptest.NewRecorder()
		h.View(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), productID.String())
	})
}

func TestCartHandler_RemoveAndDecrease(t *testing.T) {
	identity := testIdentity()
	productID := uuid.New()

	t.Run("remove missing line is 404", func(t *testing.T) {
		carts := &mockCartService{
			RemoveItemFn: func(ctx context.Context, ownerID, pID uuid.UUID) (domain.Cart, error) {
				return domain.Cart{}, domain.ErrCartItemNotFound
			},
		}
		h := NewCartHandler(carts, nil)

		req := authedRequest(t, http.MethodDelete, "/remove-a-product",
			jsonBody(`{"productId":"`+productID.String()+`"}`), identity)
		rec := httptest.NewRecorder()
		h.Remove(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "Product not found in cart")
	})

	t.Run("decrease returns updated cart", func(t *testing.T) {
		carts := &mockCartService{
			DecreaseItemFn: func(ctx context.Context, ownerID, pID uuid.UUID) (domain.Cart, error) {
				cart := sampleCart(ownerID, pID)
				cart.Items[0].Quantity = 1
				cart.Items[0].Price = decimal.NewFromInt(10)
				cart.TotalPrice = decimal.NewFromInt(10)
				return cart, nil
			},
		}
		h := NewCartHandler(carts, nil)

		req := authedRequest(t, http.MethodPost, "/cart-decrease",
			jsonBody(`{"productId":"`+productID.String()+`"}`), identity)
		rec := httptest.NewRecorder()
		h.Decrease(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Cart cartResponse `json:"cart"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, int32(1), resp.Cart.Items[0].Quantity)
		assert.True(t, resp.Cart.TotalPrice.Equal(decimal.NewFromInt(10)))
	})
}

func TestCartHandler_Clear(t *testing.T) {
	identity := testIdentity()

	carts := &mockCartService{
		ClearCartFn: func(ctx context.Context, ownerID uuid.UUID) (domain.Cart, error) {
			return domain.Cart{
				ID:         uuid.New(),
				UserID:     ownerID,
				Items:      []domain.CartItem{},
				TotalPrice: decimal.Zero,
			}, nil
		},
	}
	h := NewCartHandler(carts, nil)

	req := authedRequest(t, http.MethodDelete, "/clear-cart", nil, identity)
	rec := httptest.NewRecorder()
	h.Clear(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Cart cartResponse `json:"cart"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Cart.Items)
	assert.True(t, resp.Cart.TotalPrice.IsZero())
}
