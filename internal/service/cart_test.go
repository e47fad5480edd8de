package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raynerd/attire/internal/domain"
)

// passthroughCartStore keeps one cart in memory and echoes saves back,
// which is all the orchestration tests need.
func passthroughCartStore(cart *domain.Cart) *mockCartStore {
	return &mockCartStore{
		GetByOwnerFn: func(ctx context.Context, userID uuid.UUID) (domain.Cart, error) {
			if cart.UserID != userID {
				return domain.Cart{}, domain.ErrCartNotFound
			}
			return *cart, nil
		},
		UpsertByOwnerFn: func(ctx context.Context, userID uuid.UUID) (domain.Cart, error) {
			if cart.ID == uuid.Nil {
				cart.ID = uuid.New()
				cart.UserID = userID
				cart.Items = []domain.CartItem{}
			}
			return *cart, nil
		},
		SaveFn: func(ctx context.Context, c domain.Cart) (domain.Cart, error) {
			*cart = c
			return c, nil
		},
	}
}

func fixedProductStore(products map[uuid.UUID]domain.Product) *mockProductStore {
	return &mockProductStore{
		GetByIDFn: func(ctx context.Context, id uuid.UUID) (domain.Product, error) {
			p, ok := products[id]
			if !ok {
				return domain.Product{}, domain.ErrProductNotFound
			}
			return p, nil
		},
	}
}

func TestCartService_AddItem(t *testing.T) {
	ownerID := uuid.New()
	shoe := domain.Product{ID: uuid.New(), Name: "Runner", Price: decimal.NewFromInt(10), Stock: 5}
	products := fixedProductStore(map[uuid.UUID]domain.Product{shoe.ID: shoe})

	t.Run("first add creates the cart", func(t *testing.T) {
		var cart domain.Cart
		svc := NewCartService(passthroughCartStore(&cart), products)

		got, err := svc.AddItem(context.Background(), ownerID, shoe.ID, 2)
		require.NoError(t, err)

		require.Len(t, got.Items, 1)
		assert.Equal(t, int32(2), got.Items[0].Quantity)
		assert.True(t, got.TotalPrice.Equal(decimal.NewFromInt(20)), "total = %s", got.TotalPrice)
	})

	t.Run("repeated add accumulates the line", func(t *testing.T) {
		var cart domain.Cart
		svc := NewCartService(passthroughCartStore(&cart), products)

		_, err := svc.AddItem(context.Background(), ownerID, shoe.ID, 2)
		require.NoError(t, err)
		got, err := svc.AddItem(context.Background(), ownerID, shoe.ID, 1)
		require.NoError(t, err)

		require.Len(t, got.Items, 1)
		assert.Equal(t, int32(3), got.Items[0].Quantity)
		assert.True(t, got.TotalPrice.Equal(decimal.NewFromInt(30)))
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		var cart domain.Cart
		svc := NewCartService(passthroughCartStore(&cart), products)

		_, err := svc.AddItem(context.Background(), ownerID, shoe.ID, 0)
		assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
	})

	t.Run("rejects insufficient stock", func(t *testing.T) {
		var cart domain.Cart
		svc := NewCartService(passthroughCartStore(&cart), products)

		_, err := svc.AddItem(context.Background(), ownerID, shoe.ID, 6)
		assert.Equal(t, domain.ECONFLICT, domain.ErrorCode(err))
	})

	t.Run("unknown product", func(t *testing.T) {
		var cart domain.Cart
		svc := NewCartService(passthroughCartStore(&cart), products)

		_, err := svc.AddItem(context.Background(), ownerID, uuid.New(), 1)
		assert.Equal(t, domain.ENOTFOUND, domain.ErrorCode(err))
	})
}

func TestCartService_RemoveItem(t *testing.T) {
	ownerID := uuid.New()
	shoe := domain.Product{ID: uuid.New(), Price: decimal.NewFromInt(10), Stock: 5}
	products := fixedProductStore(map[uuid.UUID]domain.Product{shoe.ID: shoe})

	var cart domain.Cart
	svc := NewCartService(passthroughCartStore(&cart), products)

	_, err := svc.AddItem(context.Background(), ownerID, shoe.ID, 2)
	require.NoError(t, err)

	t.Run("removes the whole line", func(t *testing.T) {
		got, err := svc.RemoveItem(context.Background(), ownerID, shoe.ID)
		require.NoError(t, err)

		assert.Empty(t, got.Items)
		assert.True(t, got.TotalPrice.IsZero())
	})

	t.Run("line not in cart", func(t *testing.T) {
		_, err := svc.RemoveItem(context.Background(), ownerID, uuid.New())
		assert.Equal(t, domain.ENOTFOUND, domain.ErrorCode(err))
	})
}

func TestCartService_DecreaseItem(t *testing.T) {
	ownerID := uuid.New()
	shoe := domain.Product{ID: uuid.New(), Price: decimal.NewFromInt(10), Stock: 5}
	products := fixedProductStore(map[uuid.UUID]domain.Product{shoe.ID: shoe})

	var cart domain.Cart
	svc := NewCartService(passthroughCartStore(&cart), products)

	_, err := svc.AddItem(context.Background(), ownerID, shoe.ID, 2)
	require.NoError(t, err)

	got, err := svc.DecreaseItem(context.Background(), ownerID, shoe.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, int32(1), got.Items[0].Quantity)
	assert.True(t, got.TotalPrice.Equal(decimal.NewFromInt(10)))

	// decreasing a quantity-1 line removes it
	got, err = svc.DecreaseItem(context.Background(), ownerID, shoe.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Items)
	assert.True(t, got.TotalPrice.IsZero())

	_, err = svc.DecreaseItem(context.Background(), ownerID, shoe.ID)
	assert.Equal(t, domain.ENOTFOUND, domain.ErrorCode(err))
}

func TestCartService_ClearCart(t *testing.T) {
	ownerID := uuid.New()
	shoe := domain.Product{ID: uuid.New(), Price: decimal.NewFromInt(10), Stock: 5}
	products := fixedProductStore(map[uuid.UUID]domain.Product{shoe.ID: shoe})

	var cart domain.Cart
	svc := NewCartService(passthroughCartStore(&cart), products)

	_, err := svc.AddItem(context.Background(), ownerID, shoe.ID, 3)
	require.NoError(t, err)

	got, err := svc.ClearCart(context.Background(), ownerID)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, got.ID, "clear keeps the cart itself")
	assert.Empty(t, got.Items)
	assert.True(t, got.TotalPrice.IsZero())
}

func TestCartService_ViewCart(t *testing.T) {
	ownerID := uuid.New()
	var cart domain.Cart
	svc := NewCartService(passthroughCartStore(&cart), fixedProductStore(nil))

	_, err := svc.ViewCart(context.Background(), ownerID)
	assert.Equal(t, domain.ENOTFOUND, domain.ErrorCode(err))
}
