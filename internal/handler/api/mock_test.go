package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/raynerd/attire/internal/domain"
)

type mockUserService struct {
	RegisterFn     func(ctx context.Context, params domain.RegisterParams) (domain.User, error)
	AuthenticateFn func(ctx context.Context, email, password string) (domain.User, error)
}

func (m *mockUserService) Register(ctx context.Context, params domain.RegisterParams) (domain.User, error) {
	return m.RegisterFn(ctx, params)
}

func (m *mockUserService) Authenticate(ctx context.Context, email, password string) (domain.User, error) {
	return m.AuthenticateFn(ctx, email, password)
}

type mockProductService struct {
	CreateFn     func(ctx context.Context, creator domain.Identity, params domain.CreateProductParams) (domain.Product, error)
	QueryFn      func(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	ToggleLikeFn func(ctx context.Context, productID, userID uuid.UUID) ([]uuid.UUID, error)
}

func (m *mockProductService) Create(ctx context.Context, creator domain.Identity, params domain.CreateProductParams) (domain.Product, error) {
	return m.CreateFn(ctx, creator, params)
}

func (m *mockProductService) Query(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	return m.QueryFn(ctx, filter)
}

func (m *mockProductService) ToggleLike(ctx context.Context, productID, userID uuid.UUID) ([]uuid.UUID, error) {
	return m.ToggleLikeFn(ctx, productID, userID)
}

type mockCartService struct {
	AddItemFn      func(ctx context.Context, ownerID, productID uuid.UUID, quantity int32) (domain.Cart, error)
	ViewCartFn     func(ctx context.Context, ownerID uuid.UUID) (domain.Cart, error)
	RemoveItemFn   func(ctx context.Context, ownerID, productID uuid.UUID) (domain.Cart, error)
	DecreaseItemFn func(ctx context.Context, ownerID, productID uuid.UUID) (domain.Cart, error)
	ClearCartFn    func(ctx context.Context, ownerID uuid.UUID) (domain.Cart, error)
}

func (m *mockCartService) AddItem(ctx context.Context, ownerID, productID uuid.UUID, quantity int32) (domain.Cart, error) {
	return m.AddItemFn(ctx, ownerID, productID, quantity)
}

func (m *mockCartService) ViewCart(ctx context.Context, ownerID uuid.UUID) (domain.Cart, error) {
	return m.ViewCartFn(ctx, ownerID)
}

func (m *mockCartService) RemoveItem(ctx context.Context, ownerID, productID uuid.UUID) (domain.Cart, error) {
	return m.RemoveItemFn(ctx, ownerID, productID)
}

func (m *mockCartService) DecreaseItem(ctx context.Context, ownerID, productID uuid.UUID) (domain.Cart, error) {
	return m.DecreaseItemFn(ctx, ownerID, productID)
}

func (m *mockCartService) ClearCart(ctx context.Context, ownerID uuid.UUID) (domain.Cart, error) {
	return m.ClearCartFn(ctx, ownerID)
}

// authedRequest builds a request that already carries an identity, as if
// it had passed the auth middleware.
func authedRequest(t *testing.T, method, target string, body *string, identity *domain.Identity) *http.Request {
	t.Helper()

	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(*body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	if identity != nil {
		req = req.WithContext(domain.NewContextWithIdentity(req.Context(), identity))
	}
	return req
}

func jsonBody(s string) *string { return &s }
