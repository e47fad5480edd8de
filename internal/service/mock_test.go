package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/raynerd/attire/internal/domain"
)

// Function-field mocks for the store interfaces. Tests assign only the
// functions they need; an unassigned call panics, which is the failure we
// want in a test.

type mockUserStore struct {
	CreateFn     func(ctx context.Context, u domain.User) (domain.User, error)
	GetByEmailFn func(ctx context.Context, email string) (domain.User, error)
	GetByIDFn    func(ctx context.Context, id uuid.UUID) (domain.User, error)
}

func (m *mockUserStore) Create(ctx context.Context, u domain.User) (domain.User, error) {
	return m.CreateFn(ctx, u)
}

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return m.GetByEmailFn(ctx, email)
}

func (m *mockUserStore) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	return m.GetByIDFn(ctx, id)
}

type mockProductStore struct {
	CreateFn     func(ctx context.Context, p domain.Product) (domain.Product, error)
	GetByIDFn    func(ctx context.Context, id uuid.UUID) (domain.Product, error)
	ListFn       func(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	ToggleLikeFn func(ctx context.Context, productID, userID uuid.UUID) ([]uuid.UUID, error)
}

func (m *mockProductStore) Create(ctx context.Context, p domain.Product) (domain.Product, error) {
	return m.CreateFn(ctx, p)
}

func (m *mockProductStore) GetByID(ctx context.Context, id uuid.UUID) (domain.Product, error) {
	return m.GetByIDFn(ctx, id)
}

func (m *mockProductStore) List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	return m.ListFn(ctx, filter)
}

func (m *mockProductStore) ToggleLike(ctx context.Context, productID, userID uuid.UUID) ([]uuid.UUID, error) {
	return m.ToggleLikeFn(ctx, productID, userID)
}

type mockCartStore struct {
	GetByOwnerFn    func(ctx context.Context, userID uuid.UUID) (domain.Cart, error)
	UpsertByOwnerFn func(ctx context.Context, userID uuid.UUID) (domain.Cart, error)
	SaveFn          func(ctx context.Context, cart domain.Cart) (domain.Cart, error)
}

func (m *mockCartStore) GetByOwner(ctx context.Context, userID uuid.UUID) (domain.Cart, error) {
	return m.GetByOwnerFn(ctx, userID)
}

func (m *mockCartStore) UpsertByOwner(ctx context.Context, userID uuid.UUID) (domain.Cart, error) {
	return m.UpsertByOwnerFn(ctx, userID)
}

func (m *mockCartStore) Save(ctx context.Context, cart domain.Cart) (domain.Cart, error) {
	return m.SaveFn(ctx, cart)
}
