package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/raynerd/attire/internal/domain"
)

// CartService orchestrates cart mutations: load the aggregate, apply one
// change, let the aggregate recompute its total, persist, return.
type CartService struct {
	carts    domain.CartStore
	products domain.ProductStore
}

// Compile-time check that CartService implements domain.CartService.
var _ domain.CartService = (*CartService)(nil)

func NewCartService(carts domain.CartStore, products domain.ProductStore) *CartService {
	return &CartService{carts: carts, products: products}
}

// AddItem adds quantity units of a product to the owner's cart, creating
// the cart if this is the owner's first add. The product must have at
// least quantity units of stock.
func (s *CartService) AddItem(ctx context.Context, ownerID, productID uuid.UUID, quantity int32) (domain.Cart, error) {
	if quantity <= 0 {
		return domain.Cart{}, domain.ErrInvalidQuantity
	}

	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return domain.Cart{}, err
	}
	if p.Stock < quantity {
		return domain.Cart{}, domain.ErrInsufficientStock
	}

	cart, err := s.carts.UpsertByOwner(ctx, ownerID)
	if err != nil {
		return domain.Cart{}, err
	}

	cart.AddItem(p, quantity)
	return s.carts.Save(ctx, cart)
}

// ViewCart returns the owner's cart with product details resolved.
func (s *CartService) ViewCart(ctx context.Context, ownerID uuid.UUID) (domain.Cart, error) {
	return s.carts.GetByOwner(ctx, ownerID)
}

// RemoveItem deletes the product's line from the cart entirely.
func (s *CartService) RemoveItem(ctx context.Context, ownerID, productID uuid.UUID) (domain.Cart, error) {
	cart, err := s.carts.GetByOwner(ctx, ownerID)
	if err != nil {
		return domain.Cart{}, err
	}

	if !cart.RemoveItem(productID) {
		return domain.Cart{}, domain.ErrCartItemNotFound
	}
	return s.carts.Save(ctx, cart)
}

// DecreaseItem lowers the product's line quantity by one, repricing the
// line at the product's current price. A line at quantity one is removed.
func (s *CartService) DecreaseItem(ctx context.Context, ownerID, productID uuid.UUID) (domain.Cart, error) {
	cart, err := s.carts.GetByOwner(ctx, ownerID)
	if err != nil {
		return domain.Cart{}, err
	}

	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return domain.Cart{}, err
	}

	if !cart.DecreaseItem(productID, p.Price) {
		return domain.Cart{}, domain.ErrCartItemNotFound
	}
	return s.carts.Save(ctx, cart)
}

// ClearCart empties the owner's cart, leaving it in place with a zero
// total.
func (s *CartService) ClearCart(ctx context.Context, ownerID uuid.UUID) (domain.Cart, error) {
	cart, err := s.carts.GetByOwner(ctx, ownerID)
	if err != nil {
		return domain.Cart{}, err
	}

	cart.Clear()
	return s.carts.Save(ctx, cart)
}
