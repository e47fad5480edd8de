package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// CART AGGREGATE
// =============================================================================

// Cart is the single per-user aggregate holding all cart lines, in
// insertion order, and the derived total. At most one cart exists per
// user; it is created lazily on the first add and emptied, not deleted,
// on clear.
//
// Invariant, restored after every mutation: TotalPrice equals the sum of
// all line prices, and each line price equals quantity times the unit
// price captured at the last mutation touching that line.
type Cart struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Items      []CartItem
	TotalPrice decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CartItem is one product-quantity-price line within a cart. It is owned
// exclusively by its parent cart. The Product* fields are a read-time
// resolution of catalog details and are not persisted on the line.
type CartItem struct {
	ProductID uuid.UUID
	Quantity  int32
	Price     decimal.Decimal

	ProductName  string
	ProductImage string
	UnitPrice    decimal.Decimal
}

// findItem returns the index of the line for productID, or -1.
func (c *Cart) findItem(productID uuid.UUID) int {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// recomputeTotal restores the total-price invariant. Called after every
// mutation; the total is never taken from a client.
func (c *Cart) recomputeTotal() {
	total := decimal.Zero
	for i := range c.Items {
		total = total.Add(c.Items[i].Price)
	}
	c.TotalPrice = total
}

// AddItem adds quantity units of the product, accumulating onto the
// existing line if one is present rather than creating a duplicate. The
// line price is recomputed from the product's current unit price.
func (c *Cart) AddItem(p Product, quantity int32) {
	if i := c.findItem(p.ID); i >= 0 {
		c.Items[i].Quantity += quantity
		c.Items[i].Price = p.Price.Mul(decimal.NewFromInt(int64(c.Items[i].Quantity)))
	} else {
		c.Items = append(c.Items, CartItem{
			ProductID: p.ID,
			Quantity:  quantity,
			Price:     p.Price.Mul(decimal.NewFromInt(int64(quantity))),
		})
	}
	c.recomputeTotal()
}

// RemoveItem deletes the line for productID entirely.
// Returns false if no such line exists.
func (c *Cart) RemoveItem(productID uuid.UUID) bool {
	i := c.findItem(productID)
	if i < 0 {
		return false
	}
	c.Items = append(c.Items[:i], c.Items[i+1:]...)
	c.recomputeTotal()
	return true
}

// DecreaseItem lowers the line's quantity by one, repricing it at the
// given current unit price. A line at quantity 1 is removed entirely.
// Returns false if no such line exists.
func (c *Cart) DecreaseItem(productID uuid.UUID, unitPrice decimal.Decimal) bool {
	i := c.findItem(productID)
	if i < 0 {
		return false
	}

	if c.Items[i].Quantity > 1 {
		c.Items[i].Quantity--
		c.Items[i].Price = unitPrice.Mul(decimal.NewFromInt(int64(c.Items[i].Quantity)))
	} else {
		c.Items = append(c.Items[:i], c.Items[i+1:]...)
	}
	c.recomputeTotal()
	return true
}

// Clear empties the cart without deleting it.
func (c *Cart) Clear() {
	c.Items = []CartItem{}
	c.TotalPrice = decimal.Zero
}

// CartStore persists cart aggregates.
type CartStore interface {
	// GetByOwner loads the cart for userID with its lines, resolving
	// current product details onto each line. ErrCartNotFound if absent.
	GetByOwner(ctx context.Context, userID uuid.UUID) (Cart, error)

	// UpsertByOwner loads the cart for userID, creating an empty one if
	// none exists yet. The find-or-create is a single storage operation.
	UpsertByOwner(ctx context.Context, userID uuid.UUID) (Cart, error)

	// Save replaces the cart's lines and total.
	//
	// Save is not guarded against a concurrent Save of the same cart:
	// two overlapping read-modify-write sequences can lose one update.
	// The source system behaves the same way and whether that is
	// acceptable is an open question; do not add locking here silently.
	Save(ctx context.Context, cart Cart) (Cart, error)
}

// CartService provides the cart mutation contract. Every mutation loads
// the aggregate, applies exactly one change, recomputes the total
// server-side, persists, and returns the updated aggregate.
type CartService interface {
	// AddItem adds quantity units of a product. The product must exist
	// and have at least quantity units of stock.
	AddItem(ctx context.Context, ownerID, productID uuid.UUID, quantity int32) (Cart, error)

	// ViewCart returns the cart with product details resolved.
	ViewCart(ctx context.Context, ownerID uuid.UUID) (Cart, error)

	// RemoveItem deletes a line entirely.
	RemoveItem(ctx context.Context, ownerID, productID uuid.UUID) (Cart, error)

	// DecreaseItem lowers a line's quantity by one, removing the line
	// when the quantity would drop to zero.
	DecreaseItem(ctx context.Context, ownerID, productID uuid.UUID) (Cart, error)

	// ClearCart empties the cart, leaving it in place with a zero total.
	ClearCart(ctx context.Context, ownerID uuid.UUID) (Cart, error)
}

var (
	ErrCartNotFound      = &Error{Code: ENOTFOUND, Message: "Cart not found"}
	ErrCartItemNotFound  = &Error{Code: ENOTFOUND, Message: "Product not found in cart"}
	ErrInvalidQuantity   = &Error{Code: EINVALID, Message: "Quantity must be greater than 0"}
	ErrInsufficientStock = Conflict("", "Not enough stock available")
)
