package api

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/raynerd/attire/internal/domain"
)

// CartHandler handles the per-user cart endpoints. All of them require
// an authenticated identity; the cart is always the caller's own.
type CartHandler struct {
	carts    domain.CartService
	validate *validator.Validate
	logger   *slog.Logger
}

func NewCartHandler(carts domain.CartService, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		carts:    carts,
		validate: validator.New(),
		logger:   defaultLogger(logger),
	}
}

type addCartRequest struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	Quantity  int32  `json:"quantity" validate:"required,gt=0"`
}

type cartProductRequest struct {
	ProductID string `json:"productId" validate:"required,uuid"`
}

type cartItemResponse struct {
	ProductID    string          `json:"productId"`
	ProductName  string          `json:"productName,omitempty"`
	ProductImage string          `json:"productImage,omitempty"`
	Quantity     int32           `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	Price        decimal.Decimal `json:"price"`
}

type cartResponse struct {
	ID         string             `json:"id"`
	UserID     string             `json:"userId"`
	Items      []cartItemResponse `json:"items"`
	TotalPrice decimal.Decimal    `json:"totalPrice"`
}

func toCartResponse(c domain.Cart) cartResponse {
	items := make([]cartItemResponse, len(c.Items))
	for i, item := range c.Items {
		items[i] = cartItemResponse{
			ProductID:    item.ProductID.String(),
			ProductName:  item.ProductName,
			ProductImage: item.ProductImage,
			Quantity:     item.Quantity,
			UnitPrice:    item.UnitPrice,
			Price:        item.Price,
		}
	}
	return cartResponse{
		ID:         c.ID.String(),
		UserID:     c.UserID.String(),
		Items:      items,
		TotalPrice: c.TotalPrice,
	}
}

// Add handles POST /add-cart.
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req addCartRequest
	if err := decodeJSON(r, h.validate, &req); err != nil {
		writeError(w, r, err)
		return
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		writeError(w, r, domain.Invalid("cart.add", "Invalid product id"))
		return
	}

	cart, err := h.carts.AddItem(r.Context(), identity.UserID, productID, req.Quantity)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Product added to cart",
		"cart":    toCartResponse(cart),
	})
}

// View handles GET /cart.
func (h *CartHandler) View(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	cart, err := h.carts.ViewCart(r.Context(), identity.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"cart": toCartResponse(cart)})
}

// Remove handles DELETE /remove-a-product, deleting the whole line.
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req cartProductRequest
	if err := decodeJSON(r, h.validate, &req); err != nil {
		writeError(w, r, err)
		return
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		writeError(w, r, domain.Invalid("cart.remove", "Invalid product id"))
		return
	}

	cart, err := h.carts.RemoveItem(r.Context(), identity.UserID, productID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Product removed from cart",
		"cart":    toCartResponse(cart),
	})
}

// Decrease handles POST /cart-decrease, lowering a line's quantity by
// one.
func (h *CartHandler) Decrease(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req cartProductRequest
	if err := decodeJSON(r, h.validate, &req); err != nil {
		writeError(w, r, err)
		return
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		writeError(w, r, domain.Invalid("cart.decrease", "Invalid product id"))
		return
	}

	cart, err := h.carts.DecreaseItem(r.Context(), identity.UserID, productID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Cart updated",
		"cart":    toCartResponse(cart),
	})
}

// Clear handles DELETE /clear-cart. The cart stays, emptied.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	cart, err := h.carts.ClearCart(r.Context(), identity.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Cart cleared",
		"cart":    toCartResponse(cart),
	})
}
