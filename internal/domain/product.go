package domain

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// CATALOG DOMAIN TYPES
// =============================================================================

// Product is a catalog entry. Price and stock are read, never written, by
// the cart flows; cart line prices are computed from the current price at
// mutation time.
type Product struct {
	ID          uuid.UUID
	Name        string
	Description string
	Price       decimal.Decimal
	Category    string
	Brand       string
	Stock       int32
	Image       string
	CreatorID   uuid.UUID
	Color       []string
	Tags        []string
	Occasion    []string
	Likes       []uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CatalogRules holds the permitted category and brand value sets.
// These changed across revisions of the source system, so they are
// configuration data rather than hard-coded enumerations.
type CatalogRules struct {
	Categories []string
	Brands     []string
}

// AllowsCategory reports whether c is a permitted category.
// An empty rule set permits everything.
func (r CatalogRules) AllowsCategory(c string) bool {
	return len(r.Categories) == 0 || slices.Contains(r.Categories, c)
}

// AllowsBrand reports whether b is a permitted brand.
func (r CatalogRules) AllowsBrand(b string) bool {
	return len(r.Brands) == 0 || slices.Contains(r.Brands, b)
}

// PriceFilter matches either an exact price or an inclusive range.
type PriceFilter struct {
	Exact *decimal.Decimal
	Min   *decimal.Decimal
	Max   *decimal.Decimal
}

// ParsePriceFilter parses the price query parameter: either a single
// value ("25") or an inclusive range ("10-50").
func ParsePriceFilter(s string) (*PriceFilter, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	if lo, hi, ok := strings.Cut(s, "-"); ok {
		min, err := decimal.NewFromString(strings.TrimSpace(lo))
		if err != nil {
			return nil, Invalid("product.filter", "invalid price range lower bound: "+lo)
		}
		max, err := decimal.NewFromString(strings.TrimSpace(hi))
		if err != nil {
			return nil, Invalid("product.filter", "invalid price range upper bound: "+hi)
		}
		return &PriceFilter{Min: &min, Max: &max}, nil
	}

	exact, err := decimal.NewFromString(s)
	if err != nil {
		return nil, Invalid("product.filter", "invalid price: "+s)
	}
	return &PriceFilter{Exact: &exact}, nil
}

// ProductFilter is the optional query over the catalog. Name matches as a
// case-insensitive substring; Categories and Brands are acceptance sets.
type ProductFilter struct {
	Name       string
	Categories []string
	Brands     []string
	Price      *PriceFilter
}

// SplitFilterList splits a comma-separated query value into trimmed,
// non-empty elements.
func SplitFilterList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// CreateProductParams are the inputs for creating a catalog product.
type CreateProductParams struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Category    string
	Brand       string
	Stock       int32
	Image       string
	Color       []string
	Tags        []string
	Occasion    []string
}

// ProductStore persists catalog records.
type ProductStore interface {
	Create(ctx context.Context, p Product) (Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (Product, error)
	List(ctx context.Context, filter ProductFilter) ([]Product, error)

	// ToggleLike adds the user to the product's liking set if absent,
	// removes them if present, and returns the updated set.
	ToggleLike(ctx context.Context, productID, userID uuid.UUID) ([]uuid.UUID, error)
}

// ProductService provides catalog business logic.
type ProductService interface {
	// Create adds a product. Only Admin and SuperAdmin identities may
	// create products.
	Create(ctx context.Context, creator Identity, params CreateProductParams) (Product, error)

	// Query returns products matching the filter. An empty result is not
	// an error.
	Query(ctx context.Context, filter ProductFilter) ([]Product, error)

	// ToggleLike toggles the caller in the product's liking set.
	ToggleLike(ctx context.Context, productID, userID uuid.UUID) ([]uuid.UUID, error)
}

var (
	ErrProductNotFound = &Error{Code: ENOTFOUND, Message: "Product not found"}
	ErrNotAuthorized   = &Error{Code: EFORBIDDEN, Message: "Access denied: You are not authorized to create products"}
)
