package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/raynerd/attire/internal/domain"
)

// ProductService handles catalog creation, querying and likes.
type ProductService struct {
	store domain.ProductStore
	rules domain.CatalogRules
}

// Compile-time check that ProductService implements domain.ProductService.
var _ domain.ProductService = (*ProductService)(nil)

func NewProductService(store domain.ProductStore, rules domain.CatalogRules) *ProductService {
	return &ProductService{store: store, rules: rules}
}

// Create adds a product to the catalog. Only Admin and SuperAdmin
// identities may create products; category and brand must come from the
// configured value sets.
func (s *ProductService) Create(ctx context.Context, creator domain.Identity, params domain.CreateProductParams) (domain.Product, error) {
	const op = "product.create"

	if !creator.Role.CanCreateProducts() {
		return domain.Product{}, domain.ErrNotAuthorized
	}

	params.Name = strings.TrimSpace(params.Name)
	if params.Name == "" {
		return domain.Product{}, domain.Invalid(op, "Product name is required")
	}
	if params.Price.LessThan(decimal.Zero) {
		return domain.Product{}, domain.Invalid(op, "Price must not be negative")
	}
	if params.Stock < 0 {
		return domain.Product{}, domain.Invalid(op, "Stock must not be negative")
	}
	if !s.rules.AllowsCategory(params.Category) {
		return domain.Product{}, domain.Invalid(op, "Invalid category: "+params.Category)
	}
	if !s.rules.AllowsBrand(params.Brand) {
		return domain.Product{}, domain.Invalid(op, "Invalid brand: "+params.Brand)
	}

	return s.store.Create(ctx, domain.Product{
		Name:        params.Name,
		Description: params.Description,
		Price:       params.Price,
		Category:    params.Category,
		Brand:       params.Brand,
		Stock:       params.Stock,
		Image:       params.Image,
		CreatorID:   creator.UserID,
		Color:       params.Color,
		Tags:        params.Tags,
		Occasion:    params.Occasion,
	})
}

// Query returns products matching the filter. No matches is an empty
// slice, not an error.
func (s *ProductService) Query(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	return s.store.List(ctx, filter)
}

// ToggleLike flips the caller's membership in the product's liking set.
func (s *ProductService) ToggleLike(ctx context.Context, productID, userID uuid.UUID) ([]uuid.UUID, error) {
	return s.store.ToggleLike(ctx, productID, userID)
}
