package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/raynerd/attire/internal/domain"
)

// ProductHandler handles catalog creation, querying and likes.
type ProductHandler struct {
	products domain.ProductService
	validate *validator.Validate
	logger   *slog.Logger
}

func NewProductHandler(products domain.ProductService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		products: products,
		validate: validator.New(),
		logger:   defaultLogger(logger),
	}
}

type createProductRequest struct {
	Name        string          `json:"name" validate:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" validate:"required"`
	Category    string          `json:"category" validate:"required"`
	Brand       string          `json:"brand" validate:"required"`
	Stock       int32           `json:"stock" validate:"gte=0"`
	Image       string          `json:"image"`
	Color       []string        `json:"color"`
	Tags        []string        `json:"tags"`
	Occasion    []string        `json:"occasion"`
}

type productResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Brand       string          `json:"brand"`
	Stock       int32           `json:"stock"`
	Image       string          `json:"image,omitempty"`
	CreatorID   string          `json:"creatorId"`
	Color       []string        `json:"color,omitempty"`
	Tags        []string        `json:"tags,omitempty"`
	Occasion    []string        `json:"occasion,omitempty"`
	Likes       []string        `json:"likes"`
	CreatedAt   time.Time       `json:"createdAt"`
}

func toProductResponse(p domain.Product) productResponse {
	return productResponse{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
		Brand:       p.Brand,
		Stock:       p.Stock,
		Image:       p.Image,
		CreatorID:   p.CreatorID.String(),
		Color:       p.Color,
		Tags:        p.Tags,
		Occasion:    p.Occasion,
		Likes:       uuidStrings(p.Likes),
		CreatedAt:   p.CreatedAt,
	}
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

// Create handles POST /create-product. Admin only; the role check lives
// in the service.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req createProductRequest
	if err := decodeJSON(r, h.validate, &req); err != nil {
		writeError(w, r, err)
		return
	}

	p, err := h.products.Create(r.Context(), *identity, domain.CreateProductParams{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Brand:       req.Brand,
		Stock:       req.Stock,
		Image:       req.Image,
		Color:       req.Color,
		Tags:        req.Tags,
		Occasion:    req.Occasion,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.logger.Info("product created", "product_id", p.ID, "creator_id", identity.UserID)
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Product created successfully",
		"product": toProductResponse(p),
	})
}

// Query handles GET /products with optional name, category, brand and
// price filters. Category and brand accept comma-separated lists; price
// is an exact value or an inclusive "min-max" range.
func (h *ProductHandler) Query(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	price, err := domain.ParsePriceFilter(q.Get("price"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	products, err := h.products.Query(r.Context(), domain.ProductFilter{
		Name:       q.Get("name"),
		Categories: domain.SplitFilterList(q.Get("category")),
		Brands:     domain.SplitFilterList(q.Get("brand")),
		Price:      price,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	data := make([]productResponse, len(products))
	for i, p := range products {
		data[i] = toProductResponse(p)
	}
	if len(data) == 0 {
		writeJSON(w, http.StatusOK, map[string]any{
			"message": "No products found",
			"data":    data,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": data})
}

// ToggleLike handles PUT /productlike/{id}. Liking twice unlikes.
func (h *ProductHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	productID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, r, domain.Invalid("product.like", "Invalid product id"))
		return
	}

	likes, err := h.products.ToggleLike(r.Context(), productID, identity.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Like updated",
		"likes":   uuidStrings(likes),
	})
}
