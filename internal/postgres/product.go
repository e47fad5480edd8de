package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/raynerd/attire/internal/domain"
)

// ProductStore implements domain.ProductStore using PostgreSQL. Likes live
// in a separate product_likes table and are folded into the product rows
// on read.
type ProductStore struct {
	pool *pgxpool.Pool
}

// Compile-time check that ProductStore implements domain.ProductStore.
var _ domain.ProductStore = (*ProductStore)(nil)

func NewProductStore(pool *pgxpool.Pool) *ProductStore {
	return &ProductStore{pool: pool}
}

const productColumns = `
	p.id, p.name, p.description, p.price, p.category, p.brand, p.stock,
	p.image, p.creator_id, p.color, p.tags, p.occasion,
	p.created_at, p.updated_at,
	COALESCE(ARRAY(SELECT l.user_id FROM product_likes l WHERE l.product_id = p.id ORDER BY l.created_at), '{}') AS likes`

func (s *ProductStore) Create(ctx context.Context, p domain.Product) (domain.Product, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO products (name, description, price, category, brand, stock, image, creator_id, color, tags, occasion)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at`,
		p.Name, p.Description, numericFromDecimal(p.Price), p.Category, p.Brand,
		p.Stock, p.Image, p.CreatorID, p.Color, p.Tags, p.Occasion,
	)

	if err := row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return domain.Product{}, domain.Internal(err, "postgres.product.create", "failed to create product")
	}
	p.Likes = []uuid.UUID{}
	return p, nil
}

func (s *ProductStore) GetByID(ctx context.Context, id uuid.UUID) (domain.Product, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+productColumns+` FROM products p WHERE p.id = $1`, id)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Product{}, domain.ErrProductNotFound
		}
		return domain.Product{}, domain.Internal(err, "postgres.product.get", "failed to load product")
	}
	return p, nil
}

// List returns products matching the filter, newest first. The WHERE clause
// is assembled from the optional filter parts.
func (s *ProductStore) List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Name != "" {
		conds = append(conds, "p.name ILIKE "+arg("%"+filter.Name+"%"))
	}
	if len(filter.Categories) > 0 {
		conds = append(conds, "p.category = ANY("+arg(filter.Categories)+")")
	}
	if len(filter.Brands) > 0 {
		conds = append(conds, "p.brand = ANY("+arg(filter.Brands)+")")
	}
	if pf := filter.Price; pf != nil {
		switch {
		case pf.Exact != nil:
			conds = append(conds, "p.price = "+arg(numericFromDecimal(*pf.Exact)))
		default:
			if pf.Min != nil {
				conds = append(conds, "p.price >= "+arg(numericFromDecimal(*pf.Min)))
			}
			if pf.Max != nil {
				conds = append(conds, "p.price <= "+arg(numericFromDecimal(*pf.Max)))
			}
		}
	}

	query := `SELECT ` + productColumns + ` FROM products p`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY p.created_at DESC"

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, domain.Internal(err, "postgres.product.list", "failed to query products")
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, domain.Internal(err, "postgres.product.list", "failed to scan product")
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Internal(err, "postgres.product.list", "failed to read products")
	}
	return products, nil
}

// ToggleLike flips the (product, user) row in product_likes and returns the
// product's updated liking set.
func (s *ProductStore) ToggleLike(ctx context.Context, productID, userID uuid.UUID) ([]uuid.UUID, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, domain.Internal(err, "postgres.product.like", "failed to begin transaction")
	}
	defer tx.Rollback(ctx)

	var exists bool
	err = tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM products WHERE id = $1)`, productID).Scan(&exists)
	if err != nil {
		return nil, domain.Internal(err, "postgres.product.like", "failed to check product")
	}
	if !exists {
		return nil, domain.ErrProductNotFound
	}

	tag, err := tx.Exec(ctx, `DELETE FROM product_likes WHERE product_id = $1 AND user_id = $2`, productID, userID)
	if err != nil {
		return nil, domain.Internal(err, "postgres.product.like", "failed to remove like")
	}
	if tag.RowsAffected() == 0 {
		if _, err := tx.Exec(ctx, `INSERT INTO product_likes (product_id, user_id) VALUES ($1, $2)`, productID, userID); err != nil {
			return nil, domain.Internal(err, "postgres.product.like", "failed to add like")
		}
	}

	rows, err := tx.Query(ctx, `SELECT user_id FROM product_likes WHERE product_id = $1 ORDER BY created_at`, productID)
	if err != nil {
		return nil, domain.Internal(err, "postgres.product.like", "failed to read likes")
	}
	likes, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, domain.Internal(err, "postgres.product.like", "failed to scan likes")
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, domain.Internal(err, "postgres.product.like", "failed to commit")
	}
	return likes, nil
}

func scanProduct(row pgx.Row) (domain.Product, error) {
	var (
		p     domain.Product
		price pgtype.Numeric
	)
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &price, &p.Category, &p.Brand, &p.Stock,
		&p.Image, &p.CreatorID, &p.Color, &p.Tags, &p.Occasion,
		&p.CreatedAt, &p.UpdatedAt, &p.Likes,
	)
	if err != nil {
		return domain.Product{}, err
	}
	if p.Price, err = decimalFromNumeric(price); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}
