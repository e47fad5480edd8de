package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/raynerd/attire/internal/domain"
)

// CartStore implements domain.CartStore using PostgreSQL. A cart is one
// carts row plus its cart_items rows; Save replaces the lines wholesale
// inside a transaction.
type CartStore struct {
	pool *pgxpool.Pool
}

// Compile-time check that CartStore implements domain.CartStore.
var _ domain.CartStore = (*CartStore)(nil)

func NewCartStore(pool *pgxpool.Pool) *CartStore {
	return &CartStore{pool: pool}
}

func (s *CartStore) GetByOwner(ctx context.Context, userID uuid.UUID) (domain.Cart, error) {
	cart, err := s.getCartRow(ctx, userID)
	if err != nil {
		return domain.Cart{}, err
	}
	if err := s.loadItems(ctx, &cart); err != nil {
		return domain.Cart{}, err
	}
	return cart, nil
}

// UpsertByOwner finds the owner's cart, creating an empty one if absent.
// The ON CONFLICT no-op plus RETURNING makes find-or-create one statement.
func (s *CartStore) UpsertByOwner(ctx context.Context, userID uuid.UUID) (domain.Cart, error) {
	var (
		cart  domain.Cart
		total pgtype.Numeric
	)
	row := s.pool.QueryRow(ctx, `
		INSERT INTO carts (user_id)
		VALUES ($1)
		ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING id, user_id, total_price, created_at, updated_at`,
		userID,
	)
	if err := row.Scan(&cart.ID, &cart.UserID, &total, &cart.CreatedAt, &cart.UpdatedAt); err != nil {
		return domain.Cart{}, domain.Internal(err, "postgres.cart.upsert", "failed to upsert cart")
	}
	var err error
	if cart.TotalPrice, err = decimalFromNumeric(total); err != nil {
		return domain.Cart{}, domain.Internal(err, "postgres.cart.upsert", "failed to read cart total")
	}
	if err := s.loadItems(ctx, &cart); err != nil {
		return domain.Cart{}, err
	}
	return cart, nil
}

// Save replaces the cart's lines and total in a single transaction.
func (s *CartStore) Save(ctx context.Context, cart domain.Cart) (domain.Cart, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return domain.Cart{}, domain.Internal(err, "postgres.cart.save", "failed to begin transaction")
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cart.ID); err != nil {
		return domain.Cart{}, domain.Internal(err, "postgres.cart.save", "failed to clear cart lines")
	}

	// line_index preserves insertion order across the delete-and-rewrite,
	// since every rewritten row shares the transaction timestamp.
	for i, item := range cart.Items {
		_, err := tx.Exec(ctx, `
			INSERT INTO cart_items (cart_id, product_id, quantity, price, line_index)
			VALUES ($1, $2, $3, $4, $5)`,
			cart.ID, item.ProductID, item.Quantity, numericFromDecimal(item.Price), i,
		)
		if err != nil {
			return domain.Cart{}, domain.Internal(err, "postgres.cart.save", "failed to write cart line")
		}
	}

	row := tx.QueryRow(ctx, `
		UPDATE carts SET total_price = $2, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`,
		cart.ID, numericFromDecimal(cart.TotalPrice),
	)
	if err := row.Scan(&cart.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Cart{}, domain.ErrCartNotFound
		}
		return domain.Cart{}, domain.Internal(err, "postgres.cart.save", "failed to update cart total")
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Cart{}, domain.Internal(err, "postgres.cart.save", "failed to commit")
	}
	return cart, nil
}

func (s *CartStore) getCartRow(ctx context.Context, userID uuid.UUID) (domain.Cart, error) {
	var (
		cart  domain.Cart
		total pgtype.Numeric
	)
	row := s.pool.QueryRow(ctx, `
		SELECT id, user_id, total_price, created_at, updated_at
		FROM carts WHERE user_id = $1`, userID)
	if err := row.Scan(&cart.ID, &cart.UserID, &total, &cart.CreatedAt, &cart.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Cart{}, domain.ErrCartNotFound
		}
		return domain.Cart{}, domain.Internal(err, "postgres.cart.get", "failed to load cart")
	}
	var err error
	if cart.TotalPrice, err = decimalFromNumeric(total); err != nil {
		return domain.Cart{}, domain.Internal(err, "postgres.cart.get", "failed to read cart total")
	}
	return cart, nil
}

// loadItems fills the cart's lines, resolving current product name, image
// and unit price onto each line for display.
func (s *CartStore) loadItems(ctx context.Context, cart *domain.Cart) error {
	rows, err := s.pool.Query(ctx, `
		SELECT ci.product_id, ci.quantity, ci.price, p.name, p.image, p.price
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.cart_id = $1
		ORDER BY ci.line_index`,
		cart.ID,
	)
	if err != nil {
		return domain.Internal(err, "postgres.cart.items", "failed to query cart lines")
	}
	defer rows.Close()

	cart.Items = []domain.CartItem{}
	for rows.Next() {
		var (
			item        domain.CartItem
			price, unit pgtype.Numeric
		)
		if err := rows.Scan(&item.ProductID, &item.Quantity, &price, &item.ProductName, &item.ProductImage, &unit); err != nil {
			return domain.Internal(err, "postgres.cart.items", "failed to scan cart line")
		}
		if item.Price, err = decimalFromNumeric(price); err != nil {
			return domain.Internal(err, "postgres.cart.items", "failed to read line price")
		}
		if item.UnitPrice, err = decimalFromNumeric(unit); err != nil {
			return domain.Internal(err, "postgres.cart.items", "failed to read unit price")
		}
		cart.Items = append(cart.Items, item)
	}
	if err := rows.Err(); err != nil {
		return domain.Internal(err, "postgres.cart.items", "failed to read cart lines")
	}
	return nil
}
