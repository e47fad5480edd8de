package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/raynerd/attire/internal/domain"
)

// UserStore implements domain.UserStore using PostgreSQL.
type UserStore struct {
	pool *pgxpool.Pool
}

// Compile-time check that UserStore implements domain.UserStore.
var _ domain.UserStore = (*UserStore)(nil)

func NewUserStore(pool *pgxpool.Pool) *UserStore {
	return &UserStore{pool: pool}
}

const uniqueViolation = "23505"

// Create inserts a new user. A duplicate email surfaces as ErrEmailTaken.
func (s *UserStore) Create(ctx context.Context, u domain.User) (domain.User, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO users (name, email, password_hash, gender, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`,
		u.Name, u.Email, u.PasswordHash, u.Gender, u.Role,
	)

	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.User{}, domain.ErrEmailTaken
		}
		return domain.User{}, domain.Internal(err, "postgres.user.create", "failed to create user")
	}
	return u, nil
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return s.getUser(ctx, `
		SELECT id, name, email, password_hash, gender, role, created_at, updated_at
		FROM users WHERE email = $1`, email)
}

func (s *UserStore) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	return s.getUser(ctx, `
		SELECT id, name, email, password_hash, gender, role, created_at, updated_at
		FROM users WHERE id = $1`, id)
}

func (s *UserStore) getUser(ctx context.Context, query string, arg any) (domain.User, error) {
	var u domain.User
	row := s.pool.QueryRow(ctx, query, arg)
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Gender, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, domain.Internal(err, "postgres.user.get", "failed to load user")
	}
	return u, nil
}
