package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raynerd/attire/internal/auth"
	"github.com/raynerd/attire/internal/domain"
)

func TestUserService_Register(t *testing.T) {
	t.Run("creates user with hashed password and default role", func(t *testing.T) {
		var created domain.User
		store := &mockUserStore{
			GetByEmailFn: func(ctx context.Context, email string) (domain.User, error) {
				return domain.User{}, domain.ErrUserNotFound
			},
			CreateFn: func(ctx context.Context, u domain.User) (domain.User, error) {
				created = u
				return u, nil
			},
		}
		svc := NewUserService(store)

		u, err := svc.Register(context.Background(), domain.RegisterParams{
			Name:     "Ada Lovelace",
			Email:    "Ada@Example.com",
			Password: "correct horse",
			Gender:   "female",
		})
		require.NoError(t, err)

		assert.Equal(t, "ada@example.com", created.Email)
		assert.Equal(t, domain.RoleUser, created.Role)
		assert.NotEqual(t, "correct horse", created.PasswordHash)
		assert.NoError(t, auth.VerifyPassword("correct horse", created.PasswordHash))
		assert.Equal(t, created.Email, u.Email)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		store := &mockUserStore{
			GetByEmailFn: func(ctx context.Context, email string) (domain.User, error) {
				return domain.User{Email: email}, nil
			},
		}
		svc := NewUserService(store)

		_, err := svc.Register(context.Background(), domain.RegisterParams{
			Name:     "Dup",
			Email:    "dup@example.com",
			Password: "longenough",
		})
		assert.Equal(t, domain.ECONFLICT, domain.ErrorCode(err))
	})

	t.Run("rejects short password", func(t *testing.T) {
		svc := NewUserService(&mockUserStore{})

		_, err := svc.Register(context.Background(), domain.RegisterParams{
			Name:     "Shorty",
			Email:    "shorty@example.com",
			Password: "short",
		})
		assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
	})

	t.Run("rejects bad email and missing name", func(t *testing.T) {
		svc := NewUserService(&mockUserStore{})

		_, err := svc.Register(context.Background(), domain.RegisterParams{
			Name:     "No Email",
			Email:    "not-an-email",
			Password: "longenough",
		})
		assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))

		_, err = svc.Register(context.Background(), domain.RegisterParams{
			Email:    "fine@example.com",
			Password: "longenough",
		})
		assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		svc := NewUserService(&mockUserStore{})

		_, err := svc.Register(context.Background(), domain.RegisterParams{
			Name:     "Roleless",
			Email:    "role@example.com",
			Password: "longenough",
			Role:     "Overlord",
		})
		assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
	})

	t.Run("accepts explicit admin role", func(t *testing.T) {
		store := &mockUserStore{
			GetByEmailFn: func(ctx context.Context, email string) (domain.User, error) {
				return domain.User{}, domain.ErrUserNotFound
			},
			CreateFn: func(ctx context.Context, u domain.User) (domain.User, error) {
				return u, nil
			},
		}
		svc := NewUserService(store)

		u, err := svc.Register(context.Background(), domain.RegisterParams{
			Name:     "Boss",
			Email:    "boss@example.com",
			Password: "longenough",
			Role:     domain.RoleAdmin,
		})
		require.NoError(t, err)
		assert.Equal(t, domain.RoleAdmin, u.Role)
	})
}

func TestUserService_Authenticate(t *testing.T) {
	hash, err := auth.HashPassword("opensesame")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	store := &mockUserStore{
		GetByEmailFn: func(ctx context.Context, email string) (domain.User, error) {
			if email == "known@example.com" {
				return domain.User{Email: email, PasswordHash: hash}, nil
			}
			return domain.User{}, domain.ErrUserNotFound
		},
	}
	svc := NewUserService(store)

	t.Run("valid credentials", func(t *testing.T) {
		u, err := svc.Authenticate(context.Background(), "Known@Example.com", "opensesame")
		require.NoError(t, err)
		assert.Equal(t, "known@example.com", u.Email)
	})

	t.Run("unknown email reports not found", func(t *testing.T) {
		_, err := svc.Authenticate(context.Background(), "nobody@example.com", "opensesame")
		assert.Equal(t, domain.ENOTFOUND, domain.ErrorCode(err))
	})

	t.Run("wrong password reports unauthorized", func(t *testing.T) {
		_, err := svc.Authenticate(context.Background(), "known@example.com", "wrong")
		assert.Equal(t, domain.EUNAUTHORIZED, domain.ErrorCode(err))
	})
}
