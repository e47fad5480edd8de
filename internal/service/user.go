// Package service implements the business logic behind the HTTP API.
// Services validate inputs, enforce policy, and return domain errors;
// they never touch HTTP.
package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"github.com/raynerd/attire/internal/auth"
	"github.com/raynerd/attire/internal/domain"
)

// UserService handles account registration and credential checks.
type UserService struct {
	store domain.UserStore
}

// Compile-time check that UserService implements domain.UserService.
var _ domain.UserService = (*UserService)(nil)

func NewUserService(store domain.UserStore) *UserService {
	return &UserService{store: store}
}

// Register creates a new account. The email must be unused; the password
// is hashed before it ever reaches storage. An omitted role defaults to
// the ordinary customer role.
func (s *UserService) Register(ctx context.Context, params domain.RegisterParams) (domain.User, error) {
	const op = "user.register"

	params.Name = strings.TrimSpace(params.Name)
	params.Email = strings.TrimSpace(strings.ToLower(params.Email))

	if params.Name == "" {
		return domain.User{}, domain.Invalid(op, "Name is required")
	}
	if _, err := mail.ParseAddress(params.Email); err != nil {
		return domain.User{}, domain.Invalid(op, "A valid email is required")
	}
	if params.Role == "" {
		params.Role = domain.RoleUser
	}
	if !domain.ValidRole(params.Role) {
		return domain.User{}, domain.Invalid(op, "Invalid role")
	}

	hash, err := auth.HashPassword(params.Password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooShort) {
			return domain.User{}, domain.Invalid(op, "Password must be at least 8 characters")
		}
		return domain.User{}, domain.Internal(err, op, "failed to hash password")
	}

	// The unique constraint is the real guard; this check just produces a
	// friendly error without burning a failed insert in the common case.
	if _, err := s.store.GetByEmail(ctx, params.Email); err == nil {
		return domain.User{}, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return domain.User{}, err
	}

	return s.store.Create(ctx, domain.User{
		Name:         params.Name,
		Email:        params.Email,
		PasswordHash: hash,
		Gender:       params.Gender,
		Role:         params.Role,
	})
}

// Authenticate verifies an email/password pair. An unknown email reports
// the user as not found; a wrong password reports invalid credentials.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (domain.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	u, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		return domain.User{}, err
	}

	if err := auth.VerifyPassword(password, u.PasswordHash); err != nil {
		return domain.User{}, domain.ErrBadPassword
	}
	return u, nil
}
