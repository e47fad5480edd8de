package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Role determines what a user is allowed to do.
// Admin and SuperAdmin may create catalog products; everyone else may not.
type Role string

const (
	RoleUser       Role = "User"
	RoleAdmin      Role = "Admin"
	RoleSuperAdmin Role = "SuperAdmin"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleUser, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// CanCreateProducts reports whether the role is allowed to create
// catalog products.
func (r Role) CanCreateProducts() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// User is a registered account. The password is stored only as a bcrypt
// hash; it never leaves the store layer in any other form.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	Gender       string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity is the authenticated caller resolved from a verified token.
// It is produced by the verification step and passed to handlers through
// the request context; nothing downstream re-parses the token.
type Identity struct {
	UserID uuid.UUID
	Role   Role
	Email  string
	Name   string
}

// UserStore persists user records.
type UserStore interface {
	Create(ctx context.Context, u User) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
}

// RegisterParams are the inputs for creating an account.
type RegisterParams struct {
	Name     string
	Email    string
	Password string
	Gender   string
	Role     Role
}

// UserService provides registration and credential verification.
type UserService interface {
	// Register creates a new account. Duplicate email is a conflict and
	// creates no record.
	Register(ctx context.Context, params RegisterParams) (User, error)

	// Authenticate verifies email/password and returns the user if valid.
	// Unknown email is ENOTFOUND; wrong password is EUNAUTHORIZED.
	Authenticate(ctx context.Context, email, password string) (User, error)
}

var (
	ErrUserNotFound = &Error{Code: ENOTFOUND, Message: "User not found"}
	ErrEmailTaken   = Conflict("", "User already exists")
	ErrBadPassword  = &Error{Code: EUNAUTHORIZED, Message: "Invalid credentials"}
)
