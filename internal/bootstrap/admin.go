// Package bootstrap handles one-time initialization tasks for the application.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/raynerd/attire/internal/auth"
	"github.com/raynerd/attire/internal/domain"
)

// AdminConfig contains configuration for the initial admin user.
type AdminConfig struct {
	Email    string
	Password string
	Name     string
}

// Validate checks that the admin configuration is valid.
func (c *AdminConfig) Validate() error {
	if c.Email == "" {
		return errors.New("admin email is required")
	}
	if c.Password == "" {
		return errors.New("admin password is required")
	}
	if len(c.Password) < 12 {
		return errors.New("admin password must be at least 12 characters")
	}
	return nil
}

// EnsureSuperAdmin creates the initial SuperAdmin account if it doesn't
// exist. Idempotent; safe to call on every startup. With no config it
// logs a warning and skips, which keeps dev setups working.
func EnsureSuperAdmin(ctx context.Context, store domain.UserStore, cfg *AdminConfig, logger *slog.Logger) error {
	if cfg == nil || cfg.Email == "" || cfg.Password == "" {
		logger.Warn("bootstrap: skipping admin creation - ATTIRE_ADMIN_EMAIL or ATTIRE_ADMIN_PASSWORD not set",
			"hint", "Set these environment variables to create an admin user on first startup",
		)
		return nil
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid admin configuration: %w", err)
	}

	if _, err := store.GetByEmail(ctx, cfg.Email); err == nil {
		logger.Info("bootstrap: admin user already exists", "email", cfg.Email)
		return nil
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return fmt.Errorf("failed to check for existing admin: %w", err)
	}

	hash, err := auth.HashPassword(cfg.Password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	name := cfg.Name
	if name == "" {
		name = "Store Admin"
	}

	u, err := store.Create(ctx, domain.User{
		Name:         name,
		Email:        cfg.Email,
		PasswordHash: hash,
		Role:         domain.RoleSuperAdmin,
	})
	if err != nil {
		// Concurrent startup may have just created it.
		if errors.Is(err, domain.ErrEmailTaken) {
			logger.Info("bootstrap: admin user already exists", "email", cfg.Email)
			return nil
		}
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	logger.Info("bootstrap: created admin user", "email", u.Email, "user_id", u.ID)
	return nil
}
