package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/raynerd/attire/internal/domain"
)

// DefaultTokenTTL is how long an issued token remains valid.
const DefaultTokenTTL = 24 * time.Hour

// Claims is the signed payload carried by an identity token. The token is
// the full credential; there is no server-side session record behind it.
type Claims struct {
	Role  string `json:"role"`
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies HMAC-signed identity tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager creates a TokenManager. A zero ttl falls back to
// DefaultTokenTTL.
func NewTokenManager(secret string, ttl time.Duration) (*TokenManager, error) {
	if secret == "" {
		return nil, errors.New("token secret must not be empty")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// Issue signs a token for the user containing {id, role, email, name}.
func (tm *TokenManager) Issue(u domain.User) (string, error) {
	now := tm.now()
	claims := Claims{
		Role:  string(u.Role),
		Email: u.Email,
		Name:  u.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tm.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token, returning the identity it encodes.
// Expired, malformed, or foreign-signed tokens all fail verification.
func (tm *TokenManager) Verify(token string) (*domain.Identity, error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return tm.secret, nil
	}, jwt.WithTimeFunc(tm.now))
	if err != nil {
		return nil, domain.WrapError(err, domain.EUNAUTHORIZED, "auth.verify", "Invalid or expired token")
	}
	if !parsed.Valid {
		return nil, domain.Unauthorized("auth.verify", "Invalid or expired token")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, domain.WrapError(err, domain.EUNAUTHORIZED, "auth.verify", "Invalid token subject")
	}

	return &domain.Identity{
		UserID: userID,
		Role:   domain.Role(claims.Role),
		Email:  claims.Email,
		Name:   claims.Name,
	}, nil
}
