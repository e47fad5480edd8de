package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/raynerd/attire/internal/auth"
	"github.com/raynerd/attire/internal/domain"
	"github.com/raynerd/attire/internal/middleware"
)

// AuthHandler handles registration, login and logout.
type AuthHandler struct {
	users    domain.UserService
	tokens   *auth.TokenManager
	validate *validator.Validate
	logger   *slog.Logger

	// SecureCookies marks the auth cookie Secure; disabled for local
	// development over plain HTTP.
	SecureCookies bool
}

func NewAuthHandler(users domain.UserService, tokens *auth.TokenManager, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		users:    users,
		tokens:   tokens,
		validate: validator.New(),
		logger:   defaultLogger(logger),
	}
}

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Gender   string `json:"gender"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Gender    string    `json:"gender,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func toUserResponse(u domain.User) userResponse {
	return userResponse{
		ID:        u.ID.String(),
		Name:      u.Name,
		Email:     u.Email,
		Gender:    u.Gender,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

// Register handles POST /register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, h.validate, &req); err != nil {
		writeError(w, r, err)
		return
	}

	u, err := h.users.Register(r.Context(), domain.RegisterParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Gender:   req.Gender,
		Role:     domain.Role(req.Role),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.logger.Info("user registered", "user_id", u.ID, "email", u.Email)
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "User registered successfully",
		"user":    toUserResponse(u),
	})
}

// Login handles POST /login. On success the token is returned in the
// body and set as a cookie for browser clients.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, h.validate, &req); err != nil {
		writeError(w, r, err)
		return
	}

	u, err := h.users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	token, err := h.tokens.Issue(u)
	if err != nil {
		writeError(w, r, domain.Internal(err, "auth.login", "failed to issue token"))
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.SecureCookies,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(auth.DefaultTokenTTL / time.Second),
	})

	h.logger.Info("user logged in", "user_id", u.ID)
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Login successful",
		"token":   token,
		"user":    toUserResponse(u),
	})
}

// Logout handles POST /logout by expiring the auth cookie. Tokens are
// stateless; clients must also discard their copy.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.SecureCookies,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})

	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}
