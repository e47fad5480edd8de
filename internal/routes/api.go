// Package routes binds handlers to URL patterns. Route paths mirror the
// public API contract; handlers and middleware come in through Deps so
// the binding stays mechanical.
package routes

import (
	"net/http"

	"github.com/raynerd/attire/internal/domain"
	"github.com/raynerd/attire/internal/handler/api"
	"github.com/raynerd/attire/internal/middleware"
	"github.com/raynerd/attire/internal/router"
)

// Deps contains the handlers and per-route middleware for the API.
type Deps struct {
	Auth    *api.AuthHandler
	Product *api.ProductHandler
	Cart    *api.CartHandler
	Payment *api.PaymentHandler

	// StrictLimiter guards the credential endpoints.
	StrictLimiter router.Middleware

	// MetricsHandler serves GET /metrics.
	MetricsHandler http.Handler
}

// Register binds all API routes onto the router.
func Register(r *router.Router, deps Deps) {
	// Accounts. Registration and login carry a strict rate limit.
	r.Post("/register", deps.Auth.Register, deps.StrictLimiter)
	r.Post("/login", deps.Auth.Login, deps.StrictLimiter)
	r.Post("/logout", deps.Auth.Logout, middleware.RequireAuth)

	// Catalog. Browsing is public; creation is for admins, and likes
	// need a logged-in user.
	r.Get("/products", deps.Product.Query)
	r.Post("/create-product", deps.Product.Create,
		middleware.RequireRoles(domain.RoleAdmin, domain.RoleSuperAdmin))
	r.Put("/productlike/{id}", deps.Product.ToggleLike, middleware.RequireAuth)

	// Cart. Always the caller's own cart.
	authed := r.Group(middleware.RequireAuth)
	authed.Post("/add-cart", deps.Cart.Add)
	authed.Get("/cart", deps.Cart.View)
	authed.Delete("/remove-a-product", deps.Cart.Remove)
	authed.Post("/cart-decrease", deps.Cart.Decrease)
	authed.Delete("/clear-cart", deps.Cart.Clear)

	// Payments.
	authed.Post("/initiate-payment", deps.Payment.Initiate)
	authed.Get("/verify/{transactionId}", deps.Payment.Verify)

	// Operational endpoints.
	r.Get("/health", healthCheck)
	if deps.MetricsHandler != nil {
		r.Handle(http.MethodGet, "/metrics", deps.MetricsHandler)
	}
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
