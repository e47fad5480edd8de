// Package api contains the JSON HTTP handlers. Handlers decode and
// validate requests, call services, and translate domain errors to HTTP;
// business rules live in the services.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/raynerd/attire/internal/domain"
	"github.com/raynerd/attire/internal/middleware"
	"github.com/raynerd/attire/internal/payment"
)

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

// writeError translates err to an HTTP status and writes the error
// envelope. Gateway rejections keep the gateway's own HTTP status so the
// client sees the processor's verdict unchanged.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := middleware.ErrorCodeToHTTPStatus(domain.ErrorCode(err))
	message := domain.ErrorMessage(err)

	var ge *payment.GatewayError
	if errors.As(err, &ge) {
		if ge.HTTPStatus >= 400 {
			status = ge.HTTPStatus
		} else {
			// The gateway answered 2xx but refused the transaction.
			status = http.StatusBadRequest
		}
		message = ge.Message
	}

	logger := middleware.GetLogger(r.Context())
	attrs := []any{
		"error", err.Error(),
		"code", domain.ErrorCode(err),
		"status", status,
	}
	if status >= 500 {
		logger.Error("request failed", attrs...)
	} else {
		logger.Info("request rejected", attrs...)
	}

	writeJSON(w, status, map[string]string{"message": message})
}

// decodeJSON decodes the request body into dst and runs struct
// validation. Returns a domain EINVALID error on failure.
func decodeJSON(r *http.Request, validate *validator.Validate, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return domain.Invalid("api.decode", "Invalid request body")
	}
	if err := validate.Struct(dst); err != nil {
		return domain.Invalid("api.validate", validationMessage(err))
	}
	return nil
}

// validationMessage flattens validator errors into one readable line.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "Invalid request body"
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fe.Field()+" is required")
		case "email":
			msgs = append(msgs, fe.Field()+" must be a valid email")
		case "min":
			msgs = append(msgs, fe.Field()+" must be at least "+fe.Param())
		case "gt":
			msgs = append(msgs, fe.Field()+" must be greater than "+fe.Param())
		default:
			msgs = append(msgs, fe.Field()+" is invalid")
		}
	}
	return strings.Join(msgs, "; ")
}

// requireIdentity returns the authenticated identity or writes a 401.
// Routes behind RequireAuth always have one; this is the belt for a
// misregistered route.
func requireIdentity(w http.ResponseWriter, r *http.Request) (*domain.Identity, bool) {
	identity := domain.IdentityFromContext(r.Context())
	if identity == nil {
		writeError(w, r, domain.Unauthorized("", "Authentication required"))
		return nil, false
	}
	return identity, true
}

func defaultLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
