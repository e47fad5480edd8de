package domain

import (
	"errors"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name: "message only",
			err: &Error{
				Code:    EINVALID,
				Message: "invalid input",
			},
			expected: "invalid input",
		},
		{
			name: "with operation",
			err: &Error{
				Code:    EINVALID,
				Op:      "product.create",
				Message: "invalid input",
			},
			expected: "product.create: invalid input",
		},
		{
			name: "with wrapped error",
			err: &Error{
				Code:    EINTERNAL,
				Op:      "product.create",
				Message: "failed to save",
				Err:     errors.New("database connection failed"),
			},
			expected: "product.create: failed to save: database connection failed",
		},
		{
			name: "wrapped error without op",
			err: &Error{
				Code:    EINTERNAL,
				Message: "failed to save",
				Err:     errors.New("database connection failed"),
			},
			expected: "failed to save: database connection failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error.Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	underlying := errors.New("underlying error")
	err := &Error{
		Code:    EINTERNAL,
		Message: "wrapped",
		Err:     underlying,
	}

	if unwrapped := err.Unwrap(); unwrapped != underlying {
		t.Errorf("Error.Unwrap() = %v, want %v", unwrapped, underlying)
	}

	if !errors.Is(err, underlying) {
		t.Error("errors.Is should find underlying error")
	}
}

func TestErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "nil error", err: nil, expected: ""},
		{name: "domain error", err: Conflict("user.register", "taken"), expected: ECONFLICT},
		{name: "wrapped domain error", err: WrapError(ErrCartNotFound, ENOTFOUND, "cart.view", "no cart"), expected: ENOTFOUND},
		{name: "plain error", err: errors.New("boom"), expected: EINTERNAL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ErrorCode(tt.err); got != tt.expected {
				t.Errorf("ErrorCode() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestErrorMessage(t *testing.T) {
	if got := ErrorMessage(Invalid("cart.add", "Quantity must be greater than 0")); got != "Quantity must be greater than 0" {
		t.Errorf("ErrorMessage() = %q", got)
	}

	// Internal details must not leak to users.
	internal := Internal(errors.New("pq: connection refused"), "cart.save", "failed to save cart")
	if got := ErrorMessage(internal); got != "An internal error occurred. Please try again later." {
		t.Errorf("ErrorMessage() leaked internal detail: %q", got)
	}

	if got := ErrorMessage(errors.New("raw")); got != "An internal error occurred. Please try again later." {
		t.Errorf("ErrorMessage() leaked unknown error detail: %q", got)
	}
}

func TestWrapError_NilPassthrough(t *testing.T) {
	if err := WrapError(nil, EINTERNAL, "op", "msg"); err != nil {
		t.Errorf("WrapError(nil) = %v, want nil", err)
	}
}

func TestIsCode(t *testing.T) {
	if !IsCode(ErrInsufficientStock, ECONFLICT) {
		t.Error("expected insufficient stock to be a conflict")
	}
	if IsCode(ErrInsufficientStock, ENOTFOUND) {
		t.Error("insufficient stock is not a not-found error")
	}
}
