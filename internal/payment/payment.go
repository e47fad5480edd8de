// Package payment integrates the external payment processor. The server
// never moves money itself: it asks the processor for a hosted checkout
// link and later asks it for a transaction's verdict, relaying both to
// the client.
package payment

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/raynerd/attire/internal/domain"
)

// InitiateParams describe one checkout to hand off to the processor.
// Address, Country and Zip travel as gateway metadata.
type InitiateParams struct {
	TxRef       string
	Amount      decimal.Decimal
	Currency    string
	RedirectURL string
	Email       string
	Name        string
	PhoneNumber string
	Address     string
	Country     string
	Zip         string
}

// Checkout is the processor's answer to an initiation: a hosted page the
// customer must be sent to.
type Checkout struct {
	Status  string
	Message string
	Link    string
}

// Verification is the processor's verdict on a transaction.
type Verification struct {
	Status   string
	Message  string
	TxStatus string
	TxRef    string
	Amount   decimal.Decimal
	Currency string
}

// Provider is the processor client. Implementations wrap one concrete
// gateway; errors carry domain.EPAYMENT with the gateway's own status and
// message so handlers can relay them verbatim.
type Provider interface {
	Initiate(ctx context.Context, params InitiateParams) (Checkout, error)
	Verify(ctx context.Context, transactionID string) (Verification, error)
}

// GatewayError is a rejection from the processor itself, as opposed to a
// transport failure reaching it.
type GatewayError struct {
	HTTPStatus int
	Status     string
	Message    string
}

func (e *GatewayError) Error() string {
	return "payment gateway: " + e.Message
}

// wrapGateway turns a gateway rejection into a domain payment error that
// keeps the gateway response reachable via errors.As.
func wrapGateway(op string, ge *GatewayError) error {
	return &domain.Error{
		Code:    domain.EPAYMENT,
		Op:      op,
		Message: ge.Message,
		Err:     ge,
	}
}
