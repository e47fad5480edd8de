package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/raynerd/attire/internal/domain"
	"github.com/raynerd/attire/internal/payment"
)

// PaymentHandler delegates checkout to the payment processor: it requests
// a hosted payment link and relays transaction verdicts. No money state is
// kept server-side.
type PaymentHandler struct {
	provider    payment.Provider
	redirectURL string
	validate    *validator.Validate
	logger      *slog.Logger
	now         func() time.Time
}

func NewPaymentHandler(provider payment.Provider, redirectURL string, logger *slog.Logger) *PaymentHandler {
	return &PaymentHandler{
		provider:    provider,
		redirectURL: redirectURL,
		validate:    validator.New(),
		logger:      defaultLogger(logger),
		now:         time.Now,
	}
}

type initiatePaymentRequest struct {
	Amount   decimal.Decimal `json:"amount" validate:"required"`
	Currency string          `json:"currency" validate:"required"`
	Email    string          `json:"email" validate:"required,email"`
	Phone    string          `json:"phone" validate:"required"`
	FullName string          `json:"fullName" validate:"required"`
	Address  string          `json:"address" validate:"required"`
	Country  string          `json:"country" validate:"required"`
	Zip      string          `json:"zip"`
}

// Initiate handles POST /initiate-payment. The transaction reference is
// generated here, millisecond-stamped, and echoed back by the gateway on
// verification.
func (h *PaymentHandler) Initiate(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req initiatePaymentRequest
	if err := decodeJSON(r, h.validate, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		writeError(w, r, domain.Invalid("payment.initiate", "Amount must be greater than 0"))
		return
	}

	txRef := "TX-" + strconv.FormatInt(h.now().UnixMilli(), 10)

	checkout, err := h.provider.Initiate(r.Context(), payment.InitiateParams{
		TxRef:       txRef,
		Amount:      req.Amount,
		Currency:    req.Currency,
		RedirectURL: h.redirectURL,
		Email:       req.Email,
		Name:        req.FullName,
		PhoneNumber: req.Phone,
		Address:     req.Address,
		Country:     req.Country,
		Zip:         req.Zip,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.logger.Info("payment initiated", "tx_ref", txRef, "user_id", identity.UserID)
	writeJSON(w, http.StatusOK, map[string]any{
		"message":     "Payment initiated successfully",
		"checkoutUrl": checkout.Link,
		"tx_ref":      txRef,
		"customer": map[string]string{
			"email":    req.Email,
			"phone":    req.Phone,
			"fullName": req.FullName,
		},
		"meta": map[string]string{
			"address": req.Address,
			"country": req.Country,
			"zip":     req.Zip,
		},
	})
}

// Verify handles GET /verify/{transactionId}, relaying the gateway's
// verdict on the transaction.
func (h *PaymentHandler) Verify(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireIdentity(w, r); !ok {
		return
	}

	transactionID := r.PathValue("transactionId")
	if transactionID == "" {
		writeError(w, r, domain.Invalid("payment.verify", "Transaction id is required"))
		return
	}

	v, err := h.provider.Verify(r.Context(), transactionID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":  v.Status,
		"message": v.Message,
		"data": map[string]any{
			"status":   v.TxStatus,
			"tx_ref":   v.TxRef,
			"amount":   v.Amount,
			"currency": v.Currency,
		},
	})
}
