package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"github.com/raynerd/attire/internal/domain"
)

const DefaultBaseURL = "https://api.flutterwave.com/v3"

// FlutterwaveClient talks to the Flutterwave v3 REST API over plain HTTP.
type FlutterwaveClient struct {
	secretKey  string
	baseURL    string
	httpClient *http.Client
}

// Compile-time check that FlutterwaveClient implements Provider.
var _ Provider = (*FlutterwaveClient)(nil)

func NewFlutterwaveClient(secretKey, baseURL string) (*FlutterwaveClient, error) {
	if secretKey == "" {
		return nil, fmt.Errorf("flutterwave secret key is required")
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &FlutterwaveClient{
		secretKey: secretKey,
		baseURL:   baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

type flwCustomer struct {
	Email       string `json:"email"`
	Name        string `json:"name,omitempty"`
	PhoneNumber string `json:"phonenumber,omitempty"`
}

type flwMeta struct {
	Address string `json:"address,omitempty"`
	Country string `json:"country,omitempty"`
	Zip     string `json:"zip,omitempty"`
}

type flwPaymentRequest struct {
	TxRef       string      `json:"tx_ref"`
	Amount      string      `json:"amount"`
	Currency    string      `json:"currency"`
	RedirectURL string      `json:"redirect_url"`
	Customer    flwCustomer `json:"customer"`
	Meta        flwMeta     `json:"meta"`
}

type flwPaymentResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Link string `json:"link"`
	} `json:"data"`
}

type flwVerifyResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Status   string          `json:"status"`
		TxRef    string          `json:"tx_ref"`
		Amount   decimal.Decimal `json:"amount"`
		Currency string          `json:"currency"`
	} `json:"data"`
}

// Initiate asks the gateway for a hosted checkout link.
func (c *FlutterwaveClient) Initiate(ctx context.Context, params InitiateParams) (Checkout, error) {
	const op = "payment.initiate"

	body := flwPaymentRequest{
		TxRef:       params.TxRef,
		Amount:      params.Amount.String(),
		Currency:    params.Currency,
		RedirectURL: params.RedirectURL,
		Customer: flwCustomer{
			Email:       params.Email,
			Name:        params.Name,
			PhoneNumber: params.PhoneNumber,
		},
		Meta: flwMeta{
			Address: params.Address,
			Country: params.Country,
			Zip:     params.Zip,
		},
	}

	var resp flwPaymentResponse
	httpStatus, err := c.do(ctx, http.MethodPost, "/payments", body, &resp)
	if err != nil {
		return Checkout{}, domain.WrapError(err, domain.EPAYMENT, op, "failed to reach payment gateway")
	}
	if httpStatus >= 400 || resp.Status != "success" {
		return Checkout{}, wrapGateway(op, &GatewayError{
			HTTPStatus: httpStatus,
			Status:     resp.Status,
			Message:    resp.Message,
		})
	}

	return Checkout{
		Status:  resp.Status,
		Message: resp.Message,
		Link:    resp.Data.Link,
	}, nil
}

// Verify asks the gateway for the verdict on a transaction.
func (c *FlutterwaveClient) Verify(ctx context.Context, transactionID string) (Verification, error) {
	const op = "payment.verify"

	path := "/transactions/" + url.PathEscape(transactionID) + "/verify"

	var resp flwVerifyResponse
	httpStatus, err := c.do(ctx, http.MethodGet, path, nil, &resp)
	if err != nil {
		return Verification{}, domain.WrapError(err, domain.EPAYMENT, op, "failed to reach payment gateway")
	}
	if httpStatus >= 400 || resp.Status != "success" {
		return Verification{}, wrapGateway(op, &GatewayError{
			HTTPStatus: httpStatus,
			Status:     resp.Status,
			Message:    resp.Message,
		})
	}

	return Verification{
		Status:   resp.Status,
		Message:  resp.Message,
		TxStatus: resp.Data.Status,
		TxRef:    resp.Data.TxRef,
		Amount:   resp.Data.Amount,
		Currency: resp.Data.Currency,
	}, nil
}

// do sends one authenticated JSON request and decodes the response body
// into out. The HTTP status is returned even for gateway rejections so
// callers can relay it.
func (c *FlutterwaveClient) do(ctx context.Context, method, path string, body, out any) (int, error) {
	var reqBody *bytes.Buffer
	if body != nil {
		reqBody = new(bytes.Buffer)
		if err := json.NewEncoder(reqBody).Encode(body); err != nil {
			return 0, fmt.Errorf("failed to encode request: %w", err)
		}
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return 0, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, fmt.Errorf("failed to decode gateway response: %w", err)
	}
	return resp.StatusCode, nil
}
