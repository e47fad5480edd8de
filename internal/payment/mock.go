package payment

import "context"

// MockProvider is a function-field test double for Provider.
type MockProvider struct {
	InitiateFn func(ctx context.Context, params InitiateParams) (Checkout, error)
	VerifyFn   func(ctx context.Context, transactionID string) (Verification, error)
}

var _ Provider = (*MockProvider)(nil)

func (m *MockProvider) Initiate(ctx context.Context, params InitiateParams) (Checkout, error) {
	return m.InitiateFn(ctx, params)
}

func (m *MockProvider) Verify(ctx context.Context, transactionID string) (Verification, error) {
	return m.VerifyFn(ctx, transactionID)
}
