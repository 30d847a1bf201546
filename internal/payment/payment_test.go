package payment

import (
	"context"
	"errors"
	"testing"

	"github.com/phrazzld/notecards/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockCharger is a mock implementation of Charger for testing
type MockCharger struct {
	PayFn func(ctx context.Context, req domain.PaymentRequest) (*domain.Checkout, error)
	calls []domain.PaymentRequest
}

// Pay implements Charger
func (m *MockCharger) Pay(ctx context.Context, req domain.PaymentRequest) (*domain.Checkout, error) {
	m.calls = append(m.calls, req)
	if m.PayFn != nil {
		return m.PayFn(ctx, req)
	}
	return &domain.Checkout{Invoice: "INV-1"}, nil
}

func TestNewService_NilCharger(t *testing.T) {
	_, err := NewService(nil, nil)
	assert.Error(t, err)
}

func TestService_Initiate(t *testing.T) {
	premium := domain.Plan{Name: "premium", Amount: 500}

	tests := []struct {
		name        string
		req         Request
		payErr      error
		wantErr     error
		wantCharged bool
	}{
		{
			name:        "success",
			req:         Request{Plan: premium, PhoneNumber: " 254712345678 ", Email: "a@example.com"},
			wantCharged: true,
		},
		{
			name:    "missing phone",
			req:     Request{Plan: premium},
			wantErr: domain.ErrPaymentPhoneEmpty,
		},
		{
			name:    "invalid plan",
			req:     Request{Plan: domain.Plan{Name: "premium"}, PhoneNumber: "254712345678"},
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name:    "invalid email",
			req:     Request{Plan: premium, PhoneNumber: "254712345678", Email: "not-an-email"},
			wantErr: domain.ErrValidation,
		},
		{
			name:        "collaborator failure",
			req:         Request{Plan: premium, PhoneNumber: "254712345678"},
			payErr:      errors.New("status 500"),
			wantErr:     ErrCheckoutFailed,
			wantCharged: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			charger := &MockCharger{}
			if tt.payErr != nil {
				charger.PayFn = func(ctx context.Context, req domain.PaymentRequest) (*domain.Checkout, error) {
					return nil, tt.payErr
				}
			}
			svc, err := NewService(charger, nil)
			require.NoError(t, err)

			checkout, err := svc.Initiate(context.Background(), tt.req)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, checkout)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "INV-1", checkout.Invoice)
			}

			if !tt.wantCharged {
				assert.Empty(t, charger.calls, "no network call expected")
				return
			}
			require.Len(t, charger.calls, 1)
			assert.Equal(t, "premium", charger.calls[0].Plan)
			assert.Equal(t, 500.0, charger.calls[0].Amount)
			assert.Equal(t, "254712345678", charger.calls[0].PhoneNumber)
		})
	}
}

func TestService_InitiateIsIndependentPerCall(t *testing.T) {
	charger := &MockCharger{}
	svc, err := NewService(charger, nil)
	require.NoError(t, err)

	_, err = svc.Initiate(context.Background(), Request{Plan: domain.Plan{Name: "basic", Amount: 100}, PhoneNumber: "1"})
	require.NoError(t, err)
	_, err = svc.Initiate(context.Background(), Request{Plan: domain.Plan{Name: "premium", Amount: 500}, PhoneNumber: "2"})
	require.NoError(t, err)

	require.Len(t, charger.calls, 2)
	assert.Equal(t, domain.PaymentRequest{Plan: "basic", Amount: 100, PhoneNumber: "1"}, charger.calls[0])
	assert.Equal(t, domain.PaymentRequest{Plan: "premium", Amount: 500, PhoneNumber: "2"}, charger.calls[1])
}
