package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Payment validation errors
var (
	// ErrPaymentPhoneEmpty is returned when a payment request has no phone number.
	ErrPaymentPhoneEmpty = fmt.Errorf("%w: phone number is required", ErrValidation)

	// ErrPaymentPlanEmpty is returned when a payment request has no plan name.
	ErrPaymentPlanEmpty = fmt.Errorf("%w: plan is required", ErrValidation)
)

// PaymentStatus mirrors the state reported by the payment provider.
type PaymentStatus string

// Known provider states. Providers may report others; they are stored verbatim.
const (
	PaymentStatusPending    PaymentStatus = "PENDING"
	PaymentStatusProcessing PaymentStatus = "PROCESSING"
	PaymentStatusComplete   PaymentStatus = "COMPLETE"
	PaymentStatusFailed     PaymentStatus = "FAILED"
)

// Plan is a purchasable subscription plan. It is passed explicitly into the
// payment flow rather than held between calls.
type Plan struct {
	Name   string  `json:"plan"`
	Amount float64 `json:"amount"`
}

// Validate checks the plan has a name and a positive amount.
func (p Plan) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrPaymentPlanEmpty
	}
	if p.Amount <= 0 {
		return fmt.Errorf("%w: %w: amount must be greater than zero", ErrValidation, ErrInvalidAmount)
	}
	return nil
}

// PaymentRequest is the payload sent to the payment collaborator.
type PaymentRequest struct {
	Plan        string  `json:"plan"`
	Amount      float64 `json:"amount"`
	PhoneNumber string  `json:"phone_number"`
	Email       string  `json:"email,omitempty"`
}

// Checkout is the reference returned by the payment collaborator. It is used
// for display only.
type Checkout struct {
	Invoice string `json:"invoice"`
}

// Payment is a charge request recorded by the backend.
type Payment struct {
	ID            uuid.UUID     `json:"id"`
	Plan          string        `json:"plan"`
	Amount        float64       `json:"amount"`
	PhoneNumber   string        `json:"phone_number"`
	Email         string        `json:"email,omitempty"`
	Status        PaymentStatus `json:"status"`
	TransactionID string        `json:"transaction_id"`
	CreatedAt     time.Time     `json:"created_at"`
}

// NewPayment creates a Payment record for a charge that the provider accepted.
func NewPayment(req PaymentRequest, status PaymentStatus, transactionID string) (*Payment, error) {
	if strings.TrimSpace(req.PhoneNumber) == "" {
		return nil, ErrPaymentPhoneEmpty
	}
	if req.Amount <= 0 {
		return nil, fmt.Errorf("%w: %w", ErrValidation, ErrInvalidAmount)
	}

	return &Payment{
		ID:            uuid.New(),
		Plan:          req.Plan,
		Amount:        req.Amount,
		PhoneNumber:   req.PhoneNumber,
		Email:         req.Email,
		Status:        status,
		TransactionID: transactionID,
		CreatedAt:     time.Now().UTC(),
	}, nil
}
