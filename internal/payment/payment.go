// Package payment drives checkout for a subscription plan. The plan and
// amount travel in each Request; the service holds no state between calls.
package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/notecards/internal/domain"
)

// ErrCheckoutFailed marks any failure of the payment collaborator.
var ErrCheckoutFailed = errors.New("failed to create payment session")

// Charger is the payment collaborator.
type Charger interface {
	Pay(ctx context.Context, req domain.PaymentRequest) (*domain.Checkout, error)
}

// Request is everything needed to start one checkout.
type Request struct {
	Plan        domain.Plan
	PhoneNumber string `validate:"required"`
	Email       string `validate:"omitempty,email"`
}

// Service starts checkouts through a Charger.
type Service struct {
	charger  Charger
	validate *validator.Validate
	logger   *slog.Logger
}

// NewService creates a payment Service.
func NewService(charger Charger, logger *slog.Logger) (*Service, error) {
	if charger == nil {
		return nil, errors.New("charger cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		charger:  charger,
		validate: validator.New(),
		logger:   logger.With(slog.String("component", "payment_service")),
	}, nil
}

// Initiate validates the request and asks the collaborator for a checkout.
// Validation failures wrap domain.ErrValidation and never reach the network.
func (s *Service) Initiate(ctx context.Context, req Request) (*domain.Checkout, error) {
	req.PhoneNumber = strings.TrimSpace(req.PhoneNumber)
	req.Email = strings.TrimSpace(req.Email)

	if req.PhoneNumber == "" {
		return nil, domain.ErrPaymentPhoneEmpty
	}
	if err := req.Plan.Validate(); err != nil {
		return nil, err
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	checkout, err := s.charger.Pay(ctx, domain.PaymentRequest{
		Plan:        req.Plan.Name,
		Amount:      req.Plan.Amount,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "payment request failed",
			slog.String("plan", req.Plan.Name),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %w", ErrCheckoutFailed, err)
	}

	s.logger.InfoContext(ctx, "payment request sent",
		slog.String("plan", req.Plan.Name),
		slog.String("invoice", checkout.Invoice))
	return checkout, nil
}
