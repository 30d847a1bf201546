package store

import (
	"context"

	"github.com/phrazzld/notecards/internal/domain"
)

// PaymentStore records charges sent to the payment provider.
type PaymentStore interface {
	// Create saves a payment record.
	Create(ctx context.Context, payment *domain.Payment) error
}
