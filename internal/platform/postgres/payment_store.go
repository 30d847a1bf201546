package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/notecards/internal/domain"
	"github.com/phrazzld/notecards/internal/platform/logger"
	"github.com/phrazzld/notecards/internal/store"
)

// PostgresPaymentStore implements store.PaymentStore.
type PostgresPaymentStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresPaymentStore creates a PostgresPaymentStore. If logger is nil, a
// default logger will be used.
func NewPostgresPaymentStore(db store.DBTX, logger *slog.Logger) *PostgresPaymentStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresPaymentStore{
		db:     db,
		logger: logger.With(slog.String("component", "payment_store")),
	}
}

var _ store.PaymentStore = (*PostgresPaymentStore)(nil)

// Create implements store.PaymentStore.Create.
// Returns store.ErrDuplicate if the transaction id was already recorded.
func (s *PostgresPaymentStore) Create(ctx context.Context, p *domain.Payment) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if p.TransactionID == "" {
		return fmt.Errorf("%w: %w: transaction id is required", store.ErrInvalidEntity, domain.ErrValidation)
	}

	query := `
		INSERT INTO payments (id, plan, amount, phone_number, email, status, transaction_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(ctx, query,
		p.ID,
		p.Plan,
		p.Amount,
		p.PhoneNumber,
		p.Email,
		string(p.Status),
		p.TransactionID,
		p.CreatedAt,
	)
	if err != nil {
		mapped := MapError(err)
		if errors.Is(mapped, store.ErrDuplicate) {
			log.Warn("payment already recorded", slog.String("transaction_id", p.TransactionID))
		} else {
			log.Error("failed to create payment",
				slog.String("error", err.Error()),
				slog.String("payment_id", p.ID.String()))
		}
		return store.NewStoreError("payment", "create", "insert failed", mapped)
	}

	log.Info("payment recorded",
		slog.String("payment_id", p.ID.String()),
		slog.String("transaction_id", p.TransactionID),
		slog.String("status", string(p.Status)))
	return nil
}
