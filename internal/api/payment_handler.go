package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/notecards/internal/api/shared"
	"github.com/phrazzld/notecards/internal/domain"
	"github.com/phrazzld/notecards/internal/platform/intasend"
	"github.com/phrazzld/notecards/internal/platform/logger"
	"github.com/phrazzld/notecards/internal/redact"
	"github.com/phrazzld/notecards/internal/store"
)

// PaymentGateway starts a charge with the payment provider.
type PaymentGateway interface {
	Charge(ctx context.Context, req domain.PaymentRequest) (*intasend.Invoice, error)
}

// PaymentHandler starts checkouts and records them.
type PaymentHandler struct {
	gateway  PaymentGateway
	payments store.PaymentStore
	logger   *slog.Logger
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(gateway PaymentGateway, payments store.PaymentStore, logger *slog.Logger) *PaymentHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &PaymentHandler{
		gateway:  gateway,
		payments: payments,
		logger:   logger.With(slog.String("component", "payment_handler")),
	}
}

// Pay handles POST /api/pay. The charge is sent first; the payment row is
// written afterwards with the state reported by the provider.
func (h *PaymentHandler) Pay(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req PayRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		h.fail(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}
	req.PhoneNumber = strings.TrimSpace(req.PhoneNumber)
	req.Email = strings.TrimSpace(req.Email)
	if req.PhoneNumber == "" || req.Amount <= 0 {
		h.fail(w, r, http.StatusBadRequest, "Missing phone number or amount", nil)
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		h.fail(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	paymentReq := domain.PaymentRequest{
		Plan:        req.Plan,
		Amount:      req.Amount,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
	}

	invoice, err := h.gateway.Charge(r.Context(), paymentReq)
	if err != nil {
		h.fail(w, r, http.StatusInternalServerError, GetSafeErrorMessage(err), err)
		return
	}

	payment, err := domain.NewPayment(paymentReq, domain.PaymentStatus(invoice.State), invoice.InvoiceID)
	if err == nil {
		err = h.payments.Create(r.Context(), payment)
	}
	if err != nil && !errors.Is(err, store.ErrDuplicate) {
		// The charge is already on its way to the customer's phone.
		h.fail(w, r, http.StatusInternalServerError, "Failed to record payment", err)
		return
	}

	log.Info("checkout started",
		slog.String("plan", req.Plan),
		slog.String("invoice_id", invoice.InvoiceID),
		slog.String("state", invoice.State))
	shared.RespondWithJSON(w, r, http.StatusOK, PayResponse{
		Success:  true,
		Checkout: &domain.Checkout{Invoice: invoice.InvoiceID},
	})
}

func (h *PaymentHandler) fail(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	level := slog.LevelDebug
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	attrs := []slog.Attr{slog.Int("status_code", status), slog.String("user_message", message)}
	if err != nil {
		attrs = append(attrs, slog.String("error", redact.Error(err)))
	}
	log.LogAttrs(r.Context(), level, "payment request failed", attrs...)

	shared.RespondWithJSON(w, r, status, PayResponse{
		Success: false,
		Error:   message,
		TraceID: shared.GetTraceID(r.Context()),
	})
}
