package intasend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/phrazzld/notecards/internal/config"
	"github.com/phrazzld/notecards/internal/domain"
)

// Base URLs for the two IntaSend environments.
const (
	SandboxBaseURL = "https://sandbox.intasend.com"
	LiveBaseURL    = "https://payment.intasend.com"
)

const stkPushPath = "/api/v1/payment/mpesa-stk-push/"

const defaultTimeout = 30 * time.Second

// ErrChargeFailed is returned when IntaSend rejects or fails a charge.
var ErrChargeFailed = errors.New("intasend charge failed")

// Invoice is the provider's record of a charge.
type Invoice struct {
	InvoiceID string `json:"invoice_id"`
	State     string `json:"state"`
}

type chargeRequest struct {
	Amount      float64 `json:"amount"`
	PhoneNumber string  `json:"phone_number"`
	Email       string  `json:"email,omitempty"`
	Currency    string  `json:"currency"`
	APIRef      string  `json:"api_ref,omitempty"`
}

type chargeResponse struct {
	Invoice *Invoice `json:"invoice"`
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the environment base URL.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(url, "/")
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// Client talks to the IntaSend API.
type Client struct {
	baseURL        string
	secretKey      string
	publishableKey string
	currency       string
	httpClient     *http.Client
	logger         *slog.Logger
}

// NewClient creates a Client for the environment named in cfg.
func NewClient(cfg config.PaymentConfig, logger *slog.Logger, opts ...Option) (*Client, error) {
	if cfg.IntaSendSecretKey == "" {
		return nil, errors.New("intasend secret key cannot be empty")
	}
	if cfg.Currency == "" {
		return nil, errors.New("currency cannot be empty")
	}
	if logger == nil {
		logger = slog.Default()
	}

	baseURL := LiveBaseURL
	if cfg.IntaSendEnv == "sandbox" {
		baseURL = SandboxBaseURL
	}

	c := &Client{
		baseURL:        baseURL,
		secretKey:      cfg.IntaSendSecretKey,
		publishableKey: cfg.IntaSendPublishableKey,
		currency:       strings.ToUpper(cfg.Currency),
		httpClient:     &http.Client{Timeout: defaultTimeout},
		logger:         logger.With(slog.String("component", "intasend_client")),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Charge sends an STK push to req.PhoneNumber for req.Amount in the
// configured currency. The returned invoice is usually still PENDING.
func (c *Client) Charge(ctx context.Context, req domain.PaymentRequest) (*Invoice, error) {
	body, err := json.Marshal(chargeRequest{
		Amount:      req.Amount,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
		Currency:    c.currency,
		APIRef:      req.Plan,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode charge request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+stkPushPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrChargeFailed, err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.secretKey)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if c.publishableKey != "" {
		httpReq.Header.Set("X-IntaSend-Public-API-Key", c.publishableKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrChargeFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.WarnContext(ctx, "charge rejected", slog.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("%w: status %d: %s", ErrChargeFailed, resp.StatusCode, bytes.TrimSpace(msg))
	}

	var out chargeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrChargeFailed, err)
	}
	if out.Invoice == nil || out.Invoice.InvoiceID == "" {
		return nil, fmt.Errorf("%w: response has no invoice", ErrChargeFailed)
	}

	c.logger.InfoContext(ctx, "charge created",
		slog.String("invoice_id", out.Invoice.InvoiceID),
		slog.String("state", out.Invoice.State))
	return out.Invoice, nil
}
