package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/phrazzld/notecards/internal/domain"
)

// API paths served by the backend.
const (
	pathGenerate   = "/api/generate"
	pathFlashcards = "/api/flashcards"
	pathPay        = "/api/pay"
)

// maxErrorBody bounds how much of an error response is read for its message.
const maxErrorBody = 64 << 10

// Client talks to the notecards backend over HTTP.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the timeout of the default http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a Client for the backend at baseURL, e.g. "http://localhost:8080".
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: scheme must be http or https", ErrInvalidBaseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: missing host", ErrInvalidBaseURL)
	}

	c := &Client{
		baseURL:    u,
		httpClient: &http.Client{},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With(slog.String("component", "api_client"))

	return c, nil
}

type generateRequest struct {
	Notes string `json:"notes"`
}

type generateResponse struct {
	Flashcards []domain.FlashcardDraft `json:"flashcards"`
}

// GenerateFlashcards posts notes to the generation endpoint and returns the
// drafts in the order the backend produced them. A missing list is treated as
// empty.
func (c *Client) GenerateFlashcards(ctx context.Context, notes string) ([]domain.FlashcardDraft, error) {
	var resp generateResponse
	if err := c.do(ctx, http.MethodPost, pathGenerate, generateRequest{Notes: notes}, &resp); err != nil {
		return nil, err
	}
	if resp.Flashcards == nil {
		return []domain.FlashcardDraft{}, nil
	}
	return resp.Flashcards, nil
}

// SaveFlashcard posts one draft to the persistence endpoint. The response body
// is not consumed.
func (c *Client) SaveFlashcard(ctx context.Context, draft domain.FlashcardDraft) error {
	return c.do(ctx, http.MethodPost, pathFlashcards, draft, nil)
}

// ListFlashcards fetches every stored flashcard in the order the backend returns them.
func (c *Client) ListFlashcards(ctx context.Context) ([]domain.Flashcard, error) {
	var cards []domain.Flashcard
	if err := c.do(ctx, http.MethodGet, pathFlashcards, nil, &cards); err != nil {
		return nil, err
	}
	if cards == nil {
		cards = []domain.Flashcard{}
	}
	return cards, nil
}

type payResponse struct {
	Success  bool            `json:"success"`
	Checkout domain.Checkout `json:"checkout"`
	Error    string          `json:"error,omitempty"`
}

// Pay asks the backend to start a checkout and returns its reference.
func (c *Client) Pay(ctx context.Context, req domain.PaymentRequest) (*domain.Checkout, error) {
	var resp payResponse
	if err := c.do(ctx, http.MethodPost, pathPay, req, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &StatusError{Method: http.MethodPost, Path: pathPay, Code: http.StatusOK, Message: resp.Error}
	}
	return &resp.Checkout, nil
}

// do sends a JSON request and decodes a JSON response into out when out is
// non-nil. Non-2xx responses become *StatusError.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.JoinPath(path).String(), reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.DebugContext(ctx, "request failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.String("error", err.Error()))
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	c.logger.DebugContext(ctx, "request completed",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status_code", resp.StatusCode),
		slog.Duration("duration", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newStatusError(method, path, resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrDecodeResponse, method, path, err)
	}
	return nil
}

func newStatusError(method, path string, resp *http.Response) *StatusError {
	statusErr := &StatusError{Method: method, Path: path, Code: resp.StatusCode}

	var payload struct {
		Error string `json:"error"`
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err == nil && json.Unmarshal(data, &payload) == nil {
		statusErr.Message = payload.Error
	}
	return statusErr
}
