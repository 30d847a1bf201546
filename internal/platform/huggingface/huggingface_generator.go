package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/notecards/internal/config"
	"github.com/phrazzld/notecards/internal/domain"
	"github.com/phrazzld/notecards/internal/generation"
)

// Sampling parameters sent with every request.
const (
	maxNewTokens = 500
	temperature  = 0.3
)

// maxErrorBody caps how much of an error response is read into the error.
const maxErrorBody = 512

type inferenceRequest struct {
	Inputs     string              `json:"inputs"`
	Parameters inferenceParameters `json:"parameters"`
}

type inferenceParameters struct {
	MaxNewTokens   int     `json:"max_new_tokens"`
	Temperature    float64 `json:"temperature"`
	ReturnFullText bool    `json:"return_full_text"`
}

type inferenceOutput struct {
	GeneratedText string `json:"generated_text"`
}

// Option configures a Generator.
type Option func(*Generator)

// WithHTTPClient replaces the HTTP client used for inference calls.
func WithHTTPClient(c *http.Client) Option {
	return func(g *Generator) {
		g.httpClient = c
	}
}

// Generator implements generation.Generator using a hosted text-generation model.
type Generator struct {
	logger     *slog.Logger
	prompt     *generation.Prompt
	httpClient *http.Client
	modelURL   string
	apiKey     string
}

var _ generation.Generator = (*Generator)(nil)

// NewGenerator creates a Hugging Face generator from cfg.
func NewGenerator(logger *slog.Logger, cfg config.LLMConfig, opts ...Option) (*Generator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.HuggingFaceAPIKey == "" {
		return nil, fmt.Errorf("%w: huggingface API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.HuggingFaceURL == "" {
		return nil, fmt.Errorf("%w: huggingface model URL cannot be empty", generation.ErrInvalidConfig)
	}

	prompt, err := generation.NewPrompt(cfg.PromptTemplatePath, cfg.MaxCards, cfg.MaxNoteChars)
	if err != nil {
		return nil, err
	}

	g := &Generator{
		logger:     logger.With(slog.String("component", "huggingface_generator")),
		prompt:     prompt,
		httpClient: &http.Client{Timeout: time.Duration(cfg.RequestTimeoutSeconds) * time.Second},
		modelURL:   cfg.HuggingFaceURL,
		apiKey:     cfg.HuggingFaceAPIKey,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// GenerateDrafts prompts the model with notes and parses the drafts out of
// the generated text.
func (g *Generator) GenerateDrafts(ctx context.Context, notes string) ([]domain.FlashcardDraft, error) {
	prompt, err := g.prompt.Render(notes)
	if err != nil {
		return nil, err
	}

	text, err := g.infer(ctx, prompt)
	if err != nil {
		g.logger.ErrorContext(ctx, "inference request failed", slog.String("error", err.Error()))
		return nil, err
	}

	drafts, err := generation.ParseDrafts(text, g.prompt.MaxCards())
	if err != nil {
		g.logger.WarnContext(ctx, "could not parse model output",
			slog.String("error", err.Error()),
			slog.Int("response_length", len(text)))
		return nil, err
	}

	g.logger.InfoContext(ctx, "flashcards generated", slog.Int("card_count", len(drafts)))
	return drafts, nil
}

func (g *Generator) infer(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(inferenceRequest{
		Inputs: prompt,
		Parameters: inferenceParameters{
			MaxNewTokens:   maxNewTokens,
			Temperature:    temperature,
			ReturnFullText: false,
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode inference request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.modelURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: %v", generation.ErrGenerationFailed, err)
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", generation.ErrGenerationFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", fmt.Errorf("%w: inference API returned %d: %s",
			generation.ErrGenerationFailed, resp.StatusCode, bytes.TrimSpace(msg))
	}

	var outputs []inferenceOutput
	if err := json.NewDecoder(resp.Body).Decode(&outputs); err != nil {
		return "", fmt.Errorf("%w: failed to decode inference response: %v", generation.ErrInvalidResponse, err)
	}
	if len(outputs) == 0 {
		return "", fmt.Errorf("%w: no generated text", generation.ErrInvalidResponse)
	}
	return outputs[0].GeneratedText, nil
}
