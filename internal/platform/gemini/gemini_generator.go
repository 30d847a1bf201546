package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/phrazzld/notecards/internal/config"
	"github.com/phrazzld/notecards/internal/domain"
	"github.com/phrazzld/notecards/internal/generation"
	"google.golang.org/genai"
)

// temperature keeps answers close to the source notes.
const temperature float32 = 0.3

// contentGenerator is the subset of *genai.Models used by the generator.
type contentGenerator interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// Generator implements generation.Generator using the Gemini API.
type Generator struct {
	logger     *slog.Logger
	config     config.LLMConfig
	prompt     *generation.Prompt
	models     contentGenerator
	model      string
	rng        *rand.Rand
	sleepUntil func(ctx context.Context, d time.Duration) error
}

var _ generation.Generator = (*Generator)(nil)

// NewGenerator creates a Gemini-backed generator.
func NewGenerator(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Generator, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", generation.ErrInvalidConfig, err)
	}

	return newGenerator(logger, cfg, client.Models)
}

func newGenerator(logger *slog.Logger, cfg config.LLMConfig, models contentGenerator) (*Generator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	prompt, err := generation.NewPrompt(cfg.PromptTemplatePath, cfg.MaxCards, cfg.MaxNoteChars)
	if err != nil {
		return nil, err
	}

	return &Generator{
		logger:     logger.With(slog.String("component", "gemini_generator")),
		config:     cfg,
		prompt:     prompt,
		models:     models,
		model:      cfg.ModelName,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
		sleepUntil: sleep,
	}, nil
}

// GenerateDrafts renders the prompt for notes, calls Gemini and parses the
// returned JSON array into drafts.
func (g *Generator) GenerateDrafts(ctx context.Context, notes string) ([]domain.FlashcardDraft, error) {
	prompt, err := g.prompt.Render(notes)
	if err != nil {
		return nil, err
	}

	g.logger.DebugContext(ctx, "prompt generated", slog.Int("prompt_length", len(prompt)))

	text, err := g.callWithRetry(ctx, prompt)
	if err != nil {
		return nil, err
	}

	drafts, err := generation.ParseDrafts(text, g.prompt.MaxCards())
	if err != nil {
		g.logger.WarnContext(ctx, "could not parse Gemini response",
			slog.String("error", err.Error()),
			slog.Int("response_length", len(text)))
		return nil, err
	}

	g.logger.InfoContext(ctx, "flashcards generated", slog.Int("card_count", len(drafts)))
	return drafts, nil
}

// callWithRetry calls the API, retrying transient failures with exponential
// backoff and jitter. Invalid and blocked responses are returned immediately.
func (g *Generator) callWithRetry(ctx context.Context, prompt string) (string, error) {
	maxRetries := g.config.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	baseDelay := time.Duration(g.config.RetryDelaySeconds) * time.Second
	if baseDelay <= 0 {
		baseDelay = time.Second
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		text, err := g.call(ctx, prompt)
		if err == nil {
			g.logger.DebugContext(ctx, "Gemini API call successful", slog.Int("attempt", attempt+1))
			return text, nil
		}
		lastErr = err

		g.logger.WarnContext(ctx, "Gemini API call failed",
			slog.Int("attempt", attempt+1),
			slog.Int("max_attempts", maxRetries+1),
			slog.String("error", err.Error()))

		if errors.Is(err, generation.ErrContentBlocked) || errors.Is(err, generation.ErrInvalidResponse) {
			return "", err
		}
		if ctx.Err() != nil || attempt == maxRetries {
			break
		}

		// delay = base * 2^attempt * [0.5, 1.0)
		backoff := float64(baseDelay) * math.Pow(2, float64(attempt))
		delay := time.Duration(backoff * (0.5 + g.rng.Float64()*0.5))
		if err := g.sleepUntil(ctx, delay); err != nil {
			break
		}
	}

	return "", fmt.Errorf("%w: %v", generation.ErrGenerationFailed, lastErr)
}

// call makes one GenerateContent request and returns the concatenated text.
func (g *Generator) call(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(g.config.RequestTimeoutSeconds)*time.Second)
	defer cancel()

	temp := temperature
	resp, err := g.models.GenerateContent(ctx, g.model,
		[]*genai.Content{{Role: "user", Parts: []*genai.Part{{Text: prompt}}}},
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			Temperature:      &temp,
		},
	)
	if err != nil {
		return "", err
	}

	switch {
	case resp == nil:
		return "", fmt.Errorf("%w: nil response", generation.ErrInvalidResponse)
	case len(resp.Candidates) == 0:
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			return "", fmt.Errorf("%w: prompt blocked: %s", generation.ErrContentBlocked, resp.PromptFeedback.BlockReason)
		}
		return "", fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse)
	case resp.Candidates[0].FinishReason == genai.FinishReasonSafety:
		return "", fmt.Errorf("%w: candidate blocked", generation.ErrContentBlocked)
	case resp.Candidates[0].Content == nil:
		return "", fmt.Errorf("%w: empty content in response", generation.ErrInvalidResponse)
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil {
			text.WriteString(part.Text)
		}
	}
	return text.String(), nil
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
