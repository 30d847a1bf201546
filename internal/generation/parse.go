package generation

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/phrazzld/notecards/internal/domain"
)

// jsonArrayPattern matches from the first '[' to the last ']' across lines.
var jsonArrayPattern = regexp.MustCompile(`(?s)\[.*\]`)

// ParseDrafts extracts flashcard drafts from free-form model output. The
// first JSON array in text is decoded; entries missing a question or answer
// are skipped and at most maxCards drafts are returned.
func ParseDrafts(text string, maxCards int) ([]domain.FlashcardDraft, error) {
	match := jsonArrayPattern.FindString(text)
	if match == "" {
		return nil, fmt.Errorf("%w: failed to extract JSON from AI response", ErrInvalidResponse)
	}

	var raw []map[string]any
	if err := json.Unmarshal([]byte(match), &raw); err != nil {
		return nil, fmt.Errorf("%w: failed to parse JSON response: %v", ErrInvalidResponse, err)
	}

	drafts := make([]domain.FlashcardDraft, 0, len(raw))
	for _, entry := range raw {
		question, qok := entry["question"].(string)
		answer, aok := entry["answer"].(string)
		if !qok || !aok {
			continue
		}
		draft := domain.FlashcardDraft{
			Question: strings.TrimSpace(question),
			Answer:   strings.TrimSpace(answer),
		}
		if draft.Validate() != nil {
			continue
		}
		drafts = append(drafts, draft)
		if maxCards > 0 && len(drafts) == maxCards {
			break
		}
	}

	return drafts, nil
}
