package generation

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"text/template"
)

// DefaultPromptTemplate asks for MaxCards cards as a bare JSON array.
const DefaultPromptTemplate = `From the following text, create exactly {{.MaxCards}} high-quality flashcards with a clear question and detailed answer.
Return ONLY a valid JSON array in this format: [{"question": "text", "answer": "text"}]
Text: {{.Notes}}`

// promptData is the data passed to the prompt template.
type promptData struct {
	Notes    string
	MaxCards int
}

// Prompt renders generation prompts from a template.
type Prompt struct {
	tmpl         *template.Template
	maxCards     int
	maxNoteChars int
}

// NewPrompt parses the template at path, or DefaultPromptTemplate when path is
// empty. Notes longer than maxNoteChars runes are truncated before rendering.
func NewPrompt(path string, maxCards, maxNoteChars int) (*Prompt, error) {
	if maxCards <= 0 {
		return nil, fmt.Errorf("%w: max cards must be positive", ErrInvalidConfig)
	}
	if maxNoteChars <= 0 {
		return nil, fmt.Errorf("%w: max note characters must be positive", ErrInvalidConfig)
	}

	text := DefaultPromptTemplate
	if path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to read prompt template from %s: %v",
				ErrInvalidConfig, path, err)
		}
		text = string(content)
	}

	tmpl, err := template.New("flashcard").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse prompt template: %v", ErrInvalidConfig, err)
	}

	return &Prompt{tmpl: tmpl, maxCards: maxCards, maxNoteChars: maxNoteChars}, nil
}

// MaxCards is the number of cards requested from the model.
func (p *Prompt) MaxCards() int {
	return p.maxCards
}

// Render builds the prompt for notes.
func (p *Prompt) Render(notes string) (string, error) {
	notes = strings.TrimSpace(notes)
	if notes == "" {
		return "", ErrEmptyNotes
	}

	var buf bytes.Buffer
	data := promptData{Notes: Truncate(notes, p.maxNoteChars), MaxCards: p.maxCards}
	if err := p.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}
	return buf.String(), nil
}

// Truncate returns at most n runes of s.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
