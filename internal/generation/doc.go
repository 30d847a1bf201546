// Package generation provides interfaces and shared helpers for interacting
// with external AI/LLM services for content generation. It abstracts the
// details of LLM API integration (Gemini, Hugging Face), allowing the backend
// to generate flashcards from user notes without coupling to specific
// external services. Provider implementations live under internal/platform.
package generation
