// Package gemini provides an implementation of the generation interface using Google's Gemini API.
package gemini
