package ai

import (
	"context"
	"errors"
)

// ErrEmptyResponse is returned when a provider answers without usable text.
var ErrEmptyResponse = errors.New("empty response from provider")

// LLMProvider defines the contract for interacting with AI models.
// Implementations are expected to ask the model for a single JSON object and
// return the raw text; callers own parsing.
type LLMProvider interface {
	// Name identifies the provider in logs, usage records and provider ordering.
	Name() string

	// GenerateJSON sends the system and user prompt and returns the model's JSON text.
	GenerateJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}
