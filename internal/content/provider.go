// Package content wraps the LLM API that writes listing descriptions,
// social captions, and video scripts.
package content

import (
	"context"
	"errors"
)

// ChatRequest is a single-turn completion request.
type ChatRequest struct {
	Model       string
	System      string
	Prompt      string
	MaxTokens   int
	Temperature float64
}

// ChatResponse carries the generated text and token accounting.
type ChatResponse struct {
	Content     string
	Model       string
	TotalTokens int
}

// Provider is implemented by LLM API clients.
type Provider interface {
	Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error)
}

var (
	ErrNotConfigured = errors.New("content_provider_not_configured")
	ErrEmptyVehicle  = errors.New("empty_vehicle")
	ErrEmptyResponse = errors.New("empty_response")
)
