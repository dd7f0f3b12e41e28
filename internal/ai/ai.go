package ai

import (
	"context"
	"encoding/json"
	"errors"
)

// Client abstracts vision-capable AI providers for portfolio analysis.
type Client interface {
	AnalyzePortfolio(ctx context.Context, input AnalyzeInput) (json.RawMessage, error)
}

// Image is one portfolio screenshot or upload sent to the provider.
type Image struct {
	MimeType string
	Data     []byte
}

// AnalyzeInput captures the inputs needed for portfolio analysis.
type AnalyzeInput struct {
	Images    []Image
	SourceURL string
	Title     string
}

// ErrNotConfigured is returned by the placeholder client.
var ErrNotConfigured = errors.New("AI provider not configured")

// PlaceholderClient is used when no provider API key is set; every call
// fails so the caller falls back to the heuristic engine.
type PlaceholderClient struct{}

func (PlaceholderClient) AnalyzePortfolio(ctx context.Context, input AnalyzeInput) (json.RawMessage, error) {
	_ = ctx
	_ = input
	return nil, ErrNotConfigured
}
