// Package llm abstracts the external generative-AI completion services the
// mentor gateway delegates to. Providers take a single-turn prompt and
// return raw or schema-constrained JSON.
package llm

import (
	"context"
	"encoding/json"
)

// Provider is the upstream completion abstraction.
type Provider interface {
	// Generate sends one prompt to the model and returns its output.
	// When req.Schema is set, the provider requests structured output in
	// that shape and validates the result before returning it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the configured model identifier.
	ModelID() string
}

// Request describes a single-turn generation call.
type Request struct {
	// System is the system instruction fixing the model's persona and
	// constraints.
	System string

	// Prompt is the user content the model responds to.
	Prompt string

	// Schema, when set, is the JSON shape the output must conform to.
	// When nil the output is whatever text the model produced, returned
	// as raw bytes.
	Schema *Schema

	// MaxTokens caps the response length. Zero means provider default.
	MaxTokens int

	// Temperature in [0,1]. Zero means deterministic.
	Temperature float64
}

// Schema is a named JSON Schema handed to the model as its required
// output shape.
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

// Response is the model output plus accounting metadata.
type Response struct {
	// Content is the generated output. Validated JSON when a Schema was
	// requested, otherwise the raw text.
	Content json.RawMessage

	Usage Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

// Usage tracks token consumption for one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
