// Package llm is the provider layer for lesson generation and answer
// grading: one Provider interface, SDK-backed implementations for
// Anthropic, OpenAI, Gemini, and OpenRouter, and decorators for retries
// and event logging. Responses are JSON, optionally pinned to a schema.
package llm

import (
	"context"
	"encoding/json"
)

// Provider generates structured JSON from a prompt.
type Provider interface {
	// Generate sends one request. When the request carries a Schema the
	// returned Content is JSON validated against it; otherwise Content is
	// the raw text.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID reports the model this provider is configured for.
	ModelID() string
}

// Request is a single generation call.
type Request struct {
	// System sets the model's role and constraints.
	System string

	// Messages is the conversation. Lesson and grading calls are
	// single-turn, so this is usually one user message.
	Messages []Message

	// Schema, when set, makes the provider use its native structured
	// output mechanism and validates the response against the schema.
	Schema *Schema

	// MaxTokens caps the response length.
	MaxTokens int

	// Temperature in [0, 1]; zero means deterministic.
	Temperature float64
}

// Message is one turn of the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role identifies a message sender.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema pins the shape of the expected JSON response.
type Schema struct {
	// Name identifies the schema to the provider (tool name for
	// Anthropic, schema name for OpenAI). Kebab-case, e.g. "topic-lesson".
	Name string

	// Description tells the model what the schema represents.
	Description string

	// Definition is the JSON Schema as a decoded map.
	Definition map[string]any
}

// Response is one generation result.
type Response struct {
	// Content is the output: validated JSON when the request carried a
	// Schema, raw text otherwise.
	Content json.RawMessage

	// Usage is the token bill for this call.
	Usage Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is normalized to "end", "max_tokens", or "error".
	StopReason string
}

// Usage counts tokens for one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
