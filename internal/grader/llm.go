package grader

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rsarkar/bayestutor/internal/llm"
	"github.com/rsarkar/bayestutor/internal/topicgraph"
)

// VerdictSchema defines the JSON schema for LLM grading output.
var VerdictSchema = &llm.Schema{
	Name:        "grading-verdict",
	Description: "Judgment of a student's answer to a math question",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"correct": map[string]any{
				"type":        "boolean",
				"description": "Whether the student's answer is correct",
			},
			"feedback": map[string]any{
				"type":        "string",
				"description": "One or two sentences of feedback for the student",
			},
		},
		"required":             []any{"correct", "feedback"},
		"additionalProperties": false,
	},
}

const gradingSystemPrompt = `You are grading a student's answer to a math question. Judge correctness strictly: equivalent forms of the right answer count (e.g. "0.5" for "1/2"), wrong values or incomplete answers do not. Give brief, encouraging feedback either way.`

// LLMConfig holds grading request settings.
type LLMConfig struct {
	MaxTokens   int
	Temperature float64
}

// DefaultLLMConfig returns sensible defaults for grading.
func DefaultLLMConfig() LLMConfig {
	return LLMConfig{
		MaxTokens:   256,
		Temperature: 0,
	}
}

// LLM grades free-text answers through an LLM provider with structured
// output.
type LLM struct {
	provider llm.Provider
	cfg      LLMConfig
}

// NewLLM creates an LLM-backed grader.
func NewLLM(provider llm.Provider, cfg LLMConfig) *LLM {
	return &LLM{provider: provider, cfg: cfg}
}

type verdictOutput struct {
	Correct  bool   `json:"correct"`
	Feedback string `json:"feedback"`
}

func (g *LLM) Grade(ctx context.Context, topic topicgraph.Topic, question, answer string) (Verdict, error) {
	if g.provider == nil {
		return Verdict{}, fmt.Errorf("no LLM provider configured")
	}

	ctx = llm.WithPurpose(ctx, "grading")

	req := llm.Request{
		System: gradingSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildGradingUserMessage(topic, question, answer)},
		},
		Schema:      VerdictSchema,
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return Verdict{}, fmt.Errorf("grading: %w", err)
	}

	var out verdictOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return Verdict{}, fmt.Errorf("parse grading response: %w", err)
	}

	return Verdict{Correct: out.Correct, Feedback: out.Feedback}, nil
}

func buildGradingUserMessage(topic topicgraph.Topic, question, answer string) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Topic: %s (level %d)\n", topic.Name, topic.Level))
	b.WriteString(fmt.Sprintf("Question: %s\n", question))
	b.WriteString(fmt.Sprintf("Student answer: %s\n", answer))

	return b.String()
}
