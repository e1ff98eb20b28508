package grader

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rsarkar/bayestutor/internal/llm"
	"github.com/rsarkar/bayestutor/internal/topicgraph"
)

func gradingTopic() topicgraph.Topic {
	return topicgraph.Topic{
		ID:    "linear-equations",
		Name:  "Linear Equations",
		Level: 1,
	}
}

func TestLLM_GradesCorrectAnswer(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"correct":true,"feedback":"Exactly right, x = 4."}`),
	})
	g := NewLLM(mock, DefaultLLMConfig())

	v, err := g.Grade(context.Background(), gradingTopic(), "Solve 2x = 8", "4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !v.Correct {
		t.Error("expected correct verdict")
	}
	if v.Feedback == "" {
		t.Error("expected feedback")
	}
}

func TestLLM_GradesIncorrectAnswer(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"correct":false,"feedback":"Not quite. Divide both sides by 2."}`),
	})
	g := NewLLM(mock, DefaultLLMConfig())

	v, err := g.Grade(context.Background(), gradingTopic(), "Solve 2x = 8", "16")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Correct {
		t.Error("expected incorrect verdict")
	}
}

func TestLLM_SetsSchemaAndPrompt(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"correct":true,"feedback":"ok"}`),
	})
	g := NewLLM(mock, DefaultLLMConfig())

	if _, err := g.Grade(context.Background(), gradingTopic(), "Solve 2x = 8", "4"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
	req := mock.Calls[0]
	if req.Schema == nil || req.Schema.Name != "grading-verdict" {
		t.Error("expected schema name 'grading-verdict'")
	}
	msg := req.Messages[0].Content
	if !strings.Contains(msg, "Solve 2x = 8") {
		t.Errorf("prompt missing question: %q", msg)
	}
	if !strings.Contains(msg, "Student answer: 4") {
		t.Errorf("prompt missing answer: %q", msg)
	}
}

func TestLLM_ProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.ErrProviderUnavailable{},
	})
	g := NewLLM(mock, DefaultLLMConfig())

	_, err := g.Grade(context.Background(), gradingTopic(), "q", "a")
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestLLM_NilProvider(t *testing.T) {
	g := NewLLM(nil, DefaultLLMConfig())
	_, err := g.Grade(context.Background(), gradingTopic(), "q", "a")
	if err == nil {
		t.Fatal("expected error with nil provider")
	}
}
