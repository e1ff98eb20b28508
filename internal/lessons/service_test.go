package lessons

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rsarkar/bayestutor/internal/belief"
	"github.com/rsarkar/bayestutor/internal/llm"
	"github.com/rsarkar/bayestutor/internal/topicgraph"
)

func validLessonJSON() json.RawMessage {
	return json.RawMessage(`{
		"title": "Solving Linear Equations",
		"explanation": "A linear equation has a variable with no exponents. To solve it, undo each operation on both sides until the variable is alone.",
		"worked_example": "Solve 2x + 3 = 11\n1. Subtract 3 from both sides: 2x = 8\n2. Divide both sides by 2: x = 4",
		"practice_question": {
			"text": "Solve 3x = 12. What is x?",
			"answer": "4",
			"answer_type": "integer",
			"explanation": "Divide both sides by 3: x = 4"
		}
	}`)
}

func testTopic() topicgraph.Topic {
	return topicgraph.Topic{
		ID:         "linear-equations",
		Name:       "Linear Equations",
		Level:      1,
		Difficulty: 0.4,
		Content:    "Solving equations with one variable",
	}
}

func TestService_GeneratesLesson(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: validLessonJSON(),
	})
	svc := NewService(mock, DefaultConfig())

	summary := belief.Summary{
		TopicID:        "linear-equations",
		ExpectedLambda: 0.5,
		Observations:   3,
	}
	lesson, err := svc.Generate(context.Background(), testTopic(), summary)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if lesson.TopicID != "linear-equations" {
		t.Errorf("topic ID = %q, want %q", lesson.TopicID, "linear-equations")
	}
	if lesson.Title != "Solving Linear Equations" {
		t.Errorf("title = %q, want %q", lesson.Title, "Solving Linear Equations")
	}
	if lesson.Explanation == "" {
		t.Error("expected non-empty explanation")
	}
	if lesson.WorkedExample == "" {
		t.Error("expected non-empty worked example")
	}
	if !lesson.HasPractice() {
		t.Fatal("expected a practice question")
	}
	if lesson.PracticeQuestion.Answer != "4" {
		t.Errorf("practice answer = %q, want %q", lesson.PracticeQuestion.Answer, "4")
	}
	if lesson.PracticeQuestion.AnswerType != "integer" {
		t.Errorf("answer type = %q, want %q", lesson.PracticeQuestion.AnswerType, "integer")
	}
	if lesson.Source != SourceLLM {
		t.Errorf("source = %q, want %q", lesson.Source, SourceLLM)
	}
}

func TestService_SetsSchemaAndPurposePrompt(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: validLessonJSON(),
	})
	svc := NewService(mock, DefaultConfig())

	summary := belief.Summary{TopicID: "linear-equations", Observations: 0}
	if _, err := svc.Generate(context.Background(), testTopic(), summary); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
	req := mock.Calls[0]
	if req.Schema == nil || req.Schema.Name != "topic-lesson" {
		t.Error("expected schema name 'topic-lesson'")
	}
	if len(req.Messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(req.Messages))
	}
	if !strings.Contains(req.Messages[0].Content, "Linear Equations") {
		t.Errorf("prompt missing topic name: %q", req.Messages[0].Content)
	}
	if !strings.Contains(req.Messages[0].Content, "First exposure") {
		t.Errorf("prompt missing first-exposure note: %q", req.Messages[0].Content)
	}
}

func TestService_ProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.ErrProviderUnavailable{},
	})
	svc := NewService(mock, DefaultConfig())

	_, err := svc.Generate(context.Background(), testTopic(), belief.Summary{})
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestService_NilProvider(t *testing.T) {
	svc := NewService(nil, DefaultConfig())
	_, err := svc.Generate(context.Background(), testTopic(), belief.Summary{})
	if err == nil {
		t.Fatal("expected error with nil provider")
	}
}

func TestService_MalformedResponse(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`not json`),
	})
	svc := NewService(mock, DefaultConfig())

	_, err := svc.Generate(context.Background(), testTopic(), belief.Summary{})
	if err == nil {
		t.Fatal("expected error for malformed response")
	}
}

func TestFallback_UsesCatalogContent(t *testing.T) {
	lesson := Fallback(testTopic())

	if lesson.Source != SourceFallback {
		t.Errorf("source = %q, want %q", lesson.Source, SourceFallback)
	}
	if lesson.Title != "Linear Equations" {
		t.Errorf("title = %q, want topic name", lesson.Title)
	}
	if lesson.Explanation != "Solving equations with one variable" {
		t.Errorf("explanation = %q, want catalog content", lesson.Explanation)
	}
	if lesson.HasPractice() {
		t.Error("fallback lessons carry no practice question")
	}
}

func TestFallback_EmptyContent(t *testing.T) {
	topic := topicgraph.Topic{ID: "quadratics", Name: "Quadratic Equations", Level: 2}
	lesson := Fallback(topic)

	if lesson.Explanation == "" {
		t.Error("expected a generated explanation for empty content")
	}
	if !strings.Contains(lesson.Explanation, "Quadratic Equations") {
		t.Errorf("explanation should mention the topic: %q", lesson.Explanation)
	}
}
