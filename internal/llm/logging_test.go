package llm

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/rsarkar/bayestutor/internal/store"
)

// captureEventRepo records LLM request events and discards everything else.
type captureEventRepo struct {
	llmEvents []store.LLMRequestEventData
	fail      bool
}

func (r *captureEventRepo) AppendAnswerEvent(ctx context.Context, data store.AnswerEventData) error {
	return nil
}

func (r *captureEventRepo) AppendSessionEvent(ctx context.Context, data store.SessionEventData) error {
	return nil
}

func (r *captureEventRepo) AppendLessonEvent(ctx context.Context, data store.LessonEventData) error {
	return nil
}

func (r *captureEventRepo) AppendLLMRequest(ctx context.Context, data store.LLMRequestEventData) error {
	if r.fail {
		return errors.New("append failed")
	}
	r.llmEvents = append(r.llmEvents, data)
	return nil
}

func (r *captureEventRepo) QueryAnswerEvents(ctx context.Context, opts store.QueryOpts) ([]store.AnswerEvent, error) {
	return nil, nil
}

func (r *captureEventRepo) AnswerTotalsByTopic(ctx context.Context) ([]store.TopicTotals, error) {
	return nil, nil
}

func (r *captureEventRepo) AnswerTotalsByLevel(ctx context.Context) ([]store.LevelTotals, error) {
	return nil, nil
}

func (r *captureEventRepo) QueryLLMEvents(ctx context.Context, opts store.QueryOpts) ([]store.LLMEvent, error) {
	return nil, nil
}

func (r *captureEventRepo) GetLLMEvent(ctx context.Context, id int) (*store.LLMEvent, error) {
	return nil, nil
}

func (r *captureEventRepo) LLMUsageByPurpose(ctx context.Context) ([]store.PurposeUsage, error) {
	return nil, nil
}

func (r *captureEventRepo) LLMUsageByModel(ctx context.Context) ([]store.ModelUsage, error) {
	return nil, nil
}

func TestLogging_RecordsSuccessfulRequest(t *testing.T) {
	repo := &captureEventRepo{}
	mock := NewMockProvider(
		MockResponse{
			Content: json.RawMessage(`{"correct":true}`),
			Usage:   Usage{InputTokens: 100, OutputTokens: 20, TotalTokens: 120},
		},
	)
	p := WithLogging(mock, "anthropic", repo)

	ctx := WithPurpose(context.Background(), "grading")
	req := Request{
		System:   "You are a patient algebra tutor.",
		Messages: []Message{{Role: RoleUser, Content: "Grade: 2x=10, answer 5"}},
	}
	if _, err := p.Generate(ctx, req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.llmEvents) != 1 {
		t.Fatalf("expected 1 logged event, got %d", len(repo.llmEvents))
	}
	ev := repo.llmEvents[0]
	if ev.Provider != "anthropic" {
		t.Errorf("provider = %q, want %q", ev.Provider, "anthropic")
	}
	if ev.Model != "mock" {
		t.Errorf("model = %q, want %q", ev.Model, "mock")
	}
	if ev.Purpose != "grading" {
		t.Errorf("purpose = %q, want %q", ev.Purpose, "grading")
	}
	if !ev.Success {
		t.Error("expected success")
	}
	if ev.InputTokens != 100 || ev.OutputTokens != 20 {
		t.Errorf("tokens = %d/%d, want 100/20", ev.InputTokens, ev.OutputTokens)
	}
	if !strings.Contains(ev.RequestBody, "Grade: 2x=10") {
		t.Errorf("request body missing prompt: %q", ev.RequestBody)
	}
	if ev.ResponseBody != `{"correct":true}` {
		t.Errorf("response body = %q", ev.ResponseBody)
	}
}

func TestLogging_RecordsFailedRequest(t *testing.T) {
	repo := &captureEventRepo{}
	mock := NewMockProvider(
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
	)
	p := WithLogging(mock, "openai", repo)

	_, err := p.Generate(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected error")
	}

	if len(repo.llmEvents) != 1 {
		t.Fatalf("expected 1 logged event, got %d", len(repo.llmEvents))
	}
	ev := repo.llmEvents[0]
	if ev.Success {
		t.Error("expected failure")
	}
	if ev.ErrorMessage == "" {
		t.Error("expected error message")
	}
	if ev.Purpose != "unknown" {
		t.Errorf("purpose = %q, want %q", ev.Purpose, "unknown")
	}
}

func TestLogging_RepoFailureDoesNotFailRequest(t *testing.T) {
	repo := &captureEventRepo{fail: true}
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"correct":true}`)},
	)
	p := WithLogging(mock, "gemini", repo)

	resp, err := p.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != `{"correct":true}` {
		t.Fatalf("unexpected content: %s", resp.Content)
	}
}

func TestSerializeRequest_IncludesSchema(t *testing.T) {
	req := Request{
		System:   "sys",
		Messages: []Message{{Role: RoleUser, Content: "hello"}},
		Schema: &Schema{
			Name:       "test-verdict",
			Definition: map[string]any{"type": "object"},
		},
	}

	body := serializeRequest(req)
	if !strings.Contains(body, "[system]") {
		t.Errorf("missing system section: %q", body)
	}
	if !strings.Contains(body, "[user]") {
		t.Errorf("missing user section: %q", body)
	}
	if !strings.Contains(body, "[schema: test-verdict]") {
		t.Errorf("missing schema section: %q", body)
	}
}
