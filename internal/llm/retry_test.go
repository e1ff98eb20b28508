package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func fastRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: 1 * time.Millisecond,
		MaxWait:     10 * time.Millisecond,
		Multiplier:  2.0,
	}
}

func transientErr() MockResponse {
	return MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}}
}

func okResponse() MockResponse {
	return MockResponse{Content: json.RawMessage(`{"correct":true}`)}
}

func TestRetry_FirstAttemptSucceeds(t *testing.T) {
	mock := NewMockProvider(okResponse())
	p := WithRetry(mock, fastRetryConfig())

	resp, err := p.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if string(resp.Content) != `{"correct":true}` {
		t.Errorf("content = %s, want {\"correct\":true}", resp.Content)
	}
	if got := mock.CallCount(); got != 1 {
		t.Errorf("calls = %d, want 1", got)
	}
}

func TestRetry_TransientThenSuccess(t *testing.T) {
	mock := NewMockProvider(transientErr(), okResponse())
	p := WithRetry(mock, fastRetryConfig())

	resp, err := p.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if string(resp.Content) != `{"correct":true}` {
		t.Errorf("content = %s, want {\"correct\":true}", resp.Content)
	}
	if got := mock.CallCount(); got != 2 {
		t.Errorf("calls = %d, want 2", got)
	}
}

func TestRetry_ExhaustsAttempts(t *testing.T) {
	mock := NewMockProvider(transientErr(), transientErr(), transientErr())
	p := WithRetry(mock, fastRetryConfig())

	if _, err := p.Generate(context.Background(), Request{}); err == nil {
		t.Fatal("expected error after exhausting attempts")
	}
	if got := mock.CallCount(); got != 3 {
		t.Errorf("calls = %d, want 3", got)
	}
}

func TestRetry_MaxTokensNotRetried(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrMaxTokensExceeded{Content: json.RawMessage(`{}`)}},
	)
	p := WithRetry(mock, fastRetryConfig())

	_, err := p.Generate(context.Background(), Request{})
	var maxTok *ErrMaxTokensExceeded
	if !errors.As(err, &maxTok) {
		t.Fatalf("error type = %T, want *ErrMaxTokensExceeded", err)
	}
	if got := mock.CallCount(); got != 1 {
		t.Errorf("calls = %d, want 1 (truncation never retried)", got)
	}
}

func TestRetry_InvalidResponseRetriedOnce(t *testing.T) {
	badResp := MockResponse{Err: &ErrInvalidResponse{Content: json.RawMessage(`bad`), Err: errors.New("bad")}}
	mock := NewMockProvider(badResp, badResp, okResponse())
	p := WithRetry(mock, fastRetryConfig())

	if _, err := p.Generate(context.Background(), Request{}); err == nil {
		t.Fatal("expected error")
	}
	// One retry was spent on the first invalid response; the second one
	// stops the loop before the queued success.
	if got := mock.CallCount(); got != 2 {
		t.Errorf("calls = %d, want 2", got)
	}
}

func TestRetry_CanceledContext(t *testing.T) {
	mock := NewMockProvider(transientErr(), transientErr(), okResponse())
	p := WithRetry(mock, fastRetryConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := p.Generate(ctx, Request{}); err == nil {
		t.Fatal("expected error from canceled context")
	}
}

func TestRetry_HonorsRetryAfter(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrRateLimit{RetryAfter: 1 * time.Millisecond, Err: errors.New("429")}},
		okResponse(),
	)
	p := WithRetry(mock, fastRetryConfig())

	resp, err := p.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if string(resp.Content) != `{"correct":true}` {
		t.Errorf("content = %s, want {\"correct\":true}", resp.Content)
	}
	if got := mock.CallCount(); got != 2 {
		t.Errorf("calls = %d, want 2", got)
	}
}

func TestRetry_ModelIDDelegates(t *testing.T) {
	p := WithRetry(NewMockProvider(), fastRetryConfig())
	if got := p.ModelID(); got != "mock" {
		t.Errorf("ModelID() = %q, want mock", got)
	}
}
