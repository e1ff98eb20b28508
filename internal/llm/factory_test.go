package llm

import (
	"context"
	"testing"
)

// clearLLMEnv blanks every variable the config and discovery paths read so
// tests see a deterministic environment regardless of the host shell.
func clearLLMEnv(t *testing.T) {
	t.Helper()
	for _, v := range []string{
		"BAYESTUTOR_LLM_PROVIDER",
		"BAYESTUTOR_ANTHROPIC_API_KEY",
		"BAYESTUTOR_OPENAI_API_KEY",
		"BAYESTUTOR_GEMINI_API_KEY",
		"BAYESTUTOR_OPENROUTER_API_KEY",
		"GEMINI_API_KEY",
		"OPENAI_API_KEY",
		"ANTHROPIC_API_KEY",
		"OPENROUTER_API_KEY",
	} {
		t.Setenv(v, "")
	}
}

func TestNewProvider_Mock(t *testing.T) {
	p, err := NewProvider(context.Background(), Config{Provider: "mock"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "mock" {
		t.Errorf("ModelID() = %q, want mock", p.ModelID())
	}
}

func TestNewProvider_Unknown(t *testing.T) {
	_, err := NewProvider(context.Background(), Config{Provider: "gpt5"}, nil)
	if err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestNewProviderFromEnv_ExplicitProvider(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("BAYESTUTOR_LLM_PROVIDER", "mock")

	p, err := NewProviderFromEnv(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "mock" {
		t.Errorf("ModelID() = %q, want mock", p.ModelID())
	}
}

func TestNewProviderFromEnv_ExplicitProviderMissingKey(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("BAYESTUTOR_LLM_PROVIDER", "openai")
	// A discoverable key must not substitute for the selected provider.
	t.Setenv("GEMINI_API_KEY", "test-key")

	if _, err := NewProviderFromEnv(context.Background(), nil); err == nil {
		t.Fatal("expected error when the selected provider has no key")
	}
}

func TestNewProviderFromEnv_DiscoversStandardKey(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")

	p, err := NewProviderFromEnv(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "gpt-4o-mini" {
		t.Errorf("ModelID() = %q, want the default openai model", p.ModelID())
	}
}

func TestNewProviderFromEnv_NothingConfigured(t *testing.T) {
	clearLLMEnv(t)

	if _, err := NewProviderFromEnv(context.Background(), nil); err == nil {
		t.Fatal("expected error with no configuration at all")
	}
}
