package llm

import (
	"context"
	"fmt"
	"os"

	"github.com/rsarkar/bayestutor/internal/store"
)

// NewProvider builds the configured backend and decorates it with retry
// and event logging. A nil eventRepo disables request logging.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("init %s provider: %w", cfg.Provider, err)
	}

	// Retry wraps logging so every attempt lands in the event log.
	wrapped := base
	if eventRepo != nil {
		wrapped = WithLogging(base, cfg.Provider, eventRepo)
	}
	return WithRetry(wrapped, cfg.Retry), nil
}

// NewProviderFromEnv builds a provider from environment configuration.
// Explicit BAYESTUTOR_* settings win; when no provider is selected there,
// standard key variables (GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY,
// OPENROUTER_API_KEY) are probed in that order.
func NewProviderFromEnv(ctx context.Context, eventRepo store.EventRepo) (Provider, error) {
	cfg := ConfigFromEnv()
	err := cfg.Validate()
	if err == nil {
		return NewProvider(ctx, cfg, eventRepo)
	}
	if os.Getenv("BAYESTUTOR_LLM_PROVIDER") != "" {
		// An explicitly selected provider must carry its own key.
		return nil, err
	}
	cfg, ok := DiscoverConfig()
	if !ok {
		return nil, err
	}
	return NewProvider(ctx, cfg, eventRepo)
}
