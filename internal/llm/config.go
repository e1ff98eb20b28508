package llm

import (
	"fmt"
	"os"
	"time"
)

// Config selects and configures an LLM provider.
type Config struct {
	// Provider names the backend: "anthropic", "openai", "gemini",
	// "openrouter", or "mock".
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds a single LLM request including retries.
	Timeout time.Duration
}

// AnthropicConfig holds Anthropic-specific settings.
type AnthropicConfig struct {
	APIKey string
	Model  string // friendly alias or full model ID
}

// OpenAIConfig holds OpenAI-specific settings.
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string // optional override for OpenAI-compatible gateways
}

// GeminiConfig holds Gemini-specific settings.
type GeminiConfig struct {
	APIKey string
	Model  string
}

// OpenRouterConfig holds OpenRouter-specific settings.
type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string // defaults to the public OpenRouter endpoint
}

// RetryConfig bounds the retry decorator.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns the baseline configuration: Anthropic with the
// cheap model, three attempts, 30s per request.
func DefaultConfig() Config {
	return Config{
		Provider:   "anthropic",
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.0-flash-exp"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 30 * time.Second,
	}
}

// ConfigFromEnv layers BAYESTUTOR_* environment variables over the
// defaults. Unset variables leave the defaults in place.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	envOverride(&cfg.Provider, "BAYESTUTOR_LLM_PROVIDER")

	envOverride(&cfg.Anthropic.APIKey, "BAYESTUTOR_ANTHROPIC_API_KEY")
	envOverride(&cfg.Anthropic.Model, "BAYESTUTOR_ANTHROPIC_MODEL")

	envOverride(&cfg.OpenAI.APIKey, "BAYESTUTOR_OPENAI_API_KEY")
	envOverride(&cfg.OpenAI.Model, "BAYESTUTOR_OPENAI_MODEL")
	envOverride(&cfg.OpenAI.BaseURL, "BAYESTUTOR_OPENAI_BASE_URL")

	envOverride(&cfg.Gemini.APIKey, "BAYESTUTOR_GEMINI_API_KEY")
	envOverride(&cfg.Gemini.Model, "BAYESTUTOR_GEMINI_MODEL")

	envOverride(&cfg.OpenRouter.APIKey, "BAYESTUTOR_OPENROUTER_API_KEY")
	envOverride(&cfg.OpenRouter.Model, "BAYESTUTOR_OPENROUTER_MODEL")

	return cfg
}

func envOverride(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// DiscoverConfig probes the standard key variables in priority order
// (Gemini, then OpenAI, Anthropic, OpenRouter) and returns a Config for
// the first key found. The second result is false when no key is set.
func DiscoverConfig() (Config, bool) {
	probes := []struct {
		envVar string
		apply  func(*Config, string)
	}{
		{"GEMINI_API_KEY", func(c *Config, k string) { c.Provider = "gemini"; c.Gemini.APIKey = k }},
		{"OPENAI_API_KEY", func(c *Config, k string) { c.Provider = "openai"; c.OpenAI.APIKey = k }},
		{"ANTHROPIC_API_KEY", func(c *Config, k string) { c.Provider = "anthropic"; c.Anthropic.APIKey = k }},
		{"OPENROUTER_API_KEY", func(c *Config, k string) { c.Provider = "openrouter"; c.OpenRouter.APIKey = k }},
	}

	for _, probe := range probes {
		if k := os.Getenv(probe.envVar); k != "" {
			cfg := DefaultConfig()
			probe.apply(&cfg, k)
			return cfg, true
		}
	}
	return Config{}, false
}

// Validate checks that the selected provider has its API key. The mock
// provider needs none.
func (c Config) Validate() error {
	var key, envVar string
	switch c.Provider {
	case "anthropic":
		key, envVar = c.Anthropic.APIKey, "BAYESTUTOR_ANTHROPIC_API_KEY"
	case "openai":
		key, envVar = c.OpenAI.APIKey, "BAYESTUTOR_OPENAI_API_KEY"
	case "gemini":
		key, envVar = c.Gemini.APIKey, "BAYESTUTOR_GEMINI_API_KEY"
	case "openrouter":
		key, envVar = c.OpenRouter.APIKey, "BAYESTUTOR_OPENROUTER_API_KEY"
	case "mock":
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}

	if key == "" {
		return fmt.Errorf("%s is required for the %s provider", envVar, c.Provider)
	}
	return nil
}
