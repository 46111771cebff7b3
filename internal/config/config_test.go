package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GENAPP_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("GENAPP_MODEL", "")
	t.Setenv("GENAPP_MAX_TOKENS", "")

	cfg := Load()
	if cfg.APIKey != "" {
		t.Errorf("expected empty key, got %q", cfg.APIKey)
	}
	if cfg.Model != defaultModel {
		t.Errorf("model = %q, want %q", cfg.Model, defaultModel)
	}
	if cfg.MaxTokens != defaultMaxTokens {
		t.Errorf("max tokens = %d, want %d", cfg.MaxTokens, defaultMaxTokens)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("GENAPP_API_KEY", "sk-test")
	t.Setenv("GENAPP_MODEL", "gpt-4o-mini")
	t.Setenv("GENAPP_MAX_TOKENS", "1234")

	cfg := Load()
	if cfg.APIKey != "sk-test" || cfg.Model != "gpt-4o-mini" || cfg.MaxTokens != 1234 {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestOpenAIKeyFallback(t *testing.T) {
	t.Setenv("GENAPP_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "sk-fallback")

	cfg := Load()
	if cfg.APIKey != "sk-fallback" {
		t.Errorf("expected OPENAI_API_KEY fallback, got %q", cfg.APIKey)
	}
}

func TestInvalidMaxTokensIgnored(t *testing.T) {
	t.Setenv("GENAPP_MAX_TOKENS", "not-a-number")

	cfg := Load()
	if cfg.MaxTokens != defaultMaxTokens {
		t.Errorf("max tokens = %d, want default %d", cfg.MaxTokens, defaultMaxTokens)
	}
}
