package config

import (
	"os"
	"testing"
)

func TestEnvProvider_ReadsFreshValues(t *testing.T) {
	p := NewEnvProvider()

	os.Setenv("SERVICE_BASE_URL", "http://first.local")
	defer os.Unsetenv("SERVICE_BASE_URL")

	if got := p.Get(KeyServiceBaseURL); got != "http://first.local" {
		t.Fatalf("expected first value, got %q", got)
	}

	// Value changes between calls must be visible without a restart
	os.Setenv("SERVICE_BASE_URL", "http://second.local")
	if got := p.Get(KeyServiceBaseURL); got != "http://second.local" {
		t.Errorf("expected updated value, got %q", got)
	}
}

func TestEnvProvider_ModelDefault(t *testing.T) {
	p := NewEnvProvider()

	os.Unsetenv("AI_MODEL")
	if got := p.Get(KeyAIModel); got != DefaultAIModel {
		t.Errorf("expected default model %q, got %q", DefaultAIModel, got)
	}

	os.Setenv("AI_MODEL", "gpt-4")
	defer os.Unsetenv("AI_MODEL")
	if got := p.Get(KeyAIModel); got != "gpt-4" {
		t.Errorf("expected configured model, got %q", got)
	}
}

func TestEnvProvider_NoDefaultForKeys(t *testing.T) {
	p := NewEnvProvider()

	os.Unsetenv("OPENAI_API_KEY")
	if got := p.Get(KeyOpenAIAPIKey); got != "" {
		t.Errorf("unset API key must resolve to empty, got %q", got)
	}
}
