package config

import (
	"os"
	"strings"
)

// Keys the chat pipeline reads through the Provider.
const (
	KeyServiceBaseURL = "service_base_url"
	KeyOpenAIAPIKey   = "openai_api_key"
	KeyAIModel        = "ai_model"
)

const DefaultAIModel = "gpt-3.5-turbo"

// Provider exposes named configuration values. The chat pipeline reads
// responder settings through it on every request instead of caching them,
// so an admin can repoint the service between requests.
type Provider interface {
	Get(key string) string
}

// EnvProvider resolves keys against the process environment at call time
// (key "service_base_url" reads SERVICE_BASE_URL), falling back to a
// per-key default.
type EnvProvider struct {
	defaults map[string]string
}

func NewEnvProvider() *EnvProvider {
	return &EnvProvider{
		defaults: map[string]string{
			KeyAIModel: DefaultAIModel,
		},
	}
}

func (p *EnvProvider) Get(key string) string {
	val := os.Getenv(strings.ToUpper(key))
	if val == "" {
		return p.defaults[key]
	}
	return val
}
