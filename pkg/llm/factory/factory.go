package factory

import (
	"fmt"

	"market-research-be/pkg/llm"
	"market-research-be/pkg/llm/ollama"
	"market-research-be/pkg/llm/openai"
)

// NewLLMProvider builds a provider for one generation request. The
// OpenAI provider is constructed per request because the API key is the
// caller's credential and is never stored.
func NewLLMProvider(providerType, modelName, baseURL, apiKey string) (llm.LLMProvider, error) {
	switch providerType {
	case "openai":
		if apiKey == "" {
			return nil, fmt.Errorf("openai provider requires an API key")
		}
		return openai.NewOpenAIProvider(apiKey, modelName), nil
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}

// RequiresCredential reports whether a provider type needs a caller
// supplied API key.
func RequiresCredential(providerType string) bool {
	return providerType != "ollama"
}
