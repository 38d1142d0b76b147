package factory

import (
	"fmt"
	"strings"

	"eli5-bot/pkg/llm"
	"eli5-bot/pkg/llm/gemini"
	"eli5-bot/pkg/llm/ollama"
	"eli5-bot/pkg/llm/openai"
)

// KeylessProviders can be reached without a secret.
var KeylessProviders = map[string]bool{
	"ollama": true,
}

func NewLLMProvider(providerType, modelName, baseURL, apiKey string) (llm.LLMProvider, error) {
	switch strings.ToLower(providerType) {
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		if modelName == "" {
			modelName = "llama3.2"
		}
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	case "gemini", "":
		if apiKey == "" {
			return nil, fmt.Errorf("gemini provider requires an API key")
		}
		return gemini.NewGeminiProvider(apiKey, baseURL, modelName), nil
	case "openai":
		if apiKey == "" {
			return nil, fmt.Errorf("openai provider requires an API key")
		}
		return openai.NewOpenAIProvider(apiKey, baseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
