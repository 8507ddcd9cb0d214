package factory

import (
	"fmt"
	"time"

	"talent-search-be/pkg/llm"
	"talent-search-be/pkg/llm/ollama"
	"talent-search-be/pkg/llm/openai"
)

func NewLLMProvider(providerType, modelName, baseURL, apiKey string, timeout time.Duration) (llm.LLMProvider, error) {
	switch providerType {
	case "openai", "siliconflow", "deepseek":
		if baseURL == "" {
			baseURL = "https://api.siliconflow.cn"
		}
		return openai.NewOpenAIProvider(baseURL, apiKey, modelName, timeout), nil
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
