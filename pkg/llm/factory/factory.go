package factory

import (
	"fmt"

	"growth-engine-be/internal/config"
	"growth-engine-be/pkg/llm"
	"growth-engine-be/pkg/llm/ollama"
	"growth-engine-be/pkg/llm/openai"
)

func NewLLMProvider(cfg config.OpenAIConfig, usageLog llm.UsageLogger) (llm.LLMProvider, error) {
	switch cfg.Provider {
	case "openai":
		p := openai.NewOpenAIProvider(cfg.APIKey, cfg.BaseURL, cfg.Model, cfg.MaxTokens, cfg.Temperature)
		p.SetUsageLogger(usageLog)
		return p, nil
	case "ollama":
		baseURL := cfg.OllamaBaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, cfg.OllamaModel), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
