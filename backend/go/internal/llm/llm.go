package llm

import (
	"Sceptre/backend/go/internal/config"
	"Sceptre/backend/go/internal/models"
	"context"
	"fmt"
)

// LLM 定义了所有推理服务客户端必须实现的通用接口。
// 推理服务是无状态的单轮调用：调用方发送完整的提示词，得到自由文本响应。
type LLM interface {
	GenerateContent(ctx context.Context, req *models.GenerateContentRequest) (*models.GenerateContentResponse, error)
}

// NewClient 是一个工厂函数，根据提供的配置创建并返回一个实现了 LLM 接口的客户端。
func NewClient(cfg config.LLMConfig) (LLM, error) {
	switch cfg.Provider {
	case "gemini":
		return NewGemini(context.Background(), cfg.Gemini.Model, cfg.Gemini.APIKey)
	case "openai":
		return NewOpenAI(cfg.OpenAI.Model, cfg.OpenAI.APIKey)
	case "ollama":
		return NewOllama(cfg.Ollama.Model, cfg.Ollama.BaseURL)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}

// Complete 是一个便捷函数：发送单段文本提示词并返回第一段文本响应。
// 响应为空时返回空字符串和 nil 错误，由调用方决定如何降级。
func Complete(ctx context.Context, client LLM, prompt string) (string, error) {
	resp, err := client.GenerateContent(ctx, models.TextPrompt(prompt))
	if err != nil {
		return "", err
	}
	return resp.FirstText(), nil
}
