// Package completion implements the completion provider against any
// OpenAI-compatible chat endpoint, including a local llama.cpp server.
package completion

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"gift-server/internal/domain/completion"
	"gift-server/internal/infrastructure/logger"
	"gift-server/internal/infrastructure/metrics"
	"gift-server/internal/utils/platformerrors"
)

// Config holds the provider endpoint settings.
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// OpenAIProvider is a completion.Provider backed by the chat-completions API.
type OpenAIProvider struct {
	client *openai.Client
	model  string
}

var _ completion.Provider = (*OpenAIProvider)(nil)

// NewOpenAIProvider constructs the provider. An empty API key is allowed for
// local servers that do not authenticate.
func NewOpenAIProvider(cfg Config) *OpenAIProvider {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		apiKey = "none"
	}

	clientCfg := openai.DefaultConfig(apiKey)
	clientCfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	if cfg.Timeout > 0 {
		clientCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
	}
}

// Complete sends the prompt as a system+user chat and returns the first
// choice's content.
func (p *OpenAIProvider) Complete(ctx context.Context, prompt completion.Prompt, opts completion.Options) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if strings.TrimSpace(prompt.System) != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: prompt.System,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: prompt.User,
	})

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       p.model,
		Messages:    messages,
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
	})
	if err != nil {
		metrics.ProviderErrorsTotal.WithLabelValues("completion", "request").Inc()
		return "", platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
			"completion request failed", err, "7d3c9a10-58e2-4b1f-9c44-f0a6b2d81e05")
	}

	if len(resp.Choices) == 0 {
		metrics.ProviderErrorsTotal.WithLabelValues("completion", "empty").Inc()
		return "", platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
			"completion returned no choices", errors.New("empty choices"), "1fe0c3b7-92ad-4a0f-8f63-5d47e81c2a96")
	}

	content := resp.Choices[0].Message.Content
	log := logger.GetLogger()
	log.Debug().
		Str("model", p.model).
		Int("prompt_tokens", resp.Usage.PromptTokens).
		Int("completion_tokens", resp.Usage.CompletionTokens).
		Msg("completion call finished")

	return content, nil
}
