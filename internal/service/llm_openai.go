package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// DefaultOpenAICompatibleURL is Yandex's OpenAI-compatible API root
const DefaultOpenAICompatibleURL = "https://llm.api.cloud.yandex.net/v1"

// OpenAICompatibleService calls YandexGPT through its OpenAI-compatible chat
// completions endpoint. Sampling settings match LLMService.
type OpenAICompatibleService struct {
	client   *openai.Client
	folderID string
	apiKey   string
	logger   *zap.Logger
}

// NewOpenAICompatibleService creates a completion client backed by go-openai
func NewOpenAICompatibleService(cfg LLMConfig, logger *zap.Logger) *OpenAICompatibleService {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = cfg.APIURL
	if clientCfg.BaseURL == "" {
		clientCfg.BaseURL = DefaultOpenAICompatibleURL
	}
	if cfg.HTTPClient != nil {
		clientCfg.HTTPClient = cfg.HTTPClient
	} else {
		clientCfg.HTTPClient = &http.Client{Timeout: completionTimeout}
	}

	return &OpenAICompatibleService{
		client:   openai.NewClientWithConfig(clientCfg),
		folderID: cfg.FolderID,
		apiKey:   cfg.APIKey,
		logger:   logger.Named("openai-compatible"),
	}
}

// Model returns the model identifier for the configured folder
func (s *OpenAICompatibleService) Model() string {
	return fmt.Sprintf(modelURITemplate+"/latest", s.folderID)
}

// Complete sends the prompt as a single user message and returns the first choice
func (s *OpenAICompatibleService) Complete(ctx context.Context, prompt string) (string, error) {
	if s.apiKey == "" || s.folderID == "" {
		return "", ErrMissingCredentials
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.Model(),
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: completionTemperature,
		MaxTokens:   2000,
		Stream:      false,
	})
	if err != nil {
		s.logger.Warn("Chat completion failed", zap.Error(err))
		return "", classifyOpenAIError(err)
	}

	if len(resp.Choices) == 0 {
		return "", &UpstreamError{Err: ErrEmptyCompletion}
	}

	return resp.Choices[0].Message.Content, nil
}

func classifyOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode != 0 {
		return &UpstreamError{StatusCode: apiErr.HTTPStatusCode, Body: apiErr.Message}
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode != 0 {
		return &UpstreamError{StatusCode: reqErr.HTTPStatusCode, Body: reqErr.Error()}
	}

	return &UpstreamError{Err: err}
}
