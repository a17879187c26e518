package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultCompletionURL is the YandexGPT foundation-models completion endpoint
	DefaultCompletionURL = "https://llm.api.cloud.yandex.net/foundationModels/v1/completion"

	completionTimeout     = 30 * time.Second
	completionTemperature = 0.8
	completionMaxTokens   = "2000"
	modelURITemplate      = "gpt://%s/yandexgpt"

	// upstream error bodies are kept for logging only
	maxErrorBody = 4 << 10
)

// LLMConfig carries the credentials and transport settings for LLMService
type LLMConfig struct {
	APIKey   string
	FolderID string
	APIURL   string
	// HTTPClient overrides the default client with a 30 second timeout
	HTTPClient *http.Client
}

// LLMService calls the YandexGPT completion API
type LLMService struct {
	apiKey   string
	folderID string
	apiURL   string
	client   *http.Client
	logger   *zap.Logger
}

// NewLLMService creates a new LLMService instance. Missing credentials are not
// an error here; Complete reports them on every call.
func NewLLMService(cfg LLMConfig, logger *zap.Logger) *LLMService {
	apiURL := cfg.APIURL
	if apiURL == "" {
		apiURL = DefaultCompletionURL
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: completionTimeout}
	}

	return &LLMService{
		apiKey:   cfg.APIKey,
		folderID: cfg.FolderID,
		apiURL:   apiURL,
		client:   client,
		logger:   logger.Named("yandexgpt"),
	}
}

// Message is one chat message in the YandexGPT wire format
type Message struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// CompletionOptions are the sampling options sent with every request
type CompletionOptions struct {
	Stream      bool    `json:"stream"`
	Temperature float64 `json:"temperature"`
	// MaxTokens is a string on the wire; the API accepts int64 values encoded as strings
	MaxTokens string `json:"maxTokens"`
}

// CompletionRequest represents a request to the YandexGPT API
type CompletionRequest struct {
	ModelURI          string            `json:"modelUri"`
	CompletionOptions CompletionOptions `json:"completionOptions"`
	Messages          []Message         `json:"messages"`
}

// CompletionResponse is the subset of the YandexGPT response the service reads
type CompletionResponse struct {
	Result struct {
		Alternatives []struct {
			Message Message `json:"message"`
			Status  string  `json:"status"`
		} `json:"alternatives"`
		ModelVersion string `json:"modelVersion"`
	} `json:"result"`
}

// ModelURI returns the model identifier for the configured folder
func (s *LLMService) ModelURI() string {
	return fmt.Sprintf(modelURITemplate, s.folderID)
}

// Complete sends the prompt as a single user message and returns the text of
// the first alternative. Exactly one attempt is made.
func (s *LLMService) Complete(ctx context.Context, prompt string) (string, error) {
	if s.apiKey == "" || s.folderID == "" {
		return "", ErrMissingCredentials
	}

	reqBody := CompletionRequest{
		ModelURI: s.ModelURI(),
		CompletionOptions: CompletionOptions{
			Stream:      false,
			Temperature: completionTemperature,
			MaxTokens:   completionMaxTokens,
		},
		Messages: []Message{
			{Role: "user", Text: prompt},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", &UpstreamError{Err: fmt.Errorf("failed to marshal request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewReader(jsonData))
	if err != nil {
		return "", &UpstreamError{Err: fmt.Errorf("failed to create request: %w", err)}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Api-Key "+s.apiKey)

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Warn("Completion request failed", zap.Error(err), zap.Duration("elapsed", time.Since(start)))
		return "", &UpstreamError{Err: fmt.Errorf("failed to send request: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		s.logger.Warn("Completion API returned an error",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body))
		return "", &UpstreamError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var result CompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", &UpstreamError{Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	if len(result.Result.Alternatives) == 0 {
		return "", &UpstreamError{Err: ErrEmptyCompletion}
	}

	s.logger.Debug("Completion received",
		zap.Duration("elapsed", time.Since(start)),
		zap.String("model_version", result.Result.ModelVersion),
		zap.Int("chars", len(result.Result.Alternatives[0].Message.Text)))

	return result.Result.Alternatives[0].Message.Text, nil
}
