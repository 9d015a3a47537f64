// file: service/text_service.go

package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"office-graph-api/config"
	"office-graph-api/logger"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/sirupsen/logrus"
)

var (
	ErrGenerationUnavailable  = errors.New("text generation is not configured")
	ErrGenerationRateLimited  = errors.New("text generation rate limit exceeded")
	ErrGenerationUnauthorized = errors.New("text generation credentials rejected")
	ErrGenerationFailed       = errors.New("text generation failed")
)

const systemPrompt = "You write clear, well-structured business content. Answer with the requested text only."

// ITextGenerator produces text for a prompt.
type ITextGenerator interface {
	Generate(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// TextService calls an OpenAI-compatible chat completion endpoint.
type TextService struct {
	client    openai.Client
	model     string
	maxTokens int
	enabled   bool
}

func NewTextService(cfg config.OpenAIConfig, httpClient *http.Client) *TextService {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if httpClient != nil {
		opts = append(opts, option.WithHTTPClient(httpClient))
	}

	return &TextService{
		client:    openai.NewClient(opts...),
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
		enabled:   cfg.APIKey != "",
	}
}

// Generate returns the first completion choice for prompt. Failures are
// returned as they are; no substitute text is ever produced.
func (s *TextService) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	if !s.enabled {
		return "", ErrGenerationUnavailable
	}
	if maxTokens <= 0 {
		maxTokens = s.maxTokens
	}

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(s.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(prompt),
		},
	}
	if maxTokens > 0 {
		params.MaxTokens = openai.Int(int64(maxTokens))
	}

	log := logger.Log.WithFields(logrus.Fields{
		"model":      s.model,
		"max_tokens": maxTokens,
	})

	completion, err := s.client.Chat.Completions.New(ctx, params)
	if err != nil {
		log.WithError(err).Warn("Text generation call failed")
		return "", classifyGenerationError(err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("%w: response contained no choices", ErrGenerationFailed)
	}

	text := strings.TrimSpace(completion.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("%w: response contained no text", ErrGenerationFailed)
	}

	log.WithField("completion_tokens", completion.Usage.CompletionTokens).Info("Text generated")
	return text, nil
}

func classifyGenerationError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusTooManyRequests:
			return fmt.Errorf("%w: %v", ErrGenerationRateLimited, err)
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%w: %v", ErrGenerationUnauthorized, err)
		}
	}
	return fmt.Errorf("%w: %v", ErrGenerationFailed, err)
}
