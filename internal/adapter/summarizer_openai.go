package adapter

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/health-mate/internal/config"
	"github.com/MKhiriev/health-mate/internal/logger"
	"github.com/MKhiriev/health-mate/internal/utils"
	"github.com/MKhiriev/health-mate/models"
)

type completionMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model    string              `json:"model"`
	Messages []completionMessage `json:"messages"`
}

type completionResponse struct {
	Choices []struct {
		Message completionMessage `json:"message"`
	} `json:"choices"`
}

type openAISummarizer struct {
	client *utils.HTTPClient
	model  string
	logger *logger.Logger
}

// NewOpenAISummarizer constructs a [Summarizer] for any OpenAI-compatible
// chat completion API rooted at cfg.URL.
func NewOpenAISummarizer(cfg config.AI, log *logger.Logger) (Summarizer, error) {
	client, err := utils.NewHTTPClient(cfg.URL, cfg.Timeout)
	if err != nil {
		return nil, fmt.Errorf("%w: ai url: %w", ErrInvalidAdapterCfg, err)
	}
	if cfg.APIKey != "" {
		client.SetAuthToken(cfg.APIKey)
	}

	return &openAISummarizer{client: client, model: cfg.Model, logger: log}, nil
}

// Complete implements [Summarizer] via POST /chat/completions and returns
// the first choice unchanged.
func (o *openAISummarizer) Complete(ctx context.Context, messages []models.ChatMessage) (string, error) {
	log := logger.FromContext(ctx)

	req := completionRequest{Model: o.model, Messages: make([]completionMessage, 0, len(messages))}
	for _, m := range messages {
		req.Messages = append(req.Messages, completionMessage{Role: string(m.Role), Content: m.Content})
	}

	var result completionResponse
	resp, err := o.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&result).
		Post("/chat/completions")
	if err != nil {
		log.Err(err).Str("func", "*openAISummarizer.Complete").Msg("completion request failed")
		return "", fmt.Errorf("completion request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		log.Err(err).Str("func", "*openAISummarizer.Complete").Int("status", resp.StatusCode()).Msg("completion returned error")
		return "", err
	}

	if len(result.Choices) == 0 || strings.TrimSpace(result.Choices[0].Message.Content) == "" {
		return "", ErrEmptyResponse
	}

	return result.Choices[0].Message.Content, nil
}
